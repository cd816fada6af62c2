// SPDX-License-Identifier: Apache-2.0
// Copyright © 2021 Wrangle Ltd

package dotno

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func fieldName(p string) string {
	return strings.ToUpper(string(p[0])) + p[1:]
}

// GetFieldValue walks s along a dotted property path such as
// "compare.maxRows". With createIfZero, nil pointers along the way are
// allocated so the result can be set.
func GetFieldValue(s interface{}, prop string, createIfZero bool) (reflect.Value, error) {
	v := reflect.ValueOf(s)
	if prop == "" {
		return v, nil
	}
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for _, p := range strings.Split(prop, ".") {
		if p == "" {
			return reflect.Value{}, fmt.Errorf("empty key segment in %q", prop)
		}
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !createIfZero {
					return reflect.Value{}, fmt.Errorf(`field "%s" is zero`, p)
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("unhandled kind %v", v.Kind())
		}
		name := fieldName(p)
		if _, ok := v.Type().FieldByName(name); !ok {
			return reflect.Value{}, fmt.Errorf(`field "%s" not found`, name)
		}
		v = v.FieldByName(name)
		if v.IsZero() && !createIfZero {
			return reflect.Value{}, fmt.Errorf(`field "%s" is zero`, name)
		}
	}
	return v, nil
}

func GetWithDotNotation(s interface{}, prop string) (interface{}, error) {
	fv, err := GetFieldValue(s, prop, false)
	if err != nil {
		return nil, err
	}
	return fv.Interface(), nil
}

// SetWithDotNotation parses val into the field at prop.
func SetWithDotNotation(s interface{}, prop string, val string) error {
	fv, err := GetFieldValue(s, prop, true)
	if err != nil {
		return err
	}
	return SetValue(fv, val)
}

// SetValue parses val according to the kind of v. Slices of strings take a
// comma separated list.
func SetValue(v reflect.Value, val string) error {
	if v.Kind() == reflect.Ptr && v.Type().Elem().Kind() != reflect.Struct {
		pv := reflect.New(v.Type().Elem())
		if err := SetValue(pv.Elem(), val); err != nil {
			return err
		}
		v.Set(pv)
		return nil
	}
	if v.CanAddr() && v.Addr().Type().Implements(textUnmarshalerType) {
		return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(val))
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(val)
	case reflect.Int, reflect.Int64, reflect.Int32:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("bad value: %q, expecting an integer", val)
		}
		v.SetInt(n)
	case reflect.Bool:
		switch strings.ToLower(val) {
		case "true":
			v.SetBool(true)
		case "false":
			v.SetBool(false)
		default:
			return fmt.Errorf("bad value: %q, only accept %q or %q", val, "true", "false")
		}
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("setValue: unhandled slice of type %v", v.Type().Elem())
		}
		parts := strings.Split(val, ",")
		sl := reflect.MakeSlice(v.Type(), 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				sl = reflect.Append(sl, reflect.ValueOf(p).Convert(v.Type().Elem()))
			}
		}
		v.Set(sl)
	default:
		return fmt.Errorf("setValue: unhandled type %v", v.Type())
	}
	return nil
}

// UnsetField resets the field at prop to its zero value.
func UnsetField(s interface{}, prop string) error {
	props := strings.Split(prop, ".")
	n := len(props) - 1
	parent, err := GetFieldValue(s, strings.Join(props[:n], "."), false)
	if err != nil {
		return err
	}
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return fmt.Errorf("unhandled kind %v", parent.Kind())
	}
	name := fieldName(props[n])
	field := parent.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf(`field "%s" not found`, name)
	}
	field.Set(reflect.Zero(field.Type()))
	return nil
}
