// SPDX-License-Identifier: Apache-2.0
// Copyright © 2021 Wrangle Ltd

package dotno

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// MarshalText renders a config value for display. Scalars print as is,
// string slices one element per line and anything else as YAML.
func MarshalText(v reflect.Value) (string, error) {
	if v.Kind() == reflect.Ptr && !v.IsNil() && v.Type().Elem().Kind() != reflect.Struct && !v.Type().Implements(textMarshalerType) {
		v = v.Elem()
	}
	if v.Type().Implements(textMarshalerType) {
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Bool:
		return fmt.Sprint(v.Interface()), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.String {
			lines := make([]string, v.Len())
			for i := range lines {
				lines[i] = v.Index(i).String()
			}
			return strings.Join(lines, "\n"), nil
		}
	}
	b, err := yaml.Marshal(v.Interface())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}
