// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package errors

import (
	"errors"
	"fmt"
)

// Kind tells collaborator failures apart. The comparison engine itself never
// fails, so every Kind names something around it.
type Kind int

const (
	KindUnknown Kind = iota
	KindIO
	KindParse
	KindLimit
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindLimit:
		return "limit"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the kind of e or, when e has none, of the first wrapped
// *Error that does.
func (e *Error) Kind() Kind {
	if e.kind != KindUnknown {
		return e.kind
	}
	var inner *Error
	if errors.As(e.err, &inner) {
		return inner.Kind()
	}
	return KindUnknown
}

func Wrap(msg string, err error) *Error {
	return &Error{msg: msg, err: err}
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func WrapKind(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf returns the kind of the outermost *Error in the chain of err.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func Contains(err error, v interface{}) bool {
	var s string
	if v == nil {
		return err == nil
	}
	if err == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		s = t
	case error:
		s = t.Error()
	default:
		return false
	}
	for {
		if err.Error() == s {
			return true
		}
		err = Unwrap(err)
		if err == nil {
			return false
		}
	}
}
