// Package errutil contains utilities for working with errors.
package errutil

import "strings"

// Multi combines multiple errors into one. Nil errors are skipped. It returns
// nil when nothing remains, the single error when one remains, and otherwise
// an error whose message lists every message in order.
//
// Errors returned by Multi are flattened when passed to Multi again, and
// errors.Is and errors.As see through them.
func Multi(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if multi, ok := err.(multiError); ok {
			nonNil = append(nonNil, multi...)
		} else {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError(nonNil)
	}
}

type multiError []error

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (me multiError) Unwrap() []error { return me }
