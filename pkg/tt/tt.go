// Package tt supports table-driven tests with little boilerplate.
//
// See the test case for this package for example usage.
package tt

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Table represents a test table.
type Table []*Case

// Case represents a test case. It is created by the Args function, and offers
// setters that augment and return itself; those calls can be chained like
// Args(...).Rets(...).
type Case struct {
	args         []any
	retsMatchers [][]any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets modifies the test case so that it requires the return values to match
// the given values. It returns the receiver. The arguments may implement the
// Matcher interface, in which case its Match method is called with the actual
// return value. Otherwise, cmp.Equal is used to determine matches.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnToTest describes a function to test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
	retsFmt string
}

// Fn makes a new FnToTest with the given function name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt sets the string for formatting arguments in test error messages, and
// returns fn itself.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// RetsFmt sets the string for formatting return values in test error messages,
// and returns fn itself.
func (fn *FnToTest) RetsFmt(s string) *FnToTest {
	fn.retsFmt = s
	return fn
}

// T is the interface for accessing testing.T.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test tests a function against test cases.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for _, retsMatcher := range test.retsMatchers {
			if match(retsMatcher, rets) {
				continue
			}
			var args string
			if fn.argsFmt == "" {
				args = sprintCommaDelimited(test.args...)
			} else {
				args = fmt.Sprintf(fn.argsFmt, test.args...)
			}
			var diff string
			if fn.retsFmt == "" {
				diff = cmp.Diff(retsMatcher, rets, cmpOpt)
			} else {
				diff = cmp.Diff(
					fmt.Sprintf(fn.retsFmt, retsMatcher...),
					fmt.Sprintf(fn.retsFmt, rets...))
			}
			t.Errorf("%s(%s) returns (-Wanted +Actual):\n%s%s",
				fn.name, args, diff, describeRejections(retsMatcher, rets))
		}
	}
}

// Matchers are compared by their Match method instead of structurally, and
// errors are compared with errors.Is.
var cmpOpt = cmp.Options{
	cmp.FilterValues(
		func(x, y any) bool {
			_, xm := x.(Matcher)
			_, ym := y.(Matcher)
			return xm || ym
		},
		cmp.Comparer(func(x, y any) bool {
			if m, ok := x.(Matcher); ok {
				return m.Match(y)
			}
			return y.(Matcher).Match(x)
		})),
	cmpopts.EquateErrors(),
}

// RetValue is an empty interface used in the Matcher interface.
type RetValue any

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match. The argument
	// is of type RetValue so that it cannot be implemented accidentally.
	Match(RetValue) bool
}

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

// ErrorWithMessage returns a Matcher that matches errors whose Error method
// returns msg.
func ErrorWithMessage(msg string) Matcher { return errorWithMessage{msg} }

type errorWithMessage struct{ msg string }

func (m errorWithMessage) Match(v RetValue) bool {
	err, ok := v.(error)
	return ok && err.Error() == m.msg
}

// ErrorIs returns a Matcher that matches errors for which errors.Is(err,
// target) is true.
func ErrorIs(target error) Matcher { return errorIs{target} }

type errorIs struct{ target error }

func (m errorIs) Match(v RetValue) bool {
	err, ok := v.(error)
	return ok && errors.Is(err, m.target)
}

func match(matchers, actual []any) bool {
	for i, matcher := range matchers {
		if !matchOne(matcher, actual[i]) {
			return false
		}
	}
	return true
}

func matchOne(m, a any) bool {
	if m, ok := m.(Matcher); ok {
		return m.Match(a)
	}
	return cmp.Equal(m, a, cmpopts.EquateErrors())
}

// Lists the return values rejected by matchers, which a diff may not show.
func describeRejections(matchers, actual []any) string {
	var b strings.Builder
	for i, matcher := range matchers {
		if m, ok := matcher.(Matcher); ok && !m.Match(actual[i]) {
			fmt.Fprintf(&b, "return value %d (%#v) rejected by %#v\n", i, actual[i], m)
		}
	}
	return b.String()
}

func sprintCommaDelimited(args ...any) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, arg)
	}
	return b.String()
}

func call(fn any, args []any) []any {
	argsReflect := make([]reflect.Value, len(args))
	fnType := reflect.TypeOf(fn)
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) returns a zero Value; use the zero value of
			// the parameter type instead.
			argsReflect[i] = reflect.Zero(paramType(fnType, i))
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}

func paramType(fnType reflect.Type, i int) reflect.Type {
	if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
		return fnType.In(fnType.NumIn() - 1).Elem()
	}
	return fnType.In(i)
}
