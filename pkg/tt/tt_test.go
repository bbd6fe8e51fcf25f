package tt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// recordT implements the T interface and records the messages passed to
// Errorf.
type recordT []string

func (t *recordT) Helper() {}

func (t *recordT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

func add(x, y int) int { return x + y }

func divmod(x, y int) (int, int) { return x / y, x % y }

func isNil(err error) bool { return err == nil }

type oddMatcher struct{}

func (oddMatcher) Match(v RetValue) bool { return v.(int)%2 == 1 }

func TestTest_Pass(t *testing.T) {
	var rt recordT
	Test(&rt, Fn("divmod", divmod), Table{
		Args(7, 2).Rets(3, 1),
		Args(8, 3).Rets(Any, 2),
		Args(9, 2).Rets(Any, oddMatcher{}),
	})
	if len(rt) > 0 {
		t.Errorf("Test reported errors for passing cases: %v", rt)
	}
}

func TestTest_NilArgument(t *testing.T) {
	var rt recordT
	Test(&rt, Fn("isNil", isNil), Table{Args(nil).Rets(true)})
	if len(rt) > 0 {
		t.Errorf("Test reported errors for passing cases: %v", rt)
	}
}

var errSentinel = errors.New("sentinel")

func wrapSentinel(s string) error {
	if s == "" {
		return nil
	}
	return fmt.Errorf("%s: %w", s, errSentinel)
}

func TestTest_ErrorMatchers(t *testing.T) {
	var rt recordT
	Test(&rt, Fn("wrapSentinel", wrapSentinel), Table{
		Args("").Rets(nil),
		Args("x").Rets(ErrorIs(errSentinel)),
		Args("x").Rets(ErrorWithMessage("x: sentinel")),
	})
	if len(rt) > 0 {
		t.Errorf("Test reported errors for passing cases: %v", rt)
	}
}

func TestTest_FailDefaultFmt(t *testing.T) {
	var rt recordT
	Test(&rt, Fn("add", add), Table{Args(1, 10).Rets(12)})
	assertOneError(t, rt, "add(1, 10) returns (-Wanted +Actual):\n")
}

func TestTest_FailCustomFmt(t *testing.T) {
	var rt recordT
	Test(&rt,
		Fn("divmod", divmod).ArgsFmt("x = %d, y = %d").RetsFmt("(q = %d, r = %d)"),
		Table{Args(7, 2).Rets(3, 0)})
	assertOneError(t, rt, "divmod(x = 7, y = 2) returns (-Wanted +Actual):\n")
}

func TestTest_FailMatcherShowsRejectedValue(t *testing.T) {
	var rt recordT
	Test(&rt, Fn("divmod", divmod), Table{Args(9, 2).Rets(oddMatcher{}, Any)})
	assertOneError(t, rt, "divmod(9, 2) returns (-Wanted +Actual):\n")
	if len(rt) == 1 && !strings.Contains(rt[0], "return value 0 (4) rejected by tt.oddMatcher{}") {
		t.Errorf("message doesn't name the rejected value: %q", rt[0])
	}
}

func assertOneError(t *testing.T, rt recordT, wantPrefix string) {
	t.Helper()
	switch len(rt) {
	case 0:
		t.Errorf("Test didn't error when it should have done so")
	case 1:
		if !strings.HasPrefix(rt[0], wantPrefix) {
			t.Errorf("Test wrote message:\nWanted: %q...\nActual: %q", wantPrefix, rt[0])
		}
	default:
		t.Errorf("Test wrote too many error messages")
	}
}
