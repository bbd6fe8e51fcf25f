package errutil

import (
	"errors"
	"testing"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if Multi() != nil {
		t.Errorf("Multi() -> non-nil")
	}
	if Multi(nil, nil) != nil {
		t.Errorf("Multi(nil, nil) -> non-nil")
	}
	if Multi(err1) != err1 {
		t.Errorf("Multi(err1) -> %v, want err1", Multi(err1))
	}
	if Multi(nil, err1, nil) != err1 {
		t.Errorf("Multi(nil, err1, nil) -> %v, want err1", Multi(nil, err1, nil))
	}

	err := Multi(Multi(err1, err2), err3)
	want := "multiple errors: error 1; error 2; error 3"
	if err.Error() != want {
		t.Errorf("got message %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, err2) {
		t.Errorf("errors.Is(multi, err2) -> false")
	}
}
