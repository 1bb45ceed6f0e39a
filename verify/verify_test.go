package verify

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := Validate(true, "never reported: %d", 1); err != nil {
		t.Errorf("unexpected error for a holding condition: %v", err)
	}

	for _, v := range []struct {
		format          string
		args            []interface{}
		expectedMessage string
	}{
		{"negative count: %d", []interface{}{-1}, "negative count: -1: invalid argument"},
		{"empty collection: %s", []interface{}{"frequencies"}, "empty collection: frequencies: invalid argument"},
		{"no arguments", nil, "no arguments: invalid argument"},
	} {
		err := Validate(false, v.format, v.args...)
		if err == nil {
			t.Errorf("expected error for %q", v.format)
			continue
		}
		if err.Error() != v.expectedMessage {
			t.Errorf("message for %q: got %q, want %q", v.format, err.Error(), v.expectedMessage)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("error for %q does not match ErrInvalidArgument: %v", v.format, err)
		}
	}
}

func TestNonEmpty(t *testing.T) {
	if err := NonEmptyInts([]int{1}, "counts"); err != nil {
		t.Errorf("unexpected error for a non-empty int slice: %v", err)
	}
	if err := NonEmptyFloats([]float64{0.5}, "frequencies"); err != nil {
		t.Errorf("unexpected error for a non-empty float slice: %v", err)
	}

	for _, v := range []struct {
		name string
		err  error
	}{
		{"nil ints", NonEmptyInts(nil, "counts")},
		{"empty ints", NonEmptyInts([]int{}, "counts")},
		{"nil floats", NonEmptyFloats(nil, "frequencies")},
		{"empty floats", NonEmptyFloats([]float64{}, "frequencies")},
	} {
		if v.err == nil {
			t.Errorf("%s: expected error", v.name)
			continue
		}
		if !errors.Is(v.err, ErrInvalidArgument) {
			t.Errorf("%s: error does not match ErrInvalidArgument: %v", v.name, v.err)
		}
	}
}
