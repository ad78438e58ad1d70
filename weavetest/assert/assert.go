// Package assert holds the few assertions the tests of this module use
// over and over. Everything else is checked with testify.
package assert

import (
	"reflect"

	"github.com/iov-one/escrowd/errors"
)

// Tester is implemented by *testing.T and *testing.B.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil prints errors with %+v, so a failure shows the stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %+v", value)
	}
}

// isNil also accepts a typed nil, for example a nil *Error stored in an
// error interface.
func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal compares with reflect.DeepEqual, so a nil slice and an empty
// slice differ.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails unless got matches want. A nil want accepts only a nil
// error.
func IsErr(t Tester, want *errors.Error, got error) {
	t.Helper()
	if !want.Is(got) {
		expected := "no error"
		if want != nil {
			expected = want.Error()
		}
		t.Fatalf("want %q, got %+v", expected, got)
	}
}
