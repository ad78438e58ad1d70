package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// registry holds every registered error by its code. Code 1 is reserved for
// internal errors.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a new root error. It panics if the code is already in
// use, so call it only when initializing package variables.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error with an ABCI code. Errors returned at runtime should
// wrap one of them, so that they can be tested with Is and so that the
// client receives a meaningful code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is returns true if err is e or wraps e. A nil e matches only a nil error,
// including a typed nil pointer.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds description to err. It returns nil if err is nil. A stack trace
// is recorded once, by the innermost wrap.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Field wraps err with the name of the attribute that failed validation,
// for example Field("Arbiter", ErrEmpty, "required"). The description is
// formatted when args are given. Field returns nil if err is nil.
func Field(name string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	if description == "" {
		return Wrapf(err, "field %q", name)
	}
	return Wrapf(err, "field %q: %s", name, description)
}

type causer interface {
	Cause() error
}

// errIsNil also returns true for a nil pointer stored in a non nil
// interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if v := reflect.ValueOf(err); v.Kind() == reflect.Ptr {
		return v.IsNil()
	}
	return false
}
