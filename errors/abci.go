package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is the code of a successful ABCI response.
	SuccessABCICode = 0

	// Errors without an ABCI code are reported as internal. Outside of
	// debug mode their message is replaced so that implementation details
	// never reach the client.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

type coder interface {
	ABCICode() uint32
}

// ABCIInfo returns the code and log for an ABCI response. In debug mode the
// log contains the full stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// abciCode returns the code of the first error in the cause chain that
// declares one, or the internal code if none does.
func abciCode(err error) uint32 {
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		cause, ok := err.(causer)
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return internalABCICode
}

// Redact replaces panics and errors without an ABCI code with a generic
// internal error. It does nothing in debug mode.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// ABCIError rebuilds an error from the code and log of an ABCI response, so
// that a client can test it with Is. Codes that were never registered
// produce an error that matches nothing. Use it on the client side only.
func ABCIError(code uint32, log string) error {
	if e, ok := registry[code]; ok {
		return Wrap(e, log)
	}
	return Wrap(&Error{code: code, desc: "unknown error"}, log)
}
