package escrow

import (
	"github.com/iov-one/escrowd/errors"
)

var (
	// ErrAlreadyReleased is returned when an escrow that was released or
	// refunded is asked to settle or accept funds again.
	ErrAlreadyReleased = errors.Register(1010, "escrow already released")

	// ErrTransferFailed is returned when the settlement transfer out of the
	// escrow account cannot be completed.
	ErrTransferFailed = errors.Register(1011, "escrow transfer failed")
)
