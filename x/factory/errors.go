package factory

import (
	"github.com/iov-one/escrowd/errors"
)

// ErrInstantiationFailed is returned when a factory cannot bring up a new
// instance from its template.
var ErrInstantiationFailed = errors.Register(1020, "instantiation failed")
