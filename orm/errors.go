package orm

import "github.com/iov-one/escrowd/errors"

// orm reserves 100 ~ 109.
var (
	ErrInvalidIndex     = errors.Register(100, "invalid index")
	ErrUniqueConstraint = errors.Register(101, "duplicate unique key")
)
