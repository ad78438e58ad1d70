package orm

import (
	"github.com/iov-one/escrowd/errors"
)

// Counter is a simple model used to exercise buckets in tests
type Counter struct {
	Owner []byte `json:"owner"`
	Count int64  `json:"count"`
}

var _ CloneableData = (*Counter)(nil)

func (c *Counter) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Counter) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

func (c *Counter) Copy() CloneableData {
	cpy := *c
	return &cpy
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "negative count")
	}
	return nil
}

// ownerIndex indexes counters by owner, skipping anonymous ones
func ownerIndex(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	if len(c.Owner) == 0 {
		return nil, nil
	}
	return c.Owner, nil
}
