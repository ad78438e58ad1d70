package weave

import "github.com/iov-one/escrowd/errors"

// Metadata is stored in front of every persisted model. Schema is
// the version of the serialization format and starts at 1.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the schema version was never set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrEmpty, "metadata")
	}
	if m.Schema < 1 {
		return errors.Field("Schema", errors.ErrInvalidModel, "must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
