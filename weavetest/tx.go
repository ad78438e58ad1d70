package weavetest

import (
	"encoding/binary"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Tx carries Msg without any signatures. Err, if set, is returned instead
// of the message.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal returns the serialized message. Tx has no wire format of its
// own, so Unmarshal always fails.
func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "test transaction cannot be unmarshaled")
}

// Msg is a message routed to RoutePath. Serialized is its raw form. Err
// fails serialization in both directions and ValidErr fails validation.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
	ValidErr   error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.ValidErr
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}

// SequenceID encodes n the way an orm sequence does, so tests can predict
// generated keys.
func SequenceID(n uint64) []byte {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, n)
	return id
}
