package weave

import (
	"reflect"

	"github.com/iov-one/escrowd/errors"
)

// Marshaller may validate before serializing, so Marshal can fail.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is implemented by every model and message. Unmarshal
// usually requires a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request to change the state, for example to create or release
// an escrow. Authorization data travels in the enclosing Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It matches
	// [0-9A-Za-z_\-/]+, for example "escrow/release".
	Path() string

	// Validate checks the message in isolation, without access to the
	// state. It runs before the message is handled.
	Validate() error
}

// Tx is a single message together with whatever the decorators need to
// authorize it, usually signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses a raw transaction.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns "(missing)" if tx holds no readable message.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dst, a pointer to the concrete
// message type, after validating it:
//
//	var msg ReleaseMsg
//	if err := weave.LoadMsg(tx, &msg); err != nil {
//		return err
//	}
func LoadMsg(tx Tx, dst interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrInvalidMsg, "transaction without message")
	}

	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination must be a non nil pointer, got %T", dst)
	}
	value := reflect.Indirect(reflect.ValueOf(msg))
	if !value.Type().AssignableTo(target.Elem().Type()) {
		return errors.Wrapf(errors.ErrInvalidType, "want %T message, got %T", dst, msg)
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	target.Elem().Set(value)
	return nil
}
