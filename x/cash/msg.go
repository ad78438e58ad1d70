package cash

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Ensure we implement the Msg interface
var _ weave.Msg = (*SendMsg)(nil)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Amount.IsZero() {
		return errors.Field("Amount", errors.ErrInvalidAmount, "must be positive")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Field("Source", err, "invalid address")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Field("Destination", err, "invalid address")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Field("Memo", errors.ErrInvalidInput, "memo too long")
	}
	return nil
}
