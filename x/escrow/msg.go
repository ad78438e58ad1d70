package escrow

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

const (
	pathCreateMsg  = "escrow/create"
	pathDepositMsg = "escrow/deposit"
	pathReleaseMsg = "escrow/release"
	pathRefundMsg  = "escrow/refund"

	createEscrowCost  int64 = 300
	depositEscrowCost int64 = 100
	settleEscrowCost  int64 = 200
)

var _ weave.Msg = (*CreateMsg)(nil)
var _ weave.Msg = (*DepositMsg)(nil)
var _ weave.Msg = (*ReleaseMsg)(nil)
var _ weave.Msg = (*RefundMsg)(nil)

// Path returns the routing path for this message
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible. The principals are not
// validated against each other and may be equal.
func (m *CreateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Field("Beneficiary", err, "invalid address")
	}
	if err := m.Arbiter.Validate(); err != nil {
		return errors.Field("Arbiter", err, "invalid address")
	}
	return nil
}

// Path returns the routing path for this message
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate makes sure that this is sensible. A zero amount is rejected by
// the controller so that the authorization check comes first.
func (m *DepositMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Escrow.Validate(); err != nil {
		return errors.Field("Escrow", err, "invalid escrow address")
	}
	return nil
}

// Path returns the routing path for this message
func (ReleaseMsg) Path() string {
	return pathReleaseMsg
}

// Validate makes sure that this is sensible
func (m *ReleaseMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Escrow.Validate(); err != nil {
		return errors.Field("Escrow", err, "invalid escrow address")
	}
	return nil
}

// Path returns the routing path for this message
func (RefundMsg) Path() string {
	return pathRefundMsg
}

// Validate makes sure that this is sensible
func (m *RefundMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Escrow.Validate(); err != nil {
		return errors.Field("Escrow", err, "invalid escrow address")
	}
	return nil
}
