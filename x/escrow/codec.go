package escrow

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Escrow is the persisted state of a single escrow instance.
type Escrow struct {
	Metadata *weave.Metadata `json:"metadata"`
	// Address is the instance identity and the custodial account.
	Address     weave.Address `json:"address"`
	Depositor   weave.Address `json:"depositor"`
	Beneficiary weave.Address `json:"beneficiary"`
	Arbiter     weave.Address `json:"arbiter"`
	// Deposited is the total value contributed by the depositor.
	Deposited coin.Amount `json:"deposited"`
	// Endowment is the value the escrow was seeded with when instantiated
	// from a template. It is paid out together with Deposited.
	Endowment coin.Amount `json:"endowment"`
	Released  bool        `json:"released"`
}

func (e *Escrow) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(e)
}

func (e *Escrow) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, e)
}

// CreateMsg creates a new escrow. The signer becomes the depositor.
type CreateMsg struct {
	Metadata    *weave.Metadata `json:"metadata"`
	Beneficiary weave.Address   `json:"beneficiary"`
	Arbiter     weave.Address   `json:"arbiter"`
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// DepositMsg moves the amount from the depositor into the escrow.
type DepositMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	Escrow   weave.Address   `json:"escrow"`
	Amount   coin.Amount     `json:"amount"`
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DepositMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// ReleaseMsg pays the deposited value out to the beneficiary.
type ReleaseMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	Escrow   weave.Address   `json:"escrow"`
}

func (m *ReleaseMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ReleaseMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// RefundMsg pays the deposited value back to the depositor.
type RefundMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	Escrow   weave.Address   `json:"escrow"`
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RefundMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
