package cash

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Set is the balance of a single account.
type Set struct {
	Metadata *weave.Metadata `json:"metadata"`
	Balance  coin.Amount     `json:"balance"`
}

func (s *Set) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Set) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, s)
}

// SendMsg moves the amount from the source account to the destination.
type SendMsg struct {
	Metadata    *weave.Metadata `json:"metadata"`
	Source      weave.Address   `json:"source"`
	Destination weave.Address   `json:"destination"`
	Amount      coin.Amount     `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SendMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
