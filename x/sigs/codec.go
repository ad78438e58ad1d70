package sigs

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// UserData is the state kept for every public key that ever signed a
// transaction.
type UserData struct {
	Metadata *weave.Metadata   `json:"metadata"`
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

func (u *UserData) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(u)
}

func (u *UserData) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, u)
}

// StdSignature is a signature of a single key over the transaction sign
// bytes, together with the sequence it was created for.
type StdSignature struct {
	Sequence  int64             `json:"sequence"`
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *StdSignature) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, s)
}

// BumpSequenceMsg increments the sequence of the main signer by the given
// value. This invalidates all signatures created for the skipped values.
type BumpSequenceMsg struct {
	Metadata  *weave.Metadata `json:"metadata"`
	Increment uint32          `json:"increment"`
}

func (m *BumpSequenceMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *BumpSequenceMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
