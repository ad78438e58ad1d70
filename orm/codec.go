package orm

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// MultiRef contains a list of references to pks
type MultiRef struct {
	Refs [][]byte `json:"refs"`
}

// Marshal serializes the reference set
func (m *MultiRef) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal loads the reference set
func (m *MultiRef) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
