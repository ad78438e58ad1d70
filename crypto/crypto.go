/*
Package crypto holds the signing keys of escrow node users. Only ed25519
is supported; a public key maps to the "sigs/ed25519/<key>" condition whose
address identifies the caller.
*/
package crypto

import (
	"github.com/iov-one/escrowd"
	amino "github.com/tendermint/go-amino"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

var cdc = amino.NewCodec()

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() weave.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey is an ed25519 private key
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Signature is an ed25519 signature
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// Marshal serializes the key
func (p *PublicKey) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

// Unmarshal loads the key
func (p *PublicKey) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, p)
}

// Marshal serializes the key
func (p *PrivateKey) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

// Unmarshal loads the key
func (p *PrivateKey) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, p)
}

// Marshal serializes the signature
func (s *Signature) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

// Unmarshal loads the signature
func (s *Signature) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, s)
}

// Address returns the address of the condition this key owns
func (p *PublicKey) Address() weave.Address {
	return p.Condition().Address()
}
