package weavetest

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
)

// NewKey generates an ed25519 key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new key. Use it when
// a test needs a participant but never signs anything.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}
