package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/escrowd"
)

// RandomAddr returns a valid, randomly generated address. Use it for
// parties that never sign anything, like an escrow beneficiary.
func RandomAddr(t testing.TB) weave.Address {
	t.Helper()
	raw := make([]byte, weave.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return weave.Address(raw)
}
