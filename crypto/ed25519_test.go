package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weavetest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	bz, err := sig.Marshal()
	assert.Nil(t, err)
	bz2, err := sig2.Marshal()
	assert.Nil(t, err)

	if bytes.Equal(bz, bz2) {
		t.Fatal("marshaling different signatures produce the same binary representation")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}

	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg2, sig) {
		t.Fatal("verified message signature of the wrong message")
	}

	if public.Verify(msg, &Signature{}) {
		t.Fatal("verified an empty signature of a message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}

	var loaded Signature
	assert.Nil(t, loaded.Unmarshal(bz))
	if !public.Verify(msg, &loaded) {
		t.Fatal("cannot verify a deserialized signature")
	}
}

func TestDeterministicKeys(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), b.PublicKey())

	cond := a.PublicKey().Condition()
	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, a.PublicKey().Ed25519, data)
	assert.Equal(t, cond.Address(), a.PublicKey().Address())

	other := GenPrivKeyEd25519()
	if a.PublicKey().Address().Equals(other.PublicKey().Address()) {
		t.Fatal("different keys must own different addresses")
	}
}

func TestEmptyPrivateKeySign(t *testing.T) {
	var pk PrivateKey
	_, err := pk.Sign([]byte("foo"))
	assert.IsErr(t, errors.ErrInvalidInput, err)
	assert.Nil(t, pk.PublicKey())
}

func TestPublicKeySerialization(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	bz, err := pub.Marshal()
	assert.Nil(t, err)
	var got PublicKey
	assert.Nil(t, got.Unmarshal(bz))
	assert.Equal(t, pub.Ed25519, got.Ed25519)
}
