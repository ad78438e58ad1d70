package sigs

import (
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	const chainID = "escrow-sign-bytes"
	payload := []byte("release escrow")

	digest, err := BuildSignBytes(payload, chainID, 17)
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	fromTx, err := BuildSignBytesTx(NewStdTx(payload), chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, digest, fromTx)

	// Any change of the input changes the digest.
	variants := []struct {
		payload []byte
		chainID string
		seq     int64
	}{
		{[]byte("refund escrow"), chainID, 17},
		{payload, chainID + "2", 17},
		{payload, chainID, 18},
	}
	for _, v := range variants {
		other, err := BuildSignBytes(v.payload, v.chainID, v.seq)
		require.NoError(t, err)
		assert.NotEqual(t, digest, other)
	}

	_, err = BuildSignBytes(payload, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(payload, "bad", 1)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	const chainID = "escrow-verify"
	db := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	tx := NewStdTx([]byte("deposit 100"))
	payload, err := tx.GetSignBytes()
	require.NoError(t, err)

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(priv, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	// Signing is deterministic.
	assert.Equal(t, sign(2), sign(2))

	_, err = VerifySignature(db, new(StdSignature), payload, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// Sequences start at zero and cannot be skipped or replayed.
	_, err = VerifySignature(db, sign(1), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	for seq := int64(0); seq < 2; seq++ {
		cond, err := VerifySignature(db, sign(seq), payload, chainID)
		require.NoError(t, err)
		assert.Equal(t, priv.PublicKey().Condition(), cond)
	}
	_, err = VerifySignature(db, sign(1), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(db, sign(13), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// A signature is bound to the chain and the payload.
	_, err = VerifySignature(db, sign(2), payload, "other-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = VerifySignature(db, sign(2), []byte("deposit 1000"), chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	broken := sign(2)
	copy(broken.Signature.Ed25519, []byte{42, 17, 99})
	_, err = VerifySignature(db, broken, payload, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	nonce, err := NextNonce(db, priv.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), nonce)
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "escrow-multisig"
	db := store.MemStore()
	depositor := crypto.GenPrivKeyEd25519()
	arbiter := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("release"))
	other := NewStdTx([]byte("refund"))
	sign := func(key *crypto.PrivateKey, tx SignedTx, seq int64) *StdSignature {
		sig, err := SignTx(key, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	signers, err := VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)

	tx.Signatures = []*StdSignature{sign(depositor, other, 0)}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	tx.Signatures = []*StdSignature{sign(depositor, tx, 0)}
	signers, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []weave.Condition{depositor.PublicKey().Condition()}, signers)

	// One replayed signature fails the whole transaction.
	tx.Signatures = []*StdSignature{sign(depositor, tx, 0), sign(arbiter, tx, 0)}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	tx.Signatures = []*StdSignature{sign(depositor, tx, 1), sign(arbiter, tx, 0)}
	signers, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []weave.Condition{
		depositor.PublicKey().Condition(),
		arbiter.PublicKey().Condition(),
	}, signers)
}
