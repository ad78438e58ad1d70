package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
)

// SignedTx is a transaction that carries signatures over its sign bytes.
type SignedTx interface {
	// GetSignBytes returns the canonical encoding of the transaction
	// without signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

func (s *StdSignature) Validate() error {
	switch {
	case s.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.Signature == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// SignCodeV1 prefixes the signed payload and versions its format.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// BuildSignBytes returns the sha512 digest of
//
//   SignCodeV1 | len(chainID) uint8 | chainID | seq int64 big endian | signBytes
//
// Binding the chain and the sequence prevents replaying a signature on
// another chain or twice on the same one.
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !weave.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}
	payload := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(signBytes))
	payload = append(payload, SignCodeV1...)
	payload = append(payload, byte(len(chainID)))
	payload = append(payload, chainID...)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	payload = append(payload, nonce[:]...)
	payload = append(payload, signBytes...)
	digest := sha512.Sum512(payload)
	return digest[:], nil
}

// BuildSignBytesTx is BuildSignBytes over the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(raw, chainID, seq)
}

// SignTx signs tx for the given chain and sequence. Use NextNonce to find
// the sequence of the signer.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// VerifyTxSignatures verifies all signatures of tx and returns the signer
// conditions in signing order. Any invalid signature fails the whole
// transaction.
func VerifyTxSignatures(db weave.KVStore, tx SignedTx, chainID string) ([]weave.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]weave.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, raw, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature verifies a single signature and increments the sequence
// of the signing account.
func VerifySignature(db weave.KVStore, sig *StdSignature, signBytes []byte, chainID string) (weave.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	bucket := NewBucket()
	obj, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	user := AsUser(obj)
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}
