package sigs

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
)

// BucketName is the store prefix of all signer accounts.
const BucketName = "sigs"

// Clients represent the sequence as a javascript number, so it must not
// exceed Number.MAX_SAFE_INTEGER.
const maxSequenceValue = (1 << 53) - 1

var _ orm.CloneableData = (*UserData)(nil)

func (u *UserData) Validate() error {
	if err := u.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	switch {
	case u.Sequence < 0:
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	case u.Sequence > 0 && u.Pubkey == nil:
		return errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

func (u *UserData) Copy() orm.CloneableData {
	cp := *u
	cp.Metadata = u.Metadata.Copy()
	return &cp
}

// CheckAndIncrementSequence increments the sequence only if it equals
// expected.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence+1 > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// AsUser returns nil if obj is empty.
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// NewUser returns an account for pubkey, stored under its address. A nil
// key is used as the bucket prototype.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	u := &UserData{
		Metadata: &weave.Metadata{Schema: 1},
		Pubkey:   pubkey,
	}
	if pubkey == nil {
		return orm.NewSimpleObj(nil, u)
	}
	return orm.NewSimpleObj(pubkey.Address(), u)
}

// Bucket stores one UserData per signing key.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewUser(nil))}
}

// GetOrCreate returns a new, unsaved account if pubkey never signed.
func (b Bucket) GetOrCreate(db weave.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = NewUser(pubkey)
	}
	return obj, nil
}

// NextNonce returns the sequence the next signature of signer must use.
// Accounts that never signed start at zero.
func NextNonce(db weave.ReadOnlyKVStore, signer weave.Address) (int64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "bucket get")
	}
	if u := AsUser(obj); u != nil {
		return u.Sequence, nil
	}
	return 0, nil
}
