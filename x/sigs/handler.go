package sigs

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/x"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
)

var _ weave.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}

func (m *BumpSequenceMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Increment < 1 || m.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrInvalidMsg, "increment must be between 1 and %d", maxSequenceIncrement)
	}
	return nil
}

// RegisterRoutes registers the sequence bump handler.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequenceMsg, bumpSequenceHandler{auth: auth, bucket: NewBucket()})
}

// bumpSequenceHandler invalidates signatures created for sequences the
// signer wants to revoke.
type bumpSequenceHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h bumpSequenceHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver adds Increment-1 to the sequence, as verifying the signature of
// this transaction already added one.
func (h bumpSequenceHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	obj, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.Increment > 1 {
		AsUser(obj).Sequence += int64(msg.Increment) - 1
		if err := h.bucket.Save(db, obj); err != nil {
			return nil, errors.Wrap(err, "save user")
		}
	}
	return &weave.DeliverResult{}, nil
}

func (h bumpSequenceHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (orm.Object, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	obj, err := h.bucket.Get(db, signer)
	if err != nil {
		return nil, nil, errors.Wrap(err, "bucket")
	}
	if obj == nil {
		return nil, nil, errors.Wrap(errors.ErrNotFound, "no sequence")
	}
	user := AsUser(obj)
	if next := user.Sequence + int64(msg.Increment); next > maxSequenceValue {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return obj, &msg, nil
}
