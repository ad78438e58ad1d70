package escrow

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/cash"
)

// TagKey is the result tag holding the address of the escrow a
// transaction operated on.
const TagKey = "escrow"

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, mover cash.CoinMover) {
	bucket := NewBucket()
	ctrl := NewController(bucket, mover)
	r.Handle(pathCreateMsg, CreateEscrowHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle(pathDepositMsg, DepositEscrowHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathReleaseMsg, SettleEscrowHandler{auth: auth, ctrl: ctrl, refund: false})
	r.Handle(pathRefundMsg, SettleEscrowHandler{auth: auth, ctrl: ctrl, refund: true})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// CreateEscrowHandler creates an empty escrow owned by the signer.
type CreateEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
	ctrl   Controller
}

var _ weave.Handler = CreateEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver stores a new escrow under an address derived from the next
// value of the bucket sequence.
func (h CreateEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, depositor, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	seq := h.bucket.Sequence(orm.SeqID)
	seed, err := seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	e, err := h.ctrl.Create(db, depositor, msg.Beneficiary, msg.Arbiter, InstanceAddress(seed))
	if err != nil {
		return nil, err
	}

	res := &weave.DeliverResult{Data: e.Address}
	res.AddTag([]byte(TagKey), []byte(e.Address.String()))
	return res, nil
}

func (h CreateEscrowHandler) validate(ctx weave.Context, tx weave.Tx) (*CreateMsg, weave.Address, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// DepositEscrowHandler adds value to an existing escrow.
type DepositEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = DepositEscrowHandler{}

// Check verifies the message, that the escrow exists and that the
// depositor signed.
func (h DepositEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: depositEscrowCost}, nil
}

// Deliver moves the attached amount from the depositor to the escrow.
func (h DepositEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, e, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	caller := x.ActingAs(ctx, h.auth, e.Depositor)
	if err := h.ctrl.Deposit(db, e, caller, msg.Amount); err != nil {
		return nil, err
	}
	res := &weave.DeliverResult{}
	res.AddTag([]byte(TagKey), []byte(e.Address.String()))
	return res, nil
}

func (h DepositEscrowHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*DepositMsg, *Escrow, error) {
	var msg DepositMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	e, err := h.ctrl.Load(db, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, e.Depositor) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "depositor signature required")
	}
	return &msg, e, nil
}

// SettleEscrowHandler releases or refunds an escrow, depending on the
// route it is registered for.
type SettleEscrowHandler struct {
	auth   x.Authenticator
	ctrl   Controller
	refund bool
}

var _ weave.Handler = SettleEscrowHandler{}

// Check verifies the message, that the escrow exists and that the arbiter
// signed.
func (h SettleEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: settleEscrowCost}, nil
}

// Deliver pays out the escrow if the arbiter signed the transaction.
func (h SettleEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	e, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	caller := x.ActingAs(ctx, h.auth, e.Arbiter)
	if h.refund {
		err = h.ctrl.Refund(db, e, caller)
	} else {
		err = h.ctrl.Release(db, e, caller)
	}
	if err != nil {
		return nil, err
	}
	res := &weave.DeliverResult{}
	res.AddTag([]byte(TagKey), []byte(e.Address.String()))
	return res, nil
}

func (h SettleEscrowHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*Escrow, error) {
	var addr weave.Address
	if h.refund {
		var msg RefundMsg
		if err := weave.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		addr = msg.Escrow
	} else {
		var msg ReleaseMsg
		if err := weave.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		addr = msg.Escrow
	}
	e, err := h.ctrl.Load(db, addr)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, e.Arbiter) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "arbiter signature required")
	}
	return e, nil
}
