/*
Package sigs verifies transaction signatures and keeps a sequence per
signing key for replay protection.
*/
package sigs

import (
	"context"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x"
)

// signatureVerifyCost is charged per signature during the check.
const signatureVerifyCost = 500

// RegisterQuery exposes signer accounts under "/auth".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies all signatures of a transaction and makes the signers
// available to handlers through Authenticate.
type Decorator struct {
	allowMissingSigs bool
}

var _ weave.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects unsigned transactions.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a decorator that passes unsigned transactions
// down the stack with no signers.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ctx, signers, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(len(signers) * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Context, []weave.Condition, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissingSigs {
			return ctx, nil, nil
		}
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "unsigned transaction %T", tx)
	}
	signers, err := VerifyTxSignatures(db, stx, weave.GetChainID(ctx))
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey, signers), signers, nil
}

type ctxKey int

const signersKey ctxKey = 0

// Authenticate returns the conditions of the keys that signed the current
// transaction. Only the Decorator can set them.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	signers, _ := ctx.Value(signersKey).([]weave.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
