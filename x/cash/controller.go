package cash

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
)

// CoinMover is the value-transfer primitive. It moves the amount from the
// source account to the destination and reports any failure as an error.
// Nothing is written when an error is returned.
type CoinMover interface {
	MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Amount) error
}

// Controller is the functionality needed by cash.Handler and the
// extensions that hold custodial balances.
type Controller interface {
	CoinMover
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Amount, error)
	IssueCoins(db weave.KVStore, dest weave.Address, amount coin.Amount) error
}

// BaseController is a simple implementation of Controller
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by the given account. An account that
// was never used holds nothing.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Amount, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load wallet")
	}
	if w == nil {
		return 0, nil
	}
	return w.Balance(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrInvalidAmount, "zero value")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot load sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", src)
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}

	// Load the recipient after the sender is saved, so that moving coins
	// to the same account does not create value.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load recipient")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db weave.KVStore, dest weave.Address, amount coin.Amount) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot load recipient")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}
