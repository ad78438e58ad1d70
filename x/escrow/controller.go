package escrow

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/cash"
	"github.com/iov-one/escrowd/x/utils"
)

// Controller is the escrow state machine. All preconditions are checked
// before anything is written, and every state change together with the
// value transfer it implies is applied atomically.
type Controller struct {
	bucket Bucket
	mover  cash.CoinMover
}

// NewController returns a controller storing escrows in given bucket and
// moving value with given mover.
func NewController(bucket Bucket, mover cash.CoinMover) Controller {
	return Controller{bucket: bucket, mover: mover}
}

// Load returns the escrow stored under given address.
func (c Controller) Load(db weave.ReadOnlyKVStore, addr weave.Address) (*Escrow, error) {
	e, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load escrow")
	}
	if e == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)
	}
	return e, nil
}

// Create stores a new, empty escrow under the instance address. The
// depositor is the creating caller.
func (c Controller) Create(db weave.KVStore, depositor, beneficiary, arbiter, instance weave.Address) (*Escrow, error) {
	e := &Escrow{
		Metadata:    &weave.Metadata{Schema: 1},
		Address:     instance,
		Depositor:   depositor,
		Beneficiary: beneficiary,
		Arbiter:     arbiter,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	has, err := c.bucket.Has(db, instance)
	if err != nil {
		return nil, errors.Wrap(err, "bucket")
	}
	if has {
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s", instance)
	}
	if err := c.bucket.Save(db, e); err != nil {
		return nil, errors.Wrap(err, "cannot save escrow")
	}
	return e, nil
}

// Deposit moves amount from the depositor into the escrow account and
// records it. On success e is updated in place.
func (c Controller) Deposit(db weave.KVStore, e *Escrow, caller weave.Address, amount coin.Amount) error {
	if !caller.Equals(e.Depositor) {
		return errors.Wrap(errors.ErrUnauthorized, "only the depositor can deposit")
	}
	if amount.IsZero() {
		return errors.Wrap(errors.ErrInvalidAmount, "deposit must be positive")
	}
	if e.Released {
		return errors.Wrapf(ErrAlreadyReleased, "escrow %s", e.Address)
	}
	total, err := e.Deposited.Add(amount)
	if err != nil {
		return errors.Wrap(err, "deposited")
	}

	next := e.Copy().(*Escrow)
	next.Deposited = total
	err = utils.RunAtomic(db, func(db weave.KVStore) error {
		if err := c.mover.MoveCoins(db, caller, e.Address, amount); err != nil {
			return err
		}
		return c.bucket.Save(db, next)
	})
	if err != nil {
		return err
	}
	*e = *next
	return nil
}

// Endow moves amount from funder into the escrow account. The endowment is
// not deposited value, but it leaves the account together with it when the
// escrow settles.
func (c Controller) Endow(db weave.KVStore, e *Escrow, funder weave.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrInvalidAmount, "endowment must be positive")
	}
	if e.Released {
		return errors.Wrapf(ErrAlreadyReleased, "escrow %s", e.Address)
	}
	total, err := e.Endowment.Add(amount)
	if err != nil {
		return errors.Wrap(err, "endowment")
	}

	next := e.Copy().(*Escrow)
	next.Endowment = total
	err = utils.RunAtomic(db, func(db weave.KVStore) error {
		if err := c.mover.MoveCoins(db, funder, e.Address, amount); err != nil {
			return err
		}
		return c.bucket.Save(db, next)
	})
	if err != nil {
		return err
	}
	*e = *next
	return nil
}

// Release empties the escrow account to the beneficiary. Only the arbiter
// can release and an escrow settles at most once.
func (c Controller) Release(db weave.KVStore, e *Escrow, caller weave.Address) error {
	return c.settle(db, e, caller, e.Beneficiary)
}

// Refund empties the escrow account back to the depositor. Only the
// arbiter can refund and an escrow settles at most once.
func (c Controller) Refund(db weave.KVStore, e *Escrow, caller weave.Address) error {
	return c.settle(db, e, caller, e.Depositor)
}

func (c Controller) settle(db weave.KVStore, e *Escrow, caller, dest weave.Address) error {
	if !caller.Equals(e.Arbiter) {
		return errors.Wrap(errors.ErrUnauthorized, "only the arbiter can settle")
	}
	if e.Released {
		return errors.Wrapf(ErrAlreadyReleased, "escrow %s", e.Address)
	}
	payout, err := e.Deposited.Add(e.Endowment)
	if err != nil {
		return errors.Wrap(err, "payout")
	}

	next := e.Copy().(*Escrow)
	next.Released = true
	err = utils.RunAtomic(db, func(db weave.KVStore) error {
		if err := c.bucket.Save(db, next); err != nil {
			return errors.Wrap(err, "cannot save escrow")
		}
		if payout.IsZero() {
			return nil
		}
		if err := c.mover.MoveCoins(db, e.Address, dest, payout); err != nil {
			return errors.Wrapf(ErrTransferFailed, "pay %s to %s: %s", payout, dest, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*e = *next
	return nil
}
