package cash

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
)

// GenesisAccount is an entry of the "cash" genesis section.
type GenesisAccount struct {
	Address weave.Address `json:"address"`
	Balance coin.Amount   `json:"balance"`
}

// Initializer funds the genesis accounts.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis rejects an address listed twice.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, a := range accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		switch exists, err := bucket.Has(db, a.Address); {
		case err != nil:
			return errors.Wrap(err, "bucket")
		case exists:
			return errors.Wrapf(errors.ErrDuplicate, "account %s", a.Address)
		}
		if err := bucket.Save(db, NewWallet(a.Address, a.Balance)); err != nil {
			return errors.Wrapf(err, "account %s", a.Address)
		}
	}
	return nil
}
