package escrow

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/cash"
)

const optKey = "escrow"

// GenesisEscrow is an escrow loaded from the genesis file. The address is
// derived from the seed the same way as for any other instance.
type GenesisEscrow struct {
	Seed        string        `json:"seed"`
	Depositor   weave.Address `json:"depositor"`
	Beneficiary weave.Address `json:"beneficiary"`
	Arbiter     weave.Address `json:"arbiter"`
	Deposited   coin.Amount   `json:"deposited"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file. Deposited value is issued directly into the escrow account.
type Initializer struct {
	Issuer cash.Controller
}

var _ weave.Initializer = Initializer{}

// FromGenesis will parse initial escrow info from genesis and save it in
// the database.
func (i Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var escrows []GenesisEscrow
	if err := opts.ReadOptions(optKey, &escrows); err != nil {
		return err
	}
	ctrl := NewController(NewBucket(), i.Issuer)
	for j, g := range escrows {
		if g.Seed == "" {
			return errors.Wrapf(errors.ErrEmpty, "escrow %d: seed", j)
		}
		e, err := ctrl.Create(db, g.Depositor, g.Beneficiary, g.Arbiter, InstanceAddress([]byte(g.Seed)))
		if err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		if g.Deposited.IsZero() {
			continue
		}
		e.Deposited = g.Deposited
		if err := ctrl.bucket.Save(db, e); err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		if err := i.Issuer.IssueCoins(db, e.Address, g.Deposited); err != nil {
			return errors.Wrapf(err, "escrow %d: cannot issue coins", j)
		}
	}
	return nil
}
