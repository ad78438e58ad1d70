package factory

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/x/template"
)

const optKey = "factory"

// GenesisFactory is a factory loaded from the genesis file.
type GenesisFactory struct {
	Owner      weave.Address `json:"owner"`
	TemplateID template.Hash `json:"template_id"`
}

// Initializer fulfils the Initializer interface to load the package
// configuration and the initial factories from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the configuration and then creates all factories in
// order, so that their addresses are the same as if they were created by
// transactions.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	switch err := gconf.InitConfig(db, opts, confPkg, &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "configuration")
	}

	var factories []GenesisFactory
	if err := opts.ReadOptions(optKey, &factories); err != nil {
		return err
	}
	ctrl := NewController(nil, nil, nil)
	for i, g := range factories {
		if _, err := ctrl.Create(db, g.Owner, g.TemplateID); err != nil {
			return errors.Wrapf(err, "factory %d", i)
		}
	}
	return nil
}
