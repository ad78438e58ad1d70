package factory

import (
	"crypto/sha256"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/x/cash"
	"github.com/iov-one/escrowd/x/template"
	"github.com/iov-one/escrowd/x/utils"
)

const confPkg = "factory"

// Controller creates factories and deploys escrows through them.
type Controller struct {
	factories   Bucket
	deployments DeploymentBucket
	templates   *template.Registry
	mover       cash.CoinMover
	entropy     EntropySource
}

// NewController returns a controller instantiating templates from the
// registry and salting deployments with the entropy source.
func NewController(templates *template.Registry, mover cash.CoinMover, entropy EntropySource) Controller {
	return Controller{
		factories:   NewBucket(),
		deployments: NewDeploymentBucket(),
		templates:   templates,
		mover:       mover,
		entropy:     entropy,
	}
}

// LoadConfiguration returns the factory package configuration.
func LoadConfiguration(db weave.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Load returns the factory stored under given address.
func (c Controller) Load(db weave.ReadOnlyKVStore, addr weave.Address) (*Factory, error) {
	f, err := c.factories.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load factory")
	}
	if f == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "factory %s", addr)
	}
	return f, nil
}

// Create stores a new factory for the template with an empty deployed
// sequence. The template must be allowed by the configuration.
func (c Controller) Create(db weave.KVStore, owner weave.Address, tid template.Hash) (*Factory, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if err := tid.Validate(); err != nil {
		return nil, errors.Wrap(err, "template")
	}
	conf, err := LoadConfiguration(db)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrInvalidInput, "no templates are allowed")
	case err != nil:
		return nil, errors.Wrap(err, "configuration")
	case !conf.Allows(tid):
		return nil, errors.Wrapf(errors.ErrInvalidInput, "template %s is not allowed", tid)
	}

	seq := c.factories.Sequence(orm.SeqID)
	id, err := seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	f := &Factory{
		Metadata:   &weave.Metadata{Schema: 1},
		Address:    FactoryCondition(id).Address(),
		TemplateID: tid,
		Owner:      owner,
	}
	if err := c.factories.Save(db, f); err != nil {
		return nil, errors.Wrap(err, "cannot save factory")
	}
	return f, nil
}

// DeployRequest holds the caller supplied deployment arguments.
type DeployRequest struct {
	Beneficiary weave.Address
	Arbiter     weave.Address
	Endowment   coin.Amount
	Attached    coin.Amount
}

// Deploy instantiates a new escrow from the factory template and appends
// it to the deployed sequence. The caller becomes the escrow depositor.
// Either everything succeeds or nothing is written and f is unchanged.
func (c Controller) Deploy(ctx weave.Context, db weave.KVStore, f *Factory, caller weave.Address, req DeployRequest) (weave.Address, error) {
	if err := caller.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller required")
	}
	salt, err := c.entropy.Entropy(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "entropy")
	}
	height, _ := weave.GetHeight(ctx)

	next := f.Copy().(*Factory)
	next.Count++
	var addr weave.Address
	err = utils.RunAtomic(db, func(db weave.KVStore) error {
		if !req.Attached.IsZero() {
			if err := c.mover.MoveCoins(db, caller, f.Address, req.Attached); err != nil {
				return errors.Wrap(err, "attached value")
			}
		}

		var err error
		addr, err = c.templates.Instantiate(ctx, db, f.TemplateID, template.Request{
			Creator:     caller,
			Funder:      f.Address,
			Seed:        deploySeed(f, caller, salt, req),
			Endowment:   req.Endowment,
			Beneficiary: req.Beneficiary,
			Arbiter:     req.Arbiter,
		})
		if err != nil {
			return errors.Wrapf(ErrInstantiationFailed, "template %s: %s", f.TemplateID, err)
		}

		d := &Deployment{
			Metadata: &weave.Metadata{Schema: 1},
			Escrow:   addr,
			Creator:  caller,
			Height:   height,
		}
		if err := c.deployments.Append(db, f.Address, f.Count, d); err != nil {
			return errors.Wrap(err, "cannot append deployment")
		}
		return c.factories.Save(db, next)
	})
	if err != nil {
		return nil, err
	}
	*f = *next
	return addr, nil
}

// deploySeed hashes all deployment arguments together with the caller and
// the salt. Different depositors never collide on the same instance.
func deploySeed(f *Factory, caller weave.Address, salt []byte, req DeployRequest) []byte {
	h := sha256.New()
	h.Write(f.Address)
	h.Write(f.TemplateID)
	h.Write(caller)
	h.Write(salt)
	h.Write(req.Beneficiary)
	h.Write(req.Arbiter)
	return h.Sum(nil)
}

// Deployments returns a copy of the deployed sequence of the factory in
// deployment order.
func (c Controller) Deployments(db weave.ReadOnlyKVStore, f *Factory) ([]*Deployment, error) {
	res := make([]*Deployment, 0, f.Count)
	for i := uint64(0); i < f.Count; i++ {
		d, err := c.deployments.Get(db, f.Address, i)
		if err != nil {
			return nil, errors.Wrapf(err, "deployment %d", i)
		}
		if d == nil {
			return nil, errors.Wrapf(errors.ErrInvalidState, "deployment %d of %s missing", i, f.Address)
		}
		res = append(res, d)
	}
	return res, nil
}

// Escrows returns the addresses of all escrows deployed by the factory, in
// deployment order.
func (c Controller) Escrows(db weave.ReadOnlyKVStore, f *Factory) ([]weave.Address, error) {
	deployments, err := c.Deployments(db, f)
	if err != nil {
		return nil, err
	}
	res := make([]weave.Address, len(deployments))
	for i, d := range deployments {
		res[i] = d.Escrow
	}
	return res, nil
}
