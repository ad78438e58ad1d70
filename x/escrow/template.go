package escrow

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/x/cash"
	"github.com/iov-one/escrowd/x/template"
	"github.com/iov-one/escrowd/x/utils"
)

// TemplateDescriptor identifies the escrow code template. Its content hash
// is the template id used by factories.
const TemplateDescriptor = "escrow/v1"

// TemplateID is the content hash of the escrow code template.
var TemplateID = template.NewHash(TemplateDescriptor)

// RegisterTemplate adds the escrow code template to the registry.
func RegisterTemplate(reg *template.Registry, mover cash.CoinMover) template.Hash {
	return reg.Register(TemplateDescriptor, NewInstantiator(mover))
}

// Instantiator creates escrows on behalf of other extensions.
type Instantiator struct {
	ctrl Controller
}

var _ template.Instantiator = Instantiator{}

// NewInstantiator returns an instantiator storing escrows in the default
// bucket.
func NewInstantiator(mover cash.CoinMover) Instantiator {
	return Instantiator{ctrl: NewController(NewBucket(), mover)}
}

// Instantiate creates an escrow at the address derived from the request
// seed, with the creator as the depositor. The endowment is moved from the
// funder into the new escrow account. It is not part of the deposited value
// but is paid out on settlement.
func (i Instantiator) Instantiate(ctx weave.Context, db weave.KVStore, req template.Request) (weave.Address, error) {
	addr := InstanceAddress(req.Seed)
	err := utils.RunAtomic(db, func(db weave.KVStore) error {
		e, err := i.ctrl.Create(db, req.Creator, req.Beneficiary, req.Arbiter, addr)
		if err != nil {
			return err
		}
		if req.Endowment.IsZero() {
			return nil
		}
		return i.ctrl.Endow(db, e, req.Funder, req.Endowment)
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}
