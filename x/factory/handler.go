package factory

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/cash"
	"github.com/iov-one/escrowd/x/template"
)

// Result tags of a successful deployment.
const (
	FactoryTagKey = "factory"
	EscrowTagKey  = "escrow"
	CreatorTagKey = "creator"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, templates *template.Registry, mover cash.CoinMover, entropy EntropySource) {
	ctrl := NewController(templates, mover, entropy)
	r.Handle(pathCreateMsg, CreateFactoryHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathDeployMsg, DeployEscrowHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(confPkg, &Configuration{}, auth, nil))
}

// RegisterQuery registers the factories as "/factories" and their deployed
// sequences as "/factories/escrows".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("factories", qr)
	NewDeploymentBucket().Register("factories/escrows", qr)
}

// CreateFactoryHandler creates a factory owned by the signer.
type CreateFactoryHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = CreateFactoryHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateFactoryHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createFactoryCost}, nil
}

// Deliver stores the new factory and returns its address.
func (h CreateFactoryHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	f, err := h.ctrl.Create(db, owner, msg.TemplateID)
	if err != nil {
		return nil, err
	}
	res := &weave.DeliverResult{Data: f.Address}
	res.AddTag([]byte(FactoryTagKey), []byte(f.Address.String()))
	return res, nil
}

func (h CreateFactoryHandler) validate(ctx weave.Context, tx weave.Tx) (*CreateMsg, weave.Address, error) {
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

// DeployEscrowHandler deploys a new escrow through a factory.
type DeployEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = DeployEscrowHandler{}

// Check verifies the message and that the factory exists.
func (h DeployEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: deployEscrowCost}, nil
}

// Deliver deploys the escrow and emits the deployment event as result
// tags. The result data is the address of the new escrow.
func (h DeployEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, f, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.Deploy(ctx, db, f, caller, DeployRequest{
		Beneficiary: msg.Beneficiary,
		Arbiter:     msg.Arbiter,
		Endowment:   msg.Endowment,
		Attached:    msg.Attached,
	})
	if err != nil {
		return nil, err
	}
	res := &weave.DeliverResult{Data: addr}
	res.AddTag([]byte(EscrowTagKey), []byte(addr.String()))
	res.AddTag([]byte(CreatorTagKey), []byte(caller.String()))
	return res, nil
}

func (h DeployEscrowHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*DeployMsg, *Factory, weave.Address, error) {
	var msg DeployMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	f, err := h.ctrl.Load(db, msg.Factory)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, f, signer, nil
}
