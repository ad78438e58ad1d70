package factory

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/x/template"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Factory is the persisted state of a single factory.
type Factory struct {
	Metadata *weave.Metadata `json:"metadata"`
	// Address is the factory identity and the account funding endowments.
	Address    weave.Address `json:"address"`
	TemplateID template.Hash `json:"template_id"`
	Owner      weave.Address `json:"owner"`
	// Count is the number of deployments made so far.
	Count uint64 `json:"count"`
}

func (f *Factory) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(f)
}

func (f *Factory) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, f)
}

// Deployment is a single entry of the deployed sequence of a factory.
type Deployment struct {
	Metadata *weave.Metadata `json:"metadata"`
	Escrow   weave.Address   `json:"escrow"`
	Creator  weave.Address   `json:"creator"`
	Height   int64           `json:"height"`
}

func (d *Deployment) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(d)
}

func (d *Deployment) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, d)
}

// Configuration is the "factory" package configuration.
type Configuration struct {
	Metadata *weave.Metadata `json:"metadata"`
	// Owner can update the configuration.
	Owner weave.Address `json:"owner"`
	// Templates lists the template hashes factories can be created for.
	Templates []template.Hash `json:"templates"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

// CreateMsg creates a new factory for the template. The signer becomes the
// owner.
type CreateMsg struct {
	Metadata   *weave.Metadata `json:"metadata"`
	TemplateID template.Hash   `json:"template_id"`
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// DeployMsg deploys a new escrow through the factory. The signer becomes
// the depositor of the new escrow.
type DeployMsg struct {
	Metadata    *weave.Metadata `json:"metadata"`
	Factory     weave.Address   `json:"factory"`
	Beneficiary weave.Address   `json:"beneficiary"`
	Arbiter     weave.Address   `json:"arbiter"`
	// Endowment is moved from the factory account into the new escrow.
	Endowment coin.Amount `json:"endowment"`
	// Attached is moved from the signer to the factory account before
	// instantiation.
	Attached coin.Amount `json:"attached"`
}

func (m *DeployMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DeployMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

// UpdateConfigurationMsg patches the factory configuration.
type UpdateConfigurationMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	Patch    *Configuration  `json:"patch"`
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}
