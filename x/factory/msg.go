package factory

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

const (
	pathCreateMsg              = "factory/create"
	pathDeployMsg              = "factory/deploy"
	pathUpdateConfigurationMsg = "factory/update_configuration"

	createFactoryCost int64 = 300
	deployEscrowCost  int64 = 500
)

var _ weave.Msg = (*CreateMsg)(nil)
var _ weave.Msg = (*DeployMsg)(nil)
var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path for this message
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.TemplateID.Validate(); err != nil {
		return errors.Field("TemplateID", err, "invalid template")
	}
	return nil
}

// Path returns the routing path for this message
func (DeployMsg) Path() string {
	return pathDeployMsg
}

// Validate makes sure that this is sensible
func (m *DeployMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Factory.Validate(); err != nil {
		return errors.Field("Factory", err, "invalid factory address")
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Field("Beneficiary", err, "invalid address")
	}
	if err := m.Arbiter.Validate(); err != nil {
		return errors.Field("Arbiter", err, "invalid address")
	}
	return nil
}

// Path returns the routing path for this message
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate makes sure that this is sensible
func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	for i, h := range m.Patch.Templates {
		if err := h.Validate(); err != nil {
			return errors.Field("Patch", err, "template %d", i)
		}
	}
	return nil
}
