package factory

import (
	"encoding/binary"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/x/template"
)

const (
	// BucketName is where we store the factories
	BucketName = "fact"
	// DeploymentBucketName is where we store the deployed sequences
	DeploymentBucketName = "factdep"

	// OwnerIndex lists factories by owner, queried as /factories/owner
	OwnerIndex = "owner"
)

// Validate ensures the factory is consistent.
func (f *Factory) Validate() error {
	if err := f.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := f.Address.Validate(); err != nil {
		return errors.Field("Address", err, "invalid factory address")
	}
	if err := f.TemplateID.Validate(); err != nil {
		return errors.Field("TemplateID", err, "invalid template")
	}
	if err := f.Owner.Validate(); err != nil {
		return errors.Field("Owner", err, "invalid address")
	}
	return nil
}

// Copy makes a new factory with the same data.
func (f *Factory) Copy() orm.CloneableData {
	return &Factory{
		Metadata:   f.Metadata.Copy(),
		Address:    append(weave.Address(nil), f.Address...),
		TemplateID: append(template.Hash(nil), f.TemplateID...),
		Owner:      append(weave.Address(nil), f.Owner...),
		Count:      f.Count,
	}
}

// Validate ensures the deployment is consistent.
func (d *Deployment) Validate() error {
	if err := d.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := d.Escrow.Validate(); err != nil {
		return errors.Field("Escrow", err, "invalid address")
	}
	if err := d.Creator.Validate(); err != nil {
		return errors.Field("Creator", err, "invalid address")
	}
	if d.Height < 0 {
		return errors.Field("Height", errors.ErrInvalidInput, "negative height")
	}
	return nil
}

// Copy makes a new deployment with the same data.
func (d *Deployment) Copy() orm.CloneableData {
	return &Deployment{
		Metadata: d.Metadata.Copy(),
		Escrow:   append(weave.Address(nil), d.Escrow...),
		Creator:  append(weave.Address(nil), d.Creator...),
		Height:   d.Height,
	}
}

// Validate requires an owner and well formed template hashes.
func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Field("Owner", err, "invalid address")
	}
	for i, h := range c.Templates {
		if err := h.Validate(); err != nil {
			return errors.Field("Templates", err, "template %d", i)
		}
	}
	return nil
}

// GetOwner returns the address that can update the configuration.
func (c *Configuration) GetOwner() weave.Address {
	return c.Owner
}

// Allows returns true if factories can be created for given template.
func (c *Configuration) Allows(h template.Hash) bool {
	for _, allowed := range c.Templates {
		if allowed.Equals(h) {
			return true
		}
	}
	return false
}

// FactoryCondition returns the condition controlling the account of the
// factory with given sequence id.
func FactoryCondition(id []byte) weave.Condition {
	return weave.NewCondition("factory", "seq", id)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a factory bucket with the owner index.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Factory))).
		WithIndex(OwnerIndex, ownerIndex, false)
	return Bucket{Bucket: b}
}

// Get returns the factory stored under given address or nil.
func (b Bucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Factory, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	f, ok := obj.Value().(*Factory)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return f, nil
}

// Save stores the factory under its address.
func (b Bucket) Save(db weave.KVStore, f *Factory) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(f.Address, f))
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	f, ok := obj.Value().(*Factory)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "can only take index of Factory, got %T", obj.Value())
	}
	return f.Owner, nil
}

// DeploymentBucket stores the deployed sequence of every factory. Entries
// of a factory share the factory address as key prefix and are ordered by
// their big endian index.
type DeploymentBucket struct {
	orm.Bucket
}

// NewDeploymentBucket initializes a deployment bucket.
func NewDeploymentBucket() DeploymentBucket {
	return DeploymentBucket{
		Bucket: orm.NewBucket(DeploymentBucketName, orm.NewSimpleObj(nil, new(Deployment))),
	}
}

// DeploymentKey returns the key of the deployment with given index.
func DeploymentKey(factory weave.Address, index uint64) []byte {
	key := make([]byte, len(factory)+8)
	copy(key, factory)
	binary.BigEndian.PutUint64(key[len(factory):], index)
	return key
}

// Get returns the deployment with given index or nil.
func (b DeploymentBucket) Get(db weave.ReadOnlyKVStore, factory weave.Address, index uint64) (*Deployment, error) {
	obj, err := b.Bucket.Get(db, DeploymentKey(factory, index))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	d, ok := obj.Value().(*Deployment)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return d, nil
}

// Append stores the deployment at given index. Existing entries are never
// overwritten.
func (b DeploymentBucket) Append(db weave.KVStore, factory weave.Address, index uint64, d *Deployment) error {
	key := DeploymentKey(factory, index)
	has, err := b.Bucket.Has(db, key)
	if err != nil {
		return errors.Wrap(err, "bucket")
	}
	if has {
		return errors.Wrapf(errors.ErrDuplicate, "deployment %d of %s", index, factory)
	}
	return b.Bucket.Save(db, orm.NewSimpleObj(key, d))
}
