package escrow

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
)

const (
	// BucketName is where we store the escrows
	BucketName = "esc"

	// Indexes of the escrow bucket, registered as query paths
	// under /escrows.
	DepositorIndex   = "depositor"
	BeneficiaryIndex = "beneficiary"
	ArbiterIndex     = "arbiter"
)

// Validate ensures all principals are set and the state is consistent.
func (e *Escrow) Validate() error {
	if err := e.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := e.Address.Validate(); err != nil {
		return errors.Field("Address", err, "invalid escrow address")
	}
	if err := e.Depositor.Validate(); err != nil {
		return errors.Field("Depositor", err, "invalid address")
	}
	if err := e.Beneficiary.Validate(); err != nil {
		return errors.Field("Beneficiary", err, "invalid address")
	}
	if err := e.Arbiter.Validate(); err != nil {
		return errors.Field("Arbiter", err, "invalid address")
	}
	return nil
}

// Copy makes a new escrow with the same data.
func (e *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Metadata:    e.Metadata.Copy(),
		Address:     copyAddr(e.Address),
		Depositor:   copyAddr(e.Depositor),
		Beneficiary: copyAddr(e.Beneficiary),
		Arbiter:     copyAddr(e.Arbiter),
		Deposited:   e.Deposited,
		Endowment:   e.Endowment,
		Released:    e.Released,
	}
}

// Status returns the deposited value and whether the escrow was settled.
func (e *Escrow) Status() (deposited coin.Amount, released bool) {
	return e.Deposited, e.Released
}

// Parties returns the principals of the escrow.
func (e *Escrow) Parties() (depositor, beneficiary, arbiter weave.Address) {
	return e.Depositor, e.Beneficiary, e.Arbiter
}

func copyAddr(a weave.Address) weave.Address {
	if a == nil {
		return nil
	}
	return append(weave.Address(nil), a...)
}

// InstanceCondition returns the condition controlling the custodial account
// of the escrow created from given seed. Nobody can sign for it, so value
// leaves the account only through this extension.
func InstanceCondition(seed []byte) weave.Condition {
	return weave.NewCondition("escrow", "inst", seed)
}

// InstanceAddress returns the escrow identity derived from given seed.
func InstanceAddress(seed []byte) weave.Address {
	return InstanceCondition(seed).Address()
}

// AsEscrow extracts the escrow from an orm object.
func AsEscrow(obj orm.Object) *Escrow {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Escrow)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes an escrow bucket with all indexes.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Escrow))).
		WithIndex(DepositorIndex, depositorIndex, false).
		WithIndex(BeneficiaryIndex, beneficiaryIndex, false).
		WithIndex(ArbiterIndex, arbiterIndex, false)
	return Bucket{Bucket: b}
}

// Get returns the escrow stored under given address or nil.
func (b Bucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Escrow, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return e, nil
}

// Save stores the escrow under its address.
func (b Bucket) Save(db weave.KVStore, e *Escrow) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(e.Address, e))
}

func depositorIndex(obj orm.Object) ([]byte, error) {
	e, err := getEscrow(obj)
	if err != nil {
		return nil, err
	}
	return e.Depositor, nil
}

func beneficiaryIndex(obj orm.Object) ([]byte, error) {
	e, err := getEscrow(obj)
	if err != nil {
		return nil, err
	}
	return e.Beneficiary, nil
}

func arbiterIndex(obj orm.Object) ([]byte, error) {
	e, err := getEscrow(obj)
	if err != nil {
		return nil, err
	}
	return e.Arbiter, nil
}

func getEscrow(obj orm.Object) (*Escrow, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	e, ok := obj.Value().(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "can only take index of Escrow, got %T", obj.Value())
	}
	return e, nil
}
