package cash

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
)

const BucketName = "cash"

var _ orm.CloneableData = (*Set)(nil)

func (s *Set) Validate() error {
	return errors.Wrap(s.Metadata.Validate(), "metadata")
}

func (s *Set) Copy() orm.CloneableData {
	return &Set{Metadata: s.Metadata.Copy(), Balance: s.Balance}
}

// Wallet is the balance of the account at its key. Balances change only
// through Add and Subtract, which refuse to overflow or go negative.
type Wallet struct {
	addr weave.Address
	set  *Set
}

var _ orm.Object = (*Wallet)(nil)

func NewWallet(addr weave.Address, balance coin.Amount) *Wallet {
	return &Wallet{
		addr: addr,
		set:  &Set{Metadata: &weave.Metadata{Schema: 1}, Balance: balance},
	}
}

func (w Wallet) Key() []byte {
	return w.addr
}

func (w *Wallet) SetKey(key []byte) {
	w.addr = key
}

func (w Wallet) Value() weave.Persistent {
	return w.set
}

func (w Wallet) Validate() error {
	if len(w.addr) == 0 {
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	}
	return w.set.Validate()
}

func (w *Wallet) Clone() orm.Object {
	c := &Wallet{set: w.set.Copy().(*Set)}
	if len(w.addr) != 0 {
		c.addr = append(weave.Address(nil), w.addr...)
	}
	return c
}

func (w Wallet) Balance() coin.Amount {
	return w.set.Balance
}

func (w *Wallet) Add(amount coin.Amount) error {
	total, err := w.set.Balance.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", w.addr)
	}
	w.set.Balance = total
	return nil
}

func (w *Wallet) Subtract(amount coin.Amount) error {
	if !w.set.Balance.IsGTE(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s holds %s, need %s", w.addr, w.set.Balance, amount)
	}
	left, err := w.set.Balance.Sub(amount)
	if err != nil {
		return err
	}
	w.set.Balance = left
	return nil
}

// Bucket stores wallets by address.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewWallet(nil, 0))}
}

// Get returns nil if addr has no wallet.
func (b Bucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	w, ok := obj.(*Wallet)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj)
	}
	return w, nil
}

func (b Bucket) Save(db weave.KVStore, w *Wallet) error {
	return b.Bucket.Save(db, w)
}

// GetOrCreate returns an empty, unsaved wallet if addr has none.
func (b Bucket) GetOrCreate(db weave.KVStore, addr weave.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err == nil && w == nil {
		w = NewWallet(addr, 0)
	}
	return w, err
}
