package orm

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Object is a keyed value kept in a Bucket.
type Object interface {
	Keyed
	Cloneable
	Value() weave.Persistent
	// Validate is called before every save.
	Validate() error
}

type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable is implemented by the prototype of a bucket. Each load
// unmarshals into a fresh clone.
type Cloneable interface {
	Clone() Object
}

// CloneableData is the value side of a SimpleObj.
type CloneableData interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}

// SimpleObj is the Object implementation used by all buckets in this
// application: a primary key and a model.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o SimpleObj) Value() weave.Persistent {
	return o.value
}

// Validate requires both a key and a valid value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

func (o *SimpleObj) Clone() Object {
	c := &SimpleObj{value: o.value.Copy()}
	if len(o.key) != 0 {
		c.key = append([]byte(nil), o.key...)
	}
	return c
}

// joinKey returns a new slice, so that keys built from the same prefix
// never share memory.
func joinKey(prefix, key []byte) []byte {
	out := make([]byte, 0, len(prefix)+len(key))
	return append(append(out, prefix...), key...)
}
