package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// SeqID is the name of the default primary key sequence of a bucket.
const SeqID = "id"

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects of a single type under the "<name>:" key prefix
// and keeps its secondary indexes in sync.
//
// Buckets are values. Extensions embed one in a type that knows the
// concrete model.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ weave.QueryHandler = Bucket{}

// NewBucket panics if name is not 3 to 10 lowercase letters or
// underscores. proto is cloned for every loaded object.
func NewBucket(name string, proto Cloneable) Bucket {
	if !validBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name: %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// DBKey returns the absolute database key of an object.
func (b Bucket) DBKey(key []byte) []byte {
	return joinKey(b.prefix, key)
}

// Get returns nil when nothing is stored under key.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db weave.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse decodes a stored value into a clone of the prototype.
func (b Bucket) Parse(key, raw []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "cannot parse %s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes obj, updating all indexes.
func (b Bucket) Save(db weave.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

func (b Bucket) Delete(db weave.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

// reindex moves the index entries of key from the stored object to next.
// A nil next removes them.
func (b Bucket) reindex(db weave.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for name, idx := range b.indexes {
		if err := idx.Update(db, prev, next); err != nil {
			return errors.Wrapf(err, "index %s", name)
		}
	}
	return nil
}

// Sequence returns the named counter of this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of the bucket with one more index. The index is
// stored as "<bucket>_<name>". It panics if name is already taken.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %q registered twice", name))
	}
	indexes := map[string]Index{
		name: NewIndex(b.name+"_"+name, indexer, unique, b.DBKey),
	}
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	b.indexes = indexes
	return b
}

// GetIndexed returns all objects stored under key in the named index.
func (b Bucket) GetIndexed(db weave.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	refs, err := idx.GetAt(db, key)
	if err != nil || len(refs) == 0 {
		return nil, err
	}
	objs := make([]Object, 0, len(refs))
	for _, ref := range refs {
		obj, err := b.Get(db, ref)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// Register exposes the bucket under "/<name>" and each index under
// "/<name>/<index>". An empty name defaults to the bucket name.
func (b Bucket) Register(name string, qr weave.QueryRouter) {
	if name == "" {
		name = b.name
	}
	qr.Register("/"+name, b)
	for idxName, idx := range b.indexes {
		qr.Register("/"+name+"/"+idxName, idx)
	}
}

// Query supports exact key and prefix lookups.
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		return queryKey(db, b.DBKey(data))
	case weave.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
}
