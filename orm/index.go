package orm

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Indexer returns the secondary key of obj. A nil key leaves obj out of
// the index.
type Indexer func(obj Object) ([]byte, error)

// Index maps secondary keys to primary keys of a bucket.
type Index interface {
	weave.QueryHandler

	// Update replaces the entry of prev with the entry of next. A nil prev
	// inserts and a nil next removes.
	Update(db weave.KVStore, prev, next Object) error

	// GetAt returns the primary keys stored under the secondary key.
	GetAt(db weave.ReadOnlyKVStore, key []byte) ([][]byte, error)
}

// compactIndex keeps all primary keys of one secondary key in a single
// record stored under "_i.<name>:<key>". A unique index stores the primary
// key itself, any other a sorted MultiRef.
type compactIndex struct {
	name    string
	prefix  []byte
	unique  bool
	indexer Indexer
	// dbKey turns a primary key into the absolute key of the object.
	dbKey func([]byte) []byte
}

var _ Index = compactIndex{}

func NewIndex(name string, indexer Indexer, unique bool, dbKey func([]byte) []byte) Index {
	return compactIndex{
		name:    name,
		prefix:  []byte("_i." + name + ":"),
		unique:  unique,
		indexer: indexer,
		dbKey:   dbKey,
	}
}

func (i compactIndex) Update(db weave.KVStore, prev, next Object) error {
	var (
		from, to []byte
		err      error
	)
	switch {
	case prev == nil && next == nil:
		return errors.Wrap(errors.ErrHuman, "index update without an object")
	case prev != nil && next != nil && string(prev.Key()) != string(next.Key()):
		return errors.Wrap(errors.ErrHuman, "primary key cannot change")
	}
	if prev != nil {
		if from, err = i.indexer(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if to, err = i.indexer(next); err != nil {
			return err
		}
	}
	if prev != nil && next != nil && string(from) == string(to) {
		return nil
	}
	if from != nil {
		if err := i.remove(db, from, prev.Key()); err != nil {
			return err
		}
	}
	if to != nil {
		return i.add(db, to, next.Key())
	}
	return nil
}

func (i compactIndex) add(db weave.KVStore, key, pk []byte) error {
	dbKey := joinKey(i.prefix, key)
	raw, err := db.Get(dbKey)
	if err != nil {
		return err
	}
	if i.unique {
		if raw != nil && string(raw) != string(pk) {
			return errors.Wrapf(ErrUniqueConstraint, "index %s", i.name)
		}
		return db.Set(dbKey, pk)
	}
	refs, err := loadRefs(raw)
	if err != nil {
		return err
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return saveRefs(db, dbKey, refs)
}

func (i compactIndex) remove(db weave.KVStore, key, pk []byte) error {
	dbKey := joinKey(i.prefix, key)
	raw, err := db.Get(dbKey)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}
	if i.unique {
		return db.Delete(dbKey)
	}
	refs, err := loadRefs(raw)
	if err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	return saveRefs(db, dbKey, refs)
}

func loadRefs(raw []byte) (*MultiRef, error) {
	var refs MultiRef
	if raw == nil {
		return &refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return &refs, nil
}

// saveRefs deletes the record once the last reference is gone.
func saveRefs(db weave.KVStore, dbKey []byte, refs *MultiRef) error {
	if len(refs.Refs) == 0 {
		return db.Delete(dbKey)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return db.Set(dbKey, raw)
}

func (i compactIndex) GetAt(db weave.ReadOnlyKVStore, key []byte) ([][]byte, error) {
	raw, err := db.Get(joinKey(i.prefix, key))
	if err != nil || raw == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	refs, err := loadRefs(raw)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query returns the indexed objects, keyed by their absolute database key.
// Only exact key lookups are supported.
func (i compactIndex) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown index query mod: %q", mod)
	}
	pks, err := i.GetAt(db, data)
	if err != nil {
		return nil, err
	}
	var models []weave.Model
	for _, pk := range pks {
		found, err := queryKey(db, i.dbKey(pk))
		if err != nil {
			return nil, err
		}
		models = append(models, found...)
	}
	return models, nil
}
