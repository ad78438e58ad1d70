package store

import "github.com/iov-one/escrowd/errors"

// SliceIterator iterates over an in memory list of models, in the order they
// are given. Query clients use it to expose query results as a store.
type SliceIterator struct {
	models []Model
	pos    int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.models)
}

func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.Wrap(errors.ErrInvalidState, "iterator exhausted")
	}
	s.pos++
	return nil
}

// Key panics if the iterator is not valid.
func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

// Value panics if the iterator is not valid.
func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("iterator exhausted")
	}
	return s.models[s.pos]
}

func (s *SliceIterator) Close() {
	s.models = nil
}

// EmptyKVStore is a store that is always empty and ignores all writes. It is
// the base layer of the in memory store.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error)  { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)    { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete([]byte) error         { return nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}
