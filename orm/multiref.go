package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/escrowd/errors"
)

var _ CloneableData = (*MultiRef)(nil)

// NewMultiRef returns a set holding refs. Duplicates are an error.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	var m MultiRef
	for _, ref := range refs {
		if err := m.Add(ref); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// Add keeps Refs sorted.
func (m *MultiRef) Add(ref []byte) error {
	i, ok := m.search(ref)
	if ok {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

func (m *MultiRef) Remove(ref []byte) error {
	i, ok := m.search(ref)
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// search returns the position of ref, or where it would be inserted.
func (m *MultiRef) search(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Copy does not copy the referenced keys.
func (m *MultiRef) Copy() CloneableData {
	return &MultiRef{Refs: append([][]byte(nil), m.Refs...)}
}

// Validate rejects an empty set. Empty sets are deleted, never stored.
func (m *MultiRef) Validate() error {
	if len(m.Refs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}
