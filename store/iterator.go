package store

import (
	"bytes"

	"github.com/iov-one/escrowd/errors"
)

// cacheIter merges a snapshot of cached entries with the iterator of the
// backing store. Deleted entries hide the parent value of the same key.
type cacheIter struct {
	entries []entry
	pos     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(entries []entry, parent Iterator, reverse bool) (*cacheIter, error) {
	it := &cacheIter{
		entries: entries,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

func (it *cacheIter) Valid() bool {
	return it.ownValid() || it.parentValid()
}

func (it *cacheIter) Next() error {
	own, par := it.heads()
	if !own && !par {
		return errors.Wrap(errors.ErrInvalidState, "iterator exhausted")
	}
	if own {
		it.pos++
	}
	if par {
		if err := it.parent.Next(); err != nil {
			return err
		}
	}
	return it.skipDeleted()
}

func (it *cacheIter) Key() []byte {
	if own, par := it.heads(); own {
		return it.entries[it.pos].key
	} else if par {
		return it.parent.Key()
	}
	panic("iterator exhausted")
}

func (it *cacheIter) Value() []byte {
	if own, par := it.heads(); own {
		return it.entries[it.pos].value
	} else if par {
		return it.parent.Value()
	}
	panic("iterator exhausted")
}

func (it *cacheIter) Close() {
	if it.parent != nil {
		it.parent.Close()
	}
	it.entries = nil
}

// skipDeleted moves past every deleted entry at the cursor together with
// the parent item it hides.
func (it *cacheIter) skipDeleted() error {
	for {
		own, par := it.heads()
		if !own || !it.entries[it.pos].deleted {
			return nil
		}
		it.pos++
		if par {
			if err := it.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// heads reports which source holds the next item in iteration order. Both
// are set when the cache and the parent are positioned at the same key, in
// which case the cached entry wins.
func (it *cacheIter) heads() (own, parent bool) {
	own, parent = it.ownValid(), it.parentValid()
	if !own || !parent {
		return own, parent
	}
	cmp := bytes.Compare(it.entries[it.pos].key, it.parent.Key())
	if it.reverse {
		cmp = -cmp
	}
	return cmp <= 0, cmp >= 0
}

func (it *cacheIter) ownValid() bool {
	return it.pos < len(it.entries)
}

func (it *cacheIter) parentValid() bool {
	return it.parent != nil && it.parent.Valid()
}
