package store

import (
	"bytes"

	"github.com/google/btree"
)

// Cacheable turns any KVStore into a CacheableKVStore by placing an in
// memory btree cache on top of it.
type Cacheable struct {
	KVStore
}

var _ CacheableKVStore = Cacheable{}

func (c Cacheable) CacheWrap() KVCacheWrap {
	return NewTreeCache(c.KVStore, c.NewBatch(), nil)
}

// MemStore returns a non persistent store. All data lives in the cache of an
// always empty backend.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewTreeCache(empty, empty.NewBatch(), nil)
}

// TreeCache keeps pending writes in a btree. Reads fall through to the
// backing store for keys that were not written. Write flushes all changes
// through the batch, Discard drops them.
type TreeCache struct {
	tree  *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = TreeCache{}

// NewTreeCache returns a cache over back. Writes are only ever made through
// batch. A nil free list creates a new one. Nested caches share the free list
// of their parent.
func NewTreeCache(back ReadOnlyKVStore, batch Batch, free *btree.FreeList) TreeCache {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return TreeCache{
		tree:  btree.NewWithFreeList(2, free),
		free:  free,
		back:  back,
		batch: batch,
	}
}

func (c TreeCache) CacheWrap() KVCacheWrap {
	return NewTreeCache(c, c.NewBatch(), c.free)
}

func (c TreeCache) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes all pending changes and empties the cache.
func (c TreeCache) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all pending changes. Nodes are returned to the free list.
func (c TreeCache) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c TreeCache) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, value: value})
	return c.batch.Set(key, value)
}

func (c TreeCache) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return c.batch.Delete(key)
}

func (c TreeCache) Get(key []byte) ([]byte, error) {
	e, ok := c.lookup(key)
	if !ok {
		return c.back.Get(key)
	}
	if e.deleted {
		return nil, nil
	}
	return e.value, nil
}

func (c TreeCache) Has(key []byte) (bool, error) {
	e, ok := c.lookup(key)
	if !ok {
		return c.back.Has(key)
	}
	return !e.deleted, nil
}

func (c TreeCache) lookup(key []byte) (entry, bool) {
	item := c.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

func (c TreeCache) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIter(c.entries(start, end), parent, false)
}

func (c TreeCache) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	entries := c.entries(start, end)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return newCacheIter(entries, parent, true)
}

// entries returns a snapshot of cached entries within [start, end) in
// ascending order. A nil bound is open.
func (c TreeCache) entries(start, end []byte) []entry {
	var res []entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.tree.Ascend(collect)
	case start == nil:
		c.tree.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		c.tree.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		c.tree.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return res
}

// entry is a cached write. A deleted entry hides the key of the backing
// store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
