package weave

// ReadOnlyKVStore is the read side of every store. Escrow state, accounts
// and configuration are all loaded through it.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is not present.
	Get(key []byte) ([]byte, error)

	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The domain must not be modified while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is implemented by both stores and batches.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the minimal writable store all backends provide.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them with a single Write call.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range:
//
//	itr, err := db.Iterator(start, end)
//	...
//	defer itr.Close()
//	for ; itr.Valid(); err = itr.Next() {
//		key, value := itr.Key(), itr.Value()
//	}
//
// Key, Value and Next panic once Valid returns false. The returned slices
// must not be modified.
type Iterator interface {
	Valid() bool
	Next() error
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stage writes in a nested cache. Message handlers
// use it to run a group of writes that either all persist or none do.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch pad over a parent store. Reads see the staged
// writes. Write flushes them to the parent and Discard drops them. A cache
// can be wrapped again.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root of the application state. Changes
// are staged with CacheWrap and made durable by Commit, which produces a
// new version with its merkle root.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	Commit() (CommitID, error)

	// LoadLatestVersion restores the last complete version. After a crash
	// during commit this can be an older version.
	LoadLatestVersion() error

	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
