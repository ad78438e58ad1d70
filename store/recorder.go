package store

// Recorder is implemented by stores that remember which keys were changed.
type Recorder interface {
	// KVPairs maps every changed key to its new value. Deleted keys map to
	// nil.
	KVPairs() map[string][]byte
}

// RecordingStore passes all operations to the wrapped store and remembers
// the keys that were set or deleted. Writes made through a batch or a cache
// wrap are recorded when they are flushed, so discarded changes never show
// up.
type RecordingStore struct {
	KVStore
	changes map[string][]byte
}

var (
	_ CacheableKVStore = (*RecordingStore)(nil)
	_ Recorder         = (*RecordingStore)(nil)
)

func NewRecordingStore(db KVStore) *RecordingStore {
	return &RecordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
}

func (r *RecordingStore) KVPairs() map[string][]byte {
	return r.changes
}

func (r *RecordingStore) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if err := r.KVStore.Set(key, value); err != nil {
		return err
	}
	r.changes[string(key)] = value
	return nil
}

func (r *RecordingStore) Delete(key []byte) error {
	if err := r.KVStore.Delete(key); err != nil {
		return err
	}
	r.changes[string(key)] = nil
	return nil
}

// NewBatch returns a batch replaying its operations through this store.
func (r *RecordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

func (r *RecordingStore) CacheWrap() KVCacheWrap {
	return NewTreeCache(r, r.NewBatch(), nil)
}
