package utils

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// RunAtomic calls fn with a cache wrapped view of db and writes the changes
// back only if fn succeeds. Stores that cannot be cache wrapped are passed
// through unchanged, in which case the caller is responsible for the
// transaction boundary.
func RunAtomic(db weave.KVStore, fn func(weave.KVStore) error) error {
	cstore, ok := db.(weave.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
