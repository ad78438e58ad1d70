package app

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// CommitStore keeps two caches over the committed state. Transactions are
// checked against one and delivered against the other. Commit persists the
// deliver cache and resets both.
type CommitStore struct {
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

// NewCommitStore panics if the latest version cannot be loaded.
func NewCommitStore(db weave.CommitKVStore) *CommitStore {
	if err := db.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: db}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and hash of the last commit.
func (cs *CommitStore) CommitInfo() (weave.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes all delivered changes and persists them. Changes made while
// checking transactions are dropped.
func (cs *CommitStore) Commit() (weave.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return weave.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() weave.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() weave.CacheableKVStore {
	return cs.deliver
}

// QueryStore is a view of the last committed state. Uncommitted changes are
// never visible to queries.
func (cs *CommitStore) QueryStore() weave.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

// chainIDKey lives under the reserved "_wv:" prefix. No bucket may use it.
var chainIDKey = []byte("_wv:chainID")

// mustLoadChainID returns an empty string before genesis. It panics on a
// database failure.
func mustLoadChainID(db weave.ReadOnlyKVStore) string {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID can be called only once, during genesis.
func saveChainID(db weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}
	switch exists, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id cannot be changed after genesis")
	}
	if err := db.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
