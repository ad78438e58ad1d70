package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest/assert"
)

// makeBase returns the base layer
func makeBase() (store.CacheableKVStore, func()) {
	commit, cleanup := makeCommitStore()
	return commit.Adapter(), cleanup
}

func makeCommitStore() (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }
	commit := NewCommitStore(tmpDir, "base")
	return commit, cleanup
}

func TestIavlStore(t *testing.T) {
	store.RunSuite(t, makeBase)
}

func TestCommitOverwrite(t *testing.T) {
	commit, cleanup := makeCommitStore()
	defer cleanup()

	k, v := []byte("escrow"), []byte("funded")
	k2, v2 := []byte("factory"), []byte("ready")

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assert.Nil(t, cache.Write())

	// not visible in the committed state until Commit
	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	// a discarded cache never changes the hash
	discard := commit.CacheWrap()
	assert.Nil(t, discard.Set(k2, v2))
	discard.Discard()
	id2, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.Equal(t, id.Hash, id2.Hash)

	latest, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id2, latest)
}

func TestCommitReload(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	k, v := []byte("escrow"), []byte("released")

	first := NewCommitStore(tmpDir, "reload")
	cache := first.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assert.Nil(t, cache.Write())
	id, err := first.Commit()
	assert.Nil(t, err)

	// the MockCommitStore is an independent, empty state
	mock := MockCommitStore()
	assert.Nil(t, mock.LoadLatestVersion())
	got, err := mock.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)

	// and the first one loads fine again
	assert.Nil(t, first.LoadLatestVersion())
	latest, err := first.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id, latest)
	got, err = first.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)
}
