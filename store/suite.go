package store

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/iov-one/escrowd/weavetest/assert"
)

// StoreConstructor returns a new, empty store together with a function that
// releases all resources it holds.
type StoreConstructor func() (CacheableKVStore, func())

// RunSuite checks the behaviour that every CacheableKVStore implementation
// must provide. Both the in memory btree and the iavl adapter are tested
// with it.
func RunSuite(t *testing.T, newStore StoreConstructor) {
	t.Run("get and set", func(t *testing.T) { checkGetSet(t, newStore) })
	t.Run("nested discard", func(t *testing.T) { checkNestedDiscard(t, newStore) })
	t.Run("child shadows parent", func(t *testing.T) { checkShadowing(t, newStore) })
	t.Run("iterators", func(t *testing.T) {
		for seed := int64(1); seed <= 4; seed++ {
			t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
				checkIterators(t, newStore, seed)
			})
		}
	})
}

func checkGetSet(t *testing.T, newStore StoreConstructor) {
	db, cleanup := newStore()
	defer cleanup()

	escrow, funded := []byte("escrow"), []byte("funded")
	assertValue(t, db, escrow, nil)
	assert.Nil(t, db.Set(escrow, funded))
	assertValue(t, db, escrow, funded)

	// Writes to a cache are invisible below until written.
	factory, ready := []byte("factory"), []byte("ready")
	cache := db.CacheWrap()
	assertValue(t, cache, escrow, funded)
	assert.Nil(t, cache.Set(factory, ready))
	assertValue(t, cache, factory, ready)
	assertValue(t, db, factory, nil)
	assert.Nil(t, cache.Write())
	assertValue(t, db, factory, ready)

	discarded := db.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("sequence"), []byte{1}))
	assert.Nil(t, discarded.Delete(escrow))
	discarded.Discard()
	assertValue(t, db, escrow, funded)
	assertValue(t, db, []byte("sequence"), nil)

	deleting := db.CacheWrap()
	assert.Nil(t, deleting.Delete(escrow))
	assertValue(t, deleting, escrow, nil)
	assertValue(t, db, escrow, funded)
	assert.Nil(t, deleting.Write())
	assertValue(t, db, escrow, nil)
	assertValue(t, db, factory, ready)
}

func checkNestedDiscard(t *testing.T, newStore StoreConstructor) {
	db, cleanup := newStore()
	defer cleanup()

	key := []byte("escrow")
	outer := db.CacheWrap()
	assert.Nil(t, outer.Set(key, []byte("open")))

	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set(key, []byte("released")))
	assert.Nil(t, inner.Delete([]byte("other")))
	assertValue(t, inner, key, []byte("released"))
	inner.Discard()

	assertValue(t, outer, key, []byte("open"))
	assertValue(t, db, key, nil)
	assert.Nil(t, outer.Write())
	assertValue(t, db, key, []byte("open"))
}

func checkShadowing(t *testing.T, newStore StoreConstructor) {
	db, cleanup := newStore()
	defer cleanup()

	a, b, c := []byte("a"), []byte("b"), []byte("c")
	assert.Nil(t, db.Set(a, []byte("parent a")))
	assert.Nil(t, db.Set(b, []byte("parent b")))

	child := db.CacheWrap()
	assert.Nil(t, child.Set(a, []byte("child a")))
	assert.Nil(t, child.Delete(b))
	assert.Nil(t, child.Set(c, []byte("child c")))

	assertValue(t, db, a, []byte("parent a"))
	assertValue(t, db, b, []byte("parent b"))
	assertValue(t, db, c, nil)

	want := map[string][]byte{"a": []byte("child a"), "c": []byte("child c")}
	assertValue(t, child, a, want["a"])
	assertValue(t, child, b, nil)
	assertValue(t, child, c, want["c"])

	assert.Nil(t, child.Write())
	for _, k := range [][]byte{a, b, c} {
		assertValue(t, db, k, want[string(k)])
	}
}

// checkIterators applies a random set of operations to a store and to a
// cache on top of it, then compares range iteration over the cache with a
// plain map holding the same data.
func checkIterators(t *testing.T, newStore StoreConstructor, seed int64) {
	db, cleanup := newStore()
	defer cleanup()

	rnd := rand.New(rand.NewSource(seed))
	state := make(map[string][]byte)

	apply := func(kv SetDeleter, known []string) []string {
		for i := 0; i < 40; i++ {
			// Some operations touch keys that already exist.
			key := randomBytes(rnd, 8)
			if len(known) > 0 && rnd.Intn(3) == 0 {
				key = []byte(known[rnd.Intn(len(known))])
			}
			if rnd.Intn(4) == 0 {
				assert.Nil(t, kv.Delete(key))
				delete(state, string(key))
				continue
			}
			value := randomBytes(rnd, 16)
			assert.Nil(t, kv.Set(key, value))
			state[string(key)] = value
			known = append(known, string(key))
		}
		return known
	}

	known := apply(db, nil)
	cache := db.CacheWrap()
	apply(cache, known)

	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) < 10 {
		t.Fatalf("seed produced only %d keys", len(keys))
	}

	bounds := [][2][]byte{
		{nil, nil},
		{[]byte(keys[3]), nil},
		{nil, []byte(keys[len(keys)-4])},
		{[]byte(keys[2]), []byte(keys[7])},
		// Bounds that are not stored keys.
		{append([]byte(keys[1]), 0), append([]byte(keys[8]), 0)},
		{[]byte(keys[5]), []byte(keys[5])},
	}
	for _, b := range bounds {
		var want []Model
		for _, k := range keys {
			if b[0] != nil && k < string(b[0]) {
				continue
			}
			if b[1] != nil && k >= string(b[1]) {
				continue
			}
			want = append(want, Model{Key: []byte(k), Value: state[k]})
		}

		it, err := cache.Iterator(b[0], b[1])
		assert.Nil(t, err)
		assertIteration(t, it, want)

		reversed := make([]Model, len(want))
		for i, m := range want {
			reversed[len(want)-1-i] = m
		}
		it, err = cache.ReverseIterator(b[0], b[1])
		assert.Nil(t, err)
		assertIteration(t, it, reversed)
	}
}

func assertIteration(t testing.TB, it Iterator, want []Model) {
	t.Helper()
	defer it.Close()

	for i, w := range want {
		if !it.Valid() {
			t.Fatalf("iterator exhausted after %d of %d items", i, len(want))
		}
		if !bytes.Equal(w.Key, it.Key()) {
			t.Fatalf("item %d: want key %X, got %X", i, w.Key, it.Key())
		}
		assert.Equal(t, w.Value, it.Value())
		assert.Nil(t, it.Next())
	}
	if it.Valid() {
		t.Fatalf("unexpected key %X after the last item", it.Key())
	}
}

func assertValue(t testing.TB, db ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := db.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := db.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func randomBytes(rnd *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rnd.Read(b)
	return b
}
