package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/store/iavl"
	"github.com/iov-one/escrowd/weavetest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func newQueryableApp(t *testing.T) *StoreApp {
	t.Helper()

	qr := weave.NewQueryRouter()
	orm.RegisterQuery(qr)
	s := NewStoreApp("dummy", iavl.MockCommitStore(), qr, context.Background()).
		WithInit(dummyInit{})

	state, err := json.Marshal(map[string]string{"dummy": "secret"})
	if err != nil {
		t.Fatalf("cannot marshal app state: %s", err)
	}
	s.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-1",
		AppStateBytes: state,
	})
	s.Commit()
	return s
}

func TestStoreAppInitChain(t *testing.T) {
	s := newQueryableApp(t)
	assert.Equal(t, "test-chain-1", s.GetChainID())

	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, "dummy", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)
	if len(info.LastBlockAppHash) == 0 {
		t.Fatal("app hash must be set after a commit")
	}

	// Second initialization must fail.
	assert.Panics(t, func() {
		s.InitChain(abci.RequestInitChain{ChainId: "test-chain-2", AppStateBytes: []byte(`{}`)})
	})
}

func TestStoreAppQuery(t *testing.T) {
	s := newQueryableApp(t)
	db := NewABCIStore(s)

	value, err := db.Get(dummyKey)
	assert.Nil(t, err)
	assert.Equal(t, []byte("secret"), value)

	ok, err := db.Has([]byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	models, err := db.Prefix("/", []byte("dum"))
	assert.Nil(t, err)
	assert.Equal(t, []weave.Model{weave.Pair(dummyKey, []byte("secret"))}, models)

	itr, err := db.Iterator(nil, nil)
	assert.Nil(t, err)
	all, err := orm.ConsumeIterator(itr)
	assert.Nil(t, err)
	// The chain ID is stored together with the dummy value.
	assert.Equal(t, 2, len(all))

	_, err = db.Iterator([]byte("a"), nil)
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestStoreAppQueryErrors(t *testing.T) {
	s := newQueryableApp(t)

	cases := map[string]struct {
		query   abci.RequestQuery
		wantErr *errors.Error
	}{
		"unknown path": {
			query:   abci.RequestQuery{Path: "/nothing", Data: dummyKey},
			wantErr: errors.ErrNotFound,
		},
		"unknown modifier": {
			query:   abci.RequestQuery{Path: "/?range", Data: dummyKey},
			wantErr: errors.ErrInvalidInput,
		},
		"past height": {
			query:   abci.RequestQuery{Path: "/", Data: dummyKey, Height: 7},
			wantErr: errors.ErrInvalidInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := s.Query(tc.query)
			err := errors.ABCIError(res.Code, res.Log)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestStoreAppCommitIsolation(t *testing.T) {
	s := newQueryableApp(t)
	db := NewABCIStore(s)

	key := []byte("uncommitted")
	if err := s.DeliverStore().Set(key, []byte("v")); err != nil {
		t.Fatalf("cannot set: %s", err)
	}
	// Not visible until committed.
	value, err := db.Get(key)
	assert.Nil(t, err)
	assert.Nil(t, value)

	before := s.Info(abci.RequestInfo{}).LastBlockAppHash
	after := s.Commit().Data
	if string(before) == string(after) {
		t.Fatal("app hash must change when the state changes")
	}

	value, err = db.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), value)
}
