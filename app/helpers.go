package app

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the weave abci.Query interface as a ReadOnlyKVStore
type ABCIStore struct {
	app abci.Application
}

var _ weave.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading the committed state of the app.
func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
// This can be wrapped with a bucket to reuse key/index/parse logic
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidState, "%d results for a key query", len(value.Results))
	}
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return len(val) > 0, err
}

// Iterator attempts to do a range iteration over the store.
// The abci server supports prefix queries only, so this client only
// supports listing everything.
func (a *ABCIStore) Iterator(start, end []byte) (weave.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "iterator only implemented for entire range")
	}
	models, err := a.Prefix("/", nil)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator is not supported over abci.
func (a *ABCIStore) ReverseIterator(start, end []byte) (weave.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "reverse iterator not implemented")
}

// Prefix runs a prefix query against the given registered query path and
// returns all matching models.
func (a *ABCIStore) Prefix(path string, prefix []byte) ([]weave.Model, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: path + "?" + weave.PrefixQueryMod,
		Data: prefix,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	return toModels(query.Key, query.Value)
}

func toModels(keys, values []byte) ([]weave.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "cannot unmarshal keys: %s", err)
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "cannot unmarshal values: %s", err)
	}
	return JoinResults(&k, &v)
}
