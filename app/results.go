package app

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// ResultSet is the wire form of query results. A query response carries
// two sets of equal length: the keys and the values of the matches.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

var _ weave.Persistent = (*ResultSet)(nil)

func (r *ResultSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

// Unmarshal accepts no bytes at all as the empty set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		r.Results = nil
		return nil
	}
	return cdc.UnmarshalBinaryBare(raw, r)
}

// SplitModels returns the keys and the values of models as two sets.
func SplitModels(models []weave.Model) (keys, values *ResultSet) {
	keys = &ResultSet{Results: make([][]byte, len(models))}
	values = &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		keys.Results[i] = m.Key
		values.Results[i] = m.Value
	}
	return keys, values
}

// JoinResults pairs keys with values again. Both sets must be of the same
// length.
func JoinResults(keys, values *ResultSet) ([]weave.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrInvalidState, "%d keys and %d values", len(keys.Results), len(values.Results))
	}
	models := make([]weave.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = weave.Pair(k, values.Results[i])
	}
	return models, nil
}
