package orm

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// RegisterQuery serves the whole store under "/", queried by absolute
// database key.
func RegisterQuery(qr weave.QueryRouter) {
	qr.Register("/", rawStore{})
}

type rawStore struct{}

func (rawStore) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		return queryKey(db, data)
	case weave.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
}

// queryKey returns no models if key is not present.
func queryKey(db weave.ReadOnlyKVStore, key []byte) ([]weave.Model, error) {
	value, err := db.Get(key)
	if err != nil || value == nil {
		return nil, err
	}
	return []weave.Model{weave.Pair(key, value)}, nil
}

func queryPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	itr, err := db.Iterator(PrefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// ConsumeIterator reads all remaining entries and closes itr.
func ConsumeIterator(itr weave.Iterator) ([]weave.Model, error) {
	defer itr.Close()

	var models []weave.Model
	for itr.Valid() {
		models = append(models, weave.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return models, nil
}

// PrefixRange returns the iterator bounds covering exactly the keys that
// start with prefix. The end is nil when no such bound exists, for
// example for a prefix of only 0xFF bytes.
func PrefixRange(prefix []byte) (start, end []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	start = append([]byte(nil), prefix...)
	end = append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xFF {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}
