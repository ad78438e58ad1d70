package utils

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/store"
	"github.com/tendermint/tendermint/libs/common"
)

var (
	tagSet    = []byte("s")
	tagDelete = []byte("d")
)

// KeyTagger records every key written while delivering a transaction and
// adds it to the result tags. The tag key is the upper case hex of the
// store key, the value is "s" for set and "d" for delete. Clients use it
// to subscribe to changes of a single record, such as an escrow.
type KeyTagger struct{}

var _ weave.Decorator = KeyTagger{}

func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

func (KeyTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (KeyTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	record := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, record, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, changesToTags(record.KVPairs())...)
	return res, nil
}

// changesToTags returns one tag per changed key, ordered by key.
func changesToTags(changes map[string][]byte) []common.KVPair {
	if len(changes) == 0 {
		return nil
	}
	tags := make([]common.KVPair, 0, len(changes))
	for k, v := range changes {
		val := tagSet
		if v == nil {
			val = tagDelete
		}
		key := strings.ToUpper(hex.EncodeToString([]byte(k)))
		tags = append(tags, common.KVPair{Key: []byte(key), Value: val})
	}
	sort.Slice(tags, func(i, j int) bool {
		return string(tags[i].Key) < string(tags[j].Key)
	})
	return tags
}
