package utils

import (
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest/assert"
)

func TestRunAtomic(t *testing.T) {
	cases := map[string]struct {
		fnErr   error
		wantErr *errors.Error
		stored  bool
	}{
		"success writes": {
			stored: true,
		},
		"failure discards": {
			fnErr:   errors.ErrInsufficientAmount,
			wantErr: errors.ErrInsufficientAmount,
			stored:  false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := RunAtomic(db, func(kv weave.KVStore) error {
				if err := kv.Set([]byte("key"), []byte("value")); err != nil {
					return err
				}
				return tc.fnErr
			})
			assert.IsErr(t, tc.wantErr, err)

			has, err := db.Has([]byte("key"))
			assert.Nil(t, err)
			assert.Equal(t, tc.stored, has)
		})
	}
}
