package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	addr1 := weavetest.RandomAddr(t)
	addr2 := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Genesis     string
		WantErr     *errors.Error
		WantBalance map[string]coin.Amount
	}{
		"no cash section": {
			Genesis: `{}`,
		},
		"two accounts": {
			Genesis: `{"cash": [
				{"address": "` + addr1.String() + `", "balance": "150"},
				{"address": "` + addr2.String() + `", "balance": 7}
			]}`,
			WantBalance: map[string]coin.Amount{
				addr1.String(): 150,
				addr2.String(): 7,
			},
		},
		"duplicated account": {
			Genesis: `{"cash": [
				{"address": "` + addr1.String() + `", "balance": "1"},
				{"address": "` + addr1.String() + `", "balance": "2"}
			]}`,
			WantErr: errors.ErrDuplicate,
		},
		"missing address": {
			Genesis: `{"cash": [{"balance": "1"}]}`,
			WantErr: errors.ErrInvalidInput,
		},
		"malformed balance": {
			Genesis: `{"cash": [{"address": "` + addr1.String() + `", "balance": "-1"}]}`,
			WantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			if err := json.Unmarshal([]byte(tc.Genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.WantErr, err)

			ctrl := NewController(NewBucket())
			for addr, want := range tc.WantBalance {
				a, err := weave.ParseAddress(addr)
				assert.Nil(t, err)
				got, err := ctrl.Balance(db, a)
				assert.Nil(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}
