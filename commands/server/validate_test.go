package server

import (
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weavetest/assert"
)

type nameInitializer struct{}

func (nameInitializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var name string
	if err := opts.ReadOptions("name", &name); err != nil {
		return err
	}
	return db.Set([]byte("name"), []byte(name))
}

func TestValidateGenesis(t *testing.T) {
	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"valid": {
			paths:   []string{"testdata/good_state.json"},
			wantErr: nil,
		},
		"no files": {
			paths:   nil,
			wantErr: errors.ErrEmpty,
		},
		"missing file": {
			paths:   []string{"testdata/good_state.json", "testdata/nope.json"},
			wantErr: errors.ErrNotFound,
		},
		"invalid state": {
			paths:   []string{"testdata/bad_state.json"},
			wantErr: errors.ErrInvalidInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateGenesis(nameInitializer{}, tc.paths)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}
