package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/app"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
)

// ValidateGenesis runs init against the app state of every genesis file,
// each time on an empty in memory store. It stops at the first failure.
func ValidateGenesis(init weave.Initializer, paths []string) error {
	if len(paths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no genesis file given")
	}
	for _, path := range paths {
		if err := loadAppState(init, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func loadAppState(init weave.Initializer, path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "read genesis: %s", err)
	}
	var (
		gen  app.Genesis
		opts weave.Options
	)
	if err := json.Unmarshal(raw, &gen); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis: %s", err)
	}
	if len(gen.AppState) != 0 {
		if err := json.Unmarshal(gen.AppState, &opts); err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "app_state: %s", err)
		}
	}
	return init.FromGenesis(opts, store.MemStore())
}
