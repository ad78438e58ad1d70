package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Genesis is the part of the tendermint genesis file the application
// reads.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

// LoadGenesis initializes the state from a tendermint genesis file without
// a running node.
func (s *StoreApp) LoadGenesis(filePath string, init weave.Initializer) error {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis file: %s", err)
	}
	return s.parseAppState(gen.AppState, gen.ChainID, init)
}

// parseAppState stores the chain ID and passes the app state to init. The
// chain ID is part of the state, so this succeeds only once per database.
func (s *StoreApp) parseAppState(appState []byte, chainID string, init weave.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrHuman, "app state already loaded for chain %q", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrHuman, "app_state is missing in the genesis file")
	}
	var opts weave.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	db := s.DeliverStore()
	if err := saveChainID(db, chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	if init == nil {
		return nil
	}
	return init.FromGenesis(opts, db)
}

// ChainInitializers returns an initializer calling all inits in order. It
// stops at the first failure.
func ChainInitializers(inits ...weave.Initializer) weave.Initializer {
	return initializers(inits)
}

type initializers []weave.Initializer

func (all initializers) FromGenesis(opts weave.Options, db weave.KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
