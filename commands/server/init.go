package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/escrowd/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const appStateKey = "app_state"

// GenOptions returns the app_state for the genesis file, built from the
// command line arguments.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc is a tendermint genesis file. Only app_state is decoded, all
// other sections are written back untouched.
type GenesisDoc map[string]json.RawMessage

// InitCmd writes the app_state into the genesis file created by
// `tendermint init`. An existing app_state is replaced only with -f.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fs.Bool("f", false, "overwrite existing app_state")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	path := filepath.Join(home, "config", "genesis.json")
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(errors.ErrNotFound, "%s: run `tendermint init` first", path)
	}
	state, err := gen(fs.Args())
	if err != nil {
		return err
	}
	if err := writeAppState(path, state, *force); err != nil {
		return err
	}
	logger.Info("App state written", "file", path)
	return nil
}

func writeAppState(path string, state json.RawMessage, force bool) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrNotFound, err.Error())
	}
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis file: %s", err)
	}
	if prev := doc[appStateKey]; !force && len(prev) != 0 && string(prev) != "null" {
		return errors.Wrapf(errors.ErrDuplicate, "%s already set, use -f to overwrite", appStateKey)
	}
	doc[appStateKey] = state

	raw, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return ioutil.WriteFile(path, raw, 0600)
}
