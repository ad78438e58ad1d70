package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// setupHome creates a home directory with a tendermint genesis file copied
// from testdata.
func setupHome(t *testing.T) (string, func()) {
	t.Helper()

	home, err := ioutil.TempDir("", "escrowd-init")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0755))

	raw, err := ioutil.ReadFile("testdata/genesis.json")
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "config", "genesis.json"), raw, 0600))

	return home, func() { os.RemoveAll(home) }
}

func staticOptions(state string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(state), nil
	}
}

func readAppState(t *testing.T, home string) string {
	t.Helper()
	raw, err := ioutil.ReadFile(filepath.Join(home, "config", "genesis.json"))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	return string(doc[appStateKey])
}

func TestInitCmd(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	logger := log.NewNopLogger()
	err := InitCmd(staticOptions(`{"cash":[]}`), logger, home, nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"cash":[]}`, readAppState(t, home))

	// Existing app state is not overwritten unless forced.
	err = InitCmd(staticOptions(`{"escrow":[]}`), logger, home, nil)
	assert.IsErr(t, errors.ErrDuplicate, err)
	require.JSONEq(t, `{"cash":[]}`, readAppState(t, home))

	err = InitCmd(staticOptions(`{"escrow":[]}`), logger, home, []string{"-f"})
	require.NoError(t, err)
	require.JSONEq(t, `{"escrow":[]}`, readAppState(t, home))
}

func TestInitCmdWithoutGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "escrowd-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	err = InitCmd(staticOptions(`{}`), log.NewNopLogger(), home, nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitCmdPassesArguments(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	var got []string
	gen := func(args []string) (json.RawMessage, error) {
		got = args
		return json.RawMessage(`{}`), nil
	}
	require.NoError(t, InitCmd(gen, log.NewNopLogger(), home, []string{"-f", "alice", "bob"}))
	require.Equal(t, []string{"alice", "bob"}, got)
}
