package app

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is satisfied by both *testing.T and *testing.B.
type Tester interface {
	Helper()
	Fatalf(string, ...interface{})
}

// WeaveApp processes weave transactions.
type WeaveApp interface {
	DeliverTx(weave.Tx) (*weave.DeliverResult, error)
	CheckTx(weave.Tx) error
}

// WeaveRunner drives an ABCI application the way a node would, so tests
// can submit weave transactions and read the committed state. State
// changes become readable once the block that delivered them is
// committed.
type WeaveRunner struct {
	*ABCIStore

	t       Tester
	app     abci.Application
	chainID string
	height  int64
}

var _ WeaveApp = (*WeaveRunner)(nil)

func NewWeaveRunner(t Tester, app abci.Application, chainID string) *WeaveRunner {
	return &WeaveRunner{
		ABCIStore: NewABCIStore(app),
		t:         t,
		app:       app,
		chainID:   chainID,
	}
}

// InitChain loads genesis, serialized to JSON, in the first block.
func (w *WeaveRunner) InitChain(genesis interface{}) {
	w.t.Helper()

	appState, err := json.Marshal(genesis)
	if err != nil {
		w.t.Fatalf("cannot serialize genesis: %s", err)
	}
	modified := w.InBlock(func(WeaveApp) error {
		w.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       w.chainID,
			AppStateBytes: appState,
		})
		return nil
	})
	if !modified {
		w.t.Fatalf("genesis did not modify the state")
	}
}

func (w *WeaveRunner) CheckTx(tx weave.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal tx")
	}
	if res := w.app.CheckTx(raw); res.Code != errors.SuccessABCICode {
		return errors.ABCIError(res.Code, res.Log)
	}
	return nil
}

// DeliverTx returns the registered error matching the response code on
// failure.
func (w *WeaveRunner) DeliverTx(tx weave.Tx) (*weave.DeliverResult, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	return weave.ParseDeliverOrError(w.app.DeliverTx(raw))
}

// InBlock runs fn within a new block and commits it. It reports whether
// the app hash changed. An error returned by fn fails the test.
func (w *WeaveRunner) InBlock(fn func(WeaveApp) error) bool {
	w.t.Helper()

	before := w.app.Info(abci.RequestInfo{}).LastBlockAppHash

	w.height++
	w.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: w.chainID, Height: w.height},
	})
	if err := fn(w); err != nil {
		w.t.Fatalf("block %d: %+v", w.height, err)
	}
	w.app.EndBlock(abci.RequestEndBlock{Height: w.height})

	after := w.app.Commit().Data
	return !bytes.Equal(before, after)
}
