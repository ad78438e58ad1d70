package app

import (
	"fmt"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements every ABCI call that does not process a
// transaction: state sync, genesis, queries and commits. Embed it in a
// BaseApp to handle CheckTx and DeliverTx.
//
// Info, InitChain, BeginBlock, EndBlock and Commit carry no user input, so
// a failure there means the node state is broken. Those calls panic.
type StoreApp struct {
	name   string
	logger log.Logger

	store       *CommitStore
	queryRouter weave.QueryRouter
	initializer weave.Initializer

	// chainID is empty until genesis was processed.
	chainID string

	// appCtx lives as long as the application and carries the logger and
	// the chain ID. blockCtx extends it with the current height.
	appCtx   weave.Context
	blockCtx weave.Context
}

var _ abci.Application = (*StoreApp)(nil)

// NewStoreApp restores the application from the last committed version of
// db. It panics if the state cannot be loaded.
func NewStoreApp(name string, db weave.CommitKVStore, qr weave.QueryRouter, ctx weave.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(db),
		queryRouter: qr,
		appCtx:      ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if chainID := mustLoadChainID(s.DeliverStore()); chainID != "" {
		s.setChainID(chainID)
	}

	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockCtx = weave.WithHeight(s.appCtx, last.Version)
	return s
}

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.appCtx = weave.WithChainID(s.appCtx, chainID)
}

// WithInit sets the initializer used by InitChain.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the application and of every context it
// creates from now on.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appCtx = weave.WithLogger(s.appCtx, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// BlockContext carries the chain ID, the logger and the height of the block
// being processed.
func (s *StoreApp) BlockContext() weave.Context {
	return s.blockCtx
}

func (s *StoreApp) DeliverStore() weave.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() weave.CacheableKVStore {
	return s.store.CheckStore()
}

// Info reports the last committed height and app hash, so tendermint can
// replay the blocks the application is missing.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain loads the genesis app state. It runs once in the life of a
// chain, not on restarts.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets the height seen by all transactions of the block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.blockCtx = weave.WithHeight(s.appCtx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists everything delivered in the current block and returns
// the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

func (s *StoreApp) DeliverTx([]byte) abci.ResponseDeliverTx {
	return weave.DeliverTxError(errNoTxProcessing, false)
}

func (s *StoreApp) CheckTx([]byte) abci.ResponseCheckTx {
	return weave.CheckTxError(errNoTxProcessing, false)
}

var errNoTxProcessing = errors.Wrap(errors.ErrHuman, "store app cannot process transactions")
