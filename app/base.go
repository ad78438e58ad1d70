package app

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp extends StoreApp with transaction processing. Transactions are
// decoded with decoder and passed to handler, usually a decorated Router.
type BaseApp struct {
	*StoreApp
	decoder weave.TxDecoder
	handler weave.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application that exposes full error details to
// clients when debug is set.
func NewBaseApp(store *StoreApp, decoder weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return weave.CheckTxError(err, b.debug)
	}
	ctx := weave.WithLogInfo(b.BlockContext(), "call", "check_tx", "path", weave.GetPath(tx))
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return weave.CheckOrError(res, err, b.debug)
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return weave.DeliverTxError(err, b.debug)
	}
	ctx := weave.WithLogInfo(b.BlockContext(), "call", "deliver_tx", "path", weave.GetPath(tx))
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return weave.DeliverOrError(res, err, b.debug)
}

// decode turns a decoder panic on malformed input into an error.
func (b BaseApp) decode(raw []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
