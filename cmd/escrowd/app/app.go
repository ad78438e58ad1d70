// Package escrowd assembles the escrow node: the cash, signature, escrow
// and factory extensions behind the standard decorator stack.
package escrowd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/app"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/store/iavl"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/cash"
	"github.com/iov-one/escrowd/x/escrow"
	"github.com/iov-one/escrowd/x/factory"
	"github.com/iov-one/escrowd/x/sigs"
	"github.com/iov-one/escrowd/x/template"
	"github.com/iov-one/escrowd/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator accepts transaction signatures only.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

func CashControl() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// Templates returns all contract templates a factory can deploy.
func Templates(mover cash.CoinMover) *template.Registry {
	reg := template.NewRegistry()
	escrow.RegisterTemplate(reg, mover)
	return reg
}

// Chain returns the decorators run before every handler.
//
// A transaction failing CheckTx leaves no trace. A transaction failing
// DeliverTx still consumes the sequence of its signers, so the signature
// cannot be replayed.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewKeyTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

func Router(auth x.Authenticator) *app.Router {
	ctrl := CashControl()
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, ctrl)
	sigs.RegisterRoutes(r, auth)
	escrow.RegisterRoutes(r, auth, ctrl)
	factory.RegisterRoutes(r, auth, Templates(ctrl), ctrl, factory.BlockHeight{})
	return r
}

// QueryRouter serves "/wallets", "/auth", "/escrows", "/factories" and
// the raw store under "/".
func QueryRouter() weave.QueryRouter {
	qr := weave.NewQueryRouter()
	qr.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		escrow.RegisterQuery,
		factory.RegisterQuery,
		orm.RegisterQuery,
	)
	return qr
}

// Stack is the router behind the decorator chain.
func Stack() weave.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Initializers loads cash first, so escrow genesis deposits can be funded.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		escrow.Initializer{Issuer: CashControl()},
		factory.Initializer{},
	)
}

// GenerateApp returns the node application storing its state in home. An
// empty home keeps the state in memory.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "escrow.db")
	}
	base, err := Application("escrowd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	base.WithInit(Initializers()).WithLogger(logger)
	return base, nil
}

// Application returns an application processing transactions with h.
func Application(name string, h weave.Handler, decoder weave.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	db, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	s := app.NewStoreApp(name, db, QueryRouter(), context.Background())
	return app.NewBaseApp(s, decoder, h, debug), nil
}

// CommitKVStore opens the database at dbPath, or an in memory one if the
// path is empty. A file extension is ignored.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "database path %q: %s", dbPath, err)
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path)), nil
}
