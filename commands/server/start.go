package server

import (
	"flag"

	"github.com/iov-one/escrowd/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator builds the application storing its data in home. With debug
// set, errors returned to clients carry a stack trace.
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// parseFlags reads the arguments of the start command.
func parseFlags(args []string) (bind string, debug bool, err error) {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&bind, "bind", "tcp://localhost:26658", "address the ABCI server listens on")
	fs.BoolVar(&debug, "debug", false, "return stack traces with errors")
	if err := fs.Parse(args); err != nil {
		return "", false, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return bind, debug, nil
}

// StartCmd serves the application over an ABCI socket until the process
// receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	bind, debug, err := parseFlags(args)
	if err != nil {
		return err
	}
	app, err := gen(home, logger, debug)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "abci server: %s", err)
	}
	srv.SetLogger(logger.With("module", "abci-server"))
	logger.Info("Starting ABCI app", "bind", bind)
	if err := srv.Start(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "start abci server: %s", err)
	}

	// The process exits from the signal handler once the server stopped.
	cmn.TrapSignal(logger, func() {
		if err := srv.Stop(); err != nil {
			logger.Error("Stopping ABCI server", "err", err)
		}
	})
	select {}
}
