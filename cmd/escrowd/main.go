package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/escrowd"
	escrowd "github.com/iov-one/escrowd/cmd/escrowd/app"
	"github.com/iov-one/escrowd/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

const usage = `escrowd - escrow contracts ABCI application

Usage:
  escrowd [-home DIR] <command> [arguments]

Commands:
  init      write the app state into the genesis file
  start     run the ABCI server
  validate  check that the app state of genesis files can be loaded
  version   print the application version
  help      print this message

Flags:
`

func main() {
	home := flag.String("home", filepath.Join(os.ExpandEnv("$HOME"), ".escrowd"), "directory to store files under")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "escrowd")
	if err := run(logger, *home, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func run(logger log.Logger, home, cmd string, args []string) error {
	switch cmd {
	case "init":
		return server.InitCmd(escrowd.GenInitOptions, logger, home, args)
	case "start":
		return server.StartCmd(escrowd.GenerateApp, logger, home, args)
	case "validate":
		return server.ValidateGenesis(escrowd.Initializers(), args)
	case "version":
		fmt.Println(weave.Version())
		return nil
	case "help":
		flag.Usage()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
