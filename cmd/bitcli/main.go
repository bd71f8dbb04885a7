package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/bitcli/bitcli/config"
	"github.com/bitcli/bitcli/internal/core/application"
	"github.com/bitcli/bitcli/internal/core/domain"
	dbbadger "github.com/bitcli/bitcli/internal/infrastructure/storage/db/badger"
	"github.com/bitcli/bitcli/pkg/explorer"
)

// Exit codes surfaced to scripts wrapping the CLI.
const (
	exitValidation = 1
	exitNetwork    = 2
	exitState      = 3
)

var passphraseFlag = cli.StringFlag{
	Name:    "passphrase",
	Usage:   "passphrase protecting the wallet at rest",
	EnvVars: []string{"BITCLI_PASSPHRASE"},
}

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "bitcli"
	app.Usage = "personal non-custodial Bitcoin wallet"
	app.Flags = []cli.Flag{&passphraseFlag}
	app.Commands = append(
		app.Commands,
		&create,
		&mnemonic,
		&balance,
		&address,
		&send,
		&network,
		&reset,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// walletService wires the storage, the explorer and the application service
// together. The returned cleanup closes the db and releases its directory
// lock, it must be deferred by every command.
func walletService() (*application.WalletService, func(), error) {
	dbManager, err := dbbadger.NewDbManager(config.GetDatadir(), nil)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := dbManager.Close(); err != nil {
			log.WithError(err).Warn("could not close wallet db")
		}
	}

	explorerSvc, err := config.GetExplorer()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	svc := application.NewWalletService(application.NewWalletServiceOpts{
		VaultRepo:          dbbadger.NewVaultRepositoryImpl(dbManager),
		UnspentRepo:        dbbadger.NewUnspentRepositoryImpl(dbManager),
		ExplorerSvc:        explorerSvc,
		Network:            config.GetNetwork(),
		RequestTimeout:     config.GetRequestTimeout(),
		FeeTargetBlocks:    config.GetInt(config.FeeTargetBlocksKey),
		SyncMaxConcurrency: config.GetInt(config.SyncMaxConcurrencyKey),
		SyncMaxRetries:     config.GetInt(config.SyncMaxRetriesKey),
	})

	return svc, cleanup, nil
}

func passphraseFromCtx(ctx *cli.Context) (string, error) {
	passphrase := ctx.String(passphraseFlag.Name)
	if passphrase == "" {
		return "", errors.New(
			"a passphrase is required: use --passphrase or BITCLI_PASSPHRASE",
		)
	}
	return passphrase, nil
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[bitcli] %v\n", err)
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	var rejected *explorer.BroadcastError
	switch {
	case errors.Is(err, domain.ErrCorruptState),
		errors.Is(err, domain.ErrConcurrentAccess):
		return exitState
	case errors.Is(err, domain.ErrNetworkUnavailable),
		errors.Is(err, explorer.ErrNetworkUnavailable),
		errors.As(err, &rejected):
		return exitNetwork
	default:
		return exitValidation
	}
}
