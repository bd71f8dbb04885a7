package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var mnemonic = cli.Command{
	Name:      "mnemonic",
	Usage:     "restore a wallet from an existing mnemonic",
	ArgsUsage: "<phrase>",
	Action:    mnemonicAction,
}

func mnemonicAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("missing mnemonic phrase")
	}
	phrase := strings.Join(ctx.Args().Slice(), " ")

	passphrase, err := passphraseFromCtx(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := walletService()
	if err != nil {
		return err
	}
	defer cleanup()

	addr, err := svc.RestoreWallet(
		ctx.Context, strings.Fields(phrase), passphrase,
	)
	if err != nil {
		return err
	}

	fmt.Println("wallet restored")
	fmt.Printf("first receiving address: %s\n", addr)

	return nil
}
