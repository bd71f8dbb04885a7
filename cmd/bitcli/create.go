package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var create = cli.Command{
	Name:   "create",
	Usage:  "create a new wallet and print its mnemonic",
	Action: createAction,
}

func createAction(ctx *cli.Context) error {
	passphrase, err := passphraseFromCtx(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := walletService()
	if err != nil {
		return err
	}
	defer cleanup()

	mnemonic, addr, err := svc.CreateWallet(ctx.Context, passphrase)
	if err != nil {
		return err
	}

	fmt.Println("write down the mnemonic below, it is shown only once")
	fmt.Println()
	fmt.Println(strings.Join(mnemonic, " "))
	fmt.Println()
	fmt.Printf("first receiving address: %s\n", addr)

	return nil
}
