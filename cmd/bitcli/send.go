package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var send = cli.Command{
	Name:      "send",
	Usage:     "send an amount of BTC to an address",
	ArgsUsage: "<address> <amount>",
	Action:    sendAction,
}

func sendAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("usage: send <address> <amount>")
	}
	destination := ctx.Args().Get(0)
	amount, err := parseBTCAmount(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	passphrase, err := passphraseFromCtx(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := walletService()
	if err != nil {
		return err
	}
	defer cleanup()

	txid, err := svc.SendToAddress(ctx.Context, passphrase, destination, amount)
	if err != nil {
		return err
	}

	fmt.Printf("transaction broadcast: %s\n", txid)

	return nil
}
