package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "sync and print the confirmed and unconfirmed balances",
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	passphrase, err := passphraseFromCtx(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := walletService()
	if err != nil {
		return err
	}
	defer cleanup()

	b, err := svc.GetBalance(ctx.Context, passphrase)
	if err != nil {
		return err
	}

	fmt.Printf("confirmed:   %s BTC\n", btcString(b.Confirmed))
	fmt.Printf("unconfirmed: %s BTC\n", btcString(b.Unconfirmed))
	fmt.Printf("total:       %s BTC\n", btcString(b.Total()))

	return nil
}
