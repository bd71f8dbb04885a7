package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var address = cli.Command{
	Name:   "address",
	Usage:  "print the current unused receiving address",
	Action: addressAction,
}

func addressAction(ctx *cli.Context) error {
	passphrase, err := passphraseFromCtx(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := walletService()
	if err != nil {
		return err
	}
	defer cleanup()

	addr, err := svc.NewAddress(ctx.Context, passphrase)
	if err != nil {
		return err
	}

	fmt.Println(addr)

	return nil
}
