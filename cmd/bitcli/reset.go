package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var reset = cli.Command{
	Name:  "reset",
	Usage: "irreversibly delete the wallet state",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "skip the confirmation prompt",
		},
	},
	Action: resetAction,
}

func resetAction(ctx *cli.Context) error {
	if !ctx.Bool("yes") {
		fmt.Println("this deletes the wallet state for good, only the mnemonic can restore it")
		fmt.Println("run again with --yes to confirm")
		return nil
	}

	svc, cleanup, err := walletService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.Reset(ctx.Context); err != nil {
		return err
	}

	fmt.Println("wallet state deleted")

	return nil
}
