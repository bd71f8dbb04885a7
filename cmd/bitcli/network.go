package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var network = cli.Command{
	Name:   "network",
	Usage:  "print the network the wallet operates on",
	Action: networkAction,
}

func networkAction(ctx *cli.Context) error {
	svc, cleanup, err := walletService()
	if err != nil {
		return err
	}
	defer cleanup()

	net, err := svc.GetNetwork(ctx.Context)
	if err != nil {
		return err
	}

	fmt.Println(net)

	return nil
}
