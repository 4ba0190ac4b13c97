package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var removewallet = cli.Command{
	Name:   "remove-wallet",
	Usage:  "delete a wallet from the local store",
	Flags:  []cli.Flag{nameFlag},
	Action: removeWalletAction,
}

func removeWalletAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	name := ctx.String("name")
	if err := svc.RemoveWallet(ctx.Context, name); err != nil {
		return err
	}

	fmt.Printf("wallet %s removed\n", name)
	return nil
}
