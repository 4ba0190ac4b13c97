package main

import "github.com/urfave/cli/v2"

var listwallets = cli.Command{
	Name:   "list-wallets",
	Usage:  "list the stored wallets with their last known balance",
	Action: listWalletsAction,
}

func listWalletsAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	wallets, err := svc.ListWallets(ctx.Context)
	if err != nil {
		return err
	}

	printJSON(wallets)
	return nil
}
