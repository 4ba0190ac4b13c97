package main

import "github.com/urfave/cli/v2"

var updatebalances = cli.Command{
	Name:   "update-balances",
	Usage:  "rescan the wallet addresses and print BCH and token balances",
	Flags:  []cli.Flag{nameFlag},
	Action: updateBalancesAction,
}

func updateBalancesAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	balance, err := svc.UpdateBalances(ctx.Context, ctx.String("name"))
	if err != nil {
		return err
	}

	printJSON(balance)
	return nil
}
