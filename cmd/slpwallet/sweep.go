package main

import (
	"github.com/tdex-network/slp-cli-wallet/internal/core/application"
	"github.com/urfave/cli/v2"
)

var sweep = cli.Command{
	Name:  "sweep",
	Usage: "move all BCH and tokens controlled by a private key to an address",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "wif",
			Usage:    "the private key to sweep, WIF encoded",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "address",
			Usage: "the destination address, required unless --balance-only",
		},
		testnetFlag,
		&cli.BoolFlag{
			Name:  "balance-only",
			Usage: "only print the balance of the key",
		},
	},
	Action: sweepAction,
}

func sweepAction(ctx *cli.Context) error {
	balanceOnly := ctx.Bool("balance-only")
	if !balanceOnly && ctx.String("address") == "" {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.Sweep(ctx.Context, application.SweepRequest{
		WIF:         ctx.String("wif"),
		Address:     ctx.String("address"),
		Testnet:     ctx.Bool("testnet"),
		BalanceOnly: balanceOnly,
	})
	if err != nil {
		return err
	}

	printJSON(res)
	return nil
}
