package main

import "github.com/urfave/cli/v2"

var scanfunds = cli.Command{
	Name:  "scan-funds",
	Usage: "look for funds of a mnemonic on the known derivation paths",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "mnemonic",
			Usage:    "the mnemonic to scan",
			Required: true,
		},
		testnetFlag,
	},
	Action: scanFundsAction,
}

func scanFundsAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.ScanFunds(ctx.Context, ctx.String("mnemonic"), ctx.Bool("testnet"))
	if err != nil {
		return err
	}

	printJSON(res)
	return nil
}
