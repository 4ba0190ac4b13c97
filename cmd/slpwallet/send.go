package main

import "github.com/urfave/cli/v2"

var send = cli.Command{
	Name:  "send",
	Usage: "send an amount of BCH to an address",
	Flags: []cli.Flag{
		nameFlag,
		addressFlag,
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the amount in BCH, ie. 0.0001",
			Required: true,
		},
	},
	Action: sendAction,
}

func sendAction(ctx *cli.Context) error {
	amount, err := parseAmount(ctx, "amount")
	if err != nil {
		return err
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.Send(
		ctx.Context, ctx.String("name"), ctx.String("address"), amount,
	)
	if err != nil {
		return err
	}

	printJSON(res)
	return nil
}
