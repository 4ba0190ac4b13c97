package main

import "github.com/urfave/cli/v2"

var burntokens = cli.Command{
	Name:  "burn-tokens",
	Usage: "destroy a quantity of SLP tokens",
	Flags: []cli.Flag{
		nameFlag,
		tokenIDFlag,
		&cli.StringFlag{
			Name:     "qty",
			Usage:    "the quantity of tokens to burn, in display units",
			Required: true,
		},
	},
	Action: burnTokensAction,
}

func burnTokensAction(ctx *cli.Context) error {
	qty, err := parseAmount(ctx, "qty")
	if err != nil {
		return err
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.BurnTokens(
		ctx.Context, ctx.String("name"), ctx.String("token-id"), qty,
	)
	if err != nil {
		return err
	}

	printJSON(res)
	return nil
}
