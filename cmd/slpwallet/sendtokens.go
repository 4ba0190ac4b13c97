package main

import "github.com/urfave/cli/v2"

var tokenIDFlag = &cli.StringFlag{
	Name:     "token-id",
	Usage:    "the id of the token, hex encoded",
	Required: true,
}

var sendtokens = cli.Command{
	Name:  "send-tokens",
	Usage: "send a quantity of SLP tokens to an address",
	Flags: []cli.Flag{
		nameFlag,
		tokenIDFlag,
		addressFlag,
		&cli.StringFlag{
			Name:     "qty",
			Usage:    "the quantity of tokens, in display units",
			Required: true,
		},
	},
	Action: sendTokensAction,
}

func sendTokensAction(ctx *cli.Context) error {
	qty, err := parseAmount(ctx, "qty")
	if err != nil {
		return err
	}

	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.SendTokens(
		ctx.Context, ctx.String("name"), ctx.String("token-id"),
		ctx.String("address"), qty,
	)
	if err != nil {
		return err
	}

	printJSON(res)
	return nil
}
