package main

import "github.com/urfave/cli/v2"

var signmessage = cli.Command{
	Name:  "sign-message",
	Usage: "sign a message with the key of one of the wallet addresses",
	Flags: []cli.Flag{
		nameFlag,
		&cli.UintFlag{
			Name:  "index",
			Usage: "the index of the address in the derivation path",
		},
		&cli.StringFlag{
			Name:     "message",
			Usage:    "the message to sign",
			Required: true,
		},
	},
	Action: signMessageAction,
}

func signMessageAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.SignMessage(
		ctx.Context, ctx.String("name"), uint32(ctx.Uint("index")),
		ctx.String("message"),
	)
	if err != nil {
		return err
	}

	printJSON(res)
	return nil
}
