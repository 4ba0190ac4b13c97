package main

import "github.com/urfave/cli/v2"

var sendall = cli.Command{
	Name:   "send-all",
	Usage:  "send the whole spendable BCH balance to an address",
	Flags:  []cli.Flag{nameFlag, addressFlag},
	Action: sendAllAction,
}

func sendAllAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.SendAll(ctx.Context, ctx.String("name"), ctx.String("address"))
	if err != nil {
		return err
	}

	printJSON(res)
	return nil
}
