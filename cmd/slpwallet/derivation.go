package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var derivation = cli.Command{
	Name:  "derivation",
	Usage: "get or set the coin type of the wallet derivation path",
	Flags: []cli.Flag{
		nameFlag,
		&cli.UintFlag{
			Name:  "save",
			Usage: "the coin type to set, ie. 245 (SLP), 145 (BCH) or 0",
		},
	},
	Action: derivationAction,
}

func derivationAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	name := ctx.String("name")
	if ctx.IsSet("save") {
		account := uint32(ctx.Uint("save"))
		if err := svc.SetDerivation(ctx.Context, name, account); err != nil {
			return err
		}
		fmt.Printf("derivation path of wallet %s set to m/44'/%d'/0'\n", name, account)
		return nil
	}

	account, err := svc.GetDerivation(ctx.Context, name)
	if err != nil {
		return err
	}

	fmt.Println(account)
	return nil
}
