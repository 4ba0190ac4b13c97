package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var getaddress = cli.Command{
	Name:   "get-address",
	Usage:  "get a new receiving address",
	Flags:  []cli.Flag{nameFlag},
	Action: getAddressAction,
}

func getAddressAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	addr, err := svc.GetAddress(ctx.Context, ctx.String("name"))
	if err != nil {
		return err
	}

	fmt.Println(addr)
	return nil
}
