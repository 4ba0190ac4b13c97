package main

import (
	"github.com/tdex-network/slp-cli-wallet/internal/core/application"
	"github.com/urfave/cli/v2"
)

var createwallet = cli.Command{
	Name:  "create-wallet",
	Usage: "create a new wallet, or restore one from its mnemonic",
	Flags: []cli.Flag{
		nameFlag,
		testnetFlag,
		&cli.StringFlag{
			Name:  "mnemonic",
			Usage: "restore the wallet from this mnemonic instead of generating one",
		},
		&cli.UintFlag{
			Name:  "derivation",
			Usage: "the coin type of the derivation path, defaults to the configured one",
		},
	},
	Action: createWalletAction,
}

func createWalletAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	req := application.CreateWalletRequest{
		Name:     ctx.String("name"),
		Mnemonic: ctx.String("mnemonic"),
		Testnet:  ctx.Bool("testnet"),
	}
	if ctx.IsSet("derivation") {
		account := uint32(ctx.Uint("derivation"))
		req.DerivationAccount = &account
	}

	info, err := svc.CreateWallet(ctx.Context, req)
	if err != nil {
		return err
	}

	printJSON(info)
	return nil
}
