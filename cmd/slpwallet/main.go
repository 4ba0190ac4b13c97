package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/slp-cli-wallet/config"
	"github.com/tdex-network/slp-cli-wallet/internal/core/application"
	dbbadger "github.com/tdex-network/slp-cli-wallet/internal/infrastructure/storage/db/badger"
	"github.com/urfave/cli/v2"
)

var (
	nameFlag = &cli.StringFlag{
		Name:     "name",
		Usage:    "the name of the wallet",
		Required: true,
	}
	testnetFlag = &cli.BoolFlag{
		Name:  "testnet",
		Usage: "use the testnet network",
		Value: config.IsTestnet(),
	}
	addressFlag = &cli.StringFlag{
		Name:     "address",
		Usage:    "the destination address",
		Required: true,
	}
)

func main() {
	log.SetLevel(config.GetLogLevel())

	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "slpwallet"
	app.Usage = "HD wallet for Bitcoin Cash and SLP tokens"
	app.Commands = append(
		app.Commands,
		&createwallet,
		&listwallets,
		&removewallet,
		&getaddress,
		&updatebalances,
		&send,
		&sendall,
		&sendtokens,
		&burntokens,
		&sweep,
		&scanfunds,
		&derivation,
		&signmessage,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

// getWalletService opens the wallet db and returns the service built from
// the current config. The returned func releases the db.
func getWalletService() (application.WalletService, func(), error) {
	repoManager, err := dbbadger.NewRepoManager(
		config.GetDbDir(), dbbadger.NewLogger(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open wallet db: %w", err)
	}
	cleanup := func() { repoManager.Close() }

	networks, err := config.GetNetworks()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	svc, err := application.NewWalletService(application.WalletServiceOpts{
		Repository:        repoManager.WalletRepository(),
		Networks:          networks,
		FeeRate:           config.GetFeeRate(),
		ScanConcurrency:   config.GetInt(config.ScanConcurrencyKey),
		DefaultDerivation: config.GetDefaultDerivation(),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func parseAmount(ctx *cli.Context, flag string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(ctx.String(flag))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", flag, err)
	}
	return amount, nil
}

func printJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonBytes))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[slpwallet] %v\n", err)
	}
	os.Exit(1)
}
