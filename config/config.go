package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tdex-network/slp-cli-wallet/internal/core/application"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer/fullstack"
	"github.com/tdex-network/slp-cli-wallet/pkg/wallet"
)

const (
	// NetworkKey is the network used when a command doesn't specify one.
	// Either "mainnet" or "testnet"
	NetworkKey = "NETWORK"
	// MainnetExplorerEndpointKey is the base url of the bch-api REST interface
	// for mainnet
	MainnetExplorerEndpointKey = "MAINNET_EXPLORER_ENDPOINT"
	// TestnetExplorerEndpointKey is the base url of the bch-api REST interface
	// for testnet
	TestnetExplorerEndpointKey = "TESTNET_EXPLORER_ENDPOINT"
	// APITokenKey is the optional JWT token of the bch-api paid tiers
	APITokenKey = "API_TOKEN"
	// ExplorerRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// ExplorerRateLimitKey is the max number of requests per second made to
	// the explorer
	ExplorerRateLimitKey = "EXPLORER_RATE_LIMIT"
	// DatadirKey is the local data directory to store the wallets
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// FeeRateKey is the fee rate in sats/byte used for every transaction
	FeeRateKey = "FEE_RATE"
	// ScanConcurrencyKey is the number of addresses queried in parallel while
	// scanning a batch
	ScanConcurrencyKey = "SCAN_CONCURRENCY"
	// DefaultDerivationKey is the coin type assigned to new wallets
	DefaultDerivationKey = "DEFAULT_DERIVATION"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("slp-cli-wallet", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("SLPWALLET")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, domain.MainNet)
	vip.SetDefault(MainnetExplorerEndpointKey, "https://api.fullstack.cash/v3/")
	vip.SetDefault(TestnetExplorerEndpointKey, "https://tapi.fullstack.cash/v3/")
	vip.SetDefault(ExplorerRequestTimeoutKey, 15000)
	vip.SetDefault(ExplorerRateLimitKey, fullstack.DefaultRateLimit)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(FeeRateKey, "1.1")
	vip.SetDefault(ScanConcurrencyKey, application.DefaultScanConcurrency)
	vip.SetDefault(DefaultDerivationKey, domain.DefaultDerivationAccount)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory where wallets are persisted.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetLogLevel ...
func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// GetFeeRate returns the configured fee rate in sats/byte. validate makes
// sure it parses.
func GetFeeRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(GetString(FeeRateKey))
	return rate
}

// GetDefaultDerivation ...
func GetDefaultDerivation() uint32 {
	return uint32(GetInt(DefaultDerivationKey))
}

// IsTestnet returns whether the configured default network is testnet.
func IsTestnet() bool {
	return GetString(NetworkKey) == domain.TestNet
}

// GetNetworkContext returns the chain params and the explorer service for
// mainnet or testnet.
func GetNetworkContext(testnet bool) (application.NetworkContext, error) {
	name, endpointKey := domain.MainNet, MainnetExplorerEndpointKey
	if testnet {
		name, endpointKey = domain.TestNet, TestnetExplorerEndpointKey
	}

	net, err := wallet.NetworkFromName(name)
	if err != nil {
		return application.NetworkContext{}, err
	}

	reqTimeout := time.Duration(GetInt(ExplorerRequestTimeoutKey)) * time.Millisecond
	explorerSvc, err := fullstack.NewService(fullstack.Opts{
		Endpoint:       GetString(endpointKey),
		APIToken:       GetString(APITokenKey),
		RequestTimeout: reqTimeout,
		RateLimit:      GetInt(ExplorerRateLimitKey),
	})
	if err != nil {
		return application.NetworkContext{}, err
	}

	return application.NetworkContext{
		Network:  net,
		Explorer: explorerSvc,
	}, nil
}

// GetNetworks returns the contexts of both networks, keyed by name.
func GetNetworks() (map[string]application.NetworkContext, error) {
	mainnet, err := GetNetworkContext(false)
	if err != nil {
		return nil, fmt.Errorf("mainnet: %s", err)
	}
	testnet, err := GetNetworkContext(true)
	if err != nil {
		return nil, fmt.Errorf("testnet: %s", err)
	}
	return map[string]application.NetworkContext{
		domain.MainNet: mainnet,
		domain.TestNet: testnet,
	}, nil
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	networkName := GetString(NetworkKey)
	if networkName != domain.MainNet && networkName != domain.TestNet {
		return fmt.Errorf(
			"network must be either '%s' or '%s'", domain.MainNet, domain.TestNet,
		)
	}

	for _, key := range []string{
		MainnetExplorerEndpointKey, TestnetExplorerEndpointKey,
	} {
		if _, err := url.ParseRequestURI(GetString(key)); err != nil {
			return fmt.Errorf("%s is not a valid url: %s", key, err)
		}
	}

	if GetInt(ExplorerRequestTimeoutKey) < 0 {
		return fmt.Errorf("explorer request timeout must not be negative")
	}
	if GetInt(ExplorerRateLimitKey) < 0 {
		return fmt.Errorf("explorer rate limit must not be negative")
	}

	level := GetInt(LogLevelKey)
	if level < int(log.PanicLevel) || level > int(log.TraceLevel) {
		return fmt.Errorf(
			"log level must be in range [%d, %d]", log.PanicLevel, log.TraceLevel,
		)
	}

	feeRate, err := decimal.NewFromString(GetString(FeeRateKey))
	if err != nil {
		return fmt.Errorf("fee rate is not a valid number: %s", err)
	}
	if !feeRate.IsPositive() {
		return fmt.Errorf("fee rate must be a positive number")
	}

	if GetInt(ScanConcurrencyKey) <= 0 {
		return fmt.Errorf("scan concurrency must be a positive number")
	}

	derivation := GetInt(DefaultDerivationKey)
	if derivation < 0 || derivation > int(wallet.MaxHardenedValue) {
		return fmt.Errorf(
			"default derivation must be in range [0, %d]", wallet.MaxHardenedValue,
		)
	}
	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
