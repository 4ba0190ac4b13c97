package fullstack

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/slp-cli-wallet/pkg/circuitbreaker"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
	"go.uber.org/ratelimit"
)

const (
	// DefaultRequestTimeout ...
	DefaultRequestTimeout = 15 * time.Second
	// DefaultRateLimit is the number of requests per second allowed by the
	// anonymous tier of the API.
	DefaultRateLimit = 3

	validityCacheTTL = 10 * time.Minute
)

// Opts is the struct given to NewService.
type Opts struct {
	// Endpoint is the base url of the REST API, ie. https://api.fullstack.cash/v3/
	Endpoint string
	// APIToken, if set, is sent as a bearer token.
	APIToken       string
	RequestTimeout time.Duration
	// RateLimit is the max number of requests per second.
	RateLimit int
}

func (o Opts) validate() error {
	if o.Endpoint == "" {
		return fmt.Errorf("endpoint must not be null")
	}
	if _, err := url.ParseRequestURI(o.Endpoint); err != nil {
		return fmt.Errorf("invalid endpoint: %s", err)
	}
	if o.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	if o.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}

type service struct {
	apiURL   string
	apiToken string
	client   *http.Client
	limiter  ratelimit.Limiter
	breaker  *gobreaker.CircuitBreaker

	// tokens holds genesis info (ticker, name, decimals) by token id, it
	// never changes so entries don't expire.
	tokens *cache.Cache
	// txs holds raw tx hex by txid.
	txs *cache.Cache
	// validity holds the slp validity of txids.
	validity *cache.Cache
}

// NewService returns a client of the bch-api REST interface (FullStack.cash)
// as an explorer.Service. Requests are rate limited and go through a circuit
// breaker.
func NewService(opts Opts) (explorer.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = DefaultRateLimit
	}

	return &service{
		apiURL:   strings.TrimSuffix(opts.Endpoint, "/"),
		apiToken: opts.APIToken,
		client:   &http.Client{Timeout: opts.RequestTimeout},
		limiter:  ratelimit.New(opts.RateLimit),
		breaker:  circuitbreaker.NewCircuitBreaker("fullstack"),
		tokens:   cache.New(cache.NoExpiration, 0),
		txs:      cache.New(cache.NoExpiration, 0),
		validity: cache.New(validityCacheTTL, 2*validityCacheTTL),
	}, nil
}
