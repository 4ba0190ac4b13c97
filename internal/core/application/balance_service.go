package application

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/internal/core/ports"
	"github.com/tdex-network/slp-cli-wallet/pkg/explorer"
	"golang.org/x/sync/errgroup"
)

const (
	// ScanBatchSize is the number of consecutive addresses checked at once.
	// A batch without used addresses ends the scan.
	ScanBatchSize = 20
	// DefaultScanConcurrency is the max number of parallel balance queries
	// inside a batch.
	DefaultScanConcurrency = 5
)

// Funds is the result of scanning a set of addresses.
type Funds struct {
	AddressesWithBalance []domain.AddressBalance
	BaseUtxos            []domain.Utxo
	TokenUtxos           []domain.TokenUtxo
	BalanceSats          int64
	UnconfirmedSats      int64
	// UsedAddresses counts the addresses with balance or tx history.
	UsedAddresses int
	// NextAddressIndex is the index following the highest used one, 0 if no
	// address has been used.
	NextAddressIndex uint32
}

// HasHistory ...
func (f *Funds) HasHistory() bool {
	return f.UsedAddresses > 0
}

type addressState struct {
	index   uint32
	address string
	balance *explorer.Balance
	utxos   []explorer.Utxo
}

// Aggregator discovers the used addresses of an HD account with a gap limit
// walk and collects their balances and utxos, classified as plain BCH or
// token ones.
type Aggregator struct {
	explorer    explorer.Service
	concurrency int
}

// NewAggregator returns an aggregator querying the given explorer with at
// most concurrency parallel requests.
func NewAggregator(explorerSvc explorer.Service, concurrency int) *Aggregator {
	if concurrency <= 0 {
		concurrency = DefaultScanConcurrency
	}
	if concurrency > ScanBatchSize {
		concurrency = ScanBatchSize
	}
	return &Aggregator{explorerSvc, concurrency}
}

// Refresh rescans the wallet from index 0 and returns an updated copy of
// it. The given wallet is never modified, on failure no partial result is
// returned.
func (a *Aggregator) Refresh(
	ctx context.Context, w *domain.Wallet, keys ports.KeyProvider,
) (*domain.Wallet, error) {
	funds, err := a.Discover(ctx, keys)
	if err != nil {
		return nil, err
	}

	updated := w.Copy()
	updated.AddressesWithBalance = funds.AddressesWithBalance
	updated.BaseUtxos = funds.BaseUtxos
	updated.TokenUtxos = funds.TokenUtxos
	updated.BalanceSats = funds.BalanceSats
	updated.UnconfirmedSats = funds.UnconfirmedSats
	updated.AdvanceNextAddressIndex(funds.NextAddressIndex)
	updated.UpdatedAt = time.Now().Unix()
	return updated, nil
}

// Discover walks the addresses of the keys in batches of ScanBatchSize
// starting from index 0 and stops after the first batch with no used
// address.
func (a *Aggregator) Discover(
	ctx context.Context, keys ports.KeyProvider,
) (*Funds, error) {
	used := make([]addressState, 0)
	for from := uint32(0); ; from += ScanBatchSize {
		batch, err := a.scanBatch(ctx, keys, from)
		if err != nil {
			return nil, domain.NewError(domain.ErrRetrieval, domain.StageRefresh, err)
		}

		found := 0
		for _, s := range batch {
			if s.balance.HasActivity() {
				used = append(used, s)
				found++
			}
		}

		log.WithFields(log.Fields{
			"from":  from,
			"to":    from + ScanBatchSize - 1,
			"found": found,
		}).Debug("scanned address batch")

		if found == 0 {
			break
		}
	}

	return a.collect(ctx, used)
}

// ScanAddress collects the funds of a single address. The HD index is only
// used to annotate the returned utxos.
func (a *Aggregator) ScanAddress(
	ctx context.Context, index uint32, address string,
) (*Funds, error) {
	state, err := a.scanAddress(ctx, index, address)
	if err != nil {
		return nil, domain.NewError(domain.ErrRetrieval, domain.StageRefresh, err)
	}
	used := make([]addressState, 0, 1)
	if state.balance.HasActivity() {
		used = append(used, *state)
	}
	return a.collect(ctx, used)
}

// scanBatch resolves balance and utxos of the addresses [from, from+B) and
// returns only once every query of the batch completed.
func (a *Aggregator) scanBatch(
	ctx context.Context, keys ports.KeyProvider, from uint32,
) ([]addressState, error) {
	batch := make([]addressState, ScanBatchSize)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)
	for i := 0; i < ScanBatchSize; i++ {
		i := i
		index := from + uint32(i)
		eg.Go(func() error {
			address, err := keys.Address(index)
			if err != nil {
				return err
			}
			state, err := a.scanAddress(gctx, index, address)
			if err != nil {
				return err
			}
			batch[i] = *state
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}

func (a *Aggregator) scanAddress(
	ctx context.Context, index uint32, address string,
) (*addressState, error) {
	balance, err := a.explorer.GetBalance(ctx, address)
	if err != nil {
		return nil, err
	}
	state := &addressState{index: index, address: address, balance: balance}
	if balance.ConfirmedSats == 0 && balance.UnconfirmedSats == 0 {
		return state, nil
	}

	utxos, err := a.explorer.GetUnspents(ctx, address)
	if err != nil {
		return nil, err
	}
	state.utxos = utxos
	return state, nil
}

// collect classifies the utxos of the used addresses and sums up balances.
func (a *Aggregator) collect(
	ctx context.Context, used []addressState,
) (*Funds, error) {
	funds := &Funds{
		AddressesWithBalance: make([]domain.AddressBalance, 0),
		BaseUtxos:            make([]domain.Utxo, 0),
		TokenUtxos:           make([]domain.TokenUtxo, 0),
		UsedAddresses:        len(used),
	}

	utxos := make([]explorer.Utxo, 0)
	indexes := make([]uint32, 0)
	for _, s := range used {
		if s.index+1 > funds.NextAddressIndex {
			funds.NextAddressIndex = s.index + 1
		}
		funds.BalanceSats += s.balance.ConfirmedSats
		funds.UnconfirmedSats += s.balance.UnconfirmedSats
		if s.balance.ConfirmedSats != 0 || s.balance.UnconfirmedSats != 0 {
			funds.AddressesWithBalance = append(
				funds.AddressesWithBalance, domain.AddressBalance{
					HDIndex:         s.index,
					Address:         s.address,
					ConfirmedSats:   s.balance.ConfirmedSats,
					UnconfirmedSats: s.balance.UnconfirmedSats,
					TxCount:         s.balance.TxCount,
				},
			)
		}
		for _, u := range s.utxos {
			u.Address = s.address
			utxos = append(utxos, u)
			indexes = append(indexes, s.index)
		}
	}

	if len(utxos) <= 0 {
		return funds, nil
	}

	details, err := a.explorer.GetTokenDetails(ctx, utxos)
	if err != nil {
		return nil, domain.NewError(domain.ErrRetrieval, domain.StageRefresh, err)
	}
	if len(details) != len(utxos) {
		return nil, domain.Errorf(
			domain.ErrRetrieval, domain.StageRefresh,
			"classified %d utxos out of %d", len(details), len(utxos),
		)
	}

	for i, u := range utxos {
		utxo := domain.Utxo{
			TxID:          u.TxID,
			VOut:          u.VOut,
			ValueSats:     u.ValueSats,
			HDIndex:       indexes[i],
			Address:       u.Address,
			Confirmations: u.Confirmations,
		}
		d := details[i]
		if d == nil {
			funds.BaseUtxos = append(funds.BaseUtxos, utxo)
			continue
		}
		funds.TokenUtxos = append(funds.TokenUtxos, domain.TokenUtxo{
			Utxo:        utxo,
			TokenID:     d.TokenID,
			TokenTicker: d.Ticker,
			TokenName:   d.Name,
			Decimals:    d.Decimals,
			BaseUnits:   d.BaseUnits,
			Quantity:    d.Quantity,
			IsMintBaton: d.IsMintBaton,
		})
	}

	sort.SliceStable(funds.AddressesWithBalance, func(i, j int) bool {
		return funds.AddressesWithBalance[i].HDIndex <
			funds.AddressesWithBalance[j].HDIndex
	})
	return funds, nil
}
