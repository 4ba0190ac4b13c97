package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/pkg/mathutil"
	"github.com/tdex-network/slp-cli-wallet/pkg/slp"
	"github.com/tdex-network/slp-cli-wallet/pkg/wallet"
)

var (
	// ScanDerivationAccounts are the coin types checked by ScanFunds, in
	// order: SLP, BCH, and the bitcoin one used by wallets predating the
	// fork.
	ScanDerivationAccounts = []uint32{
		wallet.SlpCoinType, wallet.BchCoinType, wallet.BtcCoinType,
	}
)

// WalletService is the entry point of every wallet operation.
type WalletService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*WalletInfo, error)
	ListWallets(ctx context.Context) ([]WalletInfo, error)
	RemoveWallet(ctx context.Context, name string) error
	GetAddress(ctx context.Context, name string) (string, error)
	UpdateBalances(ctx context.Context, name string) (*WalletBalance, error)
	Send(
		ctx context.Context, name, address string, amount decimal.Decimal,
	) (*SendResult, error)
	SendAll(ctx context.Context, name, address string) (*SendResult, error)
	SendTokens(
		ctx context.Context, name, tokenID, address string, qty decimal.Decimal,
	) (*SendResult, error)
	BurnTokens(
		ctx context.Context, name, tokenID string, qty decimal.Decimal,
	) (*SendResult, error)
	Sweep(ctx context.Context, req SweepRequest) (*SweepResult, error)
	ScanFunds(ctx context.Context, mnemonic string, testnet bool) ([]ScanResult, error)
	GetDerivation(ctx context.Context, name string) (uint32, error)
	SetDerivation(ctx context.Context, name string, account uint32) error
	SignMessage(
		ctx context.Context, name string, index uint32, message string,
	) (*SignedMessage, error)
}

// WalletServiceOpts ...
type WalletServiceOpts struct {
	Repository domain.WalletRepository
	// Networks maps domain.MainNet and domain.TestNet to their context.
	Networks          map[string]NetworkContext
	FeeRate           decimal.Decimal
	ScanConcurrency   int
	DefaultDerivation uint32
}

func (o WalletServiceOpts) validate() error {
	if o.Repository == nil {
		return fmt.Errorf("missing wallet repository")
	}
	if len(o.Networks) <= 0 {
		return fmt.Errorf("missing network context")
	}
	for name, n := range o.Networks {
		if n.Network == nil || n.Explorer == nil {
			return fmt.Errorf("network context %s is incomplete", name)
		}
	}
	if o.FeeRate.IsNegative() {
		return fmt.Errorf("fee rate must not be negative")
	}
	if o.DefaultDerivation > wallet.MaxHardenedValue {
		return wallet.ErrOutOfRangeDerivationPathAccount
	}
	return nil
}

type walletService struct {
	repository        domain.WalletRepository
	networks          map[string]NetworkContext
	feeRate           decimal.Decimal
	scanConcurrency   int
	defaultDerivation uint32

	lock  *sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWalletService ...
func NewWalletService(opts WalletServiceOpts) (WalletService, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return newWalletService(opts), nil
}

func newWalletService(opts WalletServiceOpts) *walletService {
	feeRate := opts.FeeRate
	if !feeRate.IsPositive() {
		feeRate = mathutil.DefaultFeeRate
	}
	return &walletService{
		repository:        opts.Repository,
		networks:          opts.Networks,
		feeRate:           feeRate,
		scanConcurrency:   opts.ScanConcurrency,
		defaultDerivation: opts.DefaultDerivation,
		lock:              &sync.Mutex{},
		locks:             make(map[string]*sync.Mutex),
	}
}

func (s *walletService) CreateWallet(
	ctx context.Context, req CreateWalletRequest,
) (*WalletInfo, error) {
	if err := domain.ValidateWalletName(req.Name); err != nil {
		return nil, invalid(domain.StageStore, err)
	}
	unlock := s.lockWallet(req.Name)
	defer unlock()

	network := domain.MainNet
	if req.Testnet {
		network = domain.TestNet
	}
	netCtx, err := s.network(network)
	if err != nil {
		return nil, err
	}

	var hdWallet *wallet.Wallet
	if req.Mnemonic == "" {
		hdWallet, err = wallet.NewWallet(wallet.NewWalletOpts{})
	} else {
		hdWallet, err = wallet.NewWalletFromMnemonic(
			wallet.NewWalletFromMnemonicOpts{Mnemonic: req.Mnemonic},
		)
	}
	if err != nil {
		return nil, invalid(domain.StageRefresh, err)
	}
	mnemonic, err := hdWallet.Mnemonic()
	if err != nil {
		return nil, invalid(domain.StageRefresh, err)
	}
	account := s.defaultDerivation
	if req.DerivationAccount != nil {
		account = *req.DerivationAccount
	}

	keyring, err := keyringOf(hdWallet, account, netCtx)
	if err != nil {
		return nil, err
	}
	rootAddress, err := keyring.Address(0)
	if err != nil {
		return nil, invalid(domain.StageStore, err)
	}

	w, err := domain.NewWallet(req.Name, mnemonic, network, account, rootAddress)
	if err != nil {
		return nil, invalid(domain.StageStore, err)
	}
	if err := s.repository.AddWallet(ctx, w); err != nil {
		return nil, storeError(err)
	}

	log.WithFields(log.Fields{
		"wallet":  w.Name,
		"network": w.Network,
	}).Info("wallet created")

	info := walletInfo(w)
	info.Mnemonic = w.Mnemonic
	return &info, nil
}

func (s *walletService) ListWallets(ctx context.Context) ([]WalletInfo, error) {
	wallets, err := s.repository.ListWallets(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	list := make([]WalletInfo, 0, len(wallets))
	for _, w := range wallets {
		list = append(list, walletInfo(w))
	}
	return list, nil
}

func (s *walletService) RemoveWallet(ctx context.Context, name string) error {
	unlock := s.lockWallet(name)
	defer unlock()

	if err := s.repository.DeleteWallet(ctx, name); err != nil {
		return storeError(err)
	}
	log.WithField("wallet", name).Info("wallet removed")
	return nil
}

func (s *walletService) GetAddress(ctx context.Context, name string) (string, error) {
	unlock := s.lockWallet(name)
	defer unlock()

	var address string
	if err := s.repository.UpdateWallet(
		ctx, name, func(w *domain.Wallet) (*domain.Wallet, error) {
			netCtx, err := s.network(w.Network)
			if err != nil {
				return nil, err
			}
			keyring, err := newKeyring(w.Mnemonic, w.DerivationAccount, netCtx)
			if err != nil {
				return nil, err
			}
			if address, err = keyring.Address(w.AllocateAddressIndex()); err != nil {
				return nil, invalid(domain.StageStore, err)
			}
			return w, nil
		},
	); err != nil {
		return "", storeError(err)
	}
	return address, nil
}

func (s *walletService) UpdateBalances(
	ctx context.Context, name string,
) (*WalletBalance, error) {
	unlock := s.lockWallet(name)
	defer unlock()

	op := newOperation("update-balances", name)
	w, _, _, err := s.refresh(ctx, op, name)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}

	balance, unconfirmed := w.Balance()
	return &WalletBalance{
		Name:                 w.Name,
		Network:              w.Network,
		Balance:              balance,
		UnconfirmedBalance:   unconfirmed,
		NextAddressIndex:     w.NextAddressIndex,
		AddressesWithBalance: w.AddressesWithBalance,
		Tokens:               tokenBalancesInfo(w.TokenBalances()),
	}, nil
}

func (s *walletService) Send(
	ctx context.Context, name, address string, amount decimal.Decimal,
) (*SendResult, error) {
	unlock := s.lockWallet(name)
	defer unlock()

	op := newOperation("send", name)
	amountSats, err := mathutil.BCHToSats(amount)
	if err != nil {
		return nil, invalid(domain.StageSelect, err)
	}
	if amountSats < DustLimitSats {
		return nil, domain.Errorf(
			domain.ErrValidation, domain.StageSelect,
			"amount must be at least %d sats", DustLimitSats,
		)
	}

	w, keyring, netCtx, err := s.refresh(ctx, op, name)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}

	selection, err := NewCoinSelector(netCtx.Explorer).Select(
		ctx, amountSats, w.BaseUtxos,
	)
	if err != nil {
		return nil, err
	}
	if selection.Empty() {
		return nil, domain.Errorf(
			domain.ErrInsufficientFunds, domain.StageSelect,
			"no utxo can fund %s BCH", amount.String(),
		)
	}
	op.WithField("utxo", selection.Utxo.Key()).Debug("selected utxo")

	spent := w.Copy()
	changeAddress, err := keyring.Address(spent.AllocateAddressIndex())
	if err != nil {
		return nil, invalid(domain.StageBuild, err)
	}

	return s.buildAndBroadcast(ctx, op, netCtx, spent, TxSpec{
		Shape:         ShapeSimplePay,
		FeeUtxos:      []domain.Utxo{*selection.Utxo},
		Payments:      []Output{{Address: address, ValueSats: amountSats}},
		ChangeAddress: changeAddress,
		Keys:          keyring,
		FeeRate:       s.feeRate,
	})
}

func (s *walletService) SendAll(
	ctx context.Context, name, address string,
) (*SendResult, error) {
	unlock := s.lockWallet(name)
	defer unlock()

	op := newOperation("send-all", name)
	w, keyring, netCtx, err := s.refresh(ctx, op, name)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}

	utxos := NewCoinSelector(netCtx.Explorer).SelectAll(w.BaseUtxos)
	if len(utxos) <= 0 {
		return nil, domain.Errorf(
			domain.ErrInsufficientFunds, domain.StageSelect, "wallet has no BCH utxos",
		)
	}

	return s.buildAndBroadcast(ctx, op, netCtx, w.Copy(), TxSpec{
		Shape:    ShapeConsolidate,
		FeeUtxos: utxos,
		Payments: []Output{{Address: address}},
		Keys:     keyring,
		FeeRate:  s.feeRate,
	})
}

func (s *walletService) SendTokens(
	ctx context.Context, name, tokenID, address string, qty decimal.Decimal,
) (*SendResult, error) {
	return s.spendTokens(ctx, "send-tokens", name, tokenID, address, qty)
}

func (s *walletService) BurnTokens(
	ctx context.Context, name, tokenID string, qty decimal.Decimal,
) (*SendResult, error) {
	return s.spendTokens(ctx, "burn-tokens", name, tokenID, "", qty)
}

// spendTokens sends qty tokens to address, or burns them if address is
// empty.
func (s *walletService) spendTokens(
	ctx context.Context, opName, name, tokenID, address string,
	qty decimal.Decimal,
) (*SendResult, error) {
	unlock := s.lockWallet(name)
	defer unlock()

	op := newOperation(opName, name)
	if !qty.IsPositive() {
		return nil, domain.Errorf(
			domain.ErrValidation, domain.StageLedger, "token quantity must be positive",
		)
	}
	id, err := slp.NormalizeTokenID(tokenID)
	if err != nil {
		return nil, domain.NewError(domain.ErrProtocol, domain.StageLedger, err)
	}

	w, keyring, netCtx, err := s.refresh(ctx, op, name)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}

	tokenUtxos, err := FilterByToken(id, w)
	if err != nil {
		return nil, err
	}

	burn := address == ""
	var amounts []uint64
	if burn {
		amounts, err = BurnAmounts(tokenUtxos, qty)
	} else {
		amounts, err = SendAmounts(tokenUtxos, qty)
	}
	if err != nil {
		return nil, err
	}

	// one token output per marker amount plus the BCH change.
	numTokenOutputs := len(amounts)
	marker, err := slp.BuildSendScript(id, amounts)
	if err != nil {
		return nil, domain.NewError(domain.ErrProtocol, domain.StageLedger, err)
	}
	target := s.estimateTokenTxFee(len(tokenUtxos)+1, numTokenOutputs, len(marker)) +
		int64(numTokenOutputs)*DustLimitSats

	selection, err := NewCoinSelector(netCtx.Explorer).Select(ctx, target, w.BaseUtxos)
	if err != nil {
		return nil, err
	}
	if selection.Empty() {
		return nil, domain.Errorf(
			domain.ErrInsufficientFunds, domain.StageSelect,
			"no utxo can pay %d sats for fee and token outputs", target,
		)
	}

	spent := w.Copy()
	spec := TxSpec{
		Shape:       ShapeTokenSend,
		FeeUtxos:    []domain.Utxo{*selection.Utxo},
		TokenUtxos:  tokenUtxos,
		TokenID:     id,
		TokenAmount: qty,
		Keys:        keyring,
		FeeRate:     s.feeRate,
	}
	if burn {
		spec.Shape = ShapeTokenBurn
	} else {
		spec.Payments = []Output{{Address: address}}
	}
	if burn || len(amounts) > 1 {
		if spec.TokenChangeAddress, err = keyring.Address(
			spent.AllocateAddressIndex(),
		); err != nil {
			return nil, invalid(domain.StageBuild, err)
		}
	}
	if spec.ChangeAddress, err = keyring.Address(spent.AllocateAddressIndex()); err != nil {
		return nil, invalid(domain.StageBuild, err)
	}

	return s.buildAndBroadcast(ctx, op, netCtx, spent, spec)
}

func (s *walletService) Sweep(
	ctx context.Context, req SweepRequest,
) (*SweepResult, error) {
	network := domain.MainNet
	if req.Testnet {
		network = domain.TestNet
	}
	netCtx, err := s.network(network)
	if err != nil {
		return nil, err
	}
	key, err := wallet.NewSingleKey(req.WIF, netCtx.Network)
	if err != nil {
		return nil, invalid(domain.StageRefresh, err)
	}
	address, _ := key.Address(0)

	op := log.WithFields(log.Fields{
		"op_id":   uuid.New().String(),
		"op":      "sweep",
		"address": address,
	})
	funds, err := NewAggregator(netCtx.Explorer, s.scanConcurrency).
		ScanAddress(ctx, 0, address)
	if err != nil {
		return nil, err
	}

	tokens := make([]domain.TokenUtxo, 0, len(funds.TokenUtxos))
	for _, u := range funds.TokenUtxos {
		if !u.IsMintBaton {
			tokens = append(tokens, u)
		}
	}
	result := &SweepResult{
		Address: address,
		Balance: mathutil.SatsToBCH(funds.BalanceSats + funds.UnconfirmedSats),
		Tokens: tokenBalancesInfo(
			(&domain.Wallet{TokenUtxos: tokens}).TokenBalances(),
		),
	}
	if req.BalanceOnly {
		return result, nil
	}

	if len(funds.BaseUtxos)+len(tokens) <= 0 {
		return nil, domain.Errorf(
			domain.ErrInsufficientFunds, domain.StageSelect,
			"nothing to sweep from %s", address,
		)
	}

	tx, err := NewTransactionAssembler(netCtx.Network).Build(ctx, TxSpec{
		Shape:      ShapeSweep,
		FeeUtxos:   funds.BaseUtxos,
		TokenUtxos: tokens,
		Payments:   []Output{{Address: req.Address}},
		Keys:       key,
		FeeRate:    s.feeRate,
	})
	if err != nil {
		return nil, err
	}
	txid, err := s.broadcast(ctx, netCtx, tx)
	if err != nil {
		return nil, err
	}
	op.WithField("txid", txid).Info("funds swept")
	result.TxID = txid
	return result, nil
}

func (s *walletService) ScanFunds(
	ctx context.Context, mnemonic string, testnet bool,
) ([]ScanResult, error) {
	network := domain.MainNet
	if testnet {
		network = domain.TestNet
	}
	netCtx, err := s.network(network)
	if err != nil {
		return nil, err
	}

	aggregator := NewAggregator(netCtx.Explorer, s.scanConcurrency)
	results := make([]ScanResult, 0, len(ScanDerivationAccounts))
	for _, account := range ScanDerivationAccounts {
		keyring, err := newKeyring(mnemonic, account, netCtx)
		if err != nil {
			return nil, err
		}
		funds, err := aggregator.Discover(ctx, keyring)
		if err != nil {
			return nil, err
		}
		results = append(results, ScanResult{
			DerivationAccount: account,
			DerivationPath:    wallet.AccountPath(account).String(),
			HasHistory:        funds.HasHistory(),
			UsedAddresses:     funds.UsedAddresses,
			Balance:           mathutil.SatsToBCH(funds.BalanceSats),
		})
	}
	return results, nil
}

func (s *walletService) GetDerivation(
	ctx context.Context, name string,
) (uint32, error) {
	w, err := s.repository.GetWallet(ctx, name)
	if err != nil {
		return 0, storeError(err)
	}
	return w.DerivationAccount, nil
}

func (s *walletService) SetDerivation(
	ctx context.Context, name string, account uint32,
) error {
	if account > wallet.MaxHardenedValue {
		return invalid(domain.StageStore, wallet.ErrOutOfRangeDerivationPathAccount)
	}
	unlock := s.lockWallet(name)
	defer unlock()

	if err := s.repository.UpdateWallet(
		ctx, name, func(w *domain.Wallet) (*domain.Wallet, error) {
			netCtx, err := s.network(w.Network)
			if err != nil {
				return nil, err
			}
			keyring, err := newKeyring(w.Mnemonic, account, netCtx)
			if err != nil {
				return nil, err
			}
			rootAddress, err := keyring.Address(0)
			if err != nil {
				return nil, invalid(domain.StageStore, err)
			}
			w.SetDerivationAccount(account)
			w.RootAddress = rootAddress
			return w, nil
		},
	); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *walletService) SignMessage(
	ctx context.Context, name string, index uint32, message string,
) (*SignedMessage, error) {
	w, err := s.repository.GetWallet(ctx, name)
	if err != nil {
		return nil, storeError(err)
	}
	netCtx, err := s.network(w.Network)
	if err != nil {
		return nil, err
	}
	keyring, err := newKeyring(w.Mnemonic, w.DerivationAccount, netCtx)
	if err != nil {
		return nil, err
	}
	key, err := keyring.PrivateKey(index)
	if err != nil {
		return nil, invalid(domain.StageSign, err)
	}
	address, err := keyring.Address(index)
	if err != nil {
		return nil, invalid(domain.StageSign, err)
	}
	signature, err := wallet.SignMessage(key, message)
	if err != nil {
		return nil, invalid(domain.StageSign, err)
	}
	return &SignedMessage{
		Address:        address,
		DerivationPath: keyring.DerivationPath(index).String(),
		Message:        message,
		Signature:      signature,
	}, nil
}

// refresh loads the wallet and rescans its funds. The returned wallet is
// not stored yet.
func (s *walletService) refresh(
	ctx context.Context, op *log.Entry, name string,
) (*domain.Wallet, *wallet.Keyring, *NetworkContext, error) {
	w, err := s.repository.GetWallet(ctx, name)
	if err != nil {
		return nil, nil, nil, storeError(err)
	}
	netCtx, err := s.network(w.Network)
	if err != nil {
		return nil, nil, nil, err
	}
	keyring, err := newKeyring(w.Mnemonic, w.DerivationAccount, netCtx)
	if err != nil {
		return nil, nil, nil, err
	}

	refreshed, err := NewAggregator(netCtx.Explorer, s.scanConcurrency).
		Refresh(ctx, w, keyring)
	if err != nil {
		op.WithError(err).Warn("failed to refresh wallet")
		return nil, nil, nil, err
	}

	op.WithFields(log.Fields{
		"balance":      refreshed.BalanceSats,
		"bch_utxos":    len(refreshed.BaseUtxos),
		"token_utxos":  len(refreshed.TokenUtxos),
		"next_address": refreshed.NextAddressIndex,
	}).Debug("wallet refreshed")
	return refreshed, keyring, netCtx, nil
}

// buildAndBroadcast assembles and broadcasts the tx, then stores w, which
// must already account for the change addresses used by spec.
func (s *walletService) buildAndBroadcast(
	ctx context.Context, op *log.Entry, netCtx *NetworkContext,
	w *domain.Wallet, spec TxSpec,
) (*SendResult, error) {
	tx, err := NewTransactionAssembler(netCtx.Network).Build(ctx, spec)
	if err != nil {
		return nil, err
	}
	txid, err := s.broadcast(ctx, netCtx, tx)
	if err != nil {
		op.WithError(err).Warn("transaction rejected")
		return nil, err
	}

	spentKeys := make(map[string]bool)
	for _, u := range spec.FeeUtxos {
		spentKeys[u.Key()] = true
	}
	for _, u := range spec.TokenUtxos {
		spentKeys[u.Key()] = true
	}
	removeSpent(w, spentKeys)

	if err := s.save(ctx, w); err != nil {
		return nil, err
	}

	op.WithFields(log.Fields{
		"txid":  txid,
		"fee":   tx.FeeSats,
		"shape": spec.Shape.String(),
	}).Info("transaction broadcasted")
	return &SendResult{
		TxID:    txid,
		FeeSats: tx.FeeSats,
		Size:    tx.SizeBytes,
		RawHex:  tx.RawHex,
	}, nil
}

func (s *walletService) broadcast(
	ctx context.Context, netCtx *NetworkContext, tx *domain.AssembledTransaction,
) (string, error) {
	txid, err := netCtx.Explorer.BroadcastTransaction(ctx, tx.RawHex)
	if err != nil {
		return "", domain.NewError(domain.ErrBroadcast, domain.StageBroadcast, err)
	}
	return txid, nil
}

func (s *walletService) save(ctx context.Context, w *domain.Wallet) error {
	if err := s.repository.UpdateWallet(
		ctx, w.Name, func(stored *domain.Wallet) (*domain.Wallet, error) {
			// addresses handed out since w was loaded stay reserved.
			w.AdvanceNextAddressIndex(stored.NextAddressIndex)
			return w, nil
		},
	); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *walletService) network(name string) (*NetworkContext, error) {
	netCtx, ok := s.networks[name]
	if !ok {
		return nil, domain.Errorf(
			domain.ErrValidation, domain.StageRefresh, "network %s not configured", name,
		)
	}
	return &netCtx, nil
}

// estimateTokenTxFee returns the fee of a token tx with the given number of
// inputs and token outputs, plus the marker and the BCH change.
func (s *walletService) estimateTokenTxFee(
	numIns, numTokenOutputs, markerSize int,
) int64 {
	ins := make([]int, numIns)
	for i := range ins {
		ins[i] = wallet.P2PKH
	}
	outs := []int{wallet.NullData}
	for i := 0; i < numTokenOutputs+1; i++ {
		outs = append(outs, wallet.P2PKH)
	}
	size := wallet.EstimateTxSize(ins, outs, []int{markerSize})
	return mathutil.FeeForSize(size, s.feeRate)
}

// lockWallet serializes the operations on the same wallet.
func (s *walletService) lockWallet(name string) func() {
	s.lock.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	s.lock.Unlock()

	l.Lock()
	return l.Unlock
}

func newOperation(op, name string) *log.Entry {
	return log.WithFields(log.Fields{
		"op_id":  uuid.New().String(),
		"op":     op,
		"wallet": name,
	})
}

func newKeyring(
	mnemonic string, account uint32, netCtx *NetworkContext,
) (*wallet.Keyring, error) {
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	if err != nil {
		return nil, invalid(domain.StageRefresh, err)
	}
	return keyringOf(w, account, netCtx)
}

func keyringOf(
	w *wallet.Wallet, account uint32, netCtx *NetworkContext,
) (*wallet.Keyring, error) {
	keyring, err := w.Keyring(wallet.KeyringOpts{
		CoinType: account,
		Network:  netCtx.Network,
	})
	if err != nil {
		return nil, invalid(domain.StageRefresh, err)
	}
	return keyring, nil
}

func removeSpent(w *domain.Wallet, spent map[string]bool) {
	base := make([]domain.Utxo, 0, len(w.BaseUtxos))
	for _, u := range w.BaseUtxos {
		if !spent[u.Key()] {
			base = append(base, u)
		}
	}
	tokens := make([]domain.TokenUtxo, 0, len(w.TokenUtxos))
	for _, u := range w.TokenUtxos {
		if !spent[u.Key()] {
			tokens = append(tokens, u)
		}
	}
	w.BaseUtxos = base
	w.TokenUtxos = tokens
}

func invalid(stage string, err error) error {
	return domain.NewError(domain.ErrValidation, stage, err)
}

// storeError maps repository errors to core ones, leaving core errors
// returned by update callbacks untouched.
func storeError(err error) error {
	var coreErr *domain.Error
	if errors.As(err, &coreErr) {
		return err
	}
	if errors.Is(err, domain.ErrWalletNotFound) ||
		errors.Is(err, domain.ErrWalletAlreadyExists) {
		return invalid(domain.StageStore, err)
	}
	return domain.NewError(domain.ErrRetrieval, domain.StageStore, err)
}
