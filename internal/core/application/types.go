package application

import (
	"github.com/shopspring/decimal"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
)

// CreateWalletRequest ...
type CreateWalletRequest struct {
	Name string
	// Mnemonic restores an existing wallet, a new one is generated if empty.
	Mnemonic string
	Testnet  bool
	// DerivationAccount defaults to the service one if nil.
	DerivationAccount *uint32
}

// WalletInfo is the summary of a stored wallet.
type WalletInfo struct {
	Name              string          `json:"name"`
	Network           string          `json:"network"`
	DerivationAccount uint32          `json:"derivation"`
	RootAddress       string          `json:"rootAddress"`
	NextAddressIndex  uint32          `json:"nextAddress"`
	Balance           decimal.Decimal `json:"balance"`
	// Mnemonic is only returned at creation.
	Mnemonic string `json:"mnemonic,omitempty"`
}

// TokenBalanceInfo ...
type TokenBalanceInfo struct {
	TokenID  string          `json:"tokenId"`
	Ticker   string          `json:"ticker"`
	Name     string          `json:"name"`
	Decimals int             `json:"decimals"`
	Quantity decimal.Decimal `json:"qty"`
}

// WalletBalance is the report of a wallet refresh.
type WalletBalance struct {
	Name                 string                  `json:"name"`
	Network              string                  `json:"network"`
	Balance              decimal.Decimal         `json:"balance"`
	UnconfirmedBalance   decimal.Decimal         `json:"unconfirmedBalance"`
	NextAddressIndex     uint32                  `json:"nextAddress"`
	AddressesWithBalance []domain.AddressBalance `json:"hasBalance"`
	Tokens               []TokenBalanceInfo      `json:"tokens"`
}

// SendResult ...
type SendResult struct {
	TxID    string `json:"txid"`
	FeeSats int64  `json:"fee"`
	Size    int    `json:"size"`
	RawHex  string `json:"hex,omitempty"`
}

// SweepRequest ...
type SweepRequest struct {
	WIF         string
	Address     string
	Testnet     bool
	BalanceOnly bool
}

// SweepResult ...
type SweepResult struct {
	Address string             `json:"address"`
	Balance decimal.Decimal    `json:"balance"`
	Tokens  []TokenBalanceInfo `json:"tokens"`
	TxID    string             `json:"txid,omitempty"`
}

// ScanResult reports the funds found on one derivation account.
type ScanResult struct {
	DerivationAccount uint32          `json:"derivation"`
	DerivationPath    string          `json:"path"`
	HasHistory        bool            `json:"hasHistory"`
	UsedAddresses     int             `json:"usedAddresses"`
	Balance           decimal.Decimal `json:"balance"`
}

// SignedMessage ...
type SignedMessage struct {
	Address        string `json:"address"`
	DerivationPath string `json:"path"`
	Message        string `json:"message"`
	Signature      string `json:"signature"`
}

func tokenBalancesInfo(balances []domain.TokenBalance) []TokenBalanceInfo {
	info := make([]TokenBalanceInfo, 0, len(balances))
	for _, b := range balances {
		info = append(info, TokenBalanceInfo{
			TokenID:  b.TokenID,
			Ticker:   b.Ticker,
			Name:     b.Name,
			Decimals: b.Decimals,
			Quantity: b.Quantity,
		})
	}
	return info
}

func walletInfo(w *domain.Wallet) WalletInfo {
	balance, _ := w.Balance()
	return WalletInfo{
		Name:              w.Name,
		Network:           w.Network,
		DerivationAccount: w.DerivationAccount,
		RootAddress:       w.RootAddress,
		NextAddressIndex:  w.NextAddressIndex,
		Balance:           balance,
	}
}
