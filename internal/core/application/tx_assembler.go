package application

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/internal/core/ports"
	"github.com/tdex-network/slp-cli-wallet/pkg/bufferutil"
	"github.com/tdex-network/slp-cli-wallet/pkg/mathutil"
	"github.com/tdex-network/slp-cli-wallet/pkg/wallet"
)

// Shape is the kind of transaction to assemble.
type Shape int

const (
	// ShapeSimplePay pays one or more addresses and sends the rest back.
	ShapeSimplePay Shape = iota
	// ShapeConsolidate spends every given utxo to a single address.
	ShapeConsolidate
	// ShapeTokenSend moves tokens of one class to an address.
	ShapeTokenSend
	// ShapeTokenBurn destroys part or all the tokens of one class.
	ShapeTokenBurn
	// ShapeSweep moves every BCH and token utxo of an imported key to an
	// address.
	ShapeSweep
)

func (s Shape) String() string {
	switch s {
	case ShapeSimplePay:
		return "simple-pay"
	case ShapeConsolidate:
		return "consolidate"
	case ShapeTokenSend:
		return "token-send"
	case ShapeTokenBurn:
		return "token-burn"
	case ShapeSweep:
		return "sweep"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Output is a payment to an address.
type Output struct {
	Address   string
	ValueSats int64
}

// TxSpec describes the transaction to assemble. Payments is interpreted
// by shape: the recipients of a simple pay, the token receiver of a token
// send, the destination of consolidate and sweep (ValueSats ignored).
type TxSpec struct {
	Shape              Shape
	FeeUtxos           []domain.Utxo
	TokenUtxos         []domain.TokenUtxo
	Payments           []Output
	ChangeAddress      string
	TokenChangeAddress string
	TokenID            string
	TokenAmount        decimal.Decimal
	Keys               ports.KeyProvider
	// FeeRate is in sats per byte, defaults to mathutil.DefaultFeeRate.
	FeeRate decimal.Decimal
	// FixedFee, if positive, replaces the size based fee.
	FixedFee int64
}

// TransactionAssembler builds and signs transactions for one network.
type TransactionAssembler struct {
	network *chaincfg.Params
}

// NewTransactionAssembler ...
func NewTransactionAssembler(network *chaincfg.Params) *TransactionAssembler {
	return &TransactionAssembler{network}
}

// Build assembles, signs and serializes the tx described by spec. Every
// check on the TxSpec is made before any key is touched.
func (a *TransactionAssembler) Build(
	ctx context.Context, spec TxSpec,
) (*domain.AssembledTransaction, error) {
	strategy, ok := shapeStrategies[spec.Shape]
	if !ok {
		return nil, domain.Errorf(
			domain.ErrValidation, domain.StageBuild, "unknown tx shape %s", spec.Shape,
		)
	}

	if err := a.validate(spec); err != nil {
		return nil, err
	}
	if err := strategy.validate(spec); err != nil {
		return nil, err
	}
	plan, err := strategy.plan(spec)
	if err != nil {
		return nil, err
	}
	if err := a.validatePlan(plan); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, prevOuts, totalIn, err := a.addInputs(spec)
	if err != nil {
		return nil, err
	}

	fee, remainder, err := a.computeFee(spec, plan, totalIn)
	if err != nil {
		return nil, err
	}

	if err := a.addOutputs(tx, plan, remainder); err != nil {
		return nil, err
	}

	if err := a.sign(tx, spec, prevOuts); err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, tx.SerializeSize()))
	if err := tx.Serialize(buf); err != nil {
		return nil, domain.NewError(domain.ErrValidation, domain.StageBuild, err)
	}

	totalOut := int64(0)
	for _, out := range tx.TxOut {
		totalOut += out.Value
	}
	if totalIn-totalOut != fee {
		log.WithFields(log.Fields{
			"estimated_fee": fee,
			"actual_fee":    totalIn - totalOut,
		}).Debug("dust change added to fee")
	}

	return &domain.AssembledTransaction{
		RawHex:    hex.EncodeToString(buf.Bytes()),
		TxID:      tx.TxHash().String(),
		FeeSats:   totalIn - totalOut,
		SizeBytes: buf.Len(),
	}, nil
}

// validate makes the checks shared by every shape.
func (a *TransactionAssembler) validate(spec TxSpec) error {
	if len(spec.FeeUtxos)+len(spec.TokenUtxos) <= 0 {
		return domain.Errorf(
			domain.ErrValidation, domain.StageBuild, "tx has no inputs",
		)
	}
	if spec.Keys == nil {
		return domain.Errorf(
			domain.ErrValidation, domain.StageBuild, "missing key provider",
		)
	}
	if spec.FixedFee < 0 || spec.FeeRate.IsNegative() {
		return domain.Errorf(
			domain.ErrValidation, domain.StageBuild, "fee must not be negative",
		)
	}

	seen := make(map[string]bool)
	for _, u := range spec.FeeUtxos {
		if seen[u.Key()] {
			return domain.Errorf(
				domain.ErrValidation, domain.StageBuild, "duplicated input %s", u.Key(),
			)
		}
		seen[u.Key()] = true
	}
	for _, u := range spec.TokenUtxos {
		if seen[u.Key()] {
			return domain.Errorf(
				domain.ErrValidation, domain.StageBuild, "duplicated input %s", u.Key(),
			)
		}
		seen[u.Key()] = true
	}

	if len(spec.TokenUtxos) > 0 {
		if _, err := tokenIDOf(spec); err != nil {
			return err
		}
	}
	return nil
}

func (a *TransactionAssembler) validatePlan(plan *txPlan) error {
	addresses := []string{plan.remainderAddress}
	for _, out := range plan.tokenOutputs {
		addresses = append(addresses, out.Address)
	}
	for _, out := range plan.payments {
		if out.ValueSats < DustLimitSats {
			return domain.Errorf(
				domain.ErrValidation, domain.StageBuild,
				"output amount %d is below dust limit %d", out.ValueSats, DustLimitSats,
			)
		}
		addresses = append(addresses, out.Address)
	}
	for _, addr := range addresses {
		if _, err := wallet.DecodeAddress(addr, a.network); err != nil {
			return domain.NewError(
				domain.ErrValidation, domain.StageBuild,
				fmt.Errorf("%w: %q", err, addr),
			)
		}
	}
	return nil
}

// addInputs adds fee utxos first, then token utxos, and returns the
// matching prevouts along with the total input amount.
func (a *TransactionAssembler) addInputs(
	spec TxSpec,
) (*wire.MsgTx, []*wire.TxOut, int64, error) {
	utxos := append(make([]domain.Utxo, 0), spec.FeeUtxos...)
	for _, u := range spec.TokenUtxos {
		utxos = append(utxos, u.Utxo)
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	prevOuts := make([]*wire.TxOut, 0, len(utxos))
	totalIn := int64(0)
	for _, u := range utxos {
		hash, err := bufferutil.TxIDToHash(u.TxID)
		if err != nil {
			return nil, nil, 0, domain.NewError(
				domain.ErrValidation, domain.StageBuild,
				fmt.Errorf("input %s: %w", u.Key(), err),
			)
		}
		addr, err := spec.Keys.Address(u.HDIndex)
		if err != nil {
			return nil, nil, 0, domain.NewError(domain.ErrValidation, domain.StageBuild, err)
		}
		script, err := wallet.PayToAddrScript(addr, a.network)
		if err != nil {
			return nil, nil, 0, domain.NewError(domain.ErrValidation, domain.StageBuild, err)
		}

		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(hash, u.VOut), nil, nil))
		prevOuts = append(prevOuts, wire.NewTxOut(u.ValueSats, script))
		totalIn += u.ValueSats
	}
	return tx, prevOuts, totalIn, nil
}

// computeFee returns the fee and what is left for the change, or the
// destination of consolidate and sweep.
func (a *TransactionAssembler) computeFee(
	spec TxSpec, plan *txPlan, totalIn int64,
) (int64, int64, error) {
	numIns := len(spec.FeeUtxos) + len(spec.TokenUtxos)
	ins := make([]int, numIns)
	for i := range ins {
		ins[i] = wallet.P2PKH
	}

	outs := make([]int, 0)
	nullDataSizes := make([]int, 0)
	if plan.marker != nil {
		outs = append(outs, wallet.NullData)
		nullDataSizes = append(nullDataSizes, len(plan.marker))
	}
	explicitOut := int64(0)
	for _, out := range plan.tokenOutputs {
		outs = append(outs, wallet.P2PKH)
		explicitOut += out.ValueSats
	}
	for _, out := range plan.payments {
		outs = append(outs, wallet.P2PKH)
		explicitOut += out.ValueSats
	}
	outs = append(outs, wallet.P2PKH)

	fee := spec.FixedFee
	if fee <= 0 {
		rate := spec.FeeRate
		if !rate.IsPositive() {
			rate = mathutil.DefaultFeeRate
		}
		size := wallet.EstimateTxSize(ins, outs, nullDataSizes)
		fee = mathutil.FeeForSize(size, rate)
	}

	remainder := totalIn - fee - explicitOut
	if remainder < 1 {
		return 0, 0, domain.Errorf(
			domain.ErrInsufficientFunds, domain.StageBuild,
			"inputs %d sats, outputs %d sats, fee %d sats",
			totalIn, explicitOut, fee,
		)
	}
	if plan.remainderIsPayment && remainder < DustLimitSats {
		return 0, 0, domain.Errorf(
			domain.ErrInsufficientFunds, domain.StageBuild,
			"amount left after fee %d sats is below dust limit", remainder,
		)
	}
	return fee, remainder, nil
}

// addOutputs appends marker, token outputs, payments and finally the
// remainder. A change below the dust limit is left to the fee.
func (a *TransactionAssembler) addOutputs(
	tx *wire.MsgTx, plan *txPlan, remainder int64,
) error {
	if plan.marker != nil {
		tx.AddTxOut(wire.NewTxOut(0, plan.marker))
	}
	outs := append(append(make([]Output, 0), plan.tokenOutputs...), plan.payments...)
	if remainder >= DustLimitSats {
		outs = append(outs, Output{plan.remainderAddress, remainder})
	}
	for _, out := range outs {
		script, err := wallet.PayToAddrScript(out.Address, a.network)
		if err != nil {
			return domain.NewError(domain.ErrValidation, domain.StageBuild, err)
		}
		tx.AddTxOut(wire.NewTxOut(out.ValueSats, script))
	}
	return nil
}

type compressedKey interface {
	Compressed() bool
}

func (a *TransactionAssembler) sign(
	tx *wire.MsgTx, spec TxSpec, prevOuts []*wire.TxOut,
) error {
	indexes := make([]uint32, 0, len(prevOuts))
	for _, u := range spec.FeeUtxos {
		indexes = append(indexes, u.HDIndex)
	}
	for _, u := range spec.TokenUtxos {
		indexes = append(indexes, u.HDIndex)
	}

	keys := make([]*btcec.PrivateKey, 0, len(indexes))
	for _, index := range indexes {
		key, err := spec.Keys.PrivateKey(index)
		if err != nil {
			return domain.NewError(domain.ErrValidation, domain.StageSign, err)
		}
		keys = append(keys, key)
	}

	uncompressed := make(map[int]bool)
	if k, ok := spec.Keys.(compressedKey); ok && !k.Compressed() {
		for i := range keys {
			uncompressed[i] = true
		}
	}

	if err := wallet.SignTransaction(wallet.SignTransactionOpts{
		Tx:               tx,
		PrevOuts:         prevOuts,
		Keys:             keys,
		UncompressedKeys: uncompressed,
	}); err != nil {
		return domain.NewError(domain.ErrValidation, domain.StageSign, err)
	}
	return nil
}
