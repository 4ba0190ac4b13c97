package application

import (
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/tdex-network/slp-cli-wallet/pkg/slp"
)

// txPlan is the outputs layout a shape contributes to the tx. The marker,
// if any, goes at index 0, then token outputs, payments and the remainder.
type txPlan struct {
	marker       []byte
	tokenOutputs []Output
	payments     []Output
	// remainderAddress receives what's left after fee and explicit outputs.
	remainderAddress string
	// remainderIsPayment is set when the remainder is the only BCH payment
	// and thus can't be dropped if below the dust limit.
	remainderIsPayment bool
}

type shapeStrategy struct {
	validate func(spec TxSpec) error
	plan     func(spec TxSpec) (*txPlan, error)
}

var shapeStrategies = map[Shape]shapeStrategy{
	ShapeSimplePay: {
		validate: func(spec TxSpec) error {
			if err := requireNoTokens(spec); err != nil {
				return err
			}
			if len(spec.Payments) <= 0 {
				return invalidSpec("missing payment outputs")
			}
			return requireAddress(spec.ChangeAddress, "change")
		},
		plan: func(spec TxSpec) (*txPlan, error) {
			return &txPlan{
				payments:         spec.Payments,
				remainderAddress: spec.ChangeAddress,
			}, nil
		},
	},
	ShapeConsolidate: {
		validate: func(spec TxSpec) error {
			if err := requireNoTokens(spec); err != nil {
				return err
			}
			return requireSingleDestination(spec)
		},
		plan: func(spec TxSpec) (*txPlan, error) {
			return &txPlan{
				remainderAddress:   spec.Payments[0].Address,
				remainderIsPayment: true,
			}, nil
		},
	},
	ShapeTokenSend: {
		validate: func(spec TxSpec) error {
			if err := requireTokens(spec); err != nil {
				return err
			}
			if err := requireSingleDestination(spec); err != nil {
				return err
			}
			return requireAddress(spec.ChangeAddress, "change")
		},
		plan: func(spec TxSpec) (*txPlan, error) {
			amounts, err := SendAmounts(spec.TokenUtxos, spec.TokenAmount)
			if err != nil {
				return nil, err
			}
			tokenOutputs := []Output{{spec.Payments[0].Address, DustLimitSats}}
			if len(amounts) > 1 {
				if err := requireAddress(spec.TokenChangeAddress, "token change"); err != nil {
					return nil, err
				}
				tokenOutputs = append(
					tokenOutputs, Output{spec.TokenChangeAddress, DustLimitSats},
				)
			}
			return tokenPlan(spec, amounts, tokenOutputs, spec.ChangeAddress, false)
		},
	},
	ShapeTokenBurn: {
		validate: func(spec TxSpec) error {
			if err := requireTokens(spec); err != nil {
				return err
			}
			if len(spec.Payments) > 0 {
				return invalidSpec("token burn takes no payment outputs")
			}
			if err := requireAddress(spec.TokenChangeAddress, "token change"); err != nil {
				return err
			}
			return requireAddress(spec.ChangeAddress, "change")
		},
		plan: func(spec TxSpec) (*txPlan, error) {
			amounts, err := BurnAmounts(spec.TokenUtxos, spec.TokenAmount)
			if err != nil {
				return nil, err
			}
			tokenOutputs := []Output{{spec.TokenChangeAddress, DustLimitSats}}
			return tokenPlan(spec, amounts, tokenOutputs, spec.ChangeAddress, false)
		},
	},
	ShapeSweep: {
		validate: requireSingleDestination,
		plan: func(spec TxSpec) (*txPlan, error) {
			destination := spec.Payments[0].Address
			if len(spec.TokenUtxos) <= 0 {
				return &txPlan{
					remainderAddress:   destination,
					remainderIsPayment: true,
				}, nil
			}

			total := spec.TokenUtxos[0].Quantity
			for _, u := range spec.TokenUtxos[1:] {
				total = total.Add(u.Quantity)
			}
			amounts, err := SendAmounts(spec.TokenUtxos, total)
			if err != nil {
				return nil, err
			}
			tokenOutputs := []Output{{destination, DustLimitSats}}
			return tokenPlan(spec, amounts, tokenOutputs, destination, true)
		},
	},
}

func tokenPlan(
	spec TxSpec, amounts []uint64, tokenOutputs []Output,
	remainderAddress string, remainderIsPayment bool,
) (*txPlan, error) {
	tokenID, err := tokenIDOf(spec)
	if err != nil {
		return nil, err
	}
	marker, err := slp.BuildSendScript(tokenID, amounts)
	if err != nil {
		return nil, domain.NewError(domain.ErrProtocol, domain.StageBuild, err)
	}
	return &txPlan{
		marker:             marker,
		tokenOutputs:       tokenOutputs,
		remainderAddress:   remainderAddress,
		remainderIsPayment: remainderIsPayment,
	}, nil
}

// tokenIDOf returns the token class of the spec, making sure every token
// utxo belongs to it and none is a mint baton.
func tokenIDOf(spec TxSpec) (string, error) {
	tokenID := spec.TokenID
	if tokenID == "" && len(spec.TokenUtxos) > 0 {
		tokenID = spec.TokenUtxos[0].TokenID
	}
	id, err := slp.NormalizeTokenID(tokenID)
	if err != nil {
		return "", domain.NewError(domain.ErrProtocol, domain.StageBuild, err)
	}
	for _, u := range spec.TokenUtxos {
		if u.TokenID != id {
			return "", domain.Errorf(
				domain.ErrProtocol, domain.StageBuild,
				"utxo %s holds token %s, expected %s", u.Key(), u.TokenID, id,
			)
		}
		if u.IsMintBaton {
			return "", domain.Errorf(
				domain.ErrProtocol, domain.StageBuild,
				"utxo %s holds a mint baton", u.Key(),
			)
		}
	}
	return id, nil
}

func requireNoTokens(spec TxSpec) error {
	if len(spec.TokenUtxos) > 0 {
		return domain.Errorf(
			domain.ErrProtocol, domain.StageBuild,
			"%s tx can't spend token utxos", spec.Shape,
		)
	}
	if len(spec.FeeUtxos) <= 0 {
		return invalidSpec("missing inputs")
	}
	return nil
}

func requireTokens(spec TxSpec) error {
	if len(spec.TokenUtxos) <= 0 {
		return invalidSpec("missing token inputs")
	}
	if len(spec.FeeUtxos) <= 0 {
		return invalidSpec("missing inputs to pay the fee")
	}
	return nil
}

func requireSingleDestination(spec TxSpec) error {
	if len(spec.Payments) != 1 {
		return invalidSpec("exactly one destination address is required")
	}
	return nil
}

func requireAddress(addr, kind string) error {
	if addr == "" {
		return invalidSpec("missing " + kind + " address")
	}
	return nil
}

func invalidSpec(reason string) error {
	return domain.Errorf(domain.ErrValidation, domain.StageBuild, "%s", reason)
}
