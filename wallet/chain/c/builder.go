// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package c

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/math"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/evm/atomic"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")

	avaxConversionRate = atomic.X2CRate.ToBig()

	_ Builder = (*builder)(nil)
)

// Builder provides a convenient interface for building unsigned C-chain
// atomic transactions.
type Builder interface {
	Context() *Context

	// GetBalance calculates the amount of AVAX, denominated in wei, that this
	// builder has control over.
	GetBalance(
		options ...common.Option,
	) (*big.Int, error)

	// GetImportableBalance calculates the amount of AVAX that this builder
	// could import from the provided chain.
	GetImportableBalance(
		chainID ids.ID,
		options ...common.Option,
	) (uint64, error)

	// NewImportTx creates an import transaction that attempts to consume all
	// the available AVAX UTXOs and import the funds, less the fee, to [to].
	//
	// - [chainID] specifies the chain to be importing funds from.
	// - [to] specifies where to send the imported funds to.
	NewImportTx(
		chainID ids.ID,
		to ethcommon.Address,
		options ...common.Option,
	) (*atomic.UnsignedImportTx, error)

	// NewExportTx creates an export transaction that attempts to send all the
	// provided [outputs] to the requested [chainID]. The exported amount and
	// the fee are debited from the builder's EVM accounts.
	//
	// - [chainID] specifies the chain to be exporting the funds to.
	// - [outputs] specifies the AVAX outputs to send to the [chainID].
	NewExportTx(
		chainID ids.ID,
		outputs []*secp256k1fx.TransferOutput,
		options ...common.Option,
	) (*atomic.UnsignedExportTx, error)
}

type builder struct {
	avaxAddrs set.Set[ids.ShortID]
	ethAddrs  set.Set[ethcommon.Address]
	context   *Context
	backend   Backend
}

// New returns a new transaction builder.
//
//   - [avaxAddrs] is the set of addresses in the AVAX format that the builder
//     assumes can be used when signing the transactions in the future.
//   - [ethAddrs] is the set of addresses in the Eth format that the builder
//     assumes can be used when signing the transactions in the future.
//   - [context] provides the chain's configuration.
//   - [backend] provides the chain's state.
func New(
	avaxAddrs set.Set[ids.ShortID],
	ethAddrs set.Set[ethcommon.Address],
	context *Context,
	backend Backend,
) Builder {
	return &builder{
		avaxAddrs: avaxAddrs,
		ethAddrs:  ethAddrs,
		context:   context,
		backend:   backend,
	}
}

func (b *builder) Context() *Context {
	return b.context
}

func (b *builder) GetBalance(
	options ...common.Option,
) (*big.Int, error) {
	var (
		ops          = common.NewOptions(options)
		ctx          = ops.Context()
		addrs        = ops.EthAddresses(b.ethAddrs)
		totalBalance = new(big.Int)
	)
	for addr := range addrs {
		balance, err := b.backend.Balance(ctx, addr)
		if err != nil {
			return nil, err
		}
		totalBalance.Add(totalBalance, balance)
	}
	return totalBalance, nil
}

func (b *builder) GetImportableBalance(
	chainID ids.ID,
	options ...common.Option,
) (uint64, error) {
	ops := common.NewOptions(options)
	utxos, err := b.backend.UTXOs(ops.Context(), chainID)
	if err != nil {
		return 0, err
	}

	var (
		addrs           = ops.Addresses(b.avaxAddrs)
		minIssuanceTime = ops.MinIssuanceTime()
		avaxAssetID     = b.context.AVAXAssetID
		balance         uint64
	)
	for _, utxo := range utxos {
		amount, _, ok := getSpendableAmount(utxo, addrs, minIssuanceTime, avaxAssetID)
		if !ok {
			continue
		}

		balance, err = math.Add(balance, amount)
		if err != nil {
			return 0, err
		}
	}
	return balance, nil
}

func (b *builder) NewImportTx(
	chainID ids.ID,
	to ethcommon.Address,
	options ...common.Option,
) (*atomic.UnsignedImportTx, error) {
	ops := common.NewOptions(options)
	ctx := ops.Context()
	utxos, err := b.backend.UTXOs(ctx, chainID)
	if err != nil {
		return nil, err
	}

	var (
		addrs           = ops.Addresses(b.avaxAddrs)
		minIssuanceTime = ops.MinIssuanceTime()
		avaxAssetID     = b.context.AVAXAssetID

		importedInputs = make([]*avax.TransferableInput, 0, len(utxos))
		importedAmount uint64
	)
	for _, utxo := range utxos {
		amount, inputSigIndices, ok := getSpendableAmount(utxo, addrs, minIssuanceTime, avaxAssetID)
		if !ok {
			continue
		}

		importedInputs = append(importedInputs, &avax.TransferableInput{
			UTXOID: utxo.UTXOID,
			Asset:  utxo.Asset,
			In: &secp256k1fx.TransferInput{
				Amt: amount,
				Input: secp256k1fx.Input{
					SigIndices: inputSigIndices,
				},
			},
		})

		importedAmount, err = math.Add(importedAmount, amount)
		if err != nil {
			return nil, err
		}
	}
	avax.SortTransferableInputs(importedInputs)

	utx := &atomic.UnsignedImportTx{
		NetworkID:      b.context.NetworkID,
		BlockchainID:   b.context.BlockchainID,
		SourceChain:    chainID,
		ImportedInputs: importedInputs,
	}
	if err := initialize(utx); err != nil {
		return nil, err
	}

	baseFee, err := b.baseFee(ops)
	if err != nil {
		return nil, err
	}

	// The output is not yet part of the serialized tx, so its gas is added
	// explicitly.
	gasUsedWithoutOutput, err := utx.GasUsed(true)
	if err != nil {
		return nil, err
	}
	gasUsedWithOutput, err := math.Add(gasUsedWithoutOutput, atomic.EVMOutputGas)
	if err != nil {
		return nil, err
	}

	txFee, err := atomic.CalculateDynamicFee(gasUsedWithOutput, baseFee)
	if err != nil {
		return nil, err
	}

	if importedAmount <= txFee {
		return nil, fmt.Errorf(
			"%w: imported %d nAVAX does not cover the %d nAVAX fee",
			ErrInsufficientFunds,
			importedAmount,
			txFee,
		)
	}

	utx.Outs = []atomic.EVMOutput{{
		Address: to,
		Amount:  importedAmount - txFee,
		AssetID: avaxAssetID,
	}}
	if err := initialize(utx); err != nil {
		return nil, err
	}
	return utx, utx.Verify(b.context.NetworkID, b.context.BlockchainID)
}

func (b *builder) NewExportTx(
	chainID ids.ID,
	outputs []*secp256k1fx.TransferOutput,
	options ...common.Option,
) (*atomic.UnsignedExportTx, error) {
	var (
		avaxAssetID     = b.context.AVAXAssetID
		exportedOutputs = make([]*avax.TransferableOutput, len(outputs))
		exportedAmount  uint64
		err             error
	)
	for i, output := range outputs {
		exportedOutputs[i] = &avax.TransferableOutput{
			Asset: avax.Asset{ID: avaxAssetID},
			Out:   output,
		}

		exportedAmount, err = math.Add(exportedAmount, output.Amt)
		if err != nil {
			return nil, err
		}
	}
	avax.SortTransferableOutputs(exportedOutputs, atomic.Registry)

	utx := &atomic.UnsignedExportTx{
		NetworkID:        b.context.NetworkID,
		BlockchainID:     b.context.BlockchainID,
		DestinationChain: chainID,
		ExportedOutputs:  exportedOutputs,
	}
	if err := initialize(utx); err != nil {
		return nil, err
	}

	ops := common.NewOptions(options)
	ctx := ops.Context()
	baseFee, err := b.baseFee(ops)
	if err != nil {
		return nil, err
	}

	cost, err := utx.GasUsed(true)
	if err != nil {
		return nil, err
	}

	initialFee, err := atomic.CalculateDynamicFee(cost, baseFee)
	if err != nil {
		return nil, err
	}

	amountToConsume, err := math.Add(exportedAmount, initialFee)
	if err != nil {
		return nil, err
	}

	addrs := ops.EthAddresses(b.ethAddrs).List()
	slices.SortFunc(addrs, func(a, b ethcommon.Address) int {
		return bytes.Compare(a[:], b[:])
	})

	inputs := make([]atomic.EVMInput, 0, len(addrs))
	for _, addr := range addrs {
		if amountToConsume == 0 {
			break
		}

		prevFee, err := atomic.CalculateDynamicFee(cost, baseFee)
		if err != nil {
			return nil, err
		}

		newCost, err := math.Add(cost, atomic.EVMInputGas)
		if err != nil {
			return nil, err
		}

		newFee, err := atomic.CalculateDynamicFee(newCost, baseFee)
		if err != nil {
			return nil, err
		}

		additionalFee := newFee - prevFee

		balance, err := b.backend.Balance(ctx, addr)
		if err != nil {
			return nil, err
		}

		// Only whole nAVAX can be exported.
		avaxBalance := new(big.Int).Div(balance, avaxConversionRate)
		if !avaxBalance.IsUint64() {
			avaxBalance.SetUint64(^uint64(0))
		}
		addrBalance := avaxBalance.Uint64()

		// Skip accounts that can't pay for the input they would add.
		if addrBalance <= additionalFee {
			continue
		}

		cost = newCost
		amountToConsume, err = math.Add(amountToConsume, additionalFee)
		if err != nil {
			return nil, err
		}

		nonce, err := b.backend.Nonce(ctx, addr)
		if err != nil {
			return nil, err
		}

		inputAmount := min(amountToConsume, addrBalance)
		inputs = append(inputs, atomic.EVMInput{
			Address: addr,
			Amount:  inputAmount,
			AssetID: avaxAssetID,
			Nonce:   nonce,
		})
		amountToConsume -= inputAmount
	}

	if amountToConsume > 0 {
		return nil, fmt.Errorf(
			"%w: need %d more nAVAX to export %d nAVAX",
			ErrInsufficientFunds,
			amountToConsume,
			exportedAmount,
		)
	}

	slices.SortFunc(inputs, atomic.EVMInput.Compare)
	utx.Ins = inputs
	if err := initialize(utx); err != nil {
		return nil, err
	}
	return utx, utx.Verify(b.context.NetworkID, b.context.BlockchainID)
}

// baseFee returns the base fee requested by [options], falling back to the
// base fee of the latest block.
func (b *builder) baseFee(options *common.Options) (*big.Int, error) {
	if baseFee := options.BaseFee(nil); baseFee != nil {
		return baseFee, nil
	}
	return b.backend.BaseFee(options.Context())
}

// getSpendableAmount returns the amount and signature indices of [utxo] if it
// is an AVAX UTXO spendable by [addrs].
func getSpendableAmount(
	utxo *avax.UTXO,
	addrs set.Set[ids.ShortID],
	minIssuanceTime uint64,
	avaxAssetID ids.ID,
) (uint64, []uint32, bool) {
	if utxo.Asset.ID != avaxAssetID {
		return 0, nil, false
	}

	out, ok := utxo.Out.(*secp256k1fx.TransferOutput)
	if !ok {
		return 0, nil, false
	}

	inputSigIndices, ok := common.MatchOwners(&out.OutputOwners, addrs, minIssuanceTime)
	if !ok {
		return 0, nil, false
	}
	return out.Amt, inputSigIndices, true
}

func initialize(utx atomic.UnsignedAtomicTx) error {
	unsignedBytes, err := atomic.Codec.MarshalInterface(atomic.CodecVersion, utx)
	if err != nil {
		return fmt.Errorf("couldn't marshal unsigned tx: %w", err)
	}
	utx.SetBytes(unsignedBytes)
	return nil
}

// ImportFee returns the fee of an import of [numInputs] single signature AVAX
// UTXOs from [chainID] at [baseFee]. It allows the fee of an import to be
// known before the UTXOs it consumes have been exported.
func ImportFee(context *Context, chainID ids.ID, numInputs int, baseFee *big.Int) (uint64, error) {
	importedInputs := make([]*avax.TransferableInput, numInputs)
	for i := range importedInputs {
		importedInputs[i] = &avax.TransferableInput{
			UTXOID: avax.UTXOID{OutputIndex: uint32(i)},
			Asset:  avax.Asset{ID: context.AVAXAssetID},
			In: &secp256k1fx.TransferInput{
				Amt: 1,
				Input: secp256k1fx.Input{
					SigIndices: []uint32{0},
				},
			},
		}
	}
	utx := &atomic.UnsignedImportTx{
		NetworkID:      context.NetworkID,
		BlockchainID:   context.BlockchainID,
		SourceChain:    chainID,
		ImportedInputs: importedInputs,
		Outs: []atomic.EVMOutput{{
			Amount:  1,
			AssetID: context.AVAXAssetID,
		}},
	}
	if err := initialize(utx); err != nil {
		return 0, err
	}
	gasUsed, err := utx.GasUsed(true)
	if err != nil {
		return 0, err
	}
	return atomic.CalculateDynamicFee(gasUsed, baseFee)
}
