// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/math"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/stakeable"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs/fee"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
)

var (
	ErrNoChangeAddress   = errors.New("no possible change address")
	ErrUnknownOutputType = errors.New("unknown output type")
	ErrInsufficientFunds = errors.New("insufficient funds")

	_ Builder = (*builder)(nil)
)

// Builder provides a convenient interface for building unsigned P-chain
// transactions.
type Builder interface {
	// Context returns the configuration of the chain that this builder uses to
	// create transactions.
	Context() *Context

	// GetBalance calculates the amount of each asset that this builder has
	// control over.
	GetBalance(
		options ...common.Option,
	) (map[ids.ID]uint64, error)

	// GetImportableBalance calculates the amount of each asset that this
	// builder could import from the provided chain.
	//
	// - [chainID] specifies the chain the funds are from.
	GetImportableBalance(
		chainID ids.ID,
		options ...common.Option,
	) (map[ids.ID]uint64, error)

	// NewBaseTx creates a new simple value transfer.
	//
	// - [outputs] specifies all the recipients and amounts that should be sent
	//   from this transaction.
	NewBaseTx(
		outputs []*avax.TransferableOutput,
		options ...common.Option,
	) (*txs.BaseTx, error)

	// NewImportTx creates an import transaction that attempts to consume all
	// the available UTXOs and import the funds to [to].
	//
	// - [chainID] specifies the chain to be importing funds from.
	// - [to] specifies where to send the imported funds to.
	NewImportTx(
		chainID ids.ID,
		to *secp256k1fx.OutputOwners,
		options ...common.Option,
	) (*txs.ImportTx, error)

	// NewExportTx creates an export transaction that attempts to send all the
	// provided [outputs] to the requested [chainID].
	//
	// - [chainID] specifies the chain to be exporting the funds to.
	// - [outputs] specifies the outputs to send to the [chainID].
	NewExportTx(
		chainID ids.ID,
		outputs []*avax.TransferableOutput,
		options ...common.Option,
	) (*txs.ExportTx, error)
}

// Backend provides the UTXOs a builder may consume. The UTXOs of the P-Chain
// itself are keyed by constants.PlatformChainID.
type Backend interface {
	UTXOs(ctx context.Context, sourceChainID ids.ID) ([]*avax.UTXO, error)
}

type builder struct {
	addrs   set.Set[ids.ShortID]
	context *Context
	backend Backend
}

// New returns a new transaction builder.
//
//   - [addrs] is the set of addresses that the builder assumes can be used when
//     signing the transactions in the future.
//   - [context] provides the chain's configuration.
//   - [backend] provides the chain's state.
func New(
	addrs set.Set[ids.ShortID],
	context *Context,
	backend Backend,
) Builder {
	return &builder{
		addrs:   addrs,
		context: context,
		backend: backend,
	}
}

func (b *builder) Context() *Context {
	return b.context
}

func (b *builder) GetBalance(
	options ...common.Option,
) (map[ids.ID]uint64, error) {
	ops := common.NewOptions(options)
	return b.getBalance(constants.PlatformChainID, ops)
}

func (b *builder) GetImportableBalance(
	chainID ids.ID,
	options ...common.Option,
) (map[ids.ID]uint64, error) {
	ops := common.NewOptions(options)
	return b.getBalance(chainID, ops)
}

func (b *builder) NewBaseTx(
	outputs []*avax.TransferableOutput,
	options ...common.Option,
) (*txs.BaseTx, error) {
	toBurn, err := amountsToBurn(outputs)
	if err != nil {
		return nil, err
	}

	ops := common.NewOptions(options)
	memo := ops.Memo()
	memoComplexity := gas.Dimensions{
		gas.Bandwidth: uint64(len(memo)),
	}
	outputComplexity, err := fee.OutputComplexity(outputs...)
	if err != nil {
		return nil, err
	}
	complexity, err := fee.IntrinsicBaseTxComplexities.Add(
		&memoComplexity,
		&outputComplexity,
	)
	if err != nil {
		return nil, err
	}

	inputs, changeOutputs, err := b.spend(
		toBurn,
		0,
		complexity,
		nil,
		ops,
	)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, changeOutputs...)
	avax.SortTransferableOutputs(outputs, txs.Registry) // sort the outputs

	tx := &txs.BaseTx{BaseTx: avax.BaseTx{
		NetworkID:    b.context.NetworkID,
		BlockchainID: constants.PlatformChainID,
		Ins:          inputs,
		Outs:         outputs,
		Memo:         memo,
	}}
	return tx, initialize(tx)
}

func (b *builder) NewImportTx(
	sourceChainID ids.ID,
	to *secp256k1fx.OutputOwners,
	options ...common.Option,
) (*txs.ImportTx, error) {
	ops := common.NewOptions(options)
	utxos, err := b.backend.UTXOs(ops.Context(), sourceChainID)
	if err != nil {
		return nil, err
	}

	var (
		addrs           = ops.Addresses(b.addrs)
		minIssuanceTime = ops.MinIssuanceTime()
		avaxAssetID     = b.context.AVAXAssetID

		importedInputs  = make([]*avax.TransferableInput, 0, len(utxos))
		importedAmounts = make(map[ids.ID]uint64)
	)
	for _, utxo := range utxos {
		out, ok := utxo.Out.(*secp256k1fx.TransferOutput)
		if !ok {
			continue
		}

		inputSigIndices, ok := common.MatchOwners(&out.OutputOwners, addrs, minIssuanceTime)
		if !ok {
			// We couldn't spend this UTXO, so we skip to the next one
			continue
		}

		importedInputs = append(importedInputs, &avax.TransferableInput{
			UTXOID: utxo.UTXOID,
			Asset:  utxo.Asset,
			In: &secp256k1fx.TransferInput{
				Amt: out.Amt,
				Input: secp256k1fx.Input{
					SigIndices: inputSigIndices,
				},
			},
		})

		assetID := utxo.AssetID()
		newImportedAmount, err := math.Add(importedAmounts[assetID], out.Amt)
		if err != nil {
			return nil, err
		}
		importedAmounts[assetID] = newImportedAmount
	}
	avax.SortTransferableInputs(importedInputs) // sort imported inputs

	if len(importedInputs) == 0 {
		return nil, fmt.Errorf(
			"%w: no UTXOs available to import",
			ErrInsufficientFunds,
		)
	}

	outputs := make([]*avax.TransferableOutput, 0, len(importedAmounts))
	for assetID, amount := range importedAmounts {
		if assetID == avaxAssetID {
			continue
		}

		outputs = append(outputs, &avax.TransferableOutput{
			Asset: avax.Asset{ID: assetID},
			Out: &secp256k1fx.TransferOutput{
				Amt:          amount,
				OutputOwners: *to,
			},
		})
	}

	memo := ops.Memo()
	memoComplexity := gas.Dimensions{
		gas.Bandwidth: uint64(len(memo)),
	}
	inputComplexity, err := fee.InputComplexity(importedInputs...)
	if err != nil {
		return nil, err
	}
	outputComplexity, err := fee.OutputComplexity(outputs...)
	if err != nil {
		return nil, err
	}
	complexity, err := fee.IntrinsicBaseTxComplexities.Add(
		&fee.IntrinsicImportTxComplexities,
		&memoComplexity,
		&inputComplexity,
		&outputComplexity,
	)
	if err != nil {
		return nil, err
	}

	inputs, changeOutputs, err := b.spend(
		map[ids.ID]uint64{},
		importedAmounts[avaxAssetID],
		complexity,
		to,
		ops,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't generate tx inputs/outputs: %w", err)
	}
	outputs = append(outputs, changeOutputs...)

	avax.SortTransferableOutputs(outputs, txs.Registry) // sort imported outputs
	tx := &txs.ImportTx{
		BaseTx: txs.BaseTx{BaseTx: avax.BaseTx{
			NetworkID:    b.context.NetworkID,
			BlockchainID: constants.PlatformChainID,
			Ins:          inputs,
			Outs:         outputs,
			Memo:         memo,
		}},
		SourceChain:    sourceChainID,
		ImportedInputs: importedInputs,
	}
	return tx, initialize(tx)
}

func (b *builder) NewExportTx(
	chainID ids.ID,
	outputs []*avax.TransferableOutput,
	options ...common.Option,
) (*txs.ExportTx, error) {
	toBurn, err := amountsToBurn(outputs)
	if err != nil {
		return nil, err
	}

	ops := common.NewOptions(options)
	memo := ops.Memo()
	memoComplexity := gas.Dimensions{
		gas.Bandwidth: uint64(len(memo)),
	}
	outputComplexity, err := fee.OutputComplexity(outputs...)
	if err != nil {
		return nil, err
	}
	complexity, err := fee.IntrinsicBaseTxComplexities.Add(
		&fee.IntrinsicExportTxComplexities,
		&memoComplexity,
		&outputComplexity,
	)
	if err != nil {
		return nil, err
	}

	inputs, changeOutputs, err := b.spend(
		toBurn,
		0,
		complexity,
		nil,
		ops,
	)
	if err != nil {
		return nil, err
	}

	avax.SortTransferableOutputs(outputs, txs.Registry) // sort exported outputs
	tx := &txs.ExportTx{
		BaseTx: txs.BaseTx{BaseTx: avax.BaseTx{
			NetworkID:    b.context.NetworkID,
			BlockchainID: constants.PlatformChainID,
			Ins:          inputs,
			Outs:         changeOutputs,
			Memo:         memo,
		}},
		DestinationChain: chainID,
		ExportedOutputs:  outputs,
	}
	return tx, initialize(tx)
}

func (b *builder) getBalance(
	chainID ids.ID,
	options *common.Options,
) (
	balance map[ids.ID]uint64,
	err error,
) {
	utxos, err := b.backend.UTXOs(options.Context(), chainID)
	if err != nil {
		return nil, err
	}

	addrs := options.Addresses(b.addrs)
	minIssuanceTime := options.MinIssuanceTime()
	balance = make(map[ids.ID]uint64)

	// Iterate over the UTXOs
	for _, utxo := range utxos {
		out, locktime, err := unwrapOutput(utxo.Out)
		if err != nil {
			return nil, err
		}
		if locktime > minIssuanceTime {
			// This output is currently locked, so this output can't be
			// burned.
			continue
		}

		_, ok := common.MatchOwners(&out.OutputOwners, addrs, minIssuanceTime)
		if !ok {
			// We couldn't spend this UTXO, so we skip to the next one
			continue
		}

		assetID := utxo.AssetID()
		balance[assetID], err = math.Add(balance[assetID], out.Amt)
		if err != nil {
			return nil, err
		}
	}
	return balance, nil
}

// spend takes in the requested burn amounts.
//
//   - [toBurn] maps assetID to the amount of the asset to spend without
//     producing an output. This is typically used for fees. However, it can
//     also be used to consume some of an asset that will be produced in
//     separate outputs, such as ExportedOutputs. Only unlocked UTXOs are able
//     to be burned here.
//   - [excessAVAX] contains the amount of extra AVAX that spend can produce in
//     the change outputs in addition to the consumed and not burned AVAX.
//   - [complexity] contains the currently accrued transaction complexity that
//     will be used to calculate the required fees to be burned.
//   - [ownerOverride] optionally specifies the output owners to use for the
//     unlocked AVAX change output if no additional AVAX was needed to be
//     burned. If this value is nil, the default change owner is used.
func (b *builder) spend(
	toBurn map[ids.ID]uint64,
	excessAVAX uint64,
	complexity gas.Dimensions,
	ownerOverride *secp256k1fx.OutputOwners,
	options *common.Options,
) (
	inputs []*avax.TransferableInput,
	changeOutputs []*avax.TransferableOutput,
	err error,
) {
	utxos, err := b.backend.UTXOs(options.Context(), constants.PlatformChainID)
	if err != nil {
		return nil, nil, err
	}

	addrs := options.Addresses(b.addrs)
	minIssuanceTime := options.MinIssuanceTime()

	addr, ok := addrs.Peek()
	if !ok {
		return nil, nil, ErrNoChangeAddress
	}
	changeOwner := options.ChangeOwner(&secp256k1fx.OutputOwners{
		Threshold: 1,
		Addrs:     []ids.ShortID{addr},
	})
	if ownerOverride == nil {
		ownerOverride = changeOwner
	}

	s := spendHelper{
		weights:  b.context.ComplexityWeights,
		gasPrice: b.context.GasPrice,

		toBurn:     toBurn,
		complexity: complexity,

		inputs:        []*avax.TransferableInput{},
		changeOutputs: []*avax.TransferableOutput{},
	}

	// Locked UTXOs can only be staked, which this builder never does.
	utxosByLocktime := splitByLocktime(utxos, minIssuanceTime)

	// AVAX is handled last to account for fees.
	utxosByAVAXAssetID := splitByAssetID(utxosByLocktime.unlocked, b.context.AVAXAssetID)
	for _, utxo := range utxosByAVAXAssetID.other {
		assetID := utxo.AssetID()
		if !s.shouldConsumeAsset(assetID) {
			continue
		}

		out, _, err := unwrapOutput(utxo.Out)
		if err != nil {
			return nil, nil, err
		}

		inputSigIndices, ok := common.MatchOwners(&out.OutputOwners, addrs, minIssuanceTime)
		if !ok {
			// We couldn't spend this UTXO, so we skip to the next one
			continue
		}

		err = s.addInput(&avax.TransferableInput{
			UTXOID: utxo.UTXOID,
			Asset:  utxo.Asset,
			In: &secp256k1fx.TransferInput{
				Amt: out.Amt,
				Input: secp256k1fx.Input{
					SigIndices: inputSigIndices,
				},
			},
		})
		if err != nil {
			return nil, nil, err
		}

		excess := s.consumeAsset(assetID, out.Amt)
		if excess == 0 {
			continue
		}

		// This input had extra value, so some of it must be returned
		err = s.addChangeOutput(&avax.TransferableOutput{
			Asset: utxo.Asset,
			Out: &secp256k1fx.TransferOutput{
				Amt:          excess,
				OutputOwners: *changeOwner,
			},
		})
		if err != nil {
			return nil, nil, err
		}
	}

	for _, utxo := range utxosByAVAXAssetID.requested {
		requiredFee, err := s.calculateFee()
		if err != nil {
			return nil, nil, err
		}

		// If we don't need to burn additional AVAX and we have consumed enough
		// AVAX to pay the required fee, we should stop consuming UTXOs.
		if !s.shouldConsumeAsset(b.context.AVAXAssetID) && excessAVAX >= requiredFee {
			break
		}

		out, _, err := unwrapOutput(utxo.Out)
		if err != nil {
			return nil, nil, err
		}

		inputSigIndices, ok := common.MatchOwners(&out.OutputOwners, addrs, minIssuanceTime)
		if !ok {
			// We couldn't spend this UTXO, so we skip to the next one
			continue
		}

		err = s.addInput(&avax.TransferableInput{
			UTXOID: utxo.UTXOID,
			Asset:  utxo.Asset,
			In: &secp256k1fx.TransferInput{
				Amt: out.Amt,
				Input: secp256k1fx.Input{
					SigIndices: inputSigIndices,
				},
			},
		})
		if err != nil {
			return nil, nil, err
		}

		excess := s.consumeAsset(b.context.AVAXAssetID, out.Amt)
		excessAVAX, err = math.Add(excessAVAX, excess)
		if err != nil {
			return nil, nil, err
		}

		// If we need to consume additional AVAX, we should be returning the
		// change to the change address.
		ownerOverride = changeOwner
	}

	if err := s.verifyAssetsConsumed(); err != nil {
		return nil, nil, err
	}

	requiredFee, err := s.calculateFee()
	if err != nil {
		return nil, nil, err
	}
	if excessAVAX < requiredFee {
		return nil, nil, fmt.Errorf(
			"%w: provided UTXOs needed %d more nAVAX (%q)",
			ErrInsufficientFunds,
			requiredFee-excessAVAX,
			b.context.AVAXAssetID,
		)
	}

	secpExcessAVAXOutput := &secp256k1fx.TransferOutput{
		Amt:          0, // Populated later if used
		OutputOwners: *ownerOverride,
	}
	excessAVAXOutput := &avax.TransferableOutput{
		Asset: avax.Asset{
			ID: b.context.AVAXAssetID,
		},
		Out: secpExcessAVAXOutput,
	}
	if err := s.addOutputComplexity(excessAVAXOutput); err != nil {
		return nil, nil, err
	}

	requiredFeeWithChange, err := s.calculateFee()
	if err != nil {
		return nil, nil, err
	}
	if excessAVAX > requiredFeeWithChange {
		// It is worth adding the change output
		secpExcessAVAXOutput.Amt = excessAVAX - requiredFeeWithChange
		s.changeOutputs = append(s.changeOutputs, excessAVAXOutput)
	}

	avax.SortTransferableInputs(s.inputs)
	avax.SortTransferableOutputs(s.changeOutputs, txs.Registry)
	return s.inputs, s.changeOutputs, nil
}

func amountsToBurn(outputs []*avax.TransferableOutput) (map[ids.ID]uint64, error) {
	toBurn := map[ids.ID]uint64{}
	for _, out := range outputs {
		assetID := out.AssetID()
		amountToBurn, err := math.Add(toBurn[assetID], out.Out.Amount())
		if err != nil {
			return nil, err
		}
		toBurn[assetID] = amountToBurn
	}
	return toBurn, nil
}

// initialize populates the unsigned bytes of [utx] so that its fee and ID
// can be computed before it is signed.
func initialize(utx txs.UnsignedTx) error {
	bytes, err := txs.Codec.MarshalInterface(txs.CodecVersion, utx)
	if err != nil {
		return fmt.Errorf("couldn't marshal unsigned tx: %w", err)
	}
	utx.SetBytes(bytes)
	return nil
}

type spendHelper struct {
	weights  gas.Dimensions
	gasPrice gas.Price

	toBurn     map[ids.ID]uint64
	complexity gas.Dimensions

	inputs        []*avax.TransferableInput
	changeOutputs []*avax.TransferableOutput
}

func (s *spendHelper) addInput(input *avax.TransferableInput) error {
	newInputComplexity, err := fee.InputComplexity(input)
	if err != nil {
		return err
	}
	s.complexity, err = s.complexity.Add(&newInputComplexity)
	if err != nil {
		return err
	}

	s.inputs = append(s.inputs, input)
	return nil
}

func (s *spendHelper) addChangeOutput(output *avax.TransferableOutput) error {
	s.changeOutputs = append(s.changeOutputs, output)
	return s.addOutputComplexity(output)
}

func (s *spendHelper) addOutputComplexity(output *avax.TransferableOutput) error {
	newOutputComplexity, err := fee.OutputComplexity(output)
	if err != nil {
		return err
	}
	s.complexity, err = s.complexity.Add(&newOutputComplexity)
	return err
}

func (s *spendHelper) shouldConsumeAsset(assetID ids.ID) bool {
	return s.toBurn[assetID] != 0
}

func (s *spendHelper) consumeAsset(assetID ids.ID, amount uint64) uint64 {
	// Burn any value that should be burned
	toBurn := min(
		s.toBurn[assetID], // Amount we still need to burn
		amount,            // Amount available to burn
	)
	s.toBurn[assetID] -= toBurn
	return amount - toBurn
}

func (s *spendHelper) calculateFee() (uint64, error) {
	gas, err := s.complexity.ToGas(s.weights)
	if err != nil {
		return 0, err
	}
	return gas.Cost(s.gasPrice)
}

func (s *spendHelper) verifyAssetsConsumed() error {
	for assetID, amount := range s.toBurn {
		if amount == 0 {
			continue
		}

		return fmt.Errorf(
			"%w: provided UTXOs need %d more units of asset %q",
			ErrInsufficientFunds,
			amount,
			assetID,
		)
	}
	return nil
}

type utxosByLocktime struct {
	unlocked []*avax.UTXO
	locked   []*avax.UTXO
}

// splitByLocktime separates the provided UTXOs into two slices:
// 1. UTXOs that are unlocked with the provided issuance time
// 2. UTXOs that are locked with the provided issuance time
func splitByLocktime(utxos []*avax.UTXO, minIssuanceTime uint64) utxosByLocktime {
	split := utxosByLocktime{
		unlocked: make([]*avax.UTXO, 0, len(utxos)),
		locked:   make([]*avax.UTXO, 0, len(utxos)),
	}
	for _, utxo := range utxos {
		if lockedOut, ok := utxo.Out.(*stakeable.LockOut); ok && minIssuanceTime < lockedOut.Locktime {
			split.locked = append(split.locked, utxo)
		} else {
			split.unlocked = append(split.unlocked, utxo)
		}
	}
	return split
}

type utxosByAssetID struct {
	requested []*avax.UTXO
	other     []*avax.UTXO
}

// splitByAssetID separates the provided UTXOs into two slices:
// 1. UTXOs with the provided assetID
// 2. UTXOs with a different assetID
func splitByAssetID(utxos []*avax.UTXO, assetID ids.ID) utxosByAssetID {
	split := utxosByAssetID{
		requested: make([]*avax.UTXO, 0, len(utxos)),
		other:     make([]*avax.UTXO, 0, len(utxos)),
	}
	for _, utxo := range utxos {
		if utxo.AssetID() == assetID {
			split.requested = append(split.requested, utxo)
		} else {
			split.other = append(split.other, utxo)
		}
	}
	return split
}

// unwrapOutput returns the *secp256k1fx.TransferOutput that was, potentially,
// wrapped by a *stakeable.LockOut.
//
// If the output was stakeable and locked, the locktime is returned. Otherwise,
// the locktime returned will be 0.
//
// If the output is not a, potentially wrapped, *secp256k1fx.TransferOutput, an
// error is returned.
func unwrapOutput(output codec.Packable) (*secp256k1fx.TransferOutput, uint64, error) {
	var locktime uint64
	if lockedOut, ok := output.(*stakeable.LockOut); ok {
		output = lockedOut.TransferableOut
		locktime = lockedOut.Locktime
	}

	unwrappedOutput, ok := output.(*secp256k1fx.TransferOutput)
	if !ok {
		return nil, 0, ErrUnknownOutputType
	}
	return unwrappedOutput, locktime, nil
}
