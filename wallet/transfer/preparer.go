// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

import (
	"context"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting/address"
	"github.com/ava-labs/avalanche-sdk-go/utils/math"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/evm/atomic"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs/fee"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
	"github.com/ava-labs/avalanche-sdk-go/wallet/chain"
	"github.com/ava-labs/avalanche-sdk-go/wallet/chain/c"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"

	ethcommon "github.com/ethereum/go-ethereum/common"

	ptxs "github.com/ava-labs/avalanche-sdk-go/vms/platformvm/txs"
	pbuilder "github.com/ava-labs/avalanche-sdk-go/wallet/chain/p/builder"
)

var _ Preparer = (*preparer)(nil)

// Prepared is an unsigned tx together with the fee it burns.
type Prepared struct {
	Tx         *chain.Tx
	ChainAlias string
	// Fee is denominated in nAVAX.
	Fee uint64
}

// Preparer builds the txs of a transfer. Exports are always owned by the
// sender so that the sender can sign the matching import.
type Preparer interface {
	// PrepareCExportTx exports [amount] nAVAX from the C-Chain to the
	// P-Chain.
	PrepareCExportTx(ctx context.Context, from *Account, amount uint64) (*Prepared, error)
	// PrepareCImportTx imports every UTXO the sender holds in the P-Chain to
	// C-Chain shared memory and credits it to [to].
	PrepareCImportTx(ctx context.Context, from *Account, to ethcommon.Address) (*Prepared, error)
	// PreparePExportTx exports [amount] nAVAX from the P-Chain to the
	// C-Chain.
	PreparePExportTx(ctx context.Context, from *Account, amount uint64) (*Prepared, error)
	// PreparePImportTx imports every UTXO the sender holds in the C-Chain to
	// P-Chain shared memory and sends it to [to].
	PreparePImportTx(ctx context.Context, from *Account, to ids.ShortID) (*Prepared, error)
	// PreparePBaseTx sends [amount] nAVAX to [to] on the P-Chain.
	PreparePBaseTx(ctx context.Context, from *Account, to ids.ShortID, amount uint64) (*Prepared, error)

	// ImportFee is the fee of importing a single UTXO on the chain named
	// [destinationChain] at the current fee state.
	ImportFee(ctx context.Context, destinationChain string) (uint64, error)
}

// PClient is the subset of the P-Chain API used by transfers.
type PClient interface {
	primary.UTXOClient

	GetFeeState(ctx context.Context, options ...rpc.Option) (*platformvm.FeeState, error)
	GetBalance(ctx context.Context, addrs []string, options ...rpc.Option) (*platformvm.GetBalanceResponse, error)
}

type preparer struct {
	context primary.Context
	pClient PClient
	cClient primary.UTXOClient
	evm     c.EthClient
	options []common.Option
}

// NewPreparer returns a Preparer that builds txs from freshly fetched UTXOs
// and fee state. [options] are passed to every UTXO fetch and builder call.
func NewPreparer(
	context primary.Context,
	pClient PClient,
	cClient primary.UTXOClient,
	evm c.EthClient,
	options ...common.Option,
) Preparer {
	return &preparer{
		context: context,
		pClient: pClient,
		cClient: cClient,
		evm:     evm,
		options: options,
	}
}

func (p *preparer) PrepareCExportTx(ctx context.Context, from *Account, amount uint64) (*Prepared, error) {
	builder := p.cBuilder(from, common.NewChainUTXOs(p.context.CBlockchainID, common.NewUTXOs()))
	utx, err := builder.NewExportTx(
		p.context.PBlockchainID,
		[]*secp256k1fx.TransferOutput{{
			Amt:          amount,
			OutputOwners: ownedBy(from.Address),
		}},
		p.opts(ctx)...,
	)
	if err != nil {
		return nil, err
	}
	txFee, err := utx.Burned(p.context.AVAXAssetID)
	if err != nil {
		return nil, err
	}
	tx, err := chain.NewCTx(&atomic.Tx{UnsignedAtomicTx: utx}, nil)
	if err != nil {
		return nil, err
	}
	return &Prepared{
		Tx:         tx,
		ChainAlias: constants.CChainAlias,
		Fee:        txFee,
	}, nil
}

func (p *preparer) PrepareCImportTx(ctx context.Context, from *Account, to ethcommon.Address) (*Prepared, error) {
	addr, err := address.Format(constants.CChainAlias, p.context.HRP, from.Address[:])
	if err != nil {
		return nil, err
	}

	utxos := common.NewUTXOs()
	err = primary.AddAllUTXOs(
		ctx,
		utxos,
		p.cClient,
		atomic.Codec,
		p.context.PBlockchainID,
		p.context.CBlockchainID,
		[]string{addr},
		p.options...,
	)
	if err != nil {
		return nil, err
	}

	chainUTXOs := common.NewChainUTXOs(p.context.CBlockchainID, utxos)
	utx, err := p.cBuilder(from, chainUTXOs).NewImportTx(p.context.PBlockchainID, to, p.opts(ctx)...)
	if err != nil {
		return nil, err
	}
	txFee, err := utx.Burned(p.context.AVAXAssetID)
	if err != nil {
		return nil, err
	}
	owners, err := common.SpentOwners(ctx, chainUTXOs, p.context.PBlockchainID, utx.ImportedInputs)
	if err != nil {
		return nil, err
	}
	tx, err := chain.NewCTx(&atomic.Tx{UnsignedAtomicTx: utx}, owners)
	if err != nil {
		return nil, err
	}
	return &Prepared{
		Tx:         tx,
		ChainAlias: constants.CChainAlias,
		Fee:        txFee,
	}, nil
}

func (p *preparer) PreparePExportTx(ctx context.Context, from *Account, amount uint64) (*Prepared, error) {
	builder, chainUTXOs, err := p.pBuilder(ctx, from)
	if err != nil {
		return nil, err
	}
	utx, err := builder.NewExportTx(
		p.context.CBlockchainID,
		[]*avax.TransferableOutput{p.avaxOutput(amount, from.Address)},
		p.opts(ctx)...,
	)
	if err != nil {
		return nil, err
	}
	return p.preparedP(
		ctx,
		utx,
		chainUTXOs,
		utx.Ins,
		nil,
		utx.Outs,
		utx.ExportedOutputs,
	)
}

func (p *preparer) PreparePImportTx(ctx context.Context, from *Account, to ids.ShortID) (*Prepared, error) {
	builder, chainUTXOs, err := p.pBuilder(ctx, from, p.context.CBlockchainID)
	if err != nil {
		return nil, err
	}
	owner := ownedBy(to)
	utx, err := builder.NewImportTx(p.context.CBlockchainID, &owner, p.opts(ctx)...)
	if err != nil {
		return nil, err
	}
	return p.preparedP(
		ctx,
		utx,
		chainUTXOs,
		utx.Ins,
		utx.ImportedInputs,
		utx.Outs,
	)
}

func (p *preparer) PreparePBaseTx(ctx context.Context, from *Account, to ids.ShortID, amount uint64) (*Prepared, error) {
	builder, chainUTXOs, err := p.pBuilder(ctx, from)
	if err != nil {
		return nil, err
	}
	utx, err := builder.NewBaseTx(
		[]*avax.TransferableOutput{p.avaxOutput(amount, to)},
		p.opts(ctx)...,
	)
	if err != nil {
		return nil, err
	}
	return p.preparedP(
		ctx,
		utx,
		chainUTXOs,
		utx.Ins,
		nil,
		utx.Outs,
	)
}

func (p *preparer) ImportFee(ctx context.Context, destinationChain string) (uint64, error) {
	switch destinationChain {
	case constants.PChainAlias:
		feeState, err := p.pClient.GetFeeState(ctx)
		if err != nil {
			return 0, err
		}
		utx := &ptxs.ImportTx{
			BaseTx: ptxs.BaseTx{BaseTx: avax.BaseTx{
				NetworkID:    p.context.NetworkID,
				BlockchainID: constants.PlatformChainID,
				Outs:         []*avax.TransferableOutput{p.avaxOutput(1, ids.ShortEmpty)},
			}},
			SourceChain: p.context.CBlockchainID,
			ImportedInputs: []*avax.TransferableInput{{
				Asset: avax.Asset{ID: p.context.AVAXAssetID},
				In: &secp256k1fx.TransferInput{
					Amt:   1,
					Input: secp256k1fx.Input{SigIndices: []uint32{0}},
				},
			}},
		}
		return p.pCalculator(feeState.Price).CalculateFee(utx)
	case constants.CChainAlias:
		baseFee, err := c.NewBackend(nil, p.evm).BaseFee(ctx)
		if err != nil {
			return 0, err
		}
		return c.ImportFee(p.cContext(), p.context.PBlockchainID, 1, baseFee)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidChain, destinationChain)
	}
}

func (p *preparer) opts(ctx context.Context) []common.Option {
	return common.UnionOptions(p.options, []common.Option{common.WithContext(ctx)})
}

func (p *preparer) cContext() *c.Context {
	return &c.Context{
		NetworkID:    p.context.NetworkID,
		BlockchainID: p.context.CBlockchainID,
		AVAXAssetID:  p.context.AVAXAssetID,
	}
}

func (p *preparer) cBuilder(from *Account, utxos common.ChainUTXOs) c.Builder {
	return c.New(
		set.Of(from.Address),
		set.Of(from.EthAddress),
		p.cContext(),
		c.NewBackend(utxos, p.evm),
	)
}

func (p *preparer) pCalculator(price gas.Price) *fee.Calculator {
	return fee.NewDynamicCalculator(p.context.PlatformFeeConfig.Weights, price)
}

// pBuilder fetches the current fee state and the sender's UTXOs on the
// P-Chain and in the P-Chain's shared memory with [sourceChainIDs].
func (p *preparer) pBuilder(
	ctx context.Context,
	from *Account,
	sourceChainIDs ...ids.ID,
) (pbuilder.Builder, common.ChainUTXOs, error) {
	addr, err := address.Format(constants.PChainAlias, p.context.HRP, from.Address[:])
	if err != nil {
		return nil, nil, err
	}

	var (
		utxos    = common.NewUTXOs()
		feeState *platformvm.FeeState
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		feeState, err = p.pClient.GetFeeState(egCtx)
		return err
	})
	for _, sourceChainID := range append([]ids.ID{constants.PlatformChainID}, sourceChainIDs...) {
		sourceChainID := sourceChainID
		eg.Go(func() error {
			return primary.AddAllUTXOs(
				egCtx,
				utxos,
				p.pClient,
				ptxs.Codec,
				sourceChainID,
				constants.PlatformChainID,
				[]string{addr},
				p.options...,
			)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	chainUTXOs := common.NewChainUTXOs(constants.PlatformChainID, utxos)
	builder := pbuilder.New(
		set.Of(from.Address),
		&pbuilder.Context{
			NetworkID:         p.context.NetworkID,
			AVAXAssetID:       p.context.AVAXAssetID,
			ComplexityWeights: p.context.PlatformFeeConfig.Weights,
			GasPrice:          feeState.Price,
		},
		chainUTXOs,
	)
	return builder, chainUTXOs, nil
}

// preparedP wraps a P-Chain tx that consumes [ins] from the P-Chain and
// [importedIns] from the C-Chain.
func (p *preparer) preparedP(
	ctx context.Context,
	utx ptxs.UnsignedTx,
	utxos common.ChainUTXOs,
	ins []*avax.TransferableInput,
	importedIns []*avax.TransferableInput,
	outs ...[]*avax.TransferableOutput,
) (*Prepared, error) {
	owners, err := common.SpentOwners(ctx, utxos, constants.PlatformChainID, ins)
	if err != nil {
		return nil, err
	}
	importedOwners, err := common.SpentOwners(ctx, utxos, p.context.CBlockchainID, importedIns)
	if err != nil {
		return nil, err
	}
	maps.Copy(owners, importedOwners)

	allIns := make([]*avax.TransferableInput, 0, len(ins)+len(importedIns))
	allIns = append(allIns, ins...)
	allIns = append(allIns, importedIns...)
	var allOuts []*avax.TransferableOutput
	for _, o := range outs {
		allOuts = append(allOuts, o...)
	}
	txFee, err := burnedAVAX(p.context.AVAXAssetID, allIns, allOuts)
	if err != nil {
		return nil, err
	}

	tx, err := chain.NewPTx(&ptxs.Tx{Unsigned: utx}, owners)
	if err != nil {
		return nil, err
	}
	return &Prepared{
		Tx:         tx,
		ChainAlias: constants.PChainAlias,
		Fee:        txFee,
	}, nil
}

func (p *preparer) avaxOutput(amount uint64, to ids.ShortID) *avax.TransferableOutput {
	return &avax.TransferableOutput{
		Asset: avax.Asset{ID: p.context.AVAXAssetID},
		Out: &secp256k1fx.TransferOutput{
			Amt:          amount,
			OutputOwners: ownedBy(to),
		},
	}
}

func ownedBy(addr ids.ShortID) secp256k1fx.OutputOwners {
	return secp256k1fx.OutputOwners{
		Threshold: 1,
		Addrs:     []ids.ShortID{addr},
	}
}

// burnedAVAX returns the AVAX consumed by [ins] that isn't produced by
// [outs].
func burnedAVAX(avaxAssetID ids.ID, ins []*avax.TransferableInput, outs []*avax.TransferableOutput) (uint64, error) {
	var (
		consumed uint64
		produced uint64
		err      error
	)
	for _, in := range ins {
		if in.AssetID() != avaxAssetID {
			continue
		}
		consumed, err = math.Add(consumed, in.In.Amount())
		if err != nil {
			return 0, err
		}
	}
	for _, out := range outs {
		if out.AssetID() != avaxAssetID {
			continue
		}
		produced, err = math.Add(produced, out.Out.Amount())
		if err != nil {
			return 0, err
		}
	}
	return math.Sub(consumed, produced)
}
