// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting/address"
	"github.com/ava-labs/avalanche-sdk-go/utils/math"
	"github.com/ava-labs/avalanche-sdk-go/utils/units"
	"github.com/ava-labs/avalanche-sdk-go/wallet/chain/c"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
	"github.com/ava-labs/avalanche-sdk-go/wallet/xp"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// EVMTransferGas is the gas used by a value transfer to an address without
// code.
const EVMTransferGas uint64 = 21_000

var errNotSigned = errors.New("signing returned no tx")

// TransferPToP sends AVAX between two P-Chain addresses with a single base
// tx.
func (t *Transferer) TransferPToP(ctx context.Context, params TransferParams) (_ *Result, err error) {
	from, err := t.sender(params)
	if err != nil {
		return nil, err
	}
	to, err := t.pRecipient(params.To)
	if err != nil {
		return nil, err
	}
	amount, err := nanoAvax(params.Amount)
	if err != nil {
		return nil, err
	}

	ctx, p, done := t.start(ctx, constants.PChainAlias, constants.PChainAlias)
	defer func() {
		done(err)
	}()

	var (
		prepared *Prepared
		balance  uint64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		prepared, err = t.preparer.PreparePBaseTx(egCtx, from, to, amount)
		return err
	})
	eg.Go(func() error {
		var err error
		balance, err = t.pBalance(egCtx, from)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if balance < amount {
		return nil, fmt.Errorf("%w: balance of %d nAVAX is less than the amount of %d nAVAX",
			ErrInsufficientBalance,
			balance,
			amount,
		)
	}
	if prepared.Fee > amount {
		return nil, fmt.Errorf("%w: fee of %d nAVAX exceeds the amount of %d nAVAX",
			ErrInsufficientFee,
			prepared.Fee,
			amount,
		)
	}
	p.advance(FeeValidated)

	txID, err := t.issue(ctx, p, from, prepared, ExportSigned, ExportBroadcast)
	if err != nil {
		return nil, err
	}
	if err := t.wallet.WaitForTx(ctx, txID, constants.PChainAlias, t.options...); err != nil {
		return nil, err
	}
	p.advance(ExportAccepted)

	result := &Result{}
	result.add(txID.String(), constants.PChainAlias)
	return result, nil
}

// TransferCToP exports AVAX from the sender's C-Chain account and imports it
// to a P-Chain address.
func (t *Transferer) TransferCToP(ctx context.Context, params TransferParams) (*Result, error) {
	from, err := t.sender(params)
	if err != nil {
		return nil, err
	}
	to, err := t.pRecipient(params.To)
	if err != nil {
		return nil, err
	}
	amount, err := nanoAvax(params.Amount)
	if err != nil {
		return nil, err
	}
	return t.crossChain(ctx, &crossChain{
		source:      constants.CChainAlias,
		destination: constants.PChainAlias,
		amount:      amount,
		prepareExport: func(ctx context.Context) (*Prepared, error) {
			return t.preparer.PrepareCExportTx(ctx, from, amount)
		},
		balance: func(ctx context.Context) (uint64, error) {
			return t.cBalance(ctx, from)
		},
		prepareImport: func(ctx context.Context) (*Prepared, error) {
			return t.preparer.PreparePImportTx(ctx, from, to)
		},
		from: from,
	})
}

// TransferPToC exports AVAX from the sender's P-Chain address and imports it
// to a C-Chain account.
func (t *Transferer) TransferPToC(ctx context.Context, params TransferParams) (*Result, error) {
	from, err := t.sender(params)
	if err != nil {
		return nil, err
	}
	to, err := t.cRecipient(params.To)
	if err != nil {
		return nil, err
	}
	amount, err := nanoAvax(params.Amount)
	if err != nil {
		return nil, err
	}
	return t.crossChain(ctx, &crossChain{
		source:      constants.PChainAlias,
		destination: constants.CChainAlias,
		amount:      amount,
		prepareExport: func(ctx context.Context) (*Prepared, error) {
			return t.preparer.PreparePExportTx(ctx, from, amount)
		},
		balance: func(ctx context.Context) (uint64, error) {
			return t.pBalance(ctx, from)
		},
		prepareImport: func(ctx context.Context) (*Prepared, error) {
			return t.preparer.PrepareCImportTx(ctx, from, to)
		},
		from: from,
	})
}

type crossChain struct {
	source      string
	destination string
	// amount is denominated in nAVAX.
	amount uint64
	from   *Account

	prepareExport func(context.Context) (*Prepared, error)
	// balance returns the sender's balance on the source chain in nAVAX.
	balance       func(context.Context) (uint64, error)
	prepareImport func(context.Context) (*Prepared, error)
}

func (t *Transferer) crossChain(ctx context.Context, cc *crossChain) (_ *Result, err error) {
	ctx, p, done := t.start(ctx, cc.source, cc.destination)
	defer func() {
		done(err)
	}()

	var (
		export    *Prepared
		importFee uint64
		balance   uint64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		export, err = cc.prepareExport(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		importFee, err = t.preparer.ImportFee(egCtx, cc.destination)
		return err
	})
	eg.Go(func() error {
		var err error
		balance, err = cc.balance(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := validateFees(cc.amount, export.Fee, importFee, balance); err != nil {
		return nil, err
	}
	p.advance(FeeValidated)
	p.log.Info("transfer fees validated",
		zap.Uint64("amount", cc.amount),
		zap.Uint64("exportFee", export.Fee),
		zap.Uint64("importFee", importFee),
	)

	exportID, err := t.issue(ctx, p, cc.from, export, ExportSigned, ExportBroadcast)
	if err != nil {
		return nil, err
	}
	exportCompleted := func(err error) error {
		return &ExportCompletedError{
			ExportTxID:       exportID,
			SourceChain:      cc.source,
			DestinationChain: cc.destination,
			Stage:            p.state,
			Err:              err,
		}
	}

	if err := t.wallet.WaitForTx(ctx, exportID, cc.source, t.options...); err != nil {
		if errors.Is(err, xp.ErrTxFailed) {
			return nil, fmt.Errorf("export %s: %w", exportID, err)
		}
		return nil, exportCompleted(err)
	}
	p.advance(ExportAccepted)

	imp, err := cc.prepareImport(ctx)
	if err != nil {
		return nil, exportCompleted(err)
	}
	p.advance(ImportBuilt)

	importID, err := t.issue(ctx, p, cc.from, imp, ImportSigned, ImportBroadcast)
	if err != nil {
		return nil, exportCompleted(err)
	}
	if err := t.wallet.WaitForTx(ctx, importID, cc.destination, t.options...); err != nil {
		return nil, exportCompleted(fmt.Errorf("import %s: %w", importID, err))
	}
	p.advance(ImportAccepted)

	result := &Result{}
	result.add(exportID.String(), cc.source)
	result.add(importID.String(), cc.destination)
	return result, nil
}

// validateFees checks that the sender can pay for the export and that the
// amount covers both fees. All values are denominated in nAVAX.
func validateFees(amount, exportFee, importFee, balance uint64) error {
	required, err := math.Add(amount, exportFee)
	if err != nil {
		return err
	}
	if balance < required {
		return fmt.Errorf("%w: balance of %d nAVAX is less than the amount of %d nAVAX plus the export fee of %d nAVAX",
			ErrInsufficientBalance,
			balance,
			amount,
			exportFee,
		)
	}
	if exportFee > amount {
		return fmt.Errorf("%w: export fee of %d nAVAX exceeds the amount of %d nAVAX",
			ErrInsufficientFee,
			exportFee,
			amount,
		)
	}
	totalFee, err := math.Add(exportFee, importFee)
	if err != nil {
		return err
	}
	if totalFee > amount {
		return fmt.Errorf("%w: export fee of %d nAVAX plus import fee of %d nAVAX exceeds the amount of %d nAVAX",
			ErrInsufficientFee,
			exportFee,
			importFee,
			amount,
		)
	}
	return nil
}

// issue signs and issues [prepared], advancing [p] to [signed] and then to
// [broadcast].
func (t *Transferer) issue(
	ctx context.Context,
	p *progress,
	from *Account,
	prepared *Prepared,
	signed State,
	broadcast State,
) (ids.ID, error) {
	req := xp.SignRequest{
		Tx:         prepared.Tx,
		ChainAlias: prepared.ChainAlias,
		Signer:     from.Signer,
	}

	var txID ids.ID
	if _, ok := from.Signer.(*xp.RemoteSigner); ok {
		res, err := t.wallet.SendXPTransaction(ctx, &xp.SendRequest{SignRequest: req}, t.options...)
		if err != nil {
			return ids.Empty, err
		}
		p.advance(signed)
		txID = res.TxHash
	} else {
		res, err := t.wallet.SignXPTransaction(ctx, &req)
		if err != nil {
			return ids.Empty, err
		}
		if res.Tx == nil {
			return ids.Empty, errNotSigned
		}
		p.advance(signed)

		txID, err = t.wallet.IssueTx(ctx, prepared.ChainAlias, res.Tx.Bytes(), t.options...)
		if err != nil {
			return ids.Empty, err
		}
	}
	p.advance(broadcast)
	p.log.Info("issued transfer tx",
		zap.String("chain", prepared.ChainAlias),
		zap.Stringer("txID", txID),
		zap.Uint64("fee", prepared.Fee),
	)
	t.metrics.issued.WithLabelValues(prepared.ChainAlias).Inc()
	return txID, nil
}

// TransferCToC sends AVAX between two C-Chain accounts with a native value
// transfer.
func (t *Transferer) TransferCToC(ctx context.Context, params TransferParams) (_ *Result, err error) {
	from, err := t.sender(params)
	if err != nil {
		return nil, err
	}
	to, err := t.cRecipient(params.To)
	if err != nil {
		return nil, err
	}

	ctx, p, done := t.start(ctx, constants.CChainAlias, constants.CChainAlias)
	defer func() {
		done(err)
	}()

	local, isLocal := from.Signer.(*xp.LocalSigner)
	var (
		balance *big.Int
		baseFee *big.Int
		tip     *big.Int
		chainID *big.Int
		nonce   uint64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		balance, err = t.evm.BalanceAt(egCtx, from.EthAddress, nil)
		return err
	})
	eg.Go(func() error {
		var err error
		baseFee, err = c.NewBackend(nil, t.evm).BaseFee(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		tip, err = t.evm.SuggestGasTipCap(egCtx)
		return err
	})
	if isLocal {
		eg.Go(func() error {
			var err error
			chainID, err = t.evm.ChainID(egCtx)
			return err
		})
		eg.Go(func() error {
			var err error
			nonce, err = t.evm.NonceAt(egCtx, from.EthAddress, nil)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	feeCap := new(big.Int).Lsh(baseFee, 1)
	feeCap.Add(feeCap, tip)
	maxFee := new(big.Int).Mul(feeCap, new(big.Int).SetUint64(EVMTransferGas))
	required := new(big.Int).Add(params.Amount, maxFee)
	if balance.Cmp(required) < 0 {
		return nil, fmt.Errorf("%w: balance of %s wei is less than the amount of %s wei plus the max fee of %s wei",
			ErrInsufficientBalance,
			balance,
			params.Amount,
			maxFee,
		)
	}
	p.advance(FeeValidated)

	var txHash ethcommon.Hash
	if isLocal {
		tx, err := local.SignEVMTx(types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       EVMTransferGas,
			To:        &to,
			Value:     params.Amount,
		}), chainID)
		if err != nil {
			return nil, err
		}
		p.advance(ExportSigned)
		if err := t.evm.SendTransaction(ctx, tx); err != nil {
			return nil, err
		}
		txHash = tx.Hash()
	} else {
		remote, ok := from.Signer.(*xp.RemoteSigner)
		if !ok {
			return nil, xp.ErrNoSigner
		}
		txHash, err = remote.SendEVMTransaction(ctx, &xp.EVMTransactionArgs{
			From:  from.EthAddress,
			To:    &to,
			Value: (*hexutil.Big)(params.Amount),
		})
		if err != nil {
			return nil, err
		}
		p.advance(ExportSigned)
	}
	p.advance(ExportBroadcast)
	p.log.Info("issued transfer tx",
		zap.String("chain", constants.CChainAlias),
		zap.Stringer("txHash", txHash),
	)
	t.metrics.issued.WithLabelValues(constants.CChainAlias).Inc()

	if err := t.waitForReceipt(ctx, txHash); err != nil {
		return nil, err
	}
	p.advance(ExportAccepted)

	result := &Result{}
	result.add(txHash.Hex(), constants.CChainAlias)
	return result, nil
}

// waitForReceipt polls for the receipt of [txHash] the same way txs on the
// other chains are waited on.
func (t *Transferer) waitForReceipt(ctx context.Context, txHash ethcommon.Hash) error {
	ops := common.NewOptions(t.options)
	ticker := time.NewTicker(ops.PollFrequency())
	defer ticker.Stop()

	maxAttempts := ops.MaxPollAttempts()
	for attempts := 1; ; attempts++ {
		receipt, err := t.evm.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("%w: tx %s on C-Chain reverted", xp.ErrTxFailed, txHash)
			}
			return nil
		case !errors.Is(err, ethereum.NotFound):
			return err
		}

		if maxAttempts > 0 && attempts >= maxAttempts {
			return fmt.Errorf("%w: tx %s on C-Chain after %d attempts", xp.ErrTxNotDecided, txHash, attempts)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// pBalance returns the unlocked balance of the sender on the P-Chain.
func (t *Transferer) pBalance(ctx context.Context, from *Account) (uint64, error) {
	addr, err := address.Format(constants.PChainAlias, t.context.HRP, from.Address[:])
	if err != nil {
		return 0, err
	}
	res, err := t.pChain.GetBalance(ctx, []string{addr})
	if err != nil {
		return 0, err
	}
	return uint64(res.Unlocked), nil
}

// cBalance returns the balance of the sender on the C-Chain truncated to
// nAVAX.
func (t *Transferer) cBalance(ctx context.Context, from *Account) (uint64, error) {
	wei, err := t.evm.BalanceAt(ctx, from.EthAddress, nil)
	if err != nil {
		return 0, err
	}
	return nanoAvax(wei)
}

func nanoAvax(wei *big.Int) (uint64, error) {
	nAVAX, _, err := units.WeiToNanoAvax(wei)
	return nAVAX, err
}
