// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
)

var (
	ErrTxFailed      = errors.New("tx failed")
	ErrTxNotDecided  = errors.New("tx not decided")
	errMissingSigned = errors.New("signing produced no tx")
)

type SendRequest struct {
	SignRequest

	// UTXOIDs hint a remote wallet at the UTXOs consumed by the tx. If
	// empty, they are taken from the tx.
	UTXOIDs []string
	// FeeTolerance is the percentage a remote wallet may raise the fee by.
	FeeTolerance uint32
}

type SendResult struct {
	TxHash     ids.ID
	ChainAlias string
}

// SendXPTransaction signs the tx of [req] and issues it.
//
// With a local signer the signed tx is issued to the chain's API. A remote
// wallet is asked to sign and issue the tx in a single call.
func (w *Wallet) SendXPTransaction(ctx context.Context, req *SendRequest, options ...common.Option) (*SendResult, error) {
	signer, err := w.resolveSigner(req.Signer)
	if err != nil {
		return nil, err
	}

	if remote, ok := signer.(*RemoteSigner); ok {
		return w.sendRemote(ctx, remote, req)
	}

	signed, err := w.SignXPTransaction(ctx, &req.SignRequest)
	if err != nil {
		return nil, err
	}
	if signed.Tx == nil {
		return nil, errMissingSigned
	}

	txID, err := w.IssueTx(ctx, signed.ChainAlias, signed.Tx.Bytes(), options...)
	if err != nil {
		return nil, err
	}
	return &SendResult{
		TxHash:     txID,
		ChainAlias: signed.ChainAlias,
	}, nil
}

// IssueTx issues the signed [txBytes] to the chain named [alias].
func (w *Wallet) IssueTx(ctx context.Context, alias string, txBytes []byte, options ...common.Option) (ids.ID, error) {
	client, err := w.chain(alias)
	if err != nil {
		return ids.Empty, err
	}
	txID, err := client.IssueTx(ctx, txBytes)
	if err != nil {
		return ids.Empty, err
	}

	w.log().Info("issued tx",
		zap.String("chain", alias),
		zap.Stringer("txID", txID),
	)

	ops := common.NewOptions(options)
	if f := ops.PostIssuanceFunc(); f != nil {
		f(txID)
	}
	return txID, nil
}

func (w *Wallet) sendRemote(ctx context.Context, remote *RemoteSigner, req *SendRequest) (*SendResult, error) {
	txHex, err := req.hex()
	if err != nil {
		return nil, err
	}
	alias := req.alias()

	args := &SendTransactionArgs{
		SignTransactionArgs: *signArgs(&req.SignRequest, txHex, alias),
		FeeTolerance:        req.FeeTolerance,
	}
	if len(req.UTXOIDs) != 0 {
		args.UTXOIDs = req.UTXOIDs
	}
	if req.Tx != nil {
		for _, in := range req.Tx.Inputs {
			args.SigIndices = append(args.SigIndices, in.SigIndices)
		}
	}

	txID, err := remote.SendTransaction(ctx, args)
	if err != nil {
		return nil, err
	}

	w.log().Info("issued tx through wallet",
		zap.String("chain", alias),
		zap.Stringer("txID", txID),
	)
	return &SendResult{
		TxHash:     txID,
		ChainAlias: alias,
	}, nil
}

// WaitForTx polls the status of [txID] on the chain named [alias] until it is
// decided.
//
// An accepted or committed tx returns nil. A rejected, dropped or aborted tx
// returns ErrTxFailed. ErrTxNotDecided is returned once the maximum number of
// polls has been made.
func (w *Wallet) WaitForTx(ctx context.Context, txID ids.ID, alias string, options ...common.Option) error {
	client, err := w.chain(alias)
	if err != nil {
		return err
	}

	ops := common.NewOptions(options)
	maxAttempts := ops.MaxPollAttempts()
	ticker := time.NewTicker(ops.PollFrequency())
	defer ticker.Stop()

	var last TxStatus
	for attempt := 1; ; attempt++ {
		status, err := client.TxStatus(ctx, txID)
		if err != nil {
			return err
		}
		last = status

		accepted, decided := status.Decided()
		switch {
		case accepted:
			w.log().Debug("tx accepted",
				zap.String("chain", alias),
				zap.Stringer("txID", txID),
				zap.Int("attempts", attempt),
			)
			return nil
		case decided:
			if status.Reason != "" {
				return fmt.Errorf("%w: tx %s on %s-Chain was %s: %s",
					ErrTxFailed,
					txID,
					alias,
					status.Status,
					status.Reason,
				)
			}
			return fmt.Errorf("%w: tx %s on %s-Chain was %s",
				ErrTxFailed,
				txID,
				alias,
				status.Status,
			)
		}

		if maxAttempts > 0 && attempt >= maxAttempts {
			break
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: tx %s on %s-Chain still %s after %d polls",
		ErrTxNotDecided,
		txID,
		alias,
		last.Status,
		maxAttempts,
	)
}

// SignMessage signs [msg] with the resolved signer. The returned signature is
// hex encoded without a checksum.
func (w *Wallet) SignMessage(ctx context.Context, msg []byte, chainAlias string, requested Signer) (string, error) {
	signer, err := w.resolveSigner(requested)
	if err != nil {
		return "", err
	}
	switch signer := signer.(type) {
	case *LocalSigner:
		sig, err := signer.SignMessage(msg)
		if err != nil {
			return "", err
		}
		return formatting.Encode(formatting.HexNC, sig)
	case *RemoteSigner:
		return signer.SignMessage(ctx, &SignMessageArgs{
			Message:    string(msg),
			ChainAlias: chainAlias,
		})
	default:
		return "", ErrNoSigner
	}
}
