// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transfer moves AVAX between the P-Chain and the C-Chain.
package transfer

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting/address"
	"github.com/ava-labs/avalanche-sdk-go/utils/logging"
	"github.com/ava-labs/avalanche-sdk-go/wallet/chain/c"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
	"github.com/ava-labs/avalanche-sdk-go/wallet/xp"

	ethcommon "github.com/ethereum/go-ethereum/common"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	AVAX = constants.AVAXSymbol

	tracerName = "github.com/ava-labs/avalanche-sdk-go/wallet/transfer"
)

var _ Wallet = (*xp.Wallet)(nil)

// Wallet signs, issues and confirms P-Chain and C-Chain atomic txs.
type Wallet interface {
	SignXPTransaction(ctx context.Context, req *xp.SignRequest) (*xp.SignResult, error)
	SendXPTransaction(ctx context.Context, req *xp.SendRequest, options ...common.Option) (*xp.SendResult, error)
	IssueTx(ctx context.Context, alias string, txBytes []byte, options ...common.Option) (ids.ID, error)
	WaitForTx(ctx context.Context, txID ids.ID, alias string, options ...common.Option) error
}

// EVMClient is the subset of the go-ethereum client used for the C-Chain
// legs of a transfer.
type EVMClient interface {
	c.EthClient

	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash ethcommon.Hash) (*types.Receipt, error)
}

type Config struct {
	Context  primary.Context
	PChain   PClient
	EVM      EVMClient
	Preparer Preparer
	Wallet   Wallet
	// Account sends the funds unless a transfer names another one.
	Account *Account

	// Log defaults to logging.NoLog.
	Log logging.Logger
	// Registerer defaults to a new registry.
	Registerer prometheus.Registerer
	Namespace  string
	// Tracer defaults to a no-op tracer.
	Tracer oteltrace.Tracer

	// Options are used when waiting for txs.
	Options []common.Option
}

// Transferer executes transfers against the dependencies it was created
// with. It holds no per-transfer state, so it may be used concurrently as long
// as concurrent transfers don't spend from the same account.
type Transferer struct {
	context  primary.Context
	pChain   PClient
	evm      EVMClient
	preparer Preparer
	wallet   Wallet
	account  *Account

	log     logging.Logger
	metrics *metrics
	tracer  oteltrace.Tracer
	options []common.Option

	onClose func()
}

func New(config Config) (*Transferer, error) {
	log := config.Log
	if log == nil {
		log = logging.NoLog{}
	}
	registerer := config.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	metrics, err := newMetrics(config.Namespace, registerer)
	if err != nil {
		return nil, fmt.Errorf("couldn't register transfer metrics: %w", err)
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = oteltrace.NewNoopTracerProvider().Tracer(tracerName)
	}
	return &Transferer{
		context:  config.Context,
		pChain:   config.PChain,
		evm:      config.EVM,
		preparer: config.Preparer,
		wallet:   config.Wallet,
		account:  config.Account,
		log:      log,
		metrics:  metrics,
		tracer:   tracer,
		options:  config.Options,
	}, nil
}

// Close releases the connections opened by MakeTransferer.
func (t *Transferer) Close() {
	if t.onClose != nil {
		t.onClose()
	}
}

type SendParams struct {
	// Token must be AVAX. Empty is treated as AVAX.
	Token            string
	SourceChain      string
	DestinationChain string
	// Amount is denominated in wei. On the P-Chain it is truncated to nAVAX.
	Amount *big.Int
	// To is a "P-" prefixed bech32 address or a 0x prefixed EVM address.
	To string
	// From overrides the configured account.
	From *Account
}

type TxHash struct {
	TxHash     string `json:"txHash"`
	ChainAlias string `json:"chainAlias"`
}

// Result lists the txs of a transfer in the order they were issued.
type Result struct {
	TxHashes []TxHash `json:"txHashes"`
}

func (r *Result) add(txHash string, chainAlias string) {
	r.TxHashes = append(r.TxHashes, TxHash{
		TxHash:     txHash,
		ChainAlias: chainAlias,
	})
}

// Send moves AVAX from the sender on [SourceChain] to [To] on
// [DestinationChain].
//
// The parameters are validated before any request is made.
func (t *Transferer) Send(ctx context.Context, params SendParams) (*Result, error) {
	if params.Token != "" && params.Token != AVAX {
		return nil, &invalidTokenError{token: params.Token}
	}
	if !isTransferChain(params.SourceChain) {
		return nil, fmt.Errorf("%w: unsupported source chain %q", ErrInvalidChain, params.SourceChain)
	}
	if !isTransferChain(params.DestinationChain) {
		return nil, fmt.Errorf("%w: unsupported destination chain %q", ErrInvalidChain, params.DestinationChain)
	}

	transfer := TransferParams{
		Amount: params.Amount,
		To:     params.To,
		From:   params.From,
	}
	switch {
	case params.SourceChain == constants.CChainAlias && params.DestinationChain == constants.CChainAlias:
		return t.TransferCToC(ctx, transfer)
	case params.SourceChain == constants.CChainAlias && params.DestinationChain == constants.PChainAlias:
		return t.TransferCToP(ctx, transfer)
	case params.SourceChain == constants.PChainAlias && params.DestinationChain == constants.PChainAlias:
		return t.TransferPToP(ctx, transfer)
	default:
		return t.TransferPToC(ctx, transfer)
	}
}

func isTransferChain(alias string) bool {
	return alias == constants.CChainAlias || alias == constants.PChainAlias
}

// TransferParams describe a transfer between two known chains.
type TransferParams struct {
	// Amount is denominated in wei.
	Amount *big.Int
	To     string
	From   *Account
}

func (t *Transferer) sender(params TransferParams) (*Account, error) {
	if params.Amount == nil || params.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, params.Amount)
	}
	if params.From != nil {
		return params.From, nil
	}
	if t.account != nil {
		return t.account, nil
	}
	return nil, ErrNoAccount
}

// pRecipient parses a "P-<hrp>1..." address of this network.
func (t *Transferer) pRecipient(to string) (ids.ShortID, error) {
	if address.IsEVMAddress(to) {
		return ids.ShortID{}, fmt.Errorf("%w: %q is not a P-Chain address", ErrAddressChainMismatch, to)
	}
	alias, hrp, addrBytes, err := address.Parse(to)
	if err != nil {
		return ids.ShortID{}, err
	}
	if alias != constants.PChainAlias {
		return ids.ShortID{}, fmt.Errorf("%w: %q is not a P-Chain address", ErrAddressChainMismatch, to)
	}
	if hrp != t.context.HRP {
		return ids.ShortID{}, fmt.Errorf("%w: %q is not a %s address", ErrNetworkMismatch, to, t.context.HRP)
	}
	return ids.ToShortID(addrBytes)
}

// cRecipient parses a 0x prefixed address, optionally prefixed with "C-".
func (*Transferer) cRecipient(to string) (ethcommon.Address, error) {
	evmAddr := strings.TrimPrefix(to, constants.CChainAlias+"-")
	if !address.IsEVMAddress(evmAddr) {
		return ethcommon.Address{}, fmt.Errorf("%w: %q is not a C-Chain address", ErrAddressChainMismatch, to)
	}
	return ethcommon.HexToAddress(evmAddr), nil
}

// start opens the span of a transfer and returns the function that closes it.
func (t *Transferer) start(
	ctx context.Context,
	source string,
	destination string,
) (context.Context, *progress, func(error)) {
	startTime := time.Now()
	ctx, span := t.tracer.Start(ctx, fmt.Sprintf("transfer.%sTo%s", source, destination), oteltrace.WithAttributes(
		attribute.String(sourceLabel, source),
		attribute.String(destinationLabel, destination),
	))
	p := &progress{
		log: t.log.With(
			zap.String(sourceLabel, source),
			zap.String(destinationLabel, destination),
		),
		span: span,
	}
	return ctx, p, func(err error) {
		t.metrics.observe(source, destination, startTime, err)
		if err != nil {
			span.RecordError(err)
			p.log.Warn("transfer failed",
				zap.Stringer("state", p.state),
				zap.Error(err),
			)
		} else {
			p.log.Info("transfer completed",
				zap.Duration("duration", time.Since(startTime)),
			)
		}
		span.End()
	}
}

// progress records the states a transfer reaches.
type progress struct {
	state State
	log   logging.Logger
	span  oteltrace.Span
}

func (p *progress) advance(state State) {
	p.state = state
	p.span.AddEvent(state.String())
	p.log.Debug("transfer progressed",
		zap.Stringer("state", state),
	)
}
