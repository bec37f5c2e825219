// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-sdk-go/config"
	"github.com/ava-labs/avalanche-sdk-go/trace"
	"github.com/ava-labs/avalanche-sdk-go/utils/logging"
	"github.com/ava-labs/avalanche-sdk-go/wallet/transfer"
)

func main() {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't configure flags: %s\n", err)
		os.Exit(1)
	}

	cfg, err := config.GetConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't load config: %s\n", err)
		os.Exit(1)
	}

	logFactory := logging.NewFactory(cfg.LoggingConfig)
	log, err := logFactory.Make("transfer")
	if err != nil {
		logFactory.Close()
		fmt.Fprintf(os.Stderr, "couldn't initialize logger: %s\n", err)
		os.Exit(1)
	}

	exitCode := run(log, cfg)
	logFactory.Close()
	os.Exit(exitCode)
}

func run(log logging.Logger, cfg config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	tracer, err := trace.New(cfg.TraceConfig)
	if err != nil {
		log.Error("couldn't initialize tracer", zap.Error(err))
		return 1
	}
	defer func() {
		if err := tracer.Close(); err != nil {
			log.Warn("couldn't close tracer", zap.Error(err))
		}
	}()

	result, err := send(ctx, log, tracer, cfg)
	if err != nil {
		var exportErr *transfer.ExportCompletedError
		if errors.As(err, &exportErr) {
			log.Error("exported funds are waiting in shared memory",
				zap.Stringer("exportTxID", exportErr.ExportTxID),
				zap.String("destinationChain", exportErr.DestinationChain),
			)
		}
		log.Error("transfer failed", zap.Error(err))
		return 1
	}

	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error("couldn't marshal result", zap.Error(err))
		return 1
	}
	fmt.Println(string(resultJSON))
	return 0
}

func send(ctx context.Context, log logging.Logger, tracer trace.Tracer, cfg config.Config) (*transfer.Result, error) {
	transferer, err := transfer.MakeTransferer(ctx, cfg.URI, transfer.WalletConfig{
		PrivateKey: cfg.PrivateKey,
		WalletURI:  cfg.WalletURI,
		Log:        log,
		Registerer: prometheus.NewRegistry(),
		Namespace:  cfg.MetricsNamespace,
		Tracer:     tracer,
		Options:    cfg.Options(),
	})
	if err != nil {
		return nil, err
	}
	defer transferer.Close()

	return transferer.Send(ctx, transfer.SendParams{
		Token:            cfg.Token,
		SourceChain:      cfg.SourceChain,
		DestinationChain: cfg.DestinationChain,
		Amount:           cfg.Amount,
		To:               cfg.To,
	})
}
