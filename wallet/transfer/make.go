// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/logging"
	"github.com/ava-labs/avalanche-sdk-go/vms/avm"
	"github.com/ava-labs/avalanche-sdk-go/vms/evm/atomic"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
	"github.com/ava-labs/avalanche-sdk-go/wallet/xp"

	oteltrace "go.opentelemetry.io/otel/trace"
)

var errNoSigner = errors.New("either a private key or a wallet URI must be provided")

type WalletConfig struct {
	// PrivateKey signs locally. If nil, txs are signed by the wallet served
	// at WalletURI.
	PrivateKey *secp256k1.PrivateKey
	WalletURI  string

	Log        logging.Logger
	Registerer prometheus.Registerer
	Namespace  string
	Tracer     oteltrace.Tracer
	Options    []common.Option
}

// MakeTransferer returns a Transferer sending from the configured signer
// through the node served at [uri].
//
// On creation, the network context is fetched from the node. UTXOs are
// fetched again for every transfer so concurrent issuance by other wallets
// doesn't leave the Transferer out of sync.
//
// The returned Transferer should be closed once it is no longer used.
func MakeTransferer(ctx context.Context, uri string, config WalletConfig) (*Transferer, error) {
	if config.PrivateKey == nil && config.WalletURI == "" {
		return nil, errNoSigner
	}
	log := config.Log
	if log == nil {
		log = logging.NoLog{}
	}

	options := common.UnionOptions([]common.Option{common.WithLog(log)}, config.Options)

	networkContext, err := primary.NewContextFromURI(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("fetching network context: %w", err)
	}
	log.Info("fetched network context",
		zap.Uint32("networkID", networkContext.NetworkID),
		zap.String("hrp", networkContext.HRP),
	)

	pClient := platformvm.NewClient(uri)
	xClient := avm.NewClient(uri, constants.XChainAlias)
	cClient := atomic.NewCChainClient(uri)
	wallet := &xp.Wallet{
		Context: networkContext,
		Chains: map[string]xp.Chain{
			constants.PChainAlias: xp.NewPChain(pClient),
			constants.XChainAlias: xp.NewXChain(xClient),
			constants.CChainAlias: xp.NewCChain(cClient),
		},
		Log: log,
	}

	var account *Account
	if config.PrivateKey != nil {
		signer := xp.NewLocalSigner(config.PrivateKey)
		wallet.Signer = signer
		account = NewLocalAccount(signer)
	} else {
		remote := xp.NewRemoteSigner(config.WalletURI)
		wallet.Remote = remote
		account, err = NewRemoteAccount(ctx, remote)
		if err != nil {
			return nil, fmt.Errorf("fetching wallet account: %w", err)
		}
	}

	evm, err := ethclient.DialContext(ctx, uri+"/ext/bc/"+constants.CChainAlias+"/rpc")
	if err != nil {
		return nil, fmt.Errorf("dialing C-Chain: %w", err)
	}

	t, err := New(Config{
		Context:    networkContext,
		PChain:     pClient,
		EVM:        evm,
		Preparer:   NewPreparer(networkContext, pClient, cClient, evm, options...),
		Wallet:     wallet,
		Account:    account,
		Log:        log,
		Registerer: config.Registerer,
		Namespace:  config.Namespace,
		Tracer:     config.Tracer,
		Options:    options,
	})
	if err != nil {
		evm.Close()
		return nil, err
	}
	t.onClose = evm.Close
	return t, nil
}
