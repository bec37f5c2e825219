// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primary

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/avalanche-sdk-go/api/info"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/rpc"
	"github.com/ava-labs/avalanche-sdk-go/vms/avm"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/gas"
	"github.com/ava-labs/avalanche-sdk-go/vms/platformvm"
)

// Context describes the primary network a transfer is executed against.
//
// Every field is a value, so copies never alias. Nothing in this module
// mutates a Context after it has been fetched.
type Context struct {
	NetworkID         uint32
	HRP               string
	XBlockchainID     ids.ID
	PBlockchainID     ids.ID
	CBlockchainID     ids.ID
	AVAXAssetID       ids.ID
	BaseTxFee         uint64
	CreateAssetTxFee  uint64
	PlatformFeeConfig gas.Config
}

// BlockchainID returns the ID of the primary network chain named [alias].
func (c Context) BlockchainID(alias string) (ids.ID, bool) {
	switch alias {
	case constants.XChainAlias:
		return c.XBlockchainID, true
	case constants.PChainAlias:
		return c.PBlockchainID, true
	case constants.CChainAlias:
		return c.CBlockchainID, true
	default:
		return ids.Empty, false
	}
}

type InfoClient interface {
	GetNetworkID(ctx context.Context, options ...rpc.Option) (uint32, error)
	GetBlockchainID(ctx context.Context, alias string, options ...rpc.Option) (ids.ID, error)
	GetTxFee(ctx context.Context, options ...rpc.Option) (*info.GetTxFeeResponse, error)
}

type AssetClient interface {
	GetAssetDescription(ctx context.Context, assetID string, options ...rpc.Option) (*avm.GetAssetDescriptionReply, error)
}

type FeeConfigClient interface {
	GetFeeConfig(ctx context.Context, options ...rpc.Option) (*gas.Config, error)
}

// NewContextFromURI fetches the Context of the network served at [uri].
func NewContextFromURI(ctx context.Context, uri string) (Context, error) {
	return FetchContext(
		ctx,
		info.NewClient(uri),
		avm.NewClient(uri, constants.XChainAlias),
		platformvm.NewClient(uri),
	)
}

// FetchContext issues every request needed to populate a Context
// concurrently. Each call performs a fresh round of requests.
func FetchContext(
	ctx context.Context,
	infoClient InfoClient,
	xClient AssetClient,
	pClient FeeConfigClient,
) (Context, error) {
	var (
		c         Context
		feeConfig *gas.Config
		txFees    *info.GetTxFeeResponse
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		networkID, err := infoClient.GetNetworkID(egCtx)
		c.NetworkID = networkID
		return err
	})
	eg.Go(func() error {
		blockchainID, err := infoClient.GetBlockchainID(egCtx, constants.XChainAlias)
		c.XBlockchainID = blockchainID
		return err
	})
	eg.Go(func() error {
		blockchainID, err := infoClient.GetBlockchainID(egCtx, constants.PChainAlias)
		c.PBlockchainID = blockchainID
		return err
	})
	eg.Go(func() error {
		blockchainID, err := infoClient.GetBlockchainID(egCtx, constants.CChainAlias)
		c.CBlockchainID = blockchainID
		return err
	})
	eg.Go(func() error {
		asset, err := xClient.GetAssetDescription(egCtx, constants.AVAXSymbol)
		if err != nil {
			return err
		}
		c.AVAXAssetID = asset.AssetID
		return nil
	})
	eg.Go(func() error {
		var err error
		txFees, err = infoClient.GetTxFee(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		feeConfig, err = pClient.GetFeeConfig(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return Context{}, err
	}

	c.HRP = constants.GetHRP(c.NetworkID)
	c.BaseTxFee = uint64(txFees.TxFee)
	c.CreateAssetTxFee = uint64(txFees.CreateAssetTxFee)
	c.PlatformFeeConfig = *feeConfig
	return c, nil
}
