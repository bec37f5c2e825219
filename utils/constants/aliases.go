// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package constants

// Primary network chain aliases, as used in address prefixes and endpoint
// paths.
const (
	XChainAlias = "X"
	PChainAlias = "P"
	CChainAlias = "C"

	AVAXSymbol = "AVAX"
)

// IsPrimaryChainAlias reports whether [alias] names one of the primary
// network chains.
func IsPrimaryChainAlias(alias string) bool {
	switch alias {
	case XChainAlias, PChainAlias, CChainAlias:
		return true
	default:
		return false
	}
}
