// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Visitor allows executing custom logic against the underlying transaction
// types.
type Visitor interface {
	BaseTx(*BaseTx) error
	ImportTx(*ImportTx) error
	ExportTx(*ExportTx) error
}
