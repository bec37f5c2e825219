// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

// State is the progress of a transfer. States are only ever reached in
// order; a cross-chain transfer passes through all of them and a single
// chain transfer stops at ExportAccepted.
type State uint8

const (
	Building State = iota
	FeeValidated
	ExportSigned
	ExportBroadcast
	ExportAccepted
	ImportBuilt
	ImportSigned
	ImportBroadcast
	ImportAccepted
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case FeeValidated:
		return "fee validated"
	case ExportSigned:
		return "export signed"
	case ExportBroadcast:
		return "export broadcast"
	case ExportAccepted:
		return "export accepted"
	case ImportBuilt:
		return "import built"
	case ImportSigned:
		return "import signed"
	case ImportBroadcast:
		return "import broadcast"
	case ImportAccepted:
		return "import accepted"
	default:
		return "unknown"
	}
}

// Exported reports whether funds may have left the source chain.
func (s State) Exported() bool {
	return s >= ExportBroadcast
}
