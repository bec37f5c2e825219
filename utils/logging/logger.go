// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"

	"go.uber.org/zap"
)

// Logger defines the interface that is used to keep a record of all events that
// happen to the program
type Logger interface {
	io.Writer // For logging pre-formatted messages

	// Log that something failed. The caller gets the error back as well; this
	// is only a record of it.
	Error(msg string, fields ...zap.Field)
	// Log that something unexpected happened that does not prevent the
	// operation from completing, such as a truncated UTXO set.
	Warn(msg string, fields ...zap.Field)
	// Log a progress event, such as a transaction being issued or accepted.
	Info(msg string, fields ...zap.Field)
	// Log an event that is useful when following a single transfer end to end.
	Trace(msg string, fields ...zap.Field)
	// Log an event that is useful when debugging the SDK itself.
	Debug(msg string, fields ...zap.Field)
	// Log extremely detailed events, such as raw RPC payloads.
	Verbo(msg string, fields ...zap.Field)

	// With returns a child logger that always includes [fields].
	With(fields ...zap.Field) Logger

	SetLevel(level Level)
	Enabled(level Level) bool

	// Stop this logger and write back all meta-data.
	Stop()
}
