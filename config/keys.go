// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	ConfigFileKey = "config-file"

	URIKey        = "uri"
	WalletURIKey  = "wallet-uri"
	PrivateKeyKey = "private-key"

	TokenKey            = "token"
	SourceChainKey      = "source-chain"
	DestinationChainKey = "destination-chain"
	AmountKey           = "amount"
	ToKey               = "to"

	TimeoutKey         = "timeout"
	PollFrequencyKey   = "poll-frequency"
	MaxPollAttemptsKey = "max-poll-attempts"
	StrictUTXOCapKey   = "strict-utxo-cap"

	LogsDirKey                   = "log-dir"
	LogLevelKey                  = "log-level"
	LogDisplayLevelKey           = "log-display-level"
	LogFormatKey                 = "log-format"
	LogRotaterMaxSizeKey         = "log-rotater-max-size"
	LogRotaterMaxFilesKey        = "log-rotater-max-files"
	LogRotaterMaxAgeKey          = "log-rotater-max-age"
	LogRotaterCompressEnabledKey = "log-rotater-compress-enabled"

	MetricsNamespaceKey = "metrics-namespace"

	TracingExporterTypeKey = "tracing-exporter-type"
	TracingEndpointKey     = "tracing-endpoint"
	TracingInsecureKey     = "tracing-insecure"
	TracingSampleRateKey   = "tracing-sample-rate"
	TracingHeadersKey      = "tracing-headers"
)
