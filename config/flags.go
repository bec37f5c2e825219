// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/avalanche-sdk-go/trace"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
)

const (
	// EnvPrefix is prepended to the upper-cased flag name, with dashes
	// replaced by underscores, to form the environment variable of a flag.
	EnvPrefix = "avaxsdk"

	defaultURI = "https://api.avax-test.network"
)

// BuildFlagSet returns every flag of the transfer CLI.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("avax-transfer", pflag.ContinueOnError)

	fs.String(ConfigFileKey, "", "Specifies a JSON, YAML or TOML config file")

	// Endpoints
	fs.String(URIKey, defaultURI, "URI of the node serving the P-Chain, X-Chain and C-Chain APIs")
	fs.String(WalletURIKey, "", "URI of a wallet signing with the avalanche_* JSON-RPC methods. Used when no private key is provided")
	fs.String(PrivateKeyKey, "", fmt.Sprintf("Private key of the sender, %q or 0x prefixed. Prefer the environment variable to the flag", "PrivateKey-"))

	// Transfer
	fs.String(TokenKey, constants.AVAXSymbol, "Token to transfer. Only AVAX is supported")
	fs.String(SourceChainKey, constants.PChainAlias, "Chain to send from. Should be one of {P, C}")
	fs.String(DestinationChainKey, constants.PChainAlias, "Chain to send to. Should be one of {P, C}")
	fs.String(AmountKey, "", "Amount of AVAX to send, such as 1.5")
	fs.String(ToKey, "", "Recipient address. P-Chain addresses are P- prefixed bech32, C-Chain addresses are 0x prefixed")

	// Issuance
	fs.Duration(TimeoutKey, 5*time.Minute, "Maximum duration of the transfer")
	fs.Duration(PollFrequencyKey, 100*time.Millisecond, "Frequency at which tx statuses are polled")
	fs.Int(MaxPollAttemptsKey, 600, "Number of tx status polls before giving up. Zero or less polls until the timeout")
	fs.Bool(StrictUTXOCapKey, false, "If true, fail instead of warning when an address holds more UTXOs than are fetched")

	// Logging
	fs.String(LogsDirKey, "", "Logging directory. If empty, logs are only displayed")
	fs.String(LogLevelKey, "info", "The log level. Should be one of {verbo, debug, trace, info, warn, error, off}")
	fs.String(LogDisplayLevelKey, "", "The log display level. If left blank, will inherit the value of log-level. Otherwise, should be one of {verbo, debug, trace, info, warn, error, off}")
	fs.String(LogFormatKey, "plain", "The structure of log format. Should be one of {plain, json}")
	fs.Int(LogRotaterMaxSizeKey, 8, "The maximum file size in megabytes of the log file before it gets rotated.")
	fs.Int(LogRotaterMaxFilesKey, 7, "The maximum number of old log files to retain. 0 means retain all old log files.")
	fs.Int(LogRotaterMaxAgeKey, 0, "The maximum number of days to retain old log files based on the timestamp encoded in their filename. 0 means retain all old log files.")
	fs.Bool(LogRotaterCompressEnabledKey, false, "Enables the compression of rotated log files through gzip.")

	// Metrics
	fs.String(MetricsNamespaceKey, "avax_transfer", "Namespace of the transfer metrics")

	// Tracing
	fs.String(TracingExporterTypeKey, trace.NoOp.String(), "Type of exporter to use for tracing. Options are [grpc, http]. Empty disables tracing")
	fs.String(TracingEndpointKey, "", "The endpoint to send trace data to. If unspecified, the exporter's default is used")
	fs.Bool(TracingInsecureKey, true, "If true, don't use TLS when sending trace data")
	fs.Float64(TracingSampleRateKey, 0.1, "The fraction of traces to sample. If >= 1, always sample. If <= 0, never sample")
	fs.StringToString(TracingHeadersKey, map[string]string{}, "The headers to provide the trace indexer")

	return fs
}

// BuildViper parses [args] into [fs] and returns a viper instance reading, in
// order of precedence, the flags, the environment and the config file.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.IsSet(ConfigFileKey) {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}
