// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config parses the settings of the transfer CLI from flags, the
// environment and a config file.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/ava-labs/avalanche-sdk-go/trace"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/logging"
	"github.com/ava-labs/avalanche-sdk-go/utils/units"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
)

var (
	errMissingAmount    = errors.New("missing amount")
	errMissingRecipient = errors.New("missing recipient")
	errNoSigner         = fmt.Errorf("either %s or %s must be provided", PrivateKeyKey, WalletURIKey)
	errNegativeTimeout  = errors.New("timeout must not be negative")
)

type Config struct {
	URI       string
	WalletURI string
	// PrivateKey is nil when signing through [WalletURI].
	PrivateKey *secp256k1.PrivateKey

	Token            string
	SourceChain      string
	DestinationChain string
	// Amount is denominated in wei.
	Amount *big.Int
	To     string

	Timeout         time.Duration
	PollFrequency   time.Duration
	MaxPollAttempts int
	StrictUTXOCap   bool

	LoggingConfig    logging.Config
	MetricsNamespace string
	TraceConfig      trace.Config
}

// Options returns the wallet options described by the config.
func (c Config) Options() []common.Option {
	options := []common.Option{
		common.WithPollFrequency(c.PollFrequency),
		common.WithMaxPollAttempts(c.MaxPollAttempts),
	}
	if c.StrictUTXOCap {
		options = append(options, common.WithStrictUTXOCap())
	}
	return options
}

// GetConfig reads the Config out of [v].
func GetConfig(v *viper.Viper) (Config, error) {
	config := Config{
		URI:              v.GetString(URIKey),
		WalletURI:        v.GetString(WalletURIKey),
		Token:            v.GetString(TokenKey),
		SourceChain:      v.GetString(SourceChainKey),
		DestinationChain: v.GetString(DestinationChainKey),
		To:               v.GetString(ToKey),
		Timeout:          v.GetDuration(TimeoutKey),
		PollFrequency:    v.GetDuration(PollFrequencyKey),
		MaxPollAttempts:  v.GetInt(MaxPollAttemptsKey),
		StrictUTXOCap:    v.GetBool(StrictUTXOCapKey),
		MetricsNamespace: v.GetString(MetricsNamespaceKey),
	}
	if config.Timeout < 0 {
		return Config{}, fmt.Errorf("%w: %s", errNegativeTimeout, config.Timeout)
	}

	if keyStr := v.GetString(PrivateKeyKey); keyStr != "" {
		key, err := secp256k1.ParsePrivateKey(keyStr)
		if err != nil {
			return Config{}, fmt.Errorf("couldn't parse %s: %w", PrivateKeyKey, err)
		}
		config.PrivateKey = key
	} else if config.WalletURI == "" {
		return Config{}, errNoSigner
	}

	amountStr := v.GetString(AmountKey)
	if amountStr == "" {
		return Config{}, errMissingAmount
	}
	amount, err := units.ParseAvaxToWei(amountStr)
	if err != nil {
		return Config{}, fmt.Errorf("couldn't parse %s: %w", AmountKey, err)
	}
	config.Amount = amount

	if config.To == "" {
		return Config{}, errMissingRecipient
	}

	config.LoggingConfig, err = getLoggingConfig(v)
	if err != nil {
		return Config{}, err
	}
	config.TraceConfig, err = getTraceConfig(v)
	return config, err
}

func getTraceConfig(v *viper.Viper) (trace.Config, error) {
	exporterType, err := trace.ExporterTypeFromString(v.GetString(TracingExporterTypeKey))
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{
		ExporterConfig: trace.ExporterConfig{
			Type:     exporterType,
			Endpoint: v.GetString(TracingEndpointKey),
			Insecure: v.GetBool(TracingInsecureKey),
			Headers:  v.GetStringMapString(TracingHeadersKey),
		},
		TraceSampleRate: v.GetFloat64(TracingSampleRateKey),
	}, nil
}

func getLoggingConfig(v *viper.Viper) (logging.Config, error) {
	loggingConfig := logging.DefaultConfig()
	loggingConfig.Directory = os.ExpandEnv(v.GetString(LogsDirKey))

	var err error
	loggingConfig.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return loggingConfig, err
	}

	logDisplayLevel := v.GetString(LogLevelKey)
	if v.IsSet(LogDisplayLevelKey) {
		logDisplayLevel = v.GetString(LogDisplayLevelKey)
	}
	loggingConfig.DisplayLevel, err = logging.ToLevel(logDisplayLevel)
	if err != nil {
		return loggingConfig, err
	}

	loggingConfig.LogFormat, err = logging.ToFormat(v.GetString(LogFormatKey))
	if err != nil {
		return loggingConfig, err
	}

	loggingConfig.MaxSize = v.GetInt(LogRotaterMaxSizeKey)
	loggingConfig.MaxFiles = v.GetInt(LogRotaterMaxFilesKey)
	loggingConfig.MaxAge = v.GetInt(LogRotaterMaxAgeKey)
	loggingConfig.Compress = v.GetBool(LogRotaterCompressEnabledKey)
	return loggingConfig, nil
}
