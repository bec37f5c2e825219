// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanche-sdk-go/trace"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/logging"
	"github.com/ava-labs/avalanche-sdk-go/utils/units"
)

const testRecipient = "0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC"

func newTestKey(t *testing.T) *secp256k1.PrivateKey {
	key, err := secp256k1.NewPrivateKey()
	require.NoError(t, err)
	return key
}

func getConfig(t *testing.T, args ...string) (Config, error) {
	v, err := BuildViper(BuildFlagSet(), args)
	require.NoError(t, err)
	return GetConfig(v)
}

func TestGetConfigFromFlags(t *testing.T) {
	require := require.New(t)

	key := newTestKey(t)
	config, err := getConfig(t,
		"--"+PrivateKeyKey, key.String(),
		"--"+AmountKey, "1.5",
		"--"+ToKey, testRecipient,
		"--"+SourceChainKey, "C",
		"--"+DestinationChainKey, "C",
		"--"+PollFrequencyKey, "1s",
		"--"+StrictUTXOCapKey,
	)
	require.NoError(err)
	require.Equal(key.Bytes(), config.PrivateKey.Bytes())
	require.Equal(units.NanoAvaxToWei(1_500_000_000), config.Amount)
	require.Equal(testRecipient, config.To)
	require.Equal("C", config.SourceChain)
	require.Equal("C", config.DestinationChain)
	require.Equal("AVAX", config.Token)
	require.Equal(defaultURI, config.URI)
	require.Equal(time.Second, config.PollFrequency)
	require.Equal(600, config.MaxPollAttempts)
	require.True(config.StrictUTXOCap)
	require.Len(config.Options(), 3)
	require.Equal(logging.Info, config.LoggingConfig.LogLevel)
	require.Equal(logging.Info, config.LoggingConfig.DisplayLevel)
	require.Equal(trace.NoOp, config.TraceConfig.Type)
}

func TestGetConfigFromEnv(t *testing.T) {
	require := require.New(t)

	t.Setenv("AVAXSDK_WALLET_URI", "http://localhost:8545")
	t.Setenv("AVAXSDK_AMOUNT", "0.000000001")
	t.Setenv("AVAXSDK_TO", testRecipient)
	t.Setenv("AVAXSDK_MAX_POLL_ATTEMPTS", "3")
	t.Setenv("AVAXSDK_LOG_DISPLAY_LEVEL", "debug")

	config, err := getConfig(t, "--"+MaxPollAttemptsKey, "4")
	require.NoError(err)
	require.Nil(config.PrivateKey)
	require.Equal("http://localhost:8545", config.WalletURI)
	require.Equal(units.NanoAvaxToWei(1), config.Amount)
	require.Equal(4, config.MaxPollAttempts)
	require.Equal(logging.Info, config.LoggingConfig.LogLevel)
	require.Equal(logging.Debug, config.LoggingConfig.DisplayLevel)
	require.Len(config.Options(), 2)
}

func TestGetConfigFromFile(t *testing.T) {
	require := require.New(t)

	key := newTestKey(t)
	configFile := filepath.Join(t.TempDir(), "config.json")
	configJSON := fmt.Sprintf(`{%q: %q, %q: %q, %q: %q, %q: %q}`,
		PrivateKeyKey, key.String(),
		AmountKey, "2",
		ToKey, testRecipient,
		LogFormatKey, "json",
	)
	require.NoError(os.WriteFile(configFile, []byte(configJSON), 0o600))

	config, err := getConfig(t, "--"+ConfigFileKey, configFile)
	require.NoError(err)
	require.Equal(units.NanoAvaxToWei(2*units.Avax), config.Amount)
	require.Equal(logging.JSON, config.LoggingConfig.LogFormat)
}

func TestGetConfigErrors(t *testing.T) {
	key := newTestKey(t)
	tests := []struct {
		name        string
		args        []string
		expectedErr error
	}{
		{
			name:        "no signer",
			args:        []string{"--" + AmountKey, "1", "--" + ToKey, testRecipient},
			expectedErr: errNoSigner,
		},
		{
			name:        "no amount",
			args:        []string{"--" + PrivateKeyKey, key.String(), "--" + ToKey, testRecipient},
			expectedErr: errMissingAmount,
		},
		{
			name:        "too precise amount",
			args:        []string{"--" + PrivateKeyKey, key.String(), "--" + AmountKey, "0.0000000000000000001", "--" + ToKey, testRecipient},
			expectedErr: units.ErrTooPrecise,
		},
		{
			name:        "no recipient",
			args:        []string{"--" + PrivateKeyKey, key.String(), "--" + AmountKey, "1"},
			expectedErr: errMissingRecipient,
		},
		{
			name:        "unknown log level",
			args:        []string{"--" + PrivateKeyKey, key.String(), "--" + AmountKey, "1", "--" + ToKey, testRecipient, "--" + LogLevelKey, "loud"},
			expectedErr: logging.ErrUnknownLevel,
		},
		{
			name:        "unknown tracing exporter",
			args:        []string{"--" + PrivateKeyKey, key.String(), "--" + AmountKey, "1", "--" + ToKey, testRecipient, "--" + TracingExporterTypeKey, "kafka"},
			expectedErr: trace.ErrUnknownExporterType,
		},
		{
			name:        "negative timeout",
			args:        []string{"--" + PrivateKeyKey, key.String(), "--" + TimeoutKey + "=-1s"},
			expectedErr: errNegativeTimeout,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := getConfig(t, test.args...)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestBuildViperUnknownFlag(t *testing.T) {
	_, err := BuildViper(BuildFlagSet(), []string{"--not-a-flag"})
	require.Error(t, err)
}
