// Package config loads a YAML-described ClientConfig the way the
// node's own pkg/config loads its protocol.*.yml files, scaled down to
// what a client needs to dial a node and build transactions against
// it: an endpoint, the network's identity, timeouts and logging.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/nspcc-dev/neo-go-sdk/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go-sdk/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go-sdk/pkg/wallet"
)

// ClientConfig is everything needed to dial a node and start building
// transactions against it, loadable from YAML the way the node loads
// its own protocol configuration.
type ClientConfig struct {
	// Endpoint is the node's JSON-RPC address, e.g.
	// "https://rpc10.n3.nspcc.ru:10331" or "wss://.../ws" for a
	// websocket-capable endpoint.
	Endpoint string `yaml:"Endpoint"`
	// Magic is the network this client expects Endpoint to belong to.
	// Init (pkg/rpcclient) cross-checks it against the node's own
	// reported magic and fails rather than silently talking to the
	// wrong network.
	Magic netmode.Magic `yaml:"Magic"`
	// AddressVersion is the network's Base58 address version byte
	// (0x35 on every network that has shipped so far).
	AddressVersion byte `yaml:"AddressVersion"`

	// DialTimeout bounds establishing the underlying connection. Zero
	// means the transport's own default.
	DialTimeout time.Duration `yaml:"DialTimeout"`
	// RequestTimeout bounds a single request/response round trip.
	// Zero means rpcclient.DefaultRequestTimeout.
	RequestTimeout time.Duration `yaml:"RequestTimeout"`
	// BlockPollInterval is how often blockfetcher.Poller polls
	// getblockcount. Zero means blockfetcher.DefaultPollInterval.
	BlockPollInterval time.Duration `yaml:"BlockPollInterval"`

	// LogLevel is a zapcore level name ("debug", "info", "warn",
	// "error"); empty means "info".
	LogLevel string `yaml:"LogLevel"`
	// LogEncoding is "console" or "json"; empty means "console".
	LogEncoding string `yaml:"LogEncoding"`

	// Scrypt overrides the NEP-2 key-derivation cost parameters new
	// wallet accounts are encrypted with. The zero value means
	// wallet.DefaultScryptParams.
	Scrypt wallet.ScryptParams `yaml:"Scrypt"`
}

// Load reads and parses a ClientConfig from path.
func Load(path string) (ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var c ClientConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return ClientConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if c.Scrypt == (wallet.ScryptParams{}) {
		c.Scrypt = wallet.DefaultScryptParams
	}
	return c, nil
}

// Logger builds a zap.Logger from LogLevel/LogEncoding, the same
// console-by-default, ISO8601-timestamped setup the node's CLI
// assembles from its own ApplicationConfiguration.Logger.
func (c ClientConfig) Logger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.LogLevel != "" {
		var err error
		level, err = zapcore.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("config: log level: %w", err)
		}
	}
	encoding := c.LogEncoding
	if encoding == "" {
		encoding = "console"
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.Encoding = encoding
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cc.Build()
}

// CheckMagic reports an error if actual (a node's reported network
// magic, e.g. from Client.NetworkMagic after Init) doesn't match the
// network this config was written for, catching an endpoint pointed
// at the wrong chain before any transaction gets built against it.
func (c ClientConfig) CheckMagic(actual uint32) error {
	if uint32(c.Magic) != actual {
		return fmt.Errorf("config: endpoint %s reports network magic %d, expected %s (%d)",
			c.Endpoint, actual, c.Magic, uint32(c.Magic))
	}
	return nil
}

// RPCOptions translates ClientConfig into rpcclient.Options, wiring
// in log and metrics values log provides (a nil log falls back to
// rpcclient's own zap.NewNop() default).
func (c ClientConfig) RPCOptions(log *zap.Logger) rpcclient.Options {
	return rpcclient.Options{
		DialTimeout:    c.DialTimeout,
		RequestTimeout: c.RequestTimeout,
		Logger:         log,
	}
}
