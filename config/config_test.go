package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-go-sdk/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go-sdk/pkg/wallet"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "client.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), os.ModePerm))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
Endpoint: https://rpc10.n3.nspcc.ru:10331
Magic: 860833102
AddressVersion: 53
DialTimeout: 5s
RequestTimeout: 10s
LogLevel: debug
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://rpc10.n3.nspcc.ru:10331", c.Endpoint)
	require.EqualValues(t, 860833102, c.Magic)
	require.EqualValues(t, 53, c.AddressVersion)
	require.Equal(t, wallet.DefaultScryptParams, c.Scrypt)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "Endpoint: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadScryptOverride(t *testing.T) {
	path := writeConfig(t, `
Endpoint: http://localhost:10332
Scrypt:
  n: 2
  r: 1
  p: 1
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, wallet.ScryptParams{N: 2, R: 1, P: 1}, c.Scrypt)
}

func TestClientConfigLogger(t *testing.T) {
	tests := []struct {
		name  string
		level string
		valid bool
	}{
		{"default", "", true},
		{"debug", "debug", true},
		{"invalid", "not-a-level", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ClientConfig{LogLevel: tt.level}
			log, err := c.Logger()
			if tt.valid {
				require.NoError(t, err)
				require.NotNil(t, log)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestClientConfigCheckMagic(t *testing.T) {
	c := ClientConfig{Endpoint: "http://localhost:10332", Magic: netmode.TestNet}
	require.NoError(t, c.CheckMagic(uint32(netmode.TestNet)))

	err := c.CheckMagic(uint32(netmode.MainNet))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected testnet")
}

func TestClientConfigRPCOptions(t *testing.T) {
	c := ClientConfig{DialTimeout: 1, RequestTimeout: 2}
	opts := c.RPCOptions(nil)
	require.EqualValues(t, 1, opts.DialTimeout)
	require.EqualValues(t, 2, opts.RequestTimeout)
	require.Nil(t, opts.Logger)
}
