package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJson_OverlaysValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"addr": ":9001",
		"database_dsn": "postgres://json",
		"secret_key": "json-secret",
		"token_validity_duration": "48h",
		"cors_origin": "https://json.example.com"
	}`)

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
	os.Args = []string{"cmd", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.Addr, ":9001")
	assert.Equal(t, c.DatabaseDSN, "postgres://json")
	assert.Equal(t, c.SecretKey, "json-secret")
	assert.Equal(t, c.TokenValidityDuration, 48*time.Hour)
	assert.Equal(t, c.CORSOrigin, "https://json.example.com")
}

func TestParseJson_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"addr": ":9002"}`)

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
	os.Args = []string{"cmd", "-config", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.Addr, ":9002")
	assert.Equal(t, c.SecretKey, "secretKey")
	assert.Equal(t, c.TokenValidityDuration, 7*24*time.Hour)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
	os.Args = []string{"cmd"}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, c.Addr, ":8080")
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
	os.Args = []string{"cmd", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	require.Panics(t, func() { parseJson(c) })
}
