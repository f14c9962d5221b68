package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BINGO_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Server.Port)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "", c.Phrases.Source)
	assert.Equal(t, "./data/bingo.db", c.DB.Path)
	assert.Equal(t, "bingo_session", c.Session.CookieName)
	assert.Equal(t, 24*time.Hour, c.Session.TTL)
	assert.Equal(t, "bingo", c.OTel.ServiceName)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BINGO_CONFIG", "")
	t.Setenv("BINGO_SERVER_PORT", "9000")
	t.Setenv("BINGO_PHRASES_SOURCE", "https://example.com/cards.txt")
	t.Setenv("BINGO_SESSION_TTL", "90m")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Server.Port)
	assert.Equal(t, "https://example.com/cards.txt", c.Phrases.Source)
	assert.Equal(t, 90*time.Minute, c.Session.TTL)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "bingo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = "7000"

[db]
path = ""

[session]
cookie_name = "card"
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", c.Server.Port)
	assert.Equal(t, "", c.DB.Path)
	assert.Equal(t, "card", c.Session.CookieName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("BINGO_CONFIG", "")
	t.Setenv("BINGO_SESSION_TTL", "0s")
	_, err := Load("")
	assert.Error(t, err)
}
