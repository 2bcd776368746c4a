package config_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tchu/internal/config"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := config.FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, uint64(0), cfg.GameSeed)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
}

func TestFromEnv(t *testing.T) {
	cfg, err := config.FromEnv(env(map[string]string{
		"PORT":         "9000",
		"LOG_LEVEL":    "debug",
		"PUBLIC_URL":   "https://tchu.example",
		"TOKEN_SECRET": "s3cret",
		"GAME_SEED":    "2021",
	}))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "https://tchu.example", cfg.BaseURL())
	assert.Equal(t, []byte("s3cret"), cfg.TokenSecret)
	assert.Equal(t, uint64(2021), cfg.GameSeed)
}

func TestFromEnvErrors(t *testing.T) {
	for _, m := range []map[string]string{
		{"PORT": "http"},
		{"PORT": "70000"},
		{"LOG_LEVEL": "loud"},
		{"GAME_SEED": "-3"},
	} {
		_, err := config.FromEnv(env(m))
		assert.Error(t, err, "%v", m)
	}
}
