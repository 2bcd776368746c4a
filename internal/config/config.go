package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the server settings.
type Config struct {
	Port        int
	LogLevel    zerolog.Level
	PublicURL   string // base of join links, derived from Port when empty
	TokenSecret []byte
	GameSeed    uint64 // 0 deals every game from a random seed
}

// Load reads .env if present, then the environment. Missing variables keep
// their defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:     8080,
		LogLevel: zerolog.InfoLevel,
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("PORT %q: not a port number", v)
		}
		cfg.Port = port
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		lvl, err := zerolog.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}
	cfg.PublicURL = getenv("PUBLIC_URL")
	cfg.TokenSecret = []byte(getenv("TOKEN_SECRET"))
	if v := getenv("GAME_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("GAME_SEED: %w", err)
		}
		cfg.GameSeed = seed
	}
	return cfg, nil
}

// BaseURL returns the public base URL of the server.
func (c Config) BaseURL() string {
	if c.PublicURL != "" {
		return c.PublicURL
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
