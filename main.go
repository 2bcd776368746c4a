package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tchu/internal/config"
	"tchu/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	port := flag.Int("port", cfg.Port, "server port")
	seed := flag.Uint64("seed", cfg.GameSeed, "deal every game from this seed (0 = random)")
	pretty := flag.Bool("pretty", false, "human-readable console logs")
	flag.Parse()
	cfg.Port = *port
	cfg.GameSeed = *seed

	zerolog.SetGlobalLevel(cfg.LogLevel)
	if *pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
