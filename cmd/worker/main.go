package main

import (
	"os"

	"photo-watermarker/internal/config"
	"photo-watermarker/internal/worker"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	configPath := flag.StringP("config", "c", os.Getenv("CONFIG_PATH"), "path to the YAML config")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	zlog.Init()
	if level, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		zlog.Logger.Warn().Str("level", *logLevel).Msg("Unknown log level, keeping default")
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to load config")
	}

	workerApp, err := worker.NewWorker(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to create worker")
	}

	if err := workerApp.Run(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Worker failed")
	}

	zlog.Logger.Info().Msg("Worker exited successfully")
	os.Exit(0)
}
