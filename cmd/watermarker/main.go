package main

import (
	"fmt"
	"os"
	"time"

	"photo-watermarker/internal/app/batch"
	"photo-watermarker/internal/config"
	"photo-watermarker/internal/domain"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	configPath := flag.StringP("config", "c", os.Getenv("CONFIG_PATH"), "path to the YAML config (defaults and env only when empty)")
	input := flag.StringP("input", "i", "", "input directory (overrides base.input_directory)")
	output := flag.StringP("output", "o", "", "output directory (overrides base.output_directory)")
	layout := flag.StringP("layout", "l", "", "layout to apply (overrides layout.type)")
	concurrency := flag.IntP("concurrency", "j", domain.DefaultConcurrency, "number of photos processed at once")
	quality := flag.IntP("quality", "q", domain.DefaultJPEGQuality, "JPEG output quality (1-100)")
	listLayouts := flag.Bool("list-layouts", false, "print the available layouts and exit")
	saveConfig := flag.String("save-config", "", "write the effective config to this path and exit")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	help := flag.BoolP("help", "h", false, "display help")
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if *listLayouts {
		for _, l := range domain.Layouts {
			fmt.Printf("%-30s %s\n", l, l.DisplayName())
		}
		return
	}

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

	if *input != "" {
		cfg.Base.InputDirectory = *input
	}
	if *output != "" {
		cfg.Base.OutputDirectory = *output
	}
	if *layout != "" {
		cfg.Layout.Type = domain.Layout(*layout)
	}
	if flag.CommandLine.Changed("concurrency") {
		cfg.Worker.Concurrency = *concurrency
	}
	if flag.CommandLine.Changed("quality") {
		cfg.Base.Quality = *quality
	}
	if err := cfg.Finalize(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Invalid options")
	}
	if !cfg.Layout.Type.Known() {
		zlog.Logger.Warn().Str("layout", string(cfg.Layout.Type)).Msg("Unknown layout, only the shadow will be applied")
	}

	if *saveConfig != "" {
		if err := cfg.Save(*saveConfig); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("Failed to save config")
		}
		zlog.Logger.Info().Str("path", *saveConfig).Msg("Config saved")
		return
	}

	app, err := batch.NewApp(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to create batch")
	}

	report, err := app.Run()
	if report != nil {
		zlog.Logger.Info().
			Int("processed", len(report.Processed)).
			Int("failed", len(report.Failed)).
			Str("written", humanize.Bytes(report.Bytes)).
			Str("took", report.Took.Round(time.Millisecond).String()).
			Msg("Done")
	}
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("Batch finished with errors")
		os.Exit(1)
	}
}
