package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/rental-analysis/internal/config"
	"github.com/iwvelando/rental-analysis/internal/forecast"
	"github.com/iwvelando/rental-analysis/internal/logging"
	"github.com/iwvelando/rental-analysis/internal/rates"
	"github.com/iwvelando/rental-analysis/pkg/constants"
	"github.com/iwvelando/rental-analysis/pkg/output"
	"github.com/iwvelando/rental-analysis/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	expand := flag.Bool("expand", false, "print every row of the yearly table")
	schedule := flag.Bool("schedule", false, "print the monthly amortization schedule")
	fetchRate := flag.Bool("fetch-rate", false, "replace interest rates with the current market rate")
	flag.Parse()

	// An optional .env file supplies RENTAL_* overrides.
	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		if *configLocation == constants.DefaultConfigFile {
			fmt.Printf("copy %s to %s to get started\n", constants.ExampleConfigFile, constants.DefaultConfigFile)
		}
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *fetchRate || conf.Rates.Enabled {
		applyCurrentRates(logger, conf)
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := forecast.GetForecast(logger, *conf, time.Now().Year())
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, results, output.Options{
			Expand:   *expand || conf.Output.Expand,
			Schedule: *schedule,
		})
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, results)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, results)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func applyCurrentRates(logger *zap.Logger, conf *config.Configuration) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cache, closeCache, err := conf.Cache.NewStore(ctx)
	if err != nil {
		logger.Warn("rate cache unavailable, looking up rates without it",
			zap.String("op", "main"),
			zap.Error(err),
		)
		cache, closeCache = nil, func() error { return nil }
	}
	defer func() {
		_ = closeCache()
	}()

	provider := rates.NewProvider(logger, cache, conf.Rates.ProviderConfig())
	if err := forecast.ApplyCurrentRates(ctx, logger, conf, provider); err != nil {
		logger.Fatal("failed to apply current interest rates",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
