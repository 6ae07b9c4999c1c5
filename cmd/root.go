package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vehicle-insights/config"
	"vehicle-insights/models"
	"vehicle-insights/services"
	"vehicle-insights/storage"
	"vehicle-insights/utils"
)

var (
	// Version information
	Version = "0.1.0"

	// CLI flags
	dataPath   string
	dataSource string
	verbose    bool
	quiet      bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "vehicle-insights",
	Short:   "Exploratory dashboard for used-vehicle listings",
	Version: Version,
	Long: `vehicle-insights loads a table of used-vehicle listings, derives the
manufacturer of every listing from its model name and serves the charts of
an exploratory dashboard.

Data sources:
  - CSV files (default: notebooks/vehicles_us.csv)
  - Excel workbooks (.xlsx)
  - PostgreSQL tables

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Path of the listings file (overrides DATA_PATH)")
	RootCmd.PersistentFlags().StringVar(&dataSource, "source", "", "Source kind: csv, xlsx or postgres (overrides DATA_SOURCE)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	RootCmd.AddCommand(serveCmd, summaryCmd, exportCmd, snapshotCmd)
}

// setup builds the logger, loads the configuration and applies flag overrides.
func setup(cmd *cobra.Command) (*config.Config, *utils.Logger, error) {
	logger := utils.NewLogger()
	logger.SetOutput(cmd.ErrOrStderr())
	applyVerbosity(logger)

	cfg, err := config.Load(logger)
	if err != nil {
		return nil, nil, err
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if dataSource != "" {
		cfg.DataSource = dataSource
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger.SetLevel(cfg.LogLevel)
	applyVerbosity(logger)
	return cfg, logger, nil
}

// applyVerbosity lets --quiet and --verbose override LOG_LEVEL.
func applyVerbosity(logger *utils.Logger) {
	if quiet {
		logger.SetLevel("error")
	} else if verbose {
		logger.SetLevel("debug")
	}
}

// loadDataset reads the configured source and prepares it for charting.
func loadDataset(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*models.Dataset, error) {
	logger.Info("Loading listings from %s", storage.Describe(cfg))

	src, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open data source: %v", err)
		return nil, err
	}
	defer src.Close()

	raw, err := src.Load(ctx)
	if err != nil {
		logger.Error("Failed to load listings: %v", err)
		return nil, err
	}

	ds, err := services.NewPreparer(logger).Prepare(raw)
	if err != nil {
		logger.Error("Dataset cannot be charted: %v", err)
		return nil, fmt.Errorf("prepare %s: %w", storage.Describe(cfg), err)
	}
	return ds, nil
}

// summaryCmd prints the insight report to the terminal
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print an overview of the listings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		insights := services.NewInsightService(logger, services.NewAggregator(logger))
		insights.Print(cmd.OutOrStdout(), insights.Generate(ds))
		return nil
	},
}
