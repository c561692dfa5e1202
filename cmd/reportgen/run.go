package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/reportgen/internal/browser"
	"github.com/nao1215/reportgen/internal/config"
	"github.com/nao1215/reportgen/internal/log"
	"github.com/nao1215/reportgen/internal/model"
	"github.com/nao1215/reportgen/internal/pipeline"
	"github.com/nao1215/reportgen/internal/store"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [target-url...]",
		Short: "Run the research pipeline against one or more web pages",
		Long: `Run executes the full research pipeline for each target URL:

1. Open the page in a headless browser and capture its content
2. Extract a numeric table from the page, or fall back to a sample table
3. Compute descriptive statistics and pairwise correlations
4. Render a bar chart of the column means
5. Compile an HTML report and a presentation outline

When no target is given, ` + config.DefaultTargetURL + ` is used.
With multiple targets, each target writes into its own subdirectory of
the output directory.

Examples:
  # Run against the default target
  reportgen run

  # Run against a specific page
  reportgen run https://example.com/stats

  # Run several targets concurrently
  reportgen run https://a.example.com https://b.example.com

  # Write artifacts to a specific directory
  reportgen run -o ./out https://example.com

  # Also write a JSON variant of the report
  reportgen run --json https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runRunCmd,
	}

	// Output flags
	cmd.Flags().StringP("output-dir", "o", ".",
		"Directory artifacts (chart, report, slides) are written to")
	cmd.Flags().String("chart-file", config.DefaultChartFile,
		"Chart image filename within the output directory")
	cmd.Flags().String("report-file", config.DefaultReportFile,
		"Report filename within the output directory")
	cmd.Flags().String("slides-file", config.DefaultSlidesFile,
		"Presentation outline filename within the output directory")

	// Browser flags
	cmd.Flags().Bool("headless", true,
		"Run the browser without a window (disable when debugging)")
	cmd.Flags().DurationP("navigation-timeout", "T", config.DefaultNavigationTimeout,
		"Timeout for a single page navigation")
	cmd.Flags().DurationP("timeout", "t", config.DefaultRunTimeout,
		"Timeout for one full pipeline run")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent runs when multiple targets are given")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: "+config.DefaultConfigFile+" in current or home directory)")

	// Report variant flags
	cmd.Flags().BoolP("json", "j", false,
		"Additionally write a JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Additionally write a Markdown report (mutually exclusive with --json)")

	// Chart flags
	cmd.Flags().Int("chart-width", config.DefaultChartWidth, "Chart width in pixels")
	cmd.Flags().Int("chart-height", config.DefaultChartHeight, "Chart height in pixels")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runResearch(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	cfg.ChartFile, err = cmd.Flags().GetString("chart-file")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report-file")
	if err != nil {
		return nil, err
	}

	cfg.SlidesFile, err = cmd.Flags().GetString("slides-file")
	if err != nil {
		return nil, err
	}

	cfg.Headless, err = cmd.Flags().GetBool("headless")
	if err != nil {
		return nil, err
	}

	cfg.NavigationTimeout, err = cmd.Flags().GetDuration("navigation-timeout")
	if err != nil {
		return nil, err
	}

	cfg.RunTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ChartWidth, err = cmd.Flags().GetInt("chart-width")
	if err != nil {
		return nil, err
	}

	cfg.ChartHeight, err = cmd.Flags().GetInt("chart-height")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noHistory
	cfg.DBDir = config.XDGDataDir()

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the target URLs
	cfg.Targets = args

	// Merge configuration file settings. An explicitly specified file
	// must exist; the default locations are optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if len(cfg.Targets) == 0 {
		cfg.Targets = []string{config.DefaultTargetURL}
	}

	return cfg, nil
}

// runResearch executes the pipeline for every configured target.
func runResearch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting research run",
		"targets", cfg.Targets,
		"outputDir", cfg.OutputDir,
		"batchSize", cfg.BatchSize,
		"saveHistory", cfg.SaveToDB,
	)

	// Open the run-history database if recording is enabled
	var db *store.RunStore
	if cfg.SaveToDB {
		var err error
		db, err = store.Open(cfg.DBDir, store.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close() //nolint:errcheck // nothing to do on close failure
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	automator := browser.New(
		browser.WithHeadless(cfg.Headless),
		browser.WithNavigationTimeout(cfg.NavigationTimeout),
		browser.WithLogger(logger),
	)

	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatch(ctx, cfg, automator, db, logger)
	}
	return runSequential(ctx, cfg, automator, db, logger)
}

// configForTarget returns the effective config for one target. With
// multiple targets each run gets its own subdirectory so artifacts never
// collide.
func configForTarget(cfg *config.Config, index, total int) *config.Config {
	if total <= 1 {
		return cfg
	}
	perTarget := *cfg
	perTarget.OutputDir = filepath.Join(cfg.OutputDir, fmt.Sprintf("target-%d", index+1))
	return &perTarget
}

// runSequential runs targets one at a time.
func runSequential(ctx context.Context, cfg *config.Config, automator browser.Automator, db *store.RunStore, logger *slog.Logger) error {
	var firstErr error

	for i, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		targetCfg := configForTarget(cfg, i, len(cfg.Targets))
		p := pipeline.DefaultPipeline(targetCfg, automator, logger)
		r := model.NewResearchReport(target)

		fmt.Printf("Running research pipeline for %s...\n", target)
		startTime := time.Now()

		runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
		err := p.Execute(runCtx, r)
		cancel()

		if r.DateCompleted.IsZero() {
			r.Complete()
		}

		if err != nil {
			logger.Error("run failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Run error for %s: %v\n", target, err)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			fmt.Printf("Completed in %s\n", time.Since(startTime).Round(time.Millisecond))
			fmt.Printf("  report: %s\n", r.ReportPath)
			fmt.Printf("  chart:  %s\n", firstPath(r.ChartPaths))
			fmt.Printf("  slides: %s\n\n", r.SlidesPath)
		}

		saveRun(ctx, db, r, logger)
	}

	return firstErr
}

// runBatch runs multiple targets concurrently using BatchProcessor.
func runBatch(ctx context.Context, cfg *config.Config, automator browser.Automator, db *store.RunStore, logger *slog.Logger) error {
	fmt.Printf("Starting batch run of %d targets (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func(index int) *pipeline.Pipeline {
			targetCfg := configForTarget(cfg, index, len(cfg.Targets))
			return pipeline.DefaultPipeline(targetCfg, automator, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	reports, err := bp.ProcessBatch(ctx, cfg.Targets)
	if err != nil {
		return err
	}

	var failed int
	for i, r := range reports {
		status := "ok"
		if !r.Succeeded() {
			status = "failed: " + r.ErrorMessage
			failed++
		}
		fmt.Printf("[%d/%d] %s: %s\n", i+1, len(reports), r.TargetURL, status)
		saveRun(ctx, db, r, logger)
	}

	fmt.Printf("\nBatch run completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(reports))
	}
	return nil
}

// saveRun records a completed run in the history database.
func saveRun(ctx context.Context, db *store.RunStore, r *model.ResearchReport, logger *slog.Logger) {
	if db == nil {
		return
	}

	// Saving must work even when the run was cancelled.
	if errors.Is(ctx.Err(), context.Canceled) {
		ctx = context.Background()
	}

	id, err := db.SaveRun(ctx, r)
	if err != nil {
		logger.Error("failed to save run", "target", r.TargetURL, "error", err)
		return
	}
	logger.Debug("run saved", "id", id, "target", r.TargetURL)
}

// firstPath returns the first path or an empty placeholder.
func firstPath(paths []string) string {
	if len(paths) == 0 {
		return "(none)"
	}
	return paths[0]
}
