package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/contrastscan/internal/config"
	"github.com/nao1215/contrastscan/internal/database"
	"github.com/nao1215/contrastscan/internal/ingest"
	"github.com/nao1215/contrastscan/internal/log"
	"github.com/nao1215/contrastscan/internal/model"
	"github.com/nao1215/contrastscan/internal/pipeline"
	"github.com/nao1215/contrastscan/internal/report"
	"github.com/nao1215/contrastscan/internal/simulate"
	"github.com/spf13/cobra"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <scan-file>",
		Short: "Analyze a scan document for color-vision contrast risks",
		Long: `Audit reads a JSON scan document produced by the UI scan collaborator,
deduplicates the recorded elements into style tokens, measures WCAG
contrast ratios for normal vision and three simulated deficiencies, and
classifies every token against its applicable threshold.

Per site the audit reports the Component Vulnerability Index (CVI): the
share of unique style groups that pass for normal vision but fail under
at least one simulated deficiency.

Examples:
  # Audit a scan document and print the text report
  contrastscan audit cvd_ui_contrast_audit.json

  # Output a Markdown report to a file
  contrastscan audit --markdown -o report.md cvd_ui_contrast_audit.json

  # Export vulnerable examples for spreadsheet analysis
  contrastscan audit --csv vulnerable_examples.csv cvd_ui_contrast_audit.json

  # Use a custom configuration file
  contrastscan audit -c myconfig.yaml cvd_ui_contrast_audit.json

Configuration file (.contrastscan) example:
  defaults:
    topExamples: 10
  sites:
    staging.example.com:
      skip: true
    shop.example.com:
      topExamples: 25`,
		Args: cobra.ExactArgs(1),
		RunE: runAuditCmd,
	}

	// Analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of sites analyzed concurrently")
	cmd.Flags().IntP("top", "n", config.DefaultTopExamples,
		"Number of ranked vulnerable examples kept per site")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .contrastscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("csv", "",
		"Write the vulnerable-example CSV export to the specified file")

	// Persistence flags
	cmd.Flags().String("db-dir", "",
		"Directory for the audit history database (default: XDG data directory)")
	cmd.Flags().Bool("no-save", false,
		"Do not record this audit in the history database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Scraped labels flow into log output, so the sanitizing handler is
	// mandatory rather than optional.
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

	return runAudit(ctx, cfg, logger)
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
	cfg.InputFile = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.TopExamples, err = cmd.Flags().GetInt("top")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.CSVFile, err = cmd.Flags().GetString("csv")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	return cfg, nil
}

// runAudit executes the audit.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	doc, err := ingest.Load(cfg.InputFile)
	if err != nil {
		return err
	}

	reports := filterSkipped(ingest.SiteReports(doc), cfg, logger)
	if len(reports) == 0 {
		return fmt.Errorf("no sites to audit in %s (all skipped?)", cfg.InputFile)
	}

	logger.Info("starting audit",
		"input", cfg.InputFile,
		"sites", len(reports),
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// One shared simulation cache across all sites: simulated colors
	// depend only on (color, deficiency), never on the site.
	sim := simulate.NewCache(simulate.Machado2009{})

	startTime := time.Now()
	if len(reports) > 1 && cfg.BatchSize > 1 {
		if err := runBatchAudit(ctx, cfg, sim, reports, logger); err != nil {
			return err
		}
	} else if err := runSequentialAudit(ctx, cfg, sim, reports, logger); err != nil {
		return err
	}
	elapsed := time.Since(startTime)

	auditReport := model.NewAuditReport(doc.ScanDate, doc.CVDModel)
	auditReport.Sites = reports
	auditReport.SortSites()

	logger.Info("audit completed",
		"sites", len(reports),
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)

	if err := outputReport(cfg, auditReport); err != nil {
		return err
	}

	if cfg.CSVFile != "" {
		if err := writeCSVExport(cfg, auditReport); err != nil {
			return err
		}
	}

	return saveAuditReport(ctx, cfg, auditReport, logger)
}

// filterSkipped drops sites excluded by the configuration file.
func filterSkipped(reports []*model.SiteReport, cfg *config.Config, logger *slog.Logger) []*model.SiteReport {
	if cfg.SiteConfigs == nil {
		return reports
	}

	kept := reports[:0]
	for _, r := range reports {
		if cfg.SiteConfigs.GetSiteConfig(r.Site).Skip {
			logger.Info("skipping site per configuration", "site", r.Site)
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// newAuditPipeline creates an analysis pipeline for one site.
func newAuditPipeline(sim simulate.Simulator, logger *slog.Logger, topExamples int) *pipeline.Pipeline {
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}
	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineTopExamples(topExamples),
	}
	return pipeline.DefaultPipeline(sim, pipelineOpts, configOpts...)
}

// runSequentialAudit analyzes sites one at a time, applying per-site
// configuration overrides.
func runSequentialAudit(ctx context.Context, cfg *config.Config, sim simulate.Simulator, reports []*model.SiteReport, logger *slog.Logger) error {
	for _, r := range reports {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		topExamples := cfg.TopExamples
		if cfg.SiteConfigs != nil {
			if siteCfg := cfg.SiteConfigs.GetSiteConfig(r.Site); siteCfg.TopExamples > 0 {
				topExamples = siteCfg.TopExamples
			}
		}

		p := newAuditPipeline(sim, logger, topExamples)
		if err := p.Execute(ctx, r); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("analysis failed", "site", r.Site, "error", err)
		}
	}
	return nil
}

// runBatchAudit analyzes sites concurrently using BatchProcessor.
func runBatchAudit(ctx context.Context, cfg *config.Config, sim simulate.Simulator, reports []*model.SiteReport, logger *slog.Logger) error {
	// Per-site topExamples overrides would require per-site pipeline
	// creation; batch mode applies the defaults only.
	if cfg.SiteConfigs != nil && len(cfg.SiteConfigs.Sites) > 0 {
		logger.Warn("batch processing uses default site config only; per-site topExamples overrides are ignored",
			"siteCount", len(cfg.SiteConfigs.Sites))
	}

	topExamples := cfg.TopExamples
	if cfg.SiteConfigs != nil && cfg.SiteConfigs.Defaults.TopExamples > 0 {
		topExamples = cfg.SiteConfigs.Defaults.TopExamples
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return newAuditPipeline(sim, logger, topExamples)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	return bp.ProcessBatch(ctx, reports)
}

// outputReport outputs the audit report in the requested format.
func outputReport(cfg *config.Config, auditReport *model.AuditReport) error {
	output, closer, err := openOutput(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closer()

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err = writer.Write(auditReport)
	return err
}

// writeCSVExport writes the flat vulnerable-example export.
func writeCSVExport(cfg *config.Config, auditReport *model.AuditReport) error {
	output, closer, err := openOutput(cfg.CSVFile)
	if err != nil {
		return err
	}
	defer closer()

	_, err = report.NewCSVWriter(output).Write(auditReport)
	return err
}

// openOutput opens the destination file, creating parent directories as
// needed, or falls back to stdout when path is empty.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// saveAuditReport saves the audit to the history database if enabled.
func saveAuditReport(ctx context.Context, cfg *config.Config, auditReport *model.AuditReport, logger *slog.Logger) error {
	if !cfg.SaveToDB {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	auditID, err := db.SaveAudit(ctx, auditReport)
	if err != nil {
		return fmt.Errorf("failed to save audit: %w", err)
	}

	logger.Info("audit saved to database", "auditID", auditID, "dir", cfg.DBDir)
	return nil
}
