// Trademetriks — profit & loss dashboard for broker tradebook exports.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/seenimoa/trademetriks/api"
	"github.com/seenimoa/trademetriks/internal/analytics"
	"github.com/seenimoa/trademetriks/internal/config"
	"github.com/seenimoa/trademetriks/internal/logger"
	"github.com/seenimoa/trademetriks/internal/report"
	"github.com/seenimoa/trademetriks/internal/trace"
	"github.com/seenimoa/trademetriks/internal/tradebook"
	"github.com/seenimoa/trademetriks/pkg/models"
	"github.com/seenimoa/trademetriks/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flush exports buffered spans and log entries. It runs after every
// command, failed ones included.
func flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := trace.Shutdown(ctx); err != nil {
		logger.Warn("trace shutdown", logger.Fields{"error": err})
	}
	_ = logger.Sync()
}

var rootCmd = &cobra.Command{
	Use:   "trademetriks",
	Short: "Trademetriks — P/L dashboard for your tradebook",
	Long: `Trademetriks reads a broker tradebook CSV, nets every position that was
opened and closed on the same day, and renders the results as a dashboard:
headline KPIs, cumulative and date-wise P/L, weekday and month breakdowns,
symbol-wise performance and the latest session's trades.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if trades, _ := cmd.Flags().GetString("trades"); trades != "" {
			cfg.Data.TradesFile = trades
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, os.Stderr); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if err := trace.Init(trace.Options{
			Enabled: cfg.Tracing.Enabled,
			Pretty:  cfg.Tracing.Pretty,
			Version: version,
		}); err != nil {
			return fmt.Errorf("failed to initialize tracer: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("trades", "", "tradebook CSV path (overrides data.trades_file)")
	rootCmd.PersistentFlags().String("as-of", "", "reference date for the month KPI, YYYY-MM-DD (default: today)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// computeDashboard loads the configured tradebook and runs the pipeline.
func computeDashboard(cmd *cobra.Command) (*models.Dashboard, error) {
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	asOf, err := analytics.ResolveAsOf(asOfFlag, utils.IST, utils.NowIST())
	if err != nil {
		return nil, err
	}

	opts, err := tradebook.OptionsFromConfig(cfg.Data)
	if err != nil {
		return nil, err
	}
	trades, err := tradebook.Load(cmd.Context(), cfg.Data.TradesFile, opts)
	if err != nil {
		return nil, err
	}
	return analytics.Compute(cmd.Context(), trades, asOf)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Trademetriks %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard to files",
	Long:  "Render the dashboard in one or more formats (html, json, yaml, text, pdf, rss) into an output directory.",
	Example: `  trademetriks render
  trademetriks render --format html,pdf,rss --out ./site
  trademetriks render --trades ./data/march.csv --as-of 2024-03-31 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, _ := cmd.Flags().GetStringSlice("format")
		if len(names) == 0 {
			names = cfg.Report.Formats
		}
		formats, err := parseFormats(names)
		if err != nil {
			return err
		}
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = cfg.Report.OutputDir
		}

		db, err := computeDashboard(cmd)
		if err != nil {
			return err
		}
		written, err := report.RenderAll(cmd.Context(), db, report.OptionsFromConfig(cfg.Report), formats, outDir)
		if err != nil {
			return err
		}

		for _, f := range formats {
			fmt.Printf("  %-5s %s\n", f, written[f])
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringSlice("format", nil, "output formats (default: report.formats)")
	renderCmd.Flags().String("out", "", "output directory (default: report.output_dir)")
}

// parseFormats maps names to formats, dropping duplicates.
func parseFormats(names []string) ([]report.Format, error) {
	var formats []report.Format
	for _, name := range names {
		f, err := report.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// --- Summary Command ---

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard as a terminal summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := computeDashboard(cmd)
		if err != nil {
			return err
		}
		out, err := report.GenerateText(db, report.OptionsFromConfig(cfg.Report))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard and JSON API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.API.Port, _ = cmd.Flags().GetInt("port")
		}

		load, err := api.TradebookLoader(cfg.Data)
		if err != nil {
			return err
		}
		srv := api.NewServer(cfg, load)
		srv.SetVersion(version)
		if err := applyAsOf(srv, cmd); err != nil {
			return err
		}

		addr := net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port))
		fmt.Printf("🌐 Trademetriks dashboard on http://%s\n", addr)
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

// applyAsOf pins the server clock to --as-of when it is set. Requests
// without ?as_of then use that date as the month reference.
func applyAsOf(srv *api.Server, cmd *cobra.Command) error {
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	if asOfFlag == "" {
		return nil
	}
	asOf, err := analytics.ResolveAsOf(asOfFlag, utils.IST, utils.NowIST())
	if err != nil {
		return err
	}
	srv.SetClock(func() time.Time { return asOf })
	return nil
}

func init() {
	serveCmd.Flags().Int("port", 8080, "listen port (default: api.port)")
}

// --- Config Command ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("write"); path != "" {
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}
			fmt.Printf("Configuration written to %s\n", path)
			return nil
		}

		source := config.ConfigFilePath()
		if source == "" {
			source = "defaults + environment"
		}
		fmt.Printf("# source: %s\n", source)

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	configCmd.Flags().String("write", "", "write the effective configuration to this path")
}
