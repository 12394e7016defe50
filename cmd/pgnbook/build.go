package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnbook/internal/bookbuild"
	"github.com/lgbarn/pgnbook/internal/config"
	"github.com/lgbarn/pgnbook/internal/logging"
	"github.com/lgbarn/pgnbook/internal/stats"
	statslogger "github.com/lgbarn/pgnbook/internal/stats/logger"
	statsprom "github.com/lgbarn/pgnbook/internal/stats/prometheus"
)

var (
	buildOutput string
	buildFull   bool
	buildLoose  bool
)

var buildCmd = &cobra.Command{
	Use:   "build <pgn-file>",
	Short: "Build a Polyglot opening book from a PGN file",
	Long: `Build scans a PGN corpus game by game, replays each game's moves
against a chess position, and records one entry per (position, move)
observation. After every game has been replayed, entries are sorted by
position key, reweighted by how often each move was played from a given
position, and written out as a sorted Polyglot book.

The output path defaults to the input path with its extension replaced by
".bin"; pass --output to choose a different path.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output book path (default: input path with .bin extension)")
	buildCmd.Flags().BoolVar(&buildFull, "full", false, "disable deduplication; write every aggregated entry")
	buildCmd.Flags().BoolVar(&buildLoose, "loose", false, "apply the smallest-file tie-break to ambiguous SAN instead of rejecting it")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{
		InputPath:   args[0],
		OutputPath:  buildOutput,
		Full:        buildFull,
		Strict:      !buildLoose,
		Verbosity:   verbosity,
		MetricsAddr: metricsAddr,
	}

	log, err := logging.New(cfg.Verbosity)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	collector, stopMetrics := newCollector(cfg, log)
	defer stopMetrics()

	summary, err := bookbuild.Run(cfg, log, collector)
	if err != nil {
		log.Error("build failed", zap.Error(err))
		return err
	}

	log.Info("build complete",
		zap.Int("games", summary.Games),
		zap.Int("games_abandoned", summary.GamesAbandoned),
		zap.Int("moves", summary.Moves),
		zap.Int("entries_raw", summary.EntriesRaw),
		zap.Int("entries_written", summary.EntriesWritten),
		zap.Float64("unique_fraction", summary.UniqueFraction()),
		zap.Float64("games_per_sec", summary.GamesPerSecond()),
		zap.Float64("moves_per_sec", summary.MovesPerSecond()),
		zap.Int64("output_bytes", summary.OutputBytes),
		zap.String("output_path", cfg.OutputPathOrDefault()),
		zap.Duration("elapsed", summary.Elapsed),
	)
	return nil
}

// newCollector returns the stats.Collector a build run should use: a
// Prometheus-backed one served over MetricsAddr if set, otherwise a
// zap-logger-backed one. The returned stop func tears down the metrics
// server, if one was started.
func newCollector(cfg *config.Config, log *zap.Logger) (stats.Collector, func()) {
	if cfg.MetricsAddr == "" {
		return statslogger.New(log), func() {}
	}

	registry := prometheus.NewRegistry()
	collector := statsprom.New(registry)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))

	return collector, func() { _ = server.Close() }
}
