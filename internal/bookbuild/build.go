package bookbuild

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lgbarn/pgnbook/internal/config"
	"github.com/lgbarn/pgnbook/internal/errors"
	"github.com/lgbarn/pgnbook/internal/pgnscan"
	"github.com/lgbarn/pgnbook/internal/polyglot"
	"github.com/lgbarn/pgnbook/internal/replay"
	"github.com/lgbarn/pgnbook/internal/source"
	"github.com/lgbarn/pgnbook/internal/stats"
)

// Summary reports the counters a build run accumulates: games and moves
// seen, games abandoned to a recoverable error, throughput, and the
// output file's final size.
type Summary struct {
	Games          int
	GamesAbandoned int
	Moves          int
	EntriesRaw     int
	EntriesWritten int
	OutputBytes    int64
	Elapsed        time.Duration
}

// GamesPerSecond reports the run's game throughput, or 0 for a
// zero-duration run.
func (s Summary) GamesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Games) / s.Elapsed.Seconds()
}

// MovesPerSecond reports the run's ply throughput.
func (s Summary) MovesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Moves) / s.Elapsed.Seconds()
}

// UniqueFraction reports the share of raw entries that survived
// aggregation's dedup-at-write step: the fraction (0 to 1) of (position,
// move) observations that turned out to be unique.
func (s Summary) UniqueFraction() float64 {
	if s.EntriesRaw == 0 {
		return 0
	}
	return float64(s.EntriesWritten) / float64(s.EntriesRaw)
}

// Run drives the full pipeline: map the input, scan it into games, replay
// each game into entries, aggregate and reweight, and write the sorted
// Polyglot book to cfg's output path. A per-game replay failure is
// recoverable: it is logged at Warn, counted, and the run continues with
// the next game; a scanner failure is fatal and aborts the run.
func Run(cfg *config.Config, log *zap.Logger, collector stats.Collector) (Summary, error) {
	start := time.Now()

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		return Summary{}, err
	}
	defer src.Close()

	agg := NewAggregator(src.Len())
	summary := Summary{}

	scanner := pgnscan.New(src.Bytes())
	gameNum := 0
	err = scanner.Scan(func(game pgnscan.Game) error {
		gameNum++
		summary.Games++

		entries, rerr := replay.Game(gameNum, game, cfg.Strict)
		summary.Moves += len(entries)
		if rerr != nil {
			summary.GamesAbandoned++
			collector.IncCounter(stats.MetricGamesFailed, 1)
			if stderrors.Is(rerr, errors.ErrSanUnresolved) || stderrors.Is(rerr, errors.ErrSanAmbiguous) {
				collector.IncCounter(stats.MetricSanUnresolved, 1)
			}
			logGameError(log, rerr)
		}
		collector.IncCounter(stats.MetricPliesReplayed, int64(len(entries)))

		agg.Add(entries)
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	collector.IncCounter(stats.MetricGamesParsed, int64(summary.Games))

	aggregated := agg.Finish()
	summary.EntriesRaw = agg.Len()
	collector.IncCounter(stats.MetricEntriesRaw, int64(summary.EntriesRaw))

	out, err := os.Create(cfg.OutputPathOrDefault())
	if err != nil {
		return Summary{}, fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	writer := polyglot.NewWriter(out)
	writer.Full = cfg.Full
	for _, e := range aggregated {
		if err := writer.Write(e); err != nil {
			return Summary{}, fmt.Errorf("writing entry: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return Summary{}, fmt.Errorf("flushing output: %w", err)
	}

	info, err := out.Stat()
	if err != nil {
		return Summary{}, fmt.Errorf("stat output file: %w", err)
	}
	summary.OutputBytes = info.Size()
	summary.EntriesWritten = int(summary.OutputBytes / polyglot.EntrySize)
	summary.Elapsed = time.Since(start)

	collector.IncCounter(stats.MetricEntriesWritten, int64(summary.EntriesWritten))
	collector.ObserveHistogram(stats.MetricBuildDuration, summary.Elapsed.Seconds())

	return summary, nil
}

func logGameError(log *zap.Logger, err error) {
	var gerr *errors.GameError
	if stderrors.As(err, &gerr) {
		log.Warn("game abandoned",
			zap.Int("game", gerr.GameNum),
			zap.Int("ply", gerr.PlyNum),
			zap.String("move", gerr.MoveText),
			zap.Int64("offset", gerr.Offset),
			zap.Error(gerr.Err),
		)
		return
	}
	log.Warn("game abandoned", zap.Error(err))
}
