package bookbuild

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/lgbarn/pgnbook/internal/config"
	"github.com/lgbarn/pgnbook/internal/polyglot"
	"github.com/lgbarn/pgnbook/internal/stats"
)

// TestRun_EndToEnd drives the whole pipeline (source -> scanner -> replay
// -> aggregator -> writer) with a no-op stats collector, calling Run
// directly with no CLI in front of it.
func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "games.pgn")
	pgn := "[Event \"t\"]\n1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0\n"
	if err := os.WriteFile(in, []byte(pgn), 0o644); err != nil {
		t.Fatalf("writing temp PGN: %v", err)
	}

	cfg := &config.Config{InputPath: in, Strict: true}
	summary, err := Run(cfg, zap.NewNop(), stats.NewNoop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Games != 1 {
		t.Errorf("Games = %d, want 1", summary.Games)
	}
	if summary.GamesAbandoned != 0 {
		t.Errorf("GamesAbandoned = %d, want 0", summary.GamesAbandoned)
	}
	if summary.EntriesWritten != 7 {
		t.Errorf("EntriesWritten = %d, want 7", summary.EntriesWritten)
	}
	if summary.OutputBytes != int64(summary.EntriesWritten)*polyglot.EntrySize {
		t.Errorf("OutputBytes = %d, want %d", summary.OutputBytes, int64(summary.EntriesWritten)*polyglot.EntrySize)
	}
}

// TestRun_EmptyInputProducesEmptyOutput exercises the empty-input boundary
// case directly against Run, rather than through the CLI wrapper.
func TestRun_EmptyInputProducesEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.pgn")
	if err := os.WriteFile(in, nil, 0o644); err != nil {
		t.Fatalf("writing temp PGN: %v", err)
	}

	cfg := &config.Config{InputPath: in}
	summary, err := Run(cfg, zap.NewNop(), stats.NewNoop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Games != 0 || summary.EntriesWritten != 0 || summary.OutputBytes != 0 {
		t.Errorf("summary = %+v, want all-zero", summary)
	}
}
