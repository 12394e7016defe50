package main

import (
	"github.com/spf13/cobra"
)

var (
	verbosity   int
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "pgnbook",
	Short: "Convert PGN corpora into sorted Polyglot opening books",
	Long: `pgnbook converts a large PGN corpus into a compact, sorted, binary
Polyglot opening book, deduplicating repeated (position, move) observations
and reweighting them by how often each move was actually played.

Examples:
  # Build a book from a PGN file, writing games.bin next to it
  pgnbook build games.pgn

  # Same, but keep every pre-dedup entry (diagnostic dump)
  pgnbook build games.pgn --full

  # Probe a position in a previously built book
  pgnbook lookup games.bin "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"`,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "verbosity (0=quiet, 1=info, 2=debug)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running (e.g. :9090)")
}
