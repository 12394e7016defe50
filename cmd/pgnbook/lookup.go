package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lgbarn/pgnbook/internal/engine"
	"github.com/lgbarn/pgnbook/internal/polyglot"
	"github.com/lgbarn/pgnbook/internal/zobrist"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <book> <fen>",
	Short: "Probe a Polyglot book for every move recorded from a position",
	Long: `lookup computes the Polyglot Zobrist key for a FEN position and binary
searches a sorted book file for every entry sharing that key, printing each
move's encoded value and weight, heaviest first.

This does not write to the book; it exists to verify a freshly built one and
to smoke-test the writer, not to support incremental updates.

Examples:
  pgnbook lookup games.bin "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	bookPath, fen := args[0], args[1]

	data, err := os.ReadFile(bookPath)
	if err != nil {
		return fmt.Errorf("reading book: %w", err)
	}

	prober, err := polyglot.NewProber(data)
	if err != nil {
		return err
	}

	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return err
	}
	key := zobrist.Key(board)

	entries := prober.Probe(key)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Weight > entries[j].Weight })

	if len(entries) == 0 {
		fmt.Printf("no entries for key %016x\n", key)
		return nil
	}

	fmt.Printf("key %016x, %d entr%s\n", key, len(entries), plural(len(entries)))
	for _, e := range entries {
		fmt.Printf("  move=%04x weight=%d learn=%08x\n", e.Move, e.Weight, e.Learn)
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
