// Command pgnbook converts a PGN corpus into a sorted, deduplicated
// Polyglot opening book, and can probe a book it (or another tool) built.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
