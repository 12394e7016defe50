// Package errors defines the sentinel errors and context-carrying wrapper
// types shared across the scanner, resolver, replayer and writer, plus the
// fatal/recoverable split the run loop uses to decide whether a failure
// aborts one game or the whole run.
package errors

import "fmt"

// Sentinel errors. Callers compare with errors.Is, never string matching.
var (
	// ErrInvalidFEN means a seed FEN tag could not be parsed into a board.
	ErrInvalidFEN = fmt.Errorf("invalid FEN")

	// ErrSanUnresolved means no legal move matched a SAN token.
	ErrSanUnresolved = fmt.Errorf("SAN token did not resolve to a legal move")

	// ErrSanAmbiguous means more than one legal move matched a SAN token
	// and the resolver was run in strict mode.
	ErrSanAmbiguous = fmt.Errorf("SAN token matched more than one legal move")

	// ErrSourceUnavailable means the input file could not be mapped.
	ErrSourceUnavailable = fmt.Errorf("input source unavailable")

	// ErrMalformedPGN means the replayer could not apply a resolved move
	// to the board, so the game is abandoned at that move.
	ErrMalformedPGN = fmt.Errorf("malformed PGN")

	// ErrWeightZero means the aggregator produced a zero-weight entry,
	// which indicates an aggregator bug rather than bad input.
	ErrWeightZero = fmt.Errorf("zero-weight entry")

	// ErrInvalidBook means a byte slice handed to the prober is not a
	// well-formed sequence of 16-byte Polyglot records.
	ErrInvalidBook = fmt.Errorf("invalid polyglot book")
)

// GameError wraps a failure that aborts a single game, identified by its
// ordinal number and the byte offset of its first tag in the source file.
// The run continues with the next game; entries already emitted for this
// game are kept (prefix validity, per the replayer's design).
type GameError struct {
	Err      error
	GameNum  int
	PlyNum   int
	MoveText string
	Offset   int64
}

func (e *GameError) Error() string {
	if e.MoveText != "" {
		return fmt.Sprintf("game %d, ply %d (%q) at offset %d: %v", e.GameNum, e.PlyNum, e.MoveText, e.Offset, e.Err)
	}
	return fmt.Sprintf("game %d at offset %d: %v", e.GameNum, e.Offset, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }

// ParseError wraps a failure in the pushdown scanner below the level of an
// individual game: a state-table transition with no defined step, or a
// buffer that overflowed its fixed bound. These are always fatal: the
// scanner has lost its place in the byte stream.
type ParseError struct {
	Err    error
	Offset int64
	State  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d (state %s): %v", e.Offset, e.State, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Wrap annotates err with msg, or returns nil if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf annotates err with a formatted message, or returns nil if err is
// nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
