package replay

import (
	stderrors "errors"
	"testing"

	"github.com/lgbarn/pgnbook/internal/errors"
	"github.com/lgbarn/pgnbook/internal/pgnscan"
	"github.com/lgbarn/pgnbook/internal/polyglot"
)

func TestGame_ProducesOneEntryPerPly(t *testing.T) {
	game := pgnscan.Game{
		SAN:    []string{"e4", "e5", "Nf3", "Nc6"},
		Result: pgnscan.WhiteWin,
		Offset: 1024,
	}
	entries, err := Game(1, game, true)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	for _, e := range entries {
		if e.Weight != 1 {
			t.Errorf("entry %+v has weight %d, want 1 (raw, unaggregated)", e, e.Weight)
		}
		if result := e.Learn >> 30; result != polyglot.ResultWhiteWin {
			t.Errorf("Learn result bits = %d, want ResultWhiteWin", result)
		}
	}
}

func TestGame_SeedFENUsedAsStartingPosition(t *testing.T) {
	game := pgnscan.Game{
		SeedFEN: "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
		SAN:     []string{"e4"},
		Result:  pgnscan.Unknown,
	}
	entries, err := Game(1, game, true)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
}

func TestGame_UnresolvableMoveReturnsPartialEntriesAndGameError(t *testing.T) {
	game := pgnscan.Game{
		SAN:    []string{"e4", "e5", "Qh5", "Nf6", "Qxf9"}, // f9 is off the board
		Result: pgnscan.Unknown,
		Offset: 42,
	}
	entries, err := Game(3, game, true)
	if len(entries) != 4 {
		t.Fatalf("got %d partial entries, want 4 (stopped before the bad move)", len(entries))
	}
	var gerr *errors.GameError
	if !stderrors.As(err, &gerr) {
		t.Fatalf("err = %v, want *errors.GameError", err)
	}
	if gerr.GameNum != 3 || gerr.PlyNum != 4 || gerr.Offset != 42 {
		t.Errorf("GameError = %+v, wrong fields", gerr)
	}
	if !stderrors.Is(err, errors.ErrSanUnresolved) {
		t.Errorf("err should wrap ErrSanUnresolved, got %v", err)
	}
}

func TestGame_NullMoveAdvancesWithoutProducingEntry(t *testing.T) {
	game := pgnscan.Game{
		SAN:    []string{"e4", "--", "Nc3"},
		Result: pgnscan.Unknown,
	}
	entries, err := Game(1, game, true)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (null move contributes none)", len(entries))
	}
}

func TestGame_BadSeedFENAbandonsGame(t *testing.T) {
	game := pgnscan.Game{SeedFEN: "not a fen"}
	_, err := Game(1, game, true)
	if err == nil {
		t.Fatal("expected an error for an unparseable seed FEN")
	}
	var gerr *errors.GameError
	if !stderrors.As(err, &gerr) {
		t.Fatalf("err = %v, want *errors.GameError", err)
	}
}

func TestGame_ResultVariantsPackedIntoLearn(t *testing.T) {
	cases := []struct {
		result pgnscan.GameResult
		want   uint32
	}{
		{pgnscan.WhiteWin, polyglot.ResultWhiteWin},
		{pgnscan.BlackWin, polyglot.ResultBlackWin},
		{pgnscan.Draw, polyglot.ResultDraw},
		{pgnscan.Unknown, polyglot.ResultUnknown},
	}
	for _, c := range cases {
		game := pgnscan.Game{SAN: []string{"e4"}, Result: c.result}
		entries, err := Game(1, game, true)
		if err != nil {
			t.Fatalf("Game: %v", err)
		}
		if got := entries[0].Learn >> 30; got != c.want {
			t.Errorf("result %v: Learn result bits = %d, want %d", c.result, got, c.want)
		}
	}
}
