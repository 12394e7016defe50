package zobrist

import (
	"testing"

	"github.com/lgbarn/pgnbook/internal/chess"
	"github.com/lgbarn/pgnbook/internal/engine"
)

func mustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q): %v", fen, err)
	}
	return board
}

func TestKey_Deterministic(t *testing.T) {
	a := engine.NewInitialBoard()
	b := engine.NewInitialBoard()
	if Key(a) != Key(b) {
		t.Error("two copies of the standard start disagree on key")
	}
}

func TestKey_SideToMoveToggles(t *testing.T) {
	white := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	black := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	if Key(white) == Key(black) {
		t.Error("keys should differ when only side to move differs")
	}
	if Key(white) != Key(black)^sideToMove {
		t.Error("side-to-move keys should differ by exactly the sideToMove constant")
	}
}

func TestKey_CastlingRightsFoldIn(t *testing.T) {
	full := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	none := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	if Key(full) == Key(none) {
		t.Error("keys should differ when castling rights differ")
	}
}

func TestKey_CastlingRightsIndependent(t *testing.T) {
	kOnly := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w K - 0 1")
	qOnly := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w Q - 0 1")
	none := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	if Key(kOnly)^Key(none) == Key(qOnly)^Key(none) {
		t.Error("white kingside and queenside castling rights should fold in independent bits")
	}
}

// TestKey_EnPassantOnlyWhenCapturable guards the rule that the en-passant
// file only contributes to the key when an adjacent pawn can actually
// make the capture, not merely because a double push just happened.
func TestKey_EnPassantOnlyWhenCapturable(t *testing.T) {
	capturable := mustBoard(t, "rnbqkbnr/ppp1pppp/8/2Pp4/8/8/PP1PPPPP/RNBQKBNR w KQkq d6 0 3")
	noCaptor := mustBoard(t, "rnbqkbnr/ppp1pppp/8/3p4/8/8/PPPPPPPP/RNBQKBNR w KQkq d6 0 3")

	capturableNoEP := capturable.Copy()
	capturableNoEP.EnPassant = false
	noCaptorNoEP := noCaptor.Copy()
	noCaptorNoEP.EnPassant = false

	if Key(capturable) == Key(capturableNoEP) {
		t.Error("en-passant file should contribute to the key when a capture is available")
	}
	if Key(noCaptor) != Key(noCaptorNoEP) {
		t.Error("en-passant file should not contribute to the key when no pawn can capture")
	}
}

func TestKey_PieceOccupancyMatters(t *testing.T) {
	a := mustBoard(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	b := mustBoard(t, "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq - 0 1")
	if Key(a) == Key(b) {
		t.Error("keys should differ when the pushed pawn sits on a different file")
	}
}
