package polyglot

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/lgbarn/pgnbook/internal/chess"
	"github.com/lgbarn/pgnbook/internal/errors"
)

func TestMakeLearn_PacksResultAndOffset(t *testing.T) {
	learn := MakeLearn(ResultWhiteWin, 800)
	if result := learn >> 30; result != ResultWhiteWin {
		t.Errorf("result bits = %d, want %d", result, ResultWhiteWin)
	}
	if offset := learn & 0x3FFFFFFF; offset != 800>>3 {
		t.Errorf("offset bits = %d, want %d", offset, 800>>3)
	}
}

func TestMakeLearn_ResultVariants(t *testing.T) {
	for _, r := range []uint32{ResultWhiteWin, ResultBlackWin, ResultDraw, ResultUnknown} {
		if got := MakeLearn(r, 0) >> 30; got != r {
			t.Errorf("MakeLearn(%d, 0)>>30 = %d, want %d", r, got, r)
		}
	}
}

func TestEncodeMove_QuietMove(t *testing.T) {
	board := chess.NewBoard()
	move := &chess.Move{
		FromCol: 'e', FromRank: '2',
		ToCol: 'e', ToRank: '4',
		Class: chess.PawnMove,
	}
	if got := EncodeMove(board, move); got != 0x031C {
		t.Errorf("EncodeMove(e2e4) = %#04x, want 0x031C", got)
	}
}

func TestEncodeMove_Promotion(t *testing.T) {
	board := chess.NewBoard()
	move := &chess.Move{
		FromCol: 'a', FromRank: '7',
		ToCol: 'a', ToRank: '8',
		Class:         chess.PawnMoveWithPromotion,
		PromotedPiece: chess.Queen,
	}
	if got := EncodeMove(board, move); got != 0x4C38 {
		t.Errorf("EncodeMove(a7a8=Q) = %#04x, want 0x4C38", got)
	}
}

func TestEncodeMove_WhiteKingsideCastle(t *testing.T) {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	move := &chess.Move{Class: chess.KingsideCastle}
	if got := EncodeMove(board, move); got != 0x0107 {
		t.Errorf("EncodeMove(white O-O) = %#04x, want 0x0107", got)
	}
}

func TestEncodeMove_BlackQueensideCastle(t *testing.T) {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	board.ToMove = chess.Black
	move := &chess.Move{Class: chess.QueensideCastle}
	got := EncodeMove(board, move)
	from := chess.SquareIndex('e', '8')
	to := chess.SquareIndex('a', '8')
	want := uint16(to) | uint16(from)<<6
	if got != want {
		t.Errorf("EncodeMove(black O-O-O) = %#04x, want %#04x", got, want)
	}
}

func TestWriter_DedupsConsecutiveSameMove(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(Entry{Key: 1, Move: 0x1234, Weight: 1, Learn: 0}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(Entry{Key: 1, Move: 0x1234, Weight: 5, Learn: 0}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(Entry{Key: 1, Move: 0x5678, Weight: 1, Learn: 0}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2*EntrySize {
		t.Fatalf("wrote %d bytes, want %d (2 records)", buf.Len(), 2*EntrySize)
	}
}

func TestWriter_FullDisablesDedup(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Full = true
	for i := 0; i < 3; i++ {
		if err := w.Write(Entry{Key: 1, Move: 0x1234, Weight: 1, Learn: 0}); err != nil {
			t.Fatal(err)
		}
	}
	w.Flush()
	if buf.Len() != 3*EntrySize {
		t.Fatalf("wrote %d bytes, want %d (3 records)", buf.Len(), 3*EntrySize)
	}
}

func TestWriter_ZeroWeightPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on zero-weight entry")
		}
	}()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_ = w.Write(Entry{Key: 1, Move: 1, Weight: 0, Learn: 0})
}

func TestProber_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Full = true
	entries := []Entry{
		{Key: 1, Move: 0x0001, Weight: 3, Learn: 0},
		{Key: 1, Move: 0x0002, Weight: 1, Learn: 0},
		{Key: 2, Move: 0x0003, Weight: 1, Learn: 0},
		{Key: 5, Move: 0x0004, Weight: 1, Learn: 0},
	}
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			t.Fatal(err)
		}
	}
	w.Flush()

	prober, err := NewProber(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if prober.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", prober.Len())
	}

	got := prober.Probe(1)
	if len(got) != 2 {
		t.Fatalf("Probe(1) returned %d entries, want 2", len(got))
	}

	if got := prober.Probe(3); len(got) != 0 {
		t.Errorf("Probe(3) returned %d entries, want 0", len(got))
	}

	got = prober.Probe(5)
	if len(got) != 1 || got[0].Move != 0x0004 {
		t.Errorf("Probe(5) = %+v, want single entry with move 0x0004", got)
	}
}

func TestNewProber_RejectsMisalignedData(t *testing.T) {
	_, err := NewProber(make([]byte, 17))
	if err == nil {
		t.Fatal("expected error for non-multiple-of-16 length")
	}
	if !stderrors.Is(err, errors.ErrInvalidBook) {
		t.Errorf("error should wrap ErrInvalidBook, got %v", err)
	}
}
