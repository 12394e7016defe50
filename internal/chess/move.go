package chess

// Move is a single decoded chess move, either freshly parsed from a SAN
// token (source squares possibly unset pending disambiguation) or fully
// resolved against a position.
type Move struct {
	// Text is the original SAN token, without its trailing check/mate
	// glyphs (those are stripped by the classifier before the move
	// reaches the resolver).
	Text string

	Class MoveClass

	FromCol  Col
	FromRank Rank
	ToCol    Col
	ToRank   Rank

	// PieceToMove is the moving piece's type (uncoloured).
	PieceToMove Piece

	// PromotedPiece is the promotion target, Empty if this is not a
	// promotion.
	PromotedPiece Piece
}

// NewMove returns a zeroed Move ready for decoding.
func NewMove() *Move {
	return &Move{PromotedPiece: Empty}
}

// IsPromotion reports whether this move promotes a pawn.
func (m *Move) IsPromotion() bool { return m.Class == PawnMoveWithPromotion }

// IsCastle reports whether this move is castling, of either side.
func (m *Move) IsCastle() bool {
	return m.Class == KingsideCastle || m.Class == QueensideCastle
}

// IsNull reports whether this is a null move ("--").
func (m *Move) IsNull() bool { return m.Class == NullMove }
