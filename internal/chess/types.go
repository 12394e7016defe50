// Package chess provides the board and move primitives shared by the PGN
// scanner, the SAN resolver and the game replayer.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Piece represents a chess piece type.
type Piece int

const (
	Off   Piece = iota // off the board (hedge square)
	Empty              // empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// Letter returns the single uppercase letter for a piece, used by the SAN
// resolver to recognise piece-move tokens.
func (p Piece) Letter() byte {
	letters := []byte{' ', ' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// MoveClass categorises a decoded SAN token before it is resolved against a
// position.
type MoveClass int

const (
	PawnMove MoveClass = iota
	PawnMoveWithPromotion
	EnPassantPawnMove
	PieceMove
	KingsideCastle
	QueensideCastle
	NullMove
	UnknownMove
)

// Rank represents a chess rank (row), '1' to '8'.
type Rank byte

// Col represents a chess file (column), 'a' to 'h'.
type Col byte

// Board dimensions and coordinate bases. The board carries a two-square
// hedge on every side so that knight-move and sliding-piece generation
// never needs an explicit bounds check.
const (
	BoardSize = 8
	Hedge     = 2

	RankBase  = '1'
	ColBase   = 'a'
	FirstRank = RankBase
	LastRank  = RankBase + BoardSize - 1
	FirstCol  = ColBase
	LastCol   = ColBase + BoardSize - 1
)

// RankConvert converts a rank character to a board array index.
func RankConvert(rank Rank) int {
	if rank >= FirstRank && rank <= LastRank {
		return int(rank-RankBase) + Hedge
	}
	return 0
}

// ColConvert converts a column character to a board array index.
func ColConvert(col Col) int {
	if col >= FirstCol && col <= LastCol {
		return int(col-ColBase) + Hedge
	}
	return 0
}

// ColourOffset returns +1 for White, -1 for Black; the direction a pawn of
// that colour advances.
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// PieceShift encodes a coloured piece as (piece<<PieceShift | colour).
const PieceShift = 3

// MakeColouredPiece builds a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) Piece {
	return Piece((int(piece) << PieceShift) | int(colour))
}

// W returns piece coloured White.
func W(piece Piece) Piece { return MakeColouredPiece(White, piece) }

// B returns piece coloured Black.
func B(piece Piece) Piece { return MakeColouredPiece(Black, piece) }

// ExtractColour extracts the colour from a coloured piece.
func ExtractColour(colouredPiece Piece) Colour {
	return Colour(colouredPiece & 0x01)
}

// ExtractPiece extracts the piece type from a coloured piece.
func ExtractPiece(colouredPiece Piece) Piece {
	return Piece(colouredPiece >> PieceShift)
}

// NullMoveString is the PGN text for a null move.
const NullMoveString = "--"

// SquareIndex returns the 0-63 Polyglot/engine square index for a1=0,
// h1=7, a8=56, h8=63.
func SquareIndex(col Col, rank Rank) int {
	return int(rank-FirstRank)*BoardSize + int(col-FirstCol)
}
