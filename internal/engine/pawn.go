package engine

import "github.com/lgbarn/pgnbook/internal/chess"

// applyPawnMove applies a pawn move (including en passant and promotion) to
// the board and flips the side to move.
func applyPawnMove(board *chess.Board, move *chess.Move) bool {
	colour := board.ToMove
	fromCol, fromRank := move.FromCol, move.FromRank
	toCol, toRank := move.ToCol, move.ToRank

	if fromCol == 0 || fromRank == 0 {
		fromCol, fromRank = findPawnSource(board, move, colour)
		if fromCol == 0 {
			return false
		}
	}

	pawn := board.Get(fromCol, fromRank)

	// A diagonal pawn move onto the en-passant square is an en-passant
	// capture whether or not the SAN token carried an "e.p." suffix.
	isEnPassant := move.Class == chess.EnPassantPawnMove ||
		(board.EnPassant && fromCol != toCol && toCol == board.EPCol && toRank == board.EPRank)
	if isEnPassant {
		capturedRank := toRank - 1
		if colour == chess.Black {
			capturedRank = toRank + 1
		}
		board.Set(toCol, capturedRank, chess.Empty)
	}

	board.Set(fromCol, fromRank, chess.Empty)

	if move.Class == chess.PawnMoveWithPromotion {
		promoted := move.PromotedPiece
		if promoted == chess.Empty {
			promoted = chess.Queen
		}
		board.Set(toCol, toRank, chess.MakeColouredPiece(colour, promoted))
	} else {
		board.Set(toCol, toRank, pawn)
	}

	board.EnPassant = false
	if colour == chess.White && fromRank == '2' && toRank == '4' {
		board.EnPassant, board.EPCol, board.EPRank = true, toCol, '3'
	} else if colour == chess.Black && fromRank == '7' && toRank == '5' {
		board.EnPassant, board.EPCol, board.EPRank = true, toCol, '6'
	}

	board.HalfmoveClock = 0
	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
	return true
}

// findPawnSource locates the pawn able to make the given (possibly
// disambiguated) move, without checking legality.
func findPawnSource(board *chess.Board, move *chess.Move, colour chess.Colour) (chess.Col, chess.Rank) {
	toCol, toRank := move.ToCol, move.ToRank
	fromCol := move.FromCol

	pawn := chess.MakeColouredPiece(colour, chess.Pawn)
	direction := chess.ColourOffset(colour)

	if fromCol != 0 {
		fromRank := chess.Rank(byte(toRank) - byte(direction))
		if board.Get(fromCol, fromRank) == pawn {
			return fromCol, fromRank
		}
		return 0, 0
	}

	fromRank := chess.Rank(byte(toRank) - byte(direction))
	if board.Get(toCol, fromRank) == pawn {
		return toCol, fromRank
	}

	if (colour == chess.White && toRank == '4') || (colour == chess.Black && toRank == '5') {
		doubleRank := chess.Rank(byte(toRank) - byte(2*direction))
		middleRank := chess.Rank(byte(toRank) - byte(direction))
		if board.Get(toCol, doubleRank) == pawn && board.Get(toCol, middleRank) == chess.Empty {
			return toCol, doubleRank
		}
	}

	return 0, 0
}
