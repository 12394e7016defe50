package engine

import "github.com/lgbarn/pgnbook/internal/chess"

// applyPieceMove applies a non-pawn, non-castle move to the board and flips
// the side to move.
func applyPieceMove(board *chess.Board, move *chess.Move) bool {
	colour := board.ToMove
	fromCol, fromRank := move.FromCol, move.FromRank
	toCol, toRank := move.ToCol, move.ToRank
	pieceType := move.PieceToMove

	if fromCol == 0 || fromRank == 0 {
		fromCol, fromRank = findPieceSource(board, move, colour)
		if fromCol == 0 {
			return false
		}
	}

	piece := board.Get(fromCol, fromRank)
	capturedPiece := board.Get(toCol, toRank)

	board.Set(fromCol, fromRank, chess.Empty)
	board.Set(toCol, toRank, piece)

	if pieceType == chess.King {
		if colour == chess.White {
			board.WKingCol, board.WKingRank = toCol, toRank
			board.WKingCastle, board.WQueenCastle = 0, 0
		} else {
			board.BKingCol, board.BKingRank = toCol, toRank
			board.BKingCastle, board.BQueenCastle = 0, 0
		}
	}

	if pieceType == chess.Rook {
		updateCastlingRightsForRook(board, colour, fromCol, fromRank)
	}
	if capturedPiece != chess.Empty && chess.ExtractPiece(capturedPiece) == chess.Rook {
		updateCastlingRightsForRook(board, chess.ExtractColour(capturedPiece), toCol, toRank)
	}

	board.EnPassant = false
	if capturedPiece != chess.Empty {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}

	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
	return true
}

// findPieceSource locates the piece of pieceType, matching any supplied
// disambiguator, that can legally-shape (ignoring king safety) reach the
// destination square.
func findPieceSource(board *chess.Board, move *chess.Move, colour chess.Colour) (chess.Col, chess.Rank) {
	toCol, toRank := move.ToCol, move.ToRank
	pieceType := move.PieceToMove
	disambigCol, disambigRank := move.FromCol, move.FromRank

	piece := chess.MakeColouredPiece(colour, pieceType)

	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			if board.Get(col, rank) != piece {
				continue
			}
			if disambigCol != 0 && col != disambigCol {
				continue
			}
			if disambigRank != 0 && rank != disambigRank {
				continue
			}
			if canPieceMove(board, pieceType, col, rank, toCol, toRank) {
				return col, rank
			}
		}
	}
	return 0, 0
}
