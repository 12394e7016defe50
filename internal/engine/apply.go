package engine

import "github.com/lgbarn/pgnbook/internal/chess"

// ApplyMove applies a fully resolved move to the board, mutating it in
// place, and reports whether the move could be applied. Legality (king
// safety) is the resolver's responsibility; ApplyMove trusts its input.
func ApplyMove(board *chess.Board, move *chess.Move) bool {
	if move == nil {
		return false
	}

	switch move.Class {
	case chess.NullMove:
		board.ToMove = board.ToMove.Opposite()
		board.EnPassant = false
		return true
	case chess.KingsideCastle:
		return applyCastle(board, true)
	case chess.QueensideCastle:
		return applyCastle(board, false)
	case chess.PawnMove, chess.PawnMoveWithPromotion, chess.EnPassantPawnMove:
		return applyPawnMove(board, move)
	case chess.PieceMove:
		return applyPieceMove(board, move)
	default:
		return false
	}
}

// canPieceMove reports whether pieceType, ignoring king safety, can move
// from the source square to the destination square on the given board.
func canPieceMove(board *chess.Board, pieceType chess.Piece, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank) bool {
	colDiff := abs(int(toCol) - int(fromCol))
	rankDiff := abs(int(toRank) - int(fromRank))

	switch pieceType {
	case chess.Knight:
		return (colDiff == 1 && rankDiff == 2) || (colDiff == 2 && rankDiff == 1)
	case chess.Bishop:
		return colDiff == rankDiff && isDiagonalClear(board, fromCol, fromRank, toCol, toRank)
	case chess.Rook:
		return (colDiff == 0 || rankDiff == 0) && isStraightClear(board, fromCol, fromRank, toCol, toRank)
	case chess.Queen:
		if colDiff == rankDiff {
			return isDiagonalClear(board, fromCol, fromRank, toCol, toRank)
		}
		if colDiff == 0 || rankDiff == 0 {
			return isStraightClear(board, fromCol, fromRank, toCol, toRank)
		}
		return false
	case chess.King:
		return colDiff <= 1 && rankDiff <= 1
	}
	return false
}

func isDiagonalClear(board *chess.Board, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank) bool {
	colDir := sign(int(toCol) - int(fromCol))
	rankDir := sign(int(toRank) - int(fromRank))

	col, rank := chess.Col(int(fromCol)+colDir), chess.Rank(int(fromRank)+rankDir)
	for col != toCol && rank != toRank {
		if board.Get(col, rank) != chess.Empty {
			return false
		}
		col, rank = chess.Col(int(col)+colDir), chess.Rank(int(rank)+rankDir)
	}
	return true
}

func isStraightClear(board *chess.Board, fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank) bool {
	colDir := sign(int(toCol) - int(fromCol))
	rankDir := sign(int(toRank) - int(fromRank))

	col, rank := chess.Col(int(fromCol)+colDir), chess.Rank(int(fromRank)+rankDir)
	for col != toCol || rank != toRank {
		if board.Get(col, rank) != chess.Empty {
			return false
		}
		col, rank = chess.Col(int(col)+colDir), chess.Rank(int(rank)+rankDir)
	}
	return true
}
