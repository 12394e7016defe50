package engine

import (
	"strings"

	"github.com/lgbarn/pgnbook/internal/chess"
	"github.com/lgbarn/pgnbook/internal/errors"
)

// ResolveSAN decodes a SAN token and resolves it against board to a single
// legal move. strict controls what happens when more than one candidate
// survives disambiguation and king-safety filtering: in strict mode that is
// reported as unresolved; otherwise the tie-break in SAN-ambiguous books
// applies (smallest source file, else generation order).
//
// A null move ("--") resolves without consulting the board at all; it is
// never ambiguous and carries no king-safety check.
func ResolveSAN(board *chess.Board, token string, strict bool) (*chess.Move, error) {
	decoded := decodeSAN(token)
	if decoded.Class == chess.UnknownMove {
		return nil, errors.ErrSanUnresolved
	}
	if decoded.Class == chess.NullMove {
		return decoded, nil
	}
	if decoded.IsCastle() {
		return resolveCastle(board, decoded)
	}

	candidates := generateCandidates(board, decoded)
	var survivors []*chess.Move
	for _, c := range candidates {
		if tryMove(board, c.FromCol, c.FromRank, c.ToCol, c.ToRank, board.ToMove) {
			survivors = append(survivors, c)
		}
	}

	switch len(survivors) {
	case 0:
		return nil, errors.ErrSanUnresolved
	case 1:
		return survivors[0], nil
	default:
		if strict {
			return nil, errors.ErrSanAmbiguous
		}
		return tieBreak(survivors), nil
	}
}

// tieBreak picks the move with the smallest source file among equally
// legal survivors, falling back to generation order (the board-scan order
// candidates were produced in, a1 before h8) when files also tie.
func tieBreak(survivors []*chess.Move) *chess.Move {
	best := survivors[0]
	for _, c := range survivors[1:] {
		if c.FromCol < best.FromCol {
			best = c
		}
	}
	return best
}

// generateCandidates enumerates every own piece of decoded's moving type
// that matches any supplied disambiguator and can shape-legally (ignoring
// king safety) reach the destination square.
func generateCandidates(board *chess.Board, decoded *chess.Move) []*chess.Move {
	colour := board.ToMove
	var out []*chess.Move

	if decoded.PieceToMove == chess.Pawn {
		for _, src := range pawnSources(board, decoded, colour) {
			out = append(out, withSource(decoded, src))
		}
		return out
	}

	piece := chess.MakeColouredPiece(colour, decoded.PieceToMove)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			if board.Get(col, rank) != piece {
				continue
			}
			if decoded.FromCol != 0 && col != decoded.FromCol {
				continue
			}
			if decoded.FromRank != 0 && rank != decoded.FromRank {
				continue
			}
			if canPieceMove(board, decoded.PieceToMove, col, rank, decoded.ToCol, decoded.ToRank) {
				out = append(out, withSource(decoded, [2]byte{byte(col), byte(rank)}))
			}
		}
	}
	return out
}

func withSource(decoded *chess.Move, src [2]byte) *chess.Move {
	m := *decoded
	m.FromCol = chess.Col(src[0])
	m.FromRank = chess.Rank(src[1])
	return &m
}

// pawnSources returns the source squares (there is at most one in a legal
// position, but ambiguous or malformed input is tolerated by returning
// every match) of pawns able to make decoded's move.
func pawnSources(board *chess.Board, decoded *chess.Move, colour chess.Colour) [][2]byte {
	pawn := chess.MakeColouredPiece(colour, chess.Pawn)
	direction := chess.ColourOffset(colour)
	toCol, toRank := decoded.ToCol, decoded.ToRank

	if decoded.FromCol != 0 && decoded.FromCol != toCol {
		// Capture with an explicit source file ("exd5").
		fromRank := chess.Rank(byte(toRank) - byte(direction))
		if board.Get(decoded.FromCol, fromRank) == pawn {
			return [][2]byte{{byte(decoded.FromCol), byte(fromRank)}}
		}
		return nil
	}

	var out [][2]byte
	fromRank := chess.Rank(byte(toRank) - byte(direction))
	if board.Get(toCol, fromRank) == pawn {
		out = append(out, [2]byte{byte(toCol), byte(fromRank)})
	}

	if (colour == chess.White && toRank == '4') || (colour == chess.Black && toRank == '5') {
		doubleRank := chess.Rank(byte(toRank) - byte(2*direction))
		middleRank := chess.Rank(byte(toRank) - byte(direction))
		if board.Get(toCol, doubleRank) == pawn && board.Get(toCol, middleRank) == chess.Empty {
			out = append(out, [2]byte{byte(toCol), byte(doubleRank)})
		}
	}
	return out
}

// resolveCastle checks castling rights, a clear path between king and rook,
// and that the king does not start, pass through, or land on an attacked
// square.
func resolveCastle(board *chess.Board, decoded *chess.Move) (*chess.Move, error) {
	colour := board.ToMove
	kingside := decoded.Class == chess.KingsideCastle

	var rank chess.Rank
	var kingCol, rookCol chess.Col
	if colour == chess.White {
		rank, kingCol = '1', board.WKingCol
		if kingside {
			rookCol = board.WKingCastle
		} else {
			rookCol = board.WQueenCastle
		}
	} else {
		rank, kingCol = '8', board.BKingCol
		if kingside {
			rookCol = board.BKingCastle
		} else {
			rookCol = board.BQueenCastle
		}
	}
	if rookCol == 0 {
		return nil, errors.ErrSanUnresolved
	}

	kingDest := chess.Col('g')
	if !kingside {
		kingDest = 'c'
	}

	step := 1
	if kingDest < kingCol {
		step = -1
	}
	for c := kingCol; ; c = chess.Col(int(c) + step) {
		if isSquareAttacked(board, c, rank, colour.Opposite()) {
			return nil, errors.ErrSanUnresolved
		}
		if c == kingDest {
			break
		}
	}

	lo, hi := kingCol, rookCol
	if lo > hi {
		lo, hi = hi, lo
	}
	for c := lo; c <= hi; c++ {
		if c == kingCol || c == rookCol {
			continue
		}
		if board.Get(c, rank) != chess.Empty {
			return nil, errors.ErrSanUnresolved
		}
	}

	return decoded, nil
}

// decodeSAN parses a SAN token (with any trailing check/mate glyph already
// stripped) into piece kind, disambiguators, destination and promotion,
// without consulting a position. Unparseable input yields a move whose
// Class is chess.UnknownMove.
func decodeSAN(token string) *chess.Move {
	move := chess.NewMove()
	move.Text = token

	if token == chess.NullMoveString {
		move.Class = chess.NullMove
		return move
	}

	pos := 0
	ok := true
	cur := func() byte {
		if pos >= len(token) {
			return 0
		}
		return token[pos]
	}
	advance := func() {
		if pos < len(token) {
			pos++
		}
	}

	switch {
	case isFileChar(cur()):
		ok = decodePawnMove(token, &pos, move)
	case pieceLetter(cur()) != chess.Empty:
		move.PieceToMove = pieceLetter(cur())
		move.Class = chess.PieceMove
		advance()
		ok = decodePieceMove(token, &pos, move)
	case isCastleChar(cur()):
		ok = decodeCastle(token, &pos, move)
	default:
		ok = false
	}

	if ok && move.Class != chess.NullMove {
		for isCheckGlyph(cur()) {
			advance()
		}
		if pos != len(token) {
			ok = strings.HasSuffix(token[pos:], "ep") || strings.HasSuffix(token[pos:], "e.p.")
			if ok && move.Class == chess.PawnMove {
				move.Class = chess.EnPassantPawnMove
			}
		}
	}

	if !ok {
		move.Class = chess.UnknownMove
	}
	return move
}

func isFileChar(c byte) bool  { return c >= chess.FirstCol && c <= chess.LastCol }
func isRankChar(c byte) bool  { return c >= chess.FirstRank && c <= chess.LastRank }
func isCaptureOrDash(c byte) bool { return c == 'x' || c == 'X' || c == '-' || c == ':' }
func isCheckGlyph(c byte) bool    { return c == '+' || c == '#' }
func isCastleChar(c byte) bool    { return c == 'O' || c == '0' || c == 'o' }

func pieceLetter(c byte) chess.Piece {
	switch c {
	case 'K':
		return chess.King
	case 'Q':
		return chess.Queen
	case 'R':
		return chess.Rook
	case 'N':
		return chess.Knight
	case 'B':
		return chess.Bishop
	}
	return chess.Empty
}

// decodePawnMove handles "e4", "exd5", "e8=Q", "exd8=N" shapes.
func decodePawnMove(token string, pos *int, move *chess.Move) bool {
	move.Class = chess.PawnMove
	move.PieceToMove = chess.Pawn

	cur := func() byte {
		if *pos >= len(token) {
			return 0
		}
		return token[*pos]
	}
	advance := func() { *pos++ }

	firstCol := chess.Col(cur())
	advance()

	if isRankChar(cur()) {
		// "e4" or, with a following file, "exd5" already consumed the
		// capture marker path below via the second branch.
		rank := chess.Rank(cur())
		advance()
		if isCaptureOrDash(cur()) {
			advance()
		}
		if isFileChar(cur()) {
			move.FromCol, move.FromRank = firstCol, rank
			move.ToCol = chess.Col(cur())
			advance()
			if isRankChar(cur()) {
				move.ToRank = chess.Rank(cur())
				advance()
			} else {
				return false
			}
		} else {
			move.ToCol, move.ToRank = firstCol, rank
		}
	} else {
		if isCaptureOrDash(cur()) {
			advance()
		}
		if !isFileChar(cur()) {
			return false
		}
		move.FromCol = firstCol
		move.ToCol = chess.Col(cur())
		advance()
		if !isRankChar(cur()) {
			return false
		}
		move.ToRank = chess.Rank(cur())
		advance()
	}

	if cur() == '=' {
		advance()
	}
	if p := pieceLetter(cur()); p != chess.Empty && p != chess.King && p != chess.Pawn {
		move.Class = chess.PawnMoveWithPromotion
		move.PromotedPiece = p
		advance()
	}
	return true
}

// decodePieceMove handles "Nf3", "Nbd2", "N1d2", "Qh4e1" shapes, where the
// piece letter has already been consumed.
func decodePieceMove(token string, pos *int, move *chess.Move) bool {
	cur := func() byte {
		if *pos >= len(token) {
			return 0
		}
		return token[*pos]
	}
	advance := func() { *pos++ }

	if isRankChar(cur()) {
		move.FromRank = chess.Rank(cur())
		advance()
		if isCaptureOrDash(cur()) {
			advance()
		}
		if !isFileChar(cur()) {
			return false
		}
		move.ToCol = chess.Col(cur())
		advance()
		if isRankChar(cur()) {
			move.ToRank = chess.Rank(cur())
			advance()
		}
		return true
	}

	if isCaptureOrDash(cur()) {
		advance()
		if !isFileChar(cur()) {
			return false
		}
		move.ToCol = chess.Col(cur())
		advance()
		if !isRankChar(cur()) {
			return false
		}
		move.ToRank = chess.Rank(cur())
		advance()
		return true
	}

	if !isFileChar(cur()) {
		return false
	}
	col := chess.Col(cur())
	advance()
	if isCaptureOrDash(cur()) {
		advance()
	}

	if isRankChar(cur()) {
		rank := chess.Rank(cur())
		advance()
		if isCaptureOrDash(cur()) {
			advance()
		}
		if isFileChar(cur()) {
			move.FromCol, move.FromRank = col, rank
			move.ToCol = chess.Col(cur())
			advance()
			if !isRankChar(cur()) {
				return false
			}
			move.ToRank = chess.Rank(cur())
			advance()
		} else {
			move.ToCol, move.ToRank = col, rank
		}
		return true
	}

	if isFileChar(cur()) {
		move.FromCol = col
		move.ToCol = chess.Col(cur())
		advance()
		if !isRankChar(cur()) {
			return false
		}
		move.ToRank = chess.Rank(cur())
		advance()
		return true
	}
	return false
}

// decodeCastle handles "O-O", "O-O-O", "0-0", "0-0-0" and the separator-free
// and mixed-case variants seen in bulk corpora.
func decodeCastle(token string, pos *int, move *chess.Move) bool {
	cur := func() byte {
		if *pos >= len(token) {
			return 0
		}
		return token[*pos]
	}
	advance := func() { *pos++ }
	skipDash := func() {
		if cur() == '-' {
			advance()
		}
	}

	advance() // first castle char
	skipDash()
	if !isCastleChar(cur()) {
		return false
	}
	advance()
	skipDash()

	move.PieceToMove = chess.King
	if isCastleChar(cur()) {
		move.Class = chess.QueensideCastle
		advance()
	} else {
		move.Class = chess.KingsideCastle
	}
	return true
}
