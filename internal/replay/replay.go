// Package replay applies a parsed game's SAN sequence to a position and
// turns each resolved move into a Polyglot entry, the bridge between the
// scanner/resolver and the aggregator.
package replay

import (
	"github.com/lgbarn/pgnbook/internal/engine"
	"github.com/lgbarn/pgnbook/internal/errors"
	"github.com/lgbarn/pgnbook/internal/pgnscan"
	"github.com/lgbarn/pgnbook/internal/polyglot"
	"github.com/lgbarn/pgnbook/internal/zobrist"
)

// Game replays game's SAN sequence from its seed position, strict
// controlling how the resolver handles ambiguous SAN, and returns one entry
// per non-null move made. If resolution or application fails partway
// through, the entries already produced are returned alongside a
// *errors.GameError identifying where it stopped; the caller may keep the
// partial result and move on to the next game.
func Game(gameNum int, game pgnscan.Game, strict bool) ([]polyglot.Entry, error) {
	board, err := engine.NewSeedBoard(game.SeedFEN)
	if err != nil {
		return nil, &errors.GameError{Err: err, GameNum: gameNum, Offset: game.Offset}
	}

	learnResult := learnResultOf(game.Result)
	entries := make([]polyglot.Entry, 0, len(game.SAN))

	for ply, token := range game.SAN {
		move, err := engine.ResolveSAN(board, token, strict)
		if err != nil {
			return entries, &errors.GameError{
				Err:      err,
				GameNum:  gameNum,
				PlyNum:   ply,
				MoveText: token,
				Offset:   game.Offset,
			}
		}

		if move.IsNull() {
			engine.ApplyMove(board, move)
			continue
		}

		key := zobrist.Key(board)
		encoded := polyglot.EncodeMove(board, move)

		if !engine.ApplyMove(board, move) {
			return entries, &errors.GameError{
				Err:      errors.ErrMalformedPGN,
				GameNum:  gameNum,
				PlyNum:   ply,
				MoveText: token,
				Offset:   game.Offset,
			}
		}

		entries = append(entries, polyglot.Entry{
			Key:    key,
			Move:   encoded,
			Weight: 1,
			Learn:  polyglot.MakeLearn(learnResult, game.Offset),
		})
	}

	return entries, nil
}

func learnResultOf(result pgnscan.GameResult) uint32 {
	switch result {
	case pgnscan.WhiteWin:
		return polyglot.ResultWhiteWin
	case pgnscan.BlackWin:
		return polyglot.ResultBlackWin
	case pgnscan.Draw:
		return polyglot.ResultDraw
	default:
		return polyglot.ResultUnknown
	}
}
