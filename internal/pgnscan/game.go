package pgnscan

// GameResult is the outcome of a game, encoded the way a Polyglot learn
// field's top two bits expect it: 0=white win, 1=black win, 2=draw,
// 3=unknown.
type GameResult uint8

const (
	WhiteWin GameResult = 0
	BlackWin GameResult = 1
	Draw     GameResult = 2
	Unknown  GameResult = 3
)

// Game is the transient record the scanner hands to the replayer: a seed
// position (empty meaning the standard start), the game's SAN tokens in
// order, its result, and the byte offset of its first tag in the source.
type Game struct {
	SeedFEN string
	SAN     []string
	Result  GameResult
	Offset  int64
}
