package pgnscan

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgnbook/internal/errors"
)

const (
	maxStateStack   = 16
	maxSanBuffer    = 8 * 1024
	maxFenBuffer    = 256
	maxResultBuffer = 16
)

// Scanner drives the pushdown state machine over a byte source exactly
// once, calling emit for each completed game. Its scratch buffers are
// allocated once and rewound on game boundaries rather than reallocated,
// per the fixed-bound resource model the parser is specified against.
type Scanner struct {
	src []byte
	pos int

	state State
	stack []State

	san       []byte
	moves     []string
	sanBytes  int // running total of the zero-terminated SAN sequence
	fen       []byte
	result    []byte
	seedFEN   string

	offset        int64
	offsetPending bool
	gameNum       int
	whiteToMove   bool

	resultStart int // src index of the first digit of a possible move number, in case it turns out to be a result
}

// New returns a Scanner over src, ready to be run with Scan.
func New(src []byte) *Scanner {
	return &Scanner{
		src:         src,
		state:       Header,
		stack:       make([]State, 0, maxStateStack),
		san:         make([]byte, 0, 256),
		fen:         make([]byte, 0, maxFenBuffer),
		result:      make([]byte, 0, 16),
		whiteToMove: true,
	}
}

func (s *Scanner) push(state State) error {
	if len(s.stack) >= maxStateStack {
		return s.fail("state stack overflow")
	}
	s.stack = append(s.stack, state)
	return nil
}

func (s *Scanner) pop() (State, error) {
	if len(s.stack) == 0 {
		return 0, s.fail("state stack underflow")
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top, nil
}

func (s *Scanner) fail(msg string) error {
	lo := s.pos - 25
	if lo < 0 {
		lo = 0
	}
	hi := s.pos + 25
	if hi > len(s.src) {
		hi = len(s.src)
	}
	return &errors.ParseError{
		Err:    fmt.Errorf("%s near %q", msg, string(s.src[lo:hi])),
		Offset: int64(s.pos),
		State:  stateName(s.state),
	}
}

func (s *Scanner) appendSAN(b byte) error {
	if len(s.san)+1 > maxSanBuffer || s.sanBytes+len(s.san)+1 > maxSanBuffer {
		return s.fail("san buffer overflow")
	}
	s.san = append(s.san, b)
	return nil
}

func (s *Scanner) appendFEN(b byte) error {
	if len(s.fen) >= maxFenBuffer {
		return s.fail("fen buffer overflow")
	}
	s.fen = append(s.fen, b)
	return nil
}

func (s *Scanner) appendResult(b byte) error {
	if len(s.result) >= maxResultBuffer {
		return s.fail("result buffer overflow")
	}
	s.result = append(s.result, b)
	return nil
}

// flushSAN closes the current SAN token, if any, onto the game's move
// list.
func (s *Scanner) flushSAN() error {
	if len(s.san) == 0 {
		return nil
	}
	s.sanBytes += len(s.san) + 1
	if s.sanBytes > maxSanBuffer {
		return s.fail("san buffer overflow")
	}
	s.moves = append(s.moves, string(s.san))
	s.san = s.san[:0]
	return nil
}

func (s *Scanner) resetGame() {
	s.moves = nil
	s.sanBytes = 0
	s.san = s.san[:0]
	s.fen = s.fen[:0]
	s.seedFEN = ""
	s.stack = s.stack[:0]
	s.whiteToMove = true
	s.offsetPending = true
}

// fenSideToMoveIsWhite reads the side-to-move field (the token right after
// the board field) out of a seed FEN, defaulting to White when the field is
// missing or unrecognized.
func fenSideToMoveIsWhite(fen string) bool {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return true
	}
	return fields[1] != "b"
}

// decodeResult maps the accumulated result token text onto a GameResult.
func decodeResult(text []byte) GameResult {
	switch string(text) {
	case "1-0":
		return WhiteWin
	case "0-1":
		return BlackWin
	case "1/2-1/2":
		return Draw
	default:
		return Unknown
	}
}

// Scan walks the source exactly once and calls emit for each completed
// game, in the order it was encountered in the source.
func (s *Scanner) Scan(emit func(Game) error) error {
	s.offsetPending = true

	for s.pos < len(s.src) {
		b := s.src[s.pos]

		if s.state == NumericAnnotationGlyph {
			if err := s.stepNAG(b); err != nil {
				return err
			}
			continue
		}

		tok := classify[b]
		step := stepTable[s.state][tok]

		advance := true
		var err error

		switch step {
		case Continue:
			// consume, no state change

		case Fail:
			return s.fail("no transition defined")

		case OpenTag:
			advance = false
			err = s.doOpenTag()

		case PopState:
			var prev State
			prev, err = s.pop()
			s.state = prev

		case OpenBraceComment:
			if err = s.push(s.state); err == nil {
				s.state = BraceComment
			}

		case OpenVariation:
			if err = s.push(s.state); err == nil {
				s.state = Variation
			}

		case StartNag:
			if err = s.push(s.state); err == nil {
				s.state = NumericAnnotationGlyph
			}

		case ReadFen:
			err = s.appendFEN(b)

		case CloseFenTag:
			s.seedFEN = string(s.fen)
			s.fen = s.fen[:0]
			s.whiteToMove = fenSideToMoveIsWhite(s.seedFEN)
			s.state = Tag

		case StartMoveNumber:
			advance = false
			s.resultStart = s.pos
			s.state = MoveNumber

		case StartNextSan:
			advance = false
			s.state = NextSan

		case CastleOrResult:
			err = s.doCastleOrResult(b)

		case StartReadSan:
			s.state = ReadSan
			s.san = s.san[:0]
			err = s.appendSAN(b)

		case ReadMoveChar:
			err = s.appendSAN(b)

		case EndMove:
			advance = false
			err = s.doEndMove()

		case StartResult:
			s.state = Result
			s.result = s.result[:0]
			s.result = append(s.result, b)

		case NumberIsResult:
			// what looked like a move number's digits turns out to be the
			// start of a result token; recover the digits already consumed
			// straight from the source instead of re-deriving them.
			s.state = Result
			s.result = s.result[:0]
			s.result = append(s.result, s.src[s.resultStart:s.pos+1]...)

		case ReadResultChar:
			err = s.appendResult(b)

		case EndGame:
			advance = false
			err = s.doEndGame(emit)

		case TagInBrace, MissingResult:
			advance = false
			err = s.doForceTerminate(emit)
		}

		if err != nil {
			return err
		}
		if advance {
			s.pos++
		}
	}

	// EOF: flush any pending game with a non-empty move list, per the
	// "flush at end of input" tolerance.
	if err := s.flushSAN(); err != nil {
		return err
	}
	if len(s.moves) > 0 {
		return s.emitGame(emit, Unknown)
	}
	return nil
}

func (s *Scanner) stepNAG(b byte) error {
	tok := classify[b]
	if tok == Digit || tok == Zero {
		s.pos++
		return nil
	}
	prev, err := s.pop()
	if err != nil {
		return err
	}
	s.state = prev
	return nil
}

// doOpenTag consumes '[' and the bounded "FEN \"" lookahead, deciding
// between TAG and FEN_TAG.
func (s *Scanner) doOpenTag() error {
	if s.offsetPending {
		s.offset = int64(s.pos)
		s.offsetPending = false
	}
	if err := s.push(s.state); err != nil {
		return err
	}
	s.pos++ // consume '['

	if s.lookingAtFenHeader() {
		s.pos += 5 // "FEN \""
		s.state = FenTag
		s.fen = s.fen[:0]
		return nil
	}
	s.state = Tag
	return nil
}

func (s *Scanner) lookingAtFenHeader() bool {
	const prefix = "FEN \""
	if s.pos+len(prefix) > len(s.src) {
		return false
	}
	return string(s.src[s.pos:s.pos+len(prefix)]) == prefix
}

// doCastleOrResult disambiguates a leading '0' between digit-zero castling
// ("0-0", "0-0-0") and a numeric result ("0-1") by peeking two bytes ahead.
func (s *Scanner) doCastleOrResult(b byte) error {
	if s.pos+2 < len(s.src) && s.src[s.pos+1] == '-' && s.src[s.pos+2] == '0' {
		s.state = ReadSan
		s.san = s.san[:0]
		if err := s.appendSAN(b); err != nil {
			return err
		}
	} else {
		s.state = Result
		s.result = s.result[:0]
		s.result = append(s.result, b)
	}
	return nil
}

func (s *Scanner) doEndMove() error {
	if err := s.flushSAN(); err != nil {
		return err
	}
	wasWhite := s.whiteToMove
	s.whiteToMove = !s.whiteToMove
	if wasWhite {
		s.state = NextSan
	} else {
		s.state = NextMove
	}
	return nil
}

func (s *Scanner) doEndGame(emit func(Game) error) error {
	result := decodeResult(s.result)
	return s.emitGame(emit, result)
}

// doForceTerminate recovers from an unclosed brace comment or a missing
// result: the current game is flushed with an unknown result, the state
// stack is discarded, and the triggering '[' is reprocessed from HEADER.
func (s *Scanner) doForceTerminate(emit func(Game) error) error {
	if err := s.flushSAN(); err != nil {
		return err
	}
	return s.emitGame(emit, Unknown)
}

func (s *Scanner) emitGame(emit func(Game) error, result GameResult) error {
	game := Game{
		SeedFEN: s.seedFEN,
		SAN:     s.moves,
		Result:  result,
		Offset:  s.offset,
	}
	s.resetGame()
	s.state = Header
	s.gameNum++
	return emit(game)
}

func stateName(s State) string {
	names := [numStates]string{
		Header:                  "header",
		Tag:                     "tag",
		FenTag:                  "fen_tag",
		BraceComment:            "brace_comment",
		Variation:               "variation",
		NumericAnnotationGlyph:  "nag",
		NextMove:                "next_move",
		MoveNumber:              "move_number",
		NextSan:                 "next_san",
		ReadSan:                 "read_san",
		Result:                  "result",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}
