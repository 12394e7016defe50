// Package pgnscan implements the table-driven PGN tokenizer/parser: a byte
// classifier and a pushdown state machine that walks a source exactly once,
// emitting one Game per movetext section it completes.
package pgnscan

// Token names the class a byte is folded into before the state machine
// looks at it. Trailing check/mate glyphs are folded into Spaces because
// the SAN resolver downstream never needs them.
type Token int

const (
	Spaces Token = iota
	ResultChar
	Minus
	Dot
	Quote
	Dollar
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
	LeftParen
	RightParen
	Zero
	Digit
	MoveHead
	None
	numTokens
)

// classify maps every byte value to its Token. Built once at package init
// rather than hand-written as 256 literal entries.
var classify [256]Token

func init() {
	for i := range classify {
		classify[i] = None
	}
	for _, c := range []byte(" \t\r\n!?") {
		classify[c] = Spaces
	}
	classify['+'] = Spaces
	classify['#'] = Spaces
	classify['/'] = ResultChar
	classify['*'] = ResultChar
	classify['-'] = Minus
	classify['.'] = Dot
	classify['"'] = Quote
	classify['$'] = Dollar
	classify['['] = LeftBracket
	classify[']'] = RightBracket
	classify['{'] = LeftBrace
	classify['}'] = RightBrace
	classify['('] = LeftParen
	classify[')'] = RightParen
	classify['0'] = Zero
	for c := byte('1'); c <= '9'; c++ {
		classify[c] = Digit
	}
	for c := byte('a'); c <= 'h'; c++ {
		classify[c] = MoveHead
	}
	for _, c := range []byte("NBRQKOoxX=") {
		classify[c] = MoveHead // piece letters, castle letters, and the capture/promotion markers a SAN body carries
	}
}
