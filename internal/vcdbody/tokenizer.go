// Package vcdbody implements the VCD body tokenizer: the value-change
// command stream that follows $enddefinitions, plus the parallel
// chunk-splitting logic that lets independent workers each resync and
// parse their own byte range.
package vcdbody

import "fmt"

// CmdKind discriminates the two body commands a VCD dump can contain.
type CmdKind int

const (
	// CmdTime is a "#<decimal>" timestamp command.
	CmdTime CmdKind = iota
	// CmdValue is a scalar or vector value change, addressed by a raw
	// (not yet resolved) VCD identifier.
	CmdValue
)

// Cmd is one decoded body command.
type Cmd struct {
	Kind CmdKind
	// Value holds the literal bytes of a time command's decimal digits
	// (CmdTime), or the value literal (CmdValue): the single state byte of
	// a scalar, or a vector/real/string literal including its b/r/s
	// prefix: "1", "x", "b0101", "r1.5", etc.
	Value []byte
	// ID holds the raw VCD identifier for CmdValue; unused for CmdTime.
	ID []byte
}

var asciiZero = []byte("0")

// Reader tokenizes a VCD value-change body. It is resumable: Next returns
// false once input is exhausted, and the byte offset of each command's
// first token is available via LastPos immediately after a successful
// Next, letting a parallel chunk worker detect when it has crossed its
// assigned stop position.
type Reader struct {
	input []byte
	pos   int

	lastPos int
}

// NewReader creates a body Reader over input, starting at the beginning.
func NewReader(input []byte) *Reader {
	return &Reader{input: input}
}

// Pos returns the reader's current byte offset.
func (r *Reader) Pos() int { return r.pos }

// LastPos returns the starting byte offset of the most recently returned
// command.
func (r *Reader) LastPos() int { return r.lastPos }

func isBodyWhitespace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

// isSingleCharValue reports whether b is a valid one-character scalar
// value/state symbol: the two-state '0'/'1', or one of the nine-state
// symbols GHDL and other VHDL-aware tools emit via VCD ('z','x','h','u',
// 'w','l','-' and their uppercase forms).
func isSingleCharValue(b byte) bool {
	switch b {
	case '0', '1', 'z', 'Z', 'x', 'X', 'h', 'H', 'u', 'U', 'w', 'W', 'l', 'L', '-':
		return true
	default:
		return false
	}
}

func isVectorPrefix(b byte) bool {
	switch b {
	case 'b', 'B', 'r', 'R', 's', 'S':
		return true
	default:
		return false
	}
}

// Next decodes the next body command. It returns ok=false (with a nil
// error) once input is exhausted with no further command pending.
func (r *Reader) Next() (cmd Cmd, ok bool, err error) {
	var tokenStart = -1
	var prevToken []byte
	startPos := 0
	searchForEnd := false

	finish := func(pos int) (Cmd, bool, error) {
		if tokenStart < 0 {
			return Cmd{}, false, nil
		}
		token := r.input[tokenStart:pos]
		tokenStart = -1
		if len(token) == 0 {
			return Cmd{}, false, nil
		}
		if searchForEnd {
			searchForEnd = string(token) != "$end"
			return Cmd{}, false, nil
		}
		if prevToken == nil {
			if len(token) == 1 {
				return Cmd{}, false, nil
			}
			switch token[0] {
			case '#':
				return Cmd{Kind: CmdTime, Value: token[1:]}, true, nil
			}
			if isSingleCharValue(token[0]) {
				return Cmd{Kind: CmdValue, Value: token[0:1], ID: token[1:]}, true, nil
			}
			switch string(token) {
			case "$dumpall":
				return Cmd{Kind: CmdTime, Value: asciiZero}, true, nil
			case "$comment":
				searchForEnd = true
				return Cmd{}, false, nil
			case "$dumpvars", "$end", "$dumpoff":
				return Cmd{}, false, nil
			default:
				prevToken = token
				return Cmd{}, false, nil
			}
		}
		// prevToken set: this token is a vector literal's id, prevToken is
		// the value, or this is malformed input.
		first := prevToken
		prevToken = nil
		if !isVectorPrefix(first[0]) {
			return Cmd{}, false, fmt.Errorf("vcdbody: unexpected tokens %q and %q", first, token)
		}
		return Cmd{Kind: CmdValue, Value: first, ID: token}, true, nil
	}

	for r.pos < len(r.input) {
		b := r.input[r.pos]
		if isBodyWhitespace(b) {
			if tokenStart < 0 {
				r.pos++
				continue
			}
			pos := r.pos
			c, emitted, err := finish(pos)
			if err != nil {
				return Cmd{}, false, err
			}
			if emitted {
				r.pos = pos
				r.lastPos = startPos
				r.pos++
				return c, true, nil
			}
			r.pos++
			continue
		}
		if tokenStart < 0 {
			tokenStart = r.pos
			if prevToken == nil {
				startPos = r.pos
			}
		}
		r.pos++
	}

	// end of input: flush a final pending token, if any.
	c, emitted, err := finish(r.pos)
	if err != nil {
		return Cmd{}, false, err
	}
	if emitted {
		r.lastPos = startPos
		return c, true, nil
	}
	return Cmd{}, false, nil
}
