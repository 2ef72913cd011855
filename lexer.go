package relaxcg

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// token is the kind of a lexical unit of a constraint grammar file.
type token int

const (
	tokEOF token = iota
	tokCategory
	tokForm
	tokLemma
	tokComment
	tokError
	tokBarrier
	tokCPar
	tokFloat
	tokNot
	tokOr
	tokOPar
	tokOutOfBounds
	tokPosition
	tokSemicolon
	tokUser
	tokSets
	tokConstraints
	tokIs
	tokSetRef
	tokSense

	numTokens
)

// tokSkip marks whitespace, which the lexer never returns.
const tokSkip token = -1

var tokenNames = [numTokens]string{
	tokEOF:         "end of file",
	tokCategory:    "category",
	tokForm:        "form",
	tokLemma:       "lemma",
	tokComment:     "comment",
	tokError:       "unknown text",
	tokBarrier:     "barrier",
	tokCPar:        "')'",
	tokFloat:       "weight",
	tokNot:         "not",
	tokOr:          "or",
	tokOPar:        "'('",
	tokOutOfBounds: "OUT_OF_BOUNDS",
	tokPosition:    "position",
	tokSemicolon:   "';'",
	tokUser:        "user field",
	tokSets:        "SETS",
	tokConstraints: "CONSTRAINTS",
	tokIs:          "'='",
	tokSetRef:      "set reference",
	tokSense:       "sense",
}

func (t token) String() string {
	if t >= 0 && t < numTokens {
		return tokenNames[t]
	}
	return "token"
}

// lexRule pairs an anchored pattern with the token it produces.
type lexRule struct {
	re  *regexp.Regexp
	tok token
}

// lexRules are tried in order at the current position; the first match
// wins, so keywords must precede the generic category pattern.
var lexRules = []lexRule{
	{regexp.MustCompile(`^[ \t\r\n]+`), tokSkip},
	{regexp.MustCompile(`^%.*`), tokComment},
	{regexp.MustCompile(`^SETS`), tokSets},
	{regexp.MustCompile(`^CONSTRAINTS`), tokConstraints},
	{regexp.MustCompile(`^-?[0-9]+\.[0-9]+`), tokFloat},
	{regexp.MustCompile(`^-?[0-9]+\*?`), tokPosition},
	{regexp.MustCompile(`^\([\p{L}_'\-·]+\)`), tokForm},
	{regexp.MustCompile(`^<[\p{Ll}_'\-·]+>`), tokLemma},
	{regexp.MustCompile(`^\{[A-Z][A-Za-z0-9$]*\*?\}`), tokSetRef},
	{regexp.MustCompile(`^\[[A-Za-z0-9]+\]`), tokSense},
	{regexp.MustCompile(`^u\.[0-9]+=[^\s]+`), tokUser},
	{regexp.MustCompile(`^or`), tokOr},
	{regexp.MustCompile(`^not`), tokNot},
	{regexp.MustCompile(`^=`), tokIs},
	{regexp.MustCompile(`^OUT_OF_BOUNDS`), tokOutOfBounds},
	{regexp.MustCompile(`^barrier`), tokBarrier},
	{regexp.MustCompile(`^[A-Z][A-Za-z0-9$:]*\*?`), tokCategory},
	{regexp.MustCompile(`^;`), tokSemicolon},
	{regexp.MustCompile(`^\(`), tokOPar},
	{regexp.MustCompile(`^\)`), tokCPar},
}

// lexer splits a grammar file into tokens, one line at a time.
type lexer struct {
	sc   *bufio.Scanner
	line int
	buf  string
	text string
}

// maxLineSize bounds a grammar line; large sets are written on one line.
const maxLineSize = 16 << 20

func newLexer(r io.Reader) *lexer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lexer{sc: sc}
}

// next returns the next token, tokEOF at end of input. Text that no rule
// matches is returned as a single tokError running up to the next blank.
func (lx *lexer) next() (token, error) {
	for {
		for lx.buf == "" {
			if !lx.sc.Scan() {
				return tokEOF, lx.sc.Err()
			}
			lx.line++
			lx.buf = lx.sc.Text()
		}

		tok := tokError
		n := strings.IndexAny(lx.buf, " \t\r\n")
		if n <= 0 {
			n = len(lx.buf)
		}
		for _, r := range lexRules {
			if m := r.re.FindString(lx.buf); m != "" {
				tok, n = r.tok, len(m)
				break
			}
		}
		lx.text = lx.buf[:n]
		lx.buf = lx.buf[n:]
		if tok != tokSkip {
			return tok, nil
		}
	}
}
