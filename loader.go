package relaxcg

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// state is a state of the grammar file automaton.
type state int

const (
	stError state = iota
	stInit
	stSets
	stConstraints
	stWaitIs
	stIniList
	stFormList
	stLemmaList
	stCategoryList
	stSenseList
	stIniRule
	stPartialHead
	stFullHead
	stIniCond
	stNotCond
	stTerms
	stMoreTerms
	stTermList
	stBarrier
	stMoreBarrier
	stEndBarrier
	stEndCond

	numStates
)

// transitions is the automaton's table; missing entries are stError.
var transitions = buildTransitions()

func buildTransitions() *[numStates][numTokens]state {
	var t [numStates][numTokens]state
	set := func(from state, tok token, to state) { t[from][tok] = to }

	// SETS or CONSTRAINTS may open the file
	set(stInit, tokComment, stInit)
	set(stInit, tokSets, stSets)
	set(stInit, tokConstraints, stConstraints)

	// SETS section: Name = member member ... ;
	set(stSets, tokComment, stSets)
	set(stSets, tokCategory, stWaitIs)
	set(stSets, tokConstraints, stConstraints)
	set(stWaitIs, tokIs, stIniList)
	set(stIniList, tokForm, stFormList)
	set(stIniList, tokLemma, stLemmaList)
	set(stIniList, tokCategory, stCategoryList)
	set(stIniList, tokSense, stSenseList)
	set(stFormList, tokForm, stFormList)
	set(stFormList, tokSemicolon, stSets)
	set(stLemmaList, tokLemma, stLemmaList)
	set(stLemmaList, tokSemicolon, stSets)
	set(stCategoryList, tokCategory, stCategoryList)
	set(stCategoryList, tokSemicolon, stSets)
	set(stSenseList, tokSense, stSenseList)
	set(stSenseList, tokSemicolon, stSets)

	// CONSTRAINTS section: weight HEAD (cond) (cond) ... ;
	set(stConstraints, tokComment, stConstraints)
	set(stConstraints, tokFloat, stIniRule)
	set(stIniRule, tokCategory, stPartialHead)
	set(stIniRule, tokLemma, stFullHead)
	set(stIniRule, tokUser, stFullHead)
	set(stIniRule, tokSense, stFullHead)
	set(stPartialHead, tokForm, stPartialHead)
	set(stPartialHead, tokLemma, stFullHead)
	set(stPartialHead, tokSense, stFullHead)
	set(stPartialHead, tokOPar, stIniCond)
	set(stFullHead, tokOPar, stIniCond)

	// condition: [not] position term [or term ...] [barrier term [or term ...]]
	set(stIniCond, tokNot, stNotCond)
	set(stIniCond, tokPosition, stTerms)
	set(stNotCond, tokPosition, stTerms)
	set(stTerms, tokCategory, stMoreTerms)
	set(stTerms, tokForm, stTermList)
	set(stTerms, tokLemma, stTermList)
	set(stTerms, tokSense, stTermList)
	set(stTerms, tokUser, stTermList)
	set(stTerms, tokOutOfBounds, stTermList)
	set(stTerms, tokSetRef, stTermList)
	set(stMoreTerms, tokForm, stTermList)
	set(stMoreTerms, tokLemma, stTermList)
	set(stMoreTerms, tokSense, stTermList)
	set(stMoreTerms, tokOr, stTerms)
	set(stMoreTerms, tokBarrier, stBarrier)
	set(stMoreTerms, tokCPar, stEndCond)
	set(stTermList, tokOr, stTerms)
	set(stTermList, tokBarrier, stBarrier)
	set(stTermList, tokCPar, stEndCond)
	set(stBarrier, tokCategory, stMoreBarrier)
	set(stBarrier, tokForm, stEndBarrier)
	set(stBarrier, tokLemma, stEndBarrier)
	set(stBarrier, tokSense, stEndBarrier)
	set(stBarrier, tokUser, stEndBarrier)
	set(stBarrier, tokSetRef, stEndBarrier)
	set(stMoreBarrier, tokForm, stEndBarrier)
	set(stMoreBarrier, tokLemma, stEndBarrier)
	set(stMoreBarrier, tokSense, stEndBarrier)
	set(stMoreBarrier, tokOr, stBarrier)
	set(stMoreBarrier, tokCPar, stEndCond)
	set(stEndBarrier, tokOr, stBarrier)
	set(stEndBarrier, tokCPar, stEndCond)
	set(stEndCond, tokOPar, stIniCond)
	set(stEndCond, tokSemicolon, stConstraints)
	return &t
}

// LoadGrammar reads a constraint grammar file. Malformed rules and sets are
// skipped and reported in Grammar.Warnings; only I/O failures are returned
// as errors.
func LoadGrammar(path string, logger *slog.Logger) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Message: "open grammar", Cause: err}
	}
	defer f.Close()
	return ParseGrammar(f, path, logger)
}

// ParseGrammar reads a constraint grammar from r; name is used in
// diagnostics.
func ParseGrammar(r io.Reader, name string, logger *slog.Logger) (*Grammar, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &grammarParser{
		g:      newGrammar(),
		lx:     newLexer(r),
		name:   name,
		logger: logger.With(slog.String("component", "grammar")),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	p.logger.Debug("constraint grammar loaded",
		slog.String("file", name),
		slog.Int("rules", p.g.NumRules()),
		slog.Int("sets", p.g.NumSets()),
		slog.Int("warnings", len(p.g.Warnings)))
	return p.g, nil
}

// grammarParser holds the automaton's working state while reading a file.
type grammarParser struct {
	g      *Grammar
	lx     *lexer
	name   string
	logger *slog.Logger

	// section is where parsing resumes after an error.
	section state

	set    *Set
	rule   *Rule
	cond   Condition
	terms  []string
	senses bool
}

func (p *grammarParser) parse() error {
	stat := stInit
	p.section = stInit
	for {
		tok, err := p.lx.next()
		if err != nil {
			return &Error{Kind: KindIO, File: p.name, Line: p.lx.line, Message: "read grammar", Cause: err}
		}
		if tok == tokEOF {
			break
		}

		next := transitions[stat][tok]
		if next == stError {
			if err := p.syntaxError(stat, tok); err != nil {
				return err
			}
			stat = p.section
			continue
		}

		if perr := p.step(stat, next, tok); perr != nil {
			if err := p.recover(perr); err != nil {
				return err
			}
			stat = p.section
			continue
		}
		stat = next
	}

	if p.rule != nil || p.set != nil {
		p.warn(&Error{Kind: KindSyntax, File: p.name, Line: p.lx.line,
			Message: "unexpected end of file, missing ';'"})
	}
	return nil
}

// step performs the action of entering state next from stat on tok.
// A non-nil result rejects the current rule or set.
func (p *grammarParser) step(stat, next state, tok token) *Error {
	text := p.lx.text

	switch next {
	case stInit, stIniList:

	case stWaitIs:
		if p.g.sets[text] != nil {
			return p.semantic("set '%s' already declared", text)
		}
		p.set = newSet(text)
		p.senses = false

	case stFormList, stLemmaList, stCategoryList, stSenseList:
		switch tok {
		case tokForm:
			p.set.Kind = FormSet
		case tokLemma:
			p.set.Kind = LemmaSet
		case tokSense:
			p.set.Kind = SenseSet
			p.senses = true
		case tokCategory:
			p.set.Kind = CategorySet
		}
		p.set.add(text)

	case stSets:
		p.section = stSets
		if tok == tokSemicolon {
			p.g.sets[p.set.Name] = p.set
			p.g.SensesUsed = p.g.SensesUsed || p.senses
			p.set = nil
		}

	case stConstraints:
		p.section = stConstraints
		if tok == tokSemicolon && stat == stEndCond {
			p.rule.Conditions = append(p.rule.Conditions, p.cond)
			p.g.addRule(p.rule)
			p.g.SensesUsed = p.g.SensesUsed || p.senses
			p.rule = nil
		}

	case stIniRule:
		w, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return p.semantic("malformed weight '%s'", text)
		}
		p.rule = &Rule{Weight: w}
		p.senses = false

	case stPartialHead, stFullHead:
		p.rule.Head += text
		if tok == tokSense {
			p.senses = true
		}

	case stIniCond:
		if stat == stEndCond {
			p.rule.Conditions = append(p.rule.Conditions, p.cond)
		}
		p.cond = Condition{}
		p.terms = nil

	case stNotCond:
		p.cond.Negated = true

	case stTerms:
		if tok == tokPosition {
			pos, star := strings.CutSuffix(text, "*")
			n, err := strconv.Atoi(pos)
			if err != nil {
				return p.semantic("malformed position '%s'", text)
			}
			p.cond.Position = n
			p.cond.Star = star
			p.terms = nil
		}

	case stMoreTerms, stMoreBarrier:
		p.terms = append(p.terms, text)

	case stTermList, stEndBarrier:
		if tok == tokSense {
			p.senses = true
		}
		if stat == stTerms || stat == stBarrier {
			if tok == tokSetRef && p.g.sets[unwrap(text)] == nil {
				return p.semantic("reference to undefined set '%s'", text)
			}
			p.terms = append(p.terms, text)
		} else {
			// category continued by a form, lemma or sense
			p.terms[len(p.terms)-1] += text
		}

	case stBarrier:
		if !p.cond.Star {
			return p.semantic("barrier is meaningless in a fixed position condition")
		}
		if tok == tokBarrier {
			p.cond.Terms = p.terms
			p.terms = nil
		}

	case stEndCond:
		switch stat {
		case stMoreTerms, stTermList:
			p.cond.Terms = p.terms
		case stBarrier, stMoreBarrier, stEndBarrier:
			p.cond.Barrier = p.terms
		}
		p.terms = nil
	}
	return nil
}

func (p *grammarParser) semantic(format string, args ...any) *Error {
	e := newError(KindSemantic, format, args...)
	e.File, e.Line = p.name, p.lx.line
	return e
}

// syntaxError reports an unexpected token and resynchronizes.
func (p *grammarParser) syntaxError(stat state, tok token) error {
	msg := "unexpected " + tok.String() + " '" + p.lx.text + "'"
	if tok == tokComment {
		msg = "unexpected comment, missing ';' ending the previous rule?"
	}
	if stat == stInit || (stat == stSets && tok == tokFloat) {
		msg += " (missing SETS or CONSTRAINTS section?)"
	}
	e := &Error{Kind: KindSyntax, File: p.name, Line: p.lx.line, Message: msg}
	if tok == tokSemicolon {
		p.warn(e)
		p.reset()
		return nil
	}
	return p.recover(e)
}

// recover records e, then skips input up to and including the next ';'.
func (p *grammarParser) recover(e *Error) error {
	p.warn(e)
	p.reset()
	for {
		tok, err := p.lx.next()
		if err != nil {
			return &Error{Kind: KindIO, File: p.name, Line: p.lx.line, Message: "read grammar", Cause: err}
		}
		if tok == tokEOF || tok == tokSemicolon {
			return nil
		}
	}
}

func (p *grammarParser) reset() {
	p.set = nil
	p.rule = nil
	p.cond = Condition{}
	p.terms = nil
	p.senses = false
}

func (p *grammarParser) warn(e *Error) {
	p.g.Warnings = append(p.g.Warnings, e)
	p.logger.Warn("constraint grammar error, skipping to next ';'",
		slog.String("file", e.File),
		slog.Int("line", e.Line),
		slog.String("kind", string(e.Kind)),
		slog.String("error", e.Message))
}
