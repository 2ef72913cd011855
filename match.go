package relaxcg

import (
	"regexp"
	"strconv"
	"strings"
)

// reUser matches a u.N=value term, capturing N.
var reUser = regexp.MustCompile(`^u\.([0-9]+)=(.+)$`)

// MatchPattern reports whether literal matches pattern. Without a '*' the
// two must be equal. With one, the part of pattern before the '*' must be a
// prefix of literal, and any <lemma>, (form) or [sense] suffix following
// the wildcard must equal the suffix of literal:
//
//	MatchPattern("VMI*<comer>", "VMI3SP0<comer>") == true
//	MatchPattern("VMI*<comer>", "VMI3SP0<beber>") == false
func MatchPattern(pattern, literal string) bool {
	if pattern == literal {
		return true
	}
	n := strings.IndexByte(pattern, '*')
	if n < 0 {
		return false
	}
	if !strings.HasPrefix(literal, pattern[:n]) {
		return false
	}

	// expanded wildcard plus the pattern's own lemma/form/sense part
	base := literal
	if i := strings.IndexAny(literal, "(<["); i >= 0 {
		base = literal[:i]
	}
	suffix := ""
	if i := strings.IndexAny(pattern, "(<["); i >= 0 {
		suffix = pattern[i:]
	}
	return base+suffix == literal
}

// matchTerm reports whether analysis a of word w matches one condition
// term. The term's brackets select the field that is compared.
func (g *Grammar) matchTerm(term string, w *Word, a *Analysis) (bool, error) {
	switch {
	case bracketed(term, '<', '>'):
		lm := lemmaKey(a.Lemma)
		return MatchPattern(term, lm) || MatchPattern(term, a.Tag+lm), nil

	case bracketed(term, '(', ')'):
		fm := formKey(w.LcForm())
		return MatchPattern(term, fm) || MatchPattern(term, a.Tag+fm), nil

	case bracketed(term, '[', ']'):
		sn, err := g.uniqueSense(w, a)
		if err != nil || len(a.Senses) == 0 {
			return false, err
		}
		return MatchPattern(term, sn) || MatchPattern(term, a.Tag+sn), nil

	case bracketed(term, '{', '}'):
		set := g.sets[unwrap(term)]
		if set == nil {
			return false, nil
		}
		var search string
		switch set.Kind {
		case FormSet:
			search = formKey(w.LcForm())
		case LemmaSet:
			search = lemmaKey(Lowercase(a.Lemma))
		case SenseSet:
			sn, err := g.uniqueSense(w, a)
			if err != nil {
				return false, err
			}
			search = sn
			if len(a.Senses) == 0 {
				search = senseKey("")
			}
		case CategorySet:
			search = a.Tag
		}
		return set.Contains(search), nil
	}

	if m := reUser.FindStringSubmatch(term); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n >= len(a.User) {
			return false, nil
		}
		return MatchPattern(term, userKey(n, a.User[n])), nil
	}

	return MatchPattern(term, a.Tag), nil
}

// uniqueSense returns the [sense] literal of a. More than one sense is a
// precondition violation: sense-based rules need one analysis per sense.
func (g *Grammar) uniqueSense(w *Word, a *Analysis) (string, error) {
	switch len(a.Senses) {
	case 0:
		return "", nil
	case 1:
		return senseKey(a.Senses[0].Name), nil
	default:
		return "", newError(KindPrecondition, errManySenses, a.Tag, a.Lemma, w.Form, len(a.Senses))
	}
}
