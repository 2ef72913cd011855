package relaxcg

import "github.com/cours-de-latin/relaxcg/relax"

// matcher evaluates rule conditions over one sentence. Word v of the
// sentence is variable v of the problem, and label l of that variable is
// analysis labels[v][l] of the word.
type matcher struct {
	g      *Grammar
	words  []*Word
	labels [][]int
}

func newMatcher(g *Grammar, words []*Word) *matcher {
	m := &matcher{g: g, words: words, labels: make([][]int, len(words))}
	for v, w := range words {
		m.labels[v] = w.SelectedIndices()
	}
	return m
}

// checkRule evaluates every condition of r for word v. It returns one
// constraint term per condition, or false at the first failing condition.
func (m *matcher) checkRule(v int, r *Rule) ([][]relax.Element, bool, error) {
	terms := make([][]relax.Element, 0, len(r.Conditions))
	for i := range r.Conditions {
		term, ok, err := m.checkCondition(v, &r.Conditions[i])
		if err != nil || !ok {
			return nil, false, err
		}
		terms = append(terms, term)
	}
	return terms, true, nil
}

// checkCondition matches cond against the context of word v and returns
// the elements whose weights support it.
func (m *matcher) checkCondition(v int, cond *Condition) ([]relax.Element, bool, error) {
	dir := 0
	switch {
	case cond.Position > 0:
		dir = 1
	case cond.Position < 0:
		dir = -1
	}

	nv := v + cond.Position
	if !m.inside(nv) {
		// nothing out there, which is what a negated condition asks for
		if cond.Negated {
			return []relax.Element{{Var: 0, Label: 0}}, true, nil
		}
		return nil, false, nil
	}

	hits, ok, err := m.matchWord(nv, cond.Terms, cond.Negated)
	for err == nil && !ok && cond.Star && dir != 0 {
		nv += dir
		if !m.inside(nv) {
			break
		}
		hits, ok, err = m.matchWord(nv, cond.Terms, cond.Negated)
	}
	if err != nil || !ok {
		return nil, false, err
	}

	if cond.Star && len(cond.Barrier) > 0 {
		for bv := v + dir; bv != nv; bv += dir {
			// analyses that are not barriers keep the path open
			open, ok, err := m.matchWord(bv, cond.Barrier, true)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			hits = append(hits, open...)
		}
	}
	return hits, true, nil
}

// matchWord tests every selected analysis of word v against the OR-ed
// terms. An analysis is a hit when it matches and negated is false, or
// matches none of the terms and negated is true.
func (m *matcher) matchWord(v int, terms []string, negated bool) ([]relax.Element, bool, error) {
	w := m.words[v]
	var hits []relax.Element
	for l, ai := range m.labels[v] {
		a := w.Analyses[ai]
		matched := false
		for _, t := range terms {
			ok, err := m.g.matchTerm(t, w, a)
			if err != nil {
				return nil, false, err
			}
			if ok {
				matched = true
				break
			}
		}
		if matched != negated {
			hits = append(hits, relax.Element{Var: v, Label: l})
		}
	}
	return hits, len(hits) > 0, nil
}

func (m *matcher) inside(v int) bool {
	return v >= 0 && v < len(m.words)
}
