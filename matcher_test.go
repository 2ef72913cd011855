package relaxcg

import (
	"fmt"
	"testing"

	"github.com/cours-de-latin/relaxcg/relax"
)

func an(tag, lemma string, prob float64) *Analysis {
	return &Analysis{Tag: tag, Lemma: lemma, Prob: prob}
}

// padded surrounds words with boundary marks the way the tagger does.
func padded(words ...*Word) []*Word {
	out := []*Word{boundary()}
	out = append(out, words...)
	return append(out, boundary())
}

func elements(es []relax.Element) string {
	s := ""
	for _, e := range es {
		s += fmt.Sprintf("(%d,%d)", e.Var, e.Label)
	}
	return s
}

// corre la casa bien
func runningSentence() []*Word {
	return padded(
		NewWord("corre", an("VMI3SP0", "correr", 0.6), an("NCFS000", "corre", 0.4)),
		NewWord("la", an("DA0FS0", "el", 0.7), an("PP3FSA00", "lo", 0.3)),
		NewWord("casa", an("NCFS000", "casa", 1)),
		NewWord("bien", an("RG", "bien", 1)),
	)
}

func TestCheckCondition(t *testing.T) {
	g := newGrammar()
	tests := []struct {
		name string
		v    int
		cond Condition
		ok   bool
		want string
	}{
		{
			name: "fixed position",
			v:    1,
			cond: Condition{Position: 1, Terms: []string{"DA*", "NC*"}},
			ok:   true,
			want: "(2,0)",
		},
		{
			name: "same word",
			v:    1,
			cond: Condition{Position: 0, Terms: []string{"VMI*"}},
			ok:   true,
			want: "(1,0)",
		},
		{
			name: "no match",
			v:    1,
			cond: Condition{Position: 1, Terms: []string{"RG"}},
		},
		{
			name: "negated",
			v:    1,
			cond: Condition{Negated: true, Position: 1, Terms: []string{"DA*"}},
			ok:   true,
			want: "(2,1)",
		},
		{
			name: "boundary mark",
			v:    1,
			cond: Condition{Position: -1, Terms: []string{OutOfBounds}},
			ok:   true,
			want: "(0,0)",
		},
		{
			name: "beyond the sentence",
			v:    2,
			cond: Condition{Position: -3, Terms: []string{"DA*"}},
		},
		{
			name: "negated beyond the sentence",
			v:    2,
			cond: Condition{Negated: true, Position: -3, Terms: []string{"DA*"}},
			ok:   true,
			want: "(0,0)",
		},
		{
			name: "star scan forwards",
			v:    1,
			cond: Condition{Position: 1, Star: true, Terms: []string{"RG"}},
			ok:   true,
			want: "(4,0)",
		},
		{
			name: "star scan backwards",
			v:    4,
			cond: Condition{Position: -1, Star: true, Terms: []string{"VMI*"}},
			ok:   true,
			want: "(1,0)",
		},
		{
			name: "star scan runs off the sentence",
			v:    1,
			cond: Condition{Position: 1, Star: true, Terms: []string{"VMN*"}},
		},
		{
			name: "star at zero does not scan",
			v:    1,
			cond: Condition{Position: 0, Star: true, Terms: []string{"RG"}},
		},
		{
			name: "barrier passed through unambiguous words",
			v:    1,
			cond: Condition{Position: 1, Star: true, Terms: []string{"RG"}, Barrier: []string{"VMI*"}},
			ok:   true,
			want: "(4,0)(2,0)(2,1)(3,0)",
		},
		{
			name: "barrier partially blocking",
			v:    1,
			cond: Condition{Position: 1, Star: true, Terms: []string{"RG"}, Barrier: []string{"DA*"}},
			ok:   true,
			want: "(4,0)(2,1)(3,0)",
		},
		{
			name: "barrier blocking",
			v:    1,
			cond: Condition{Position: 1, Star: true, Terms: []string{"RG"}, Barrier: []string{"NC*"}},
		},
		{
			name: "barrier at the match itself",
			v:    1,
			cond: Condition{Position: 1, Star: true, Terms: []string{"RG"}, Barrier: []string{"RG"}},
			ok:   true,
			want: "(4,0)(2,0)(2,1)(3,0)",
		},
	}
	for _, tt := range tests {
		m := newMatcher(g, runningSentence())
		hits, ok, err := m.checkCondition(tt.v, &tt.cond)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if got := elements(hits); got != tt.want {
			t.Errorf("%s: hits = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestCheckConditionVoidedBarrier(t *testing.T) {
	words := padded(
		NewWord("corre", an("VMI3SP0", "correr", 0.6), an("NCFS000", "corre", 0.4)),
		NewWord("la", an("DA0FS0", "el", 1)),
		NewWord("casa", an("NCFS000", "casa", 1)),
		NewWord("bien", an("RG", "bien", 1)),
	)
	m := newMatcher(newGrammar(), words)
	cond := Condition{Position: 1, Star: true, Terms: []string{"RG"}, Barrier: []string{"DA*"}}
	if hits, ok, err := m.checkCondition(1, &cond); ok || err != nil {
		t.Errorf("checkCondition = %s, %v, %v; want no match", elements(hits), ok, err)
	}
}

func TestMatcherUsesSelectedAnalyses(t *testing.T) {
	words := runningSentence()
	words[2].Unselect(0) // la is no longer DA0FS0

	m := newMatcher(newGrammar(), words)
	if len(m.labels[2]) != 1 || m.labels[2][0] != 1 {
		t.Fatalf("labels of la = %v, want [1]", m.labels[2])
	}

	cond := Condition{Position: 1, Terms: []string{"PP*"}}
	hits, ok, _ := m.checkCondition(1, &cond)
	if !ok || elements(hits) != "(2,0)" {
		t.Errorf("hits = %s, want (2,0)", elements(hits))
	}

	cond = Condition{Position: 1, Terms: []string{"DA*"}}
	if _, ok, _ := m.checkCondition(1, &cond); ok {
		t.Error("unselected analysis matched")
	}
}

func TestCheckRule(t *testing.T) {
	m := newMatcher(newGrammar(), runningSentence())

	r := &Rule{Head: "VMI*", Weight: 1, Conditions: []Condition{
		{Position: 1, Terms: []string{"DA*"}},
		{Position: 2, Terms: []string{"NC*"}},
	}}
	terms, ok, err := m.checkRule(1, r)
	if err != nil || !ok {
		t.Fatalf("checkRule = %v, %v", ok, err)
	}
	if len(terms) != 2 || elements(terms[0]) != "(2,0)" || elements(terms[1]) != "(3,0)" {
		t.Errorf("terms = %v", terms)
	}

	r.Conditions = append(r.Conditions, Condition{Position: 3, Terms: []string{"VMI*"}})
	if terms, ok, _ := m.checkRule(1, r); ok || terms != nil {
		t.Errorf("checkRule with a failing condition = %v, %v", terms, ok)
	}
}

func TestCheckRuleSenses(t *testing.T) {
	words := padded(
		NewWord("corre", an("VMI3SP0", "correr", 0.6), an("NCFS000", "corre", 0.4)),
		NewWord("bien", &Analysis{Tag: "RG", Lemma: "bien", Senses: []Sense{{Name: "a"}, {Name: "b"}}}),
	)
	m := newMatcher(newGrammar(), words)
	r := &Rule{Head: "VMI*", Conditions: []Condition{{Position: 1, Terms: []string{"[a]"}}}}
	if _, _, err := m.checkRule(1, r); !IsKind(err, KindPrecondition) {
		t.Errorf("checkRule error = %v, want %s", err, KindPrecondition)
	}
}
