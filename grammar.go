package relaxcg

import "sort"

// SetKind tells which field of an analysis a named set is matched against.
type SetKind int

const (
	FormSet SetKind = iota
	LemmaSet
	SenseSet
	CategorySet
)

func (k SetKind) String() string {
	switch k {
	case FormSet:
		return "form"
	case LemmaSet:
		return "lemma"
	case SenseSet:
		return "sense"
	case CategorySet:
		return "category"
	default:
		return "unknown"
	}
}

// Set is a named set of literals declared in the SETS section.
// Members are stored as written: "(form)", "<lemma>", "[sense]" or "TAG".
type Set struct {
	Name    string
	Kind    SetKind
	members map[string]struct{}
}

func newSet(name string) *Set {
	return &Set{Name: name, members: make(map[string]struct{})}
}

// Contains reports whether literal is a member of s.
func (s *Set) Contains(literal string) bool {
	_, ok := s.members[literal]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

func (s *Set) add(literal string) {
	s.members[literal] = struct{}{}
}

// Condition is one AND-ed clause of a rule.
type Condition struct {
	// Negated conditions hold for analyses that match none of the terms.
	Negated bool
	// Position is the offset from the word the rule is applied to.
	Position int
	// Star makes the match scan onwards from Position until a word matches.
	Star bool
	// Terms are OR-ed literal patterns.
	Terms []string
	// Barrier terms stop a Star scan; only set when Star is.
	Barrier []string
}

// Rule is a weighted constraint: the compatibility Weight applies to any
// analysis matching Head in a context satisfying all Conditions.
type Rule struct {
	Head       string
	Weight     float64
	Conditions []Condition
}

// Grammar is a loaded constraint grammar. It is never modified after
// loading and may be shared by concurrent taggers.
type Grammar struct {
	// rules maps a head literal to its rules in file order.
	rules map[string][]*Rule
	// sets maps a set name to its declaration.
	sets map[string]*Set
	// SensesUsed is true if any rule or set uses the [sense] syntax.
	SensesUsed bool
	// Warnings lists recoverable errors found while loading.
	Warnings []*Error

	nrules int
}

func newGrammar() *Grammar {
	return &Grammar{
		rules: make(map[string][]*Rule),
		sets:  make(map[string]*Set),
	}
}

// addRule appends r under its head, keeping file order within a head.
func (g *Grammar) addRule(r *Rule) {
	g.rules[r.Head] = append(g.rules[r.Head], r)
	g.nrules++
}

// RulesFor appends to dst the rules whose head is exactly head.
func (g *Grammar) RulesFor(head string, dst []*Rule) []*Rule {
	return append(dst, g.rules[head]...)
}

// Set returns the set declared with the given name, or nil.
func (g *Grammar) Set(name string) *Set {
	return g.sets[name]
}

// NumRules returns the number of rules loaded.
func (g *Grammar) NumRules() int {
	return g.nrules
}

// NumSets returns the number of sets declared.
func (g *Grammar) NumSets() int {
	return len(g.sets)
}

// Heads returns the distinct rule heads in sorted order.
func (g *Grammar) Heads() []string {
	heads := make([]string, 0, len(g.rules))
	for h := range g.rules {
		heads = append(heads, h)
	}
	sort.Strings(heads)
	return heads
}
