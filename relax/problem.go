// Package relax implements a generic relaxation labelling solver.
//
// A Problem is a table of variables, each owning an ordered list of labels
// with a weight. Constraints attached to a label reference the weights of
// other labels by (variable, label) index, so a Problem can be built, solved
// and dropped without any pointer into another Problem's storage.
package relax

// Element references the weight of label Label of variable Var in the
// Problem the constraint belongs to.
type Element struct {
	Var   int
	Label int
}

// Constraint supports (or penalizes) the label it is attached to.
// Its value is Compatibility × Π_term Σ_element weight(element).
type Constraint struct {
	Compatibility float64
	// Terms are multiplied; the elements of one term are added.
	Terms [][]Element
}

// Label is one candidate value of a variable.
type Label struct {
	// Name is used only for diagnostics.
	Name string
	// weight holds the current and next weights; Problem.cur selects which.
	weight      [2]float64
	constraints []Constraint
}

// Problem is the variable/label table of one relaxation labelling run.
type Problem struct {
	vars  [][]Label
	names []string
	// cur indexes the current weight of every label; 1-cur is the next one.
	cur int
}

// NewProblem allocates a problem with n variables and no labels.
func NewProblem(n int) *Problem {
	return &Problem{
		vars:  make([][]Label, n),
		names: make([]string, n),
	}
}

// NumVars returns the number of variables.
func (p *Problem) NumVars() int {
	return len(p.vars)
}

// NumLabels returns the number of labels of variable v.
func (p *Problem) NumLabels(v int) int {
	return len(p.vars[v])
}

// SetVarName names variable v for diagnostics.
func (p *Problem) SetVarName(v int, name string) {
	p.names[v] = name
}

// VarName returns the name given to variable v.
func (p *Problem) VarName(v int) string {
	return p.names[v]
}

// LabelName returns the name of label l of variable v.
func (p *Problem) LabelName(v, l int) string {
	return p.vars[v][l].Name
}

// AddLabel appends a label with initial weight w to variable v and returns
// its index. Both weight buffers start at w.
func (p *Problem) AddLabel(v int, w float64, name string) int {
	p.vars[v] = append(p.vars[v], Label{Name: name, weight: [2]float64{w, w}})
	return len(p.vars[v]) - 1
}

// AddConstraint attaches a constraint with the given compatibility and terms
// to label l of variable v. Terms are copied.
func (p *Problem) AddConstraint(v, l int, terms [][]Element, compatibility float64) {
	ct := Constraint{Compatibility: compatibility, Terms: make([][]Element, len(terms))}
	for i, t := range terms {
		ct.Terms[i] = append([]Element(nil), t...)
	}
	p.vars[v][l].constraints = append(p.vars[v][l].constraints, ct)
}

// Constraints returns the constraints attached to label l of variable v.
func (p *Problem) Constraints(v, l int) []Constraint {
	return p.vars[v][l].constraints
}

// Weight returns the current weight of label l of variable v.
func (p *Problem) Weight(v, l int) float64 {
	return p.vars[v][l].weight[p.cur]
}

// Sum returns the sum of the current weights of variable v.
func (p *Problem) Sum(v int) float64 {
	var s float64
	for i := range p.vars[v] {
		s += p.vars[v][i].weight[p.cur]
	}
	return s
}

// weightOf resolves an element against the current buffer.
func (p *Problem) weightOf(e Element) float64 {
	return p.vars[e.Var][e.Label].weight[p.cur]
}

// Value evaluates constraint ct against the current weights.
func (p *Problem) Value(ct Constraint) float64 {
	inf := 1.0
	for _, term := range ct.Terms {
		var tw float64
		for _, e := range term {
			tw += p.weightOf(e)
		}
		inf *= tw
	}
	return ct.Compatibility * inf
}

// BestLabel returns the indices of the labels of variable v whose current
// weight equals the maximum, in insertion order.
func (p *Problem) BestLabel(v int) []int {
	var best []int
	max := 0.0
	for j := range p.vars[v] {
		w := p.vars[v][j].weight[p.cur]
		switch {
		case w > max:
			max = w
			best = append(best[:0], j)
		case w == max:
			best = append(best, j)
		}
	}
	return best
}

// swap makes the next buffer current.
func (p *Problem) swap() {
	p.cur = 1 - p.cur
}
