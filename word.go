package relaxcg

// Sense is a word sense attached to an analysis with its score.
type Sense struct {
	Name  string  `json:"name"`
	Score float64 `json:"score,omitempty"`
}

// Analysis is one candidate morphological analysis of a word.
type Analysis struct {
	// Tag is the part-of-speech tag, e.g. "VMI3SP0".
	Tag string `json:"tag"`
	// Lemma is the dictionary form.
	Lemma string `json:"lemma"`
	// Senses lists word senses, most likely first.
	Senses []Sense `json:"senses,omitempty"`
	// User holds free-form fields addressed as u.N in the grammar.
	User []string `json:"user,omitempty"`
	// Prob is the prior probability; negative means not computed.
	Prob float64 `json:"prob"`
}

// Word is a sentence token with its analyses and the subset of them that is
// currently selected.
type Word struct {
	// Form is the surface form as it appeared in the text.
	Form string `json:"form"`
	// Analyses lists every analysis of the word.
	Analyses []*Analysis `json:"analyses"`

	selected []bool
}

// Sentence is an ordered sequence of words.
type Sentence []*Word

// NewWord returns a word with the given analyses, all of them selected.
func NewWord(form string, analyses ...*Analysis) *Word {
	w := &Word{Form: form, Analyses: analyses}
	w.SelectAll()
	return w
}

// AddAnalysis appends a selected analysis.
func (w *Word) AddAnalysis(a *Analysis) {
	w.sync()
	w.Analyses = append(w.Analyses, a)
	w.selected = append(w.selected, true)
}

// LcForm returns the lowercased surface form.
func (w *Word) LcForm() string {
	return Lowercase(w.Form)
}

// sync grows the selection mask when analyses were set directly, as
// happens after JSON decoding. New analyses start selected.
func (w *Word) sync() {
	for len(w.selected) < len(w.Analyses) {
		w.selected = append(w.selected, true)
	}
}

// IsSelected reports whether analysis i is selected.
func (w *Word) IsSelected(i int) bool {
	w.sync()
	return w.selected[i]
}

// Select marks analysis i as selected.
func (w *Word) Select(i int) {
	w.sync()
	w.selected[i] = true
}

// Unselect removes analysis i from the selection.
func (w *Word) Unselect(i int) {
	w.sync()
	w.selected[i] = false
}

// SelectAll selects every analysis.
func (w *Word) SelectAll() {
	w.sync()
	for i := range w.selected {
		w.selected[i] = true
	}
}

// UnselectAll clears the selection.
func (w *Word) UnselectAll() {
	w.sync()
	for i := range w.selected {
		w.selected[i] = false
	}
}

// SelectedIndices returns the indices of the selected analyses in order.
func (w *Word) SelectedIndices() []int {
	w.sync()
	var out []int
	for i, s := range w.selected {
		if s {
			out = append(out, i)
		}
	}
	return out
}

// Selected returns the selected analyses in order.
func (w *Word) Selected() []*Analysis {
	var out []*Analysis
	for _, i := range w.SelectedIndices() {
		out = append(out, w.Analyses[i])
	}
	return out
}

// NSelected returns the number of selected analyses.
func (w *Word) NSelected() int {
	w.sync()
	n := 0
	for _, s := range w.selected {
		if s {
			n++
		}
	}
	return n
}
