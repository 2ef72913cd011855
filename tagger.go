package relaxcg

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cours-de-latin/relaxcg/relax"
)

// OutOfBounds is the form, tag and lemma of the marks placed before and
// after each sentence while tagging. Conditions may refer to it by name.
const OutOfBounds = "OUT_OF_BOUNDS"

// Tagger disambiguates the selected analyses of the words of a sentence.
type Tagger interface {
	Annotate(s Sentence) error
}

// RelaxTagger is a part-of-speech tagger driven by a constraint grammar and
// solved by relaxation labelling.
type RelaxTagger struct {
	grammar *Grammar
	solver  *relax.Solver
	force   bool
	logger  *slog.Logger
}

var _ Tagger = (*RelaxTagger)(nil)

// NewRelaxTagger returns a tagger applying g with the solver settings of
// cfg. cfg.Grammar is ignored.
func NewRelaxTagger(g *Grammar, cfg Config, logger *slog.Logger) (*RelaxTagger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RelaxTagger{
		grammar: g,
		solver:  relax.NewSolver(cfg.MaxIterations, cfg.ScaleFactor, cfg.Epsilon).WithLogger(logger),
		force:   cfg.ForceSelect,
		logger:  logger.With(slog.String("component", "tagger")),
	}, nil
}

// Grammar returns the grammar the tagger applies.
func (t *RelaxTagger) Grammar() *Grammar {
	return t.grammar
}

func boundary() *Word {
	return NewWord(OutOfBounds, &Analysis{Tag: OutOfBounds, Lemma: OutOfBounds, Prob: 1})
}

// buildProblem adds the boundary marks around s and returns the relaxation
// problem for it together with the matcher that indexes its labels.
func (t *RelaxTagger) buildProblem(s Sentence) (*relax.Problem, *matcher, int, error) {
	if err := checkWords(s); err != nil {
		return nil, nil, 0, err
	}
	words := make([]*Word, 0, len(s)+2)
	words = append(words, boundary())
	words = append(words, s...)
	words = append(words, boundary())

	m := newMatcher(t.grammar, words)
	prb := relax.NewProblem(len(words))
	for v, w := range words {
		prb.SetVarName(v, w.Form)
		for _, ai := range m.labels[v] {
			a := w.Analyses[ai]
			prb.AddLabel(v, a.Prob, a.Tag)
		}
	}

	// only ambiguous words need constraints
	nconstr := 0
	for v, w := range words {
		if len(m.labels[v]) < 2 {
			continue
		}
		for l, ai := range m.labels[v] {
			a := w.Analyses[ai]
			rules, err := t.grammar.candidateRules(w, a)
			if err != nil {
				return nil, nil, 0, err
			}
			for _, r := range rules {
				terms, ok, err := m.checkRule(v, r)
				if err != nil {
					return nil, nil, 0, err
				}
				if ok {
					prb.AddConstraint(v, l, terms, r.Weight)
					nconstr++
				}
			}
		}
	}
	return prb, m, nconstr, nil
}

// Annotate replaces the selection of every ambiguous word of s by the
// analyses with the highest weight after relaxation. Ties keep all tied
// analyses. Words with a single selected analysis are left alone.
func (t *RelaxTagger) Annotate(s Sentence) error {
	prb, m, nconstr, err := t.buildProblem(s)
	if err != nil {
		return err
	}

	st := t.solver.Solve(prb)
	t.logger.Debug("sentence solved",
		slog.Int("words", len(s)),
		slog.Int("constraints", nconstr),
		slog.Int("iterations", st.Iterations),
		slog.Bool("converged", st.Converged))

	// variable 0 is the leading boundary mark
	for i, w := range s {
		v := i + 1
		if len(m.labels[v]) < 2 {
			continue
		}
		w.UnselectAll()
		for _, l := range prb.BestLabel(v) {
			w.Select(m.labels[v][l])
		}
	}
	return nil
}

// Analyze checks that s carries lexical probabilities, annotates it and,
// if the tagger was configured to, keeps one analysis per word.
func (t *RelaxTagger) Analyze(s Sentence) error {
	if len(s) == 0 {
		return nil
	}
	if err := checkWords(s); err != nil {
		return err
	}
	for _, w := range s {
		for _, a := range w.Selected() {
			if a.Prob < 0 {
				return newError(KindPrecondition,
					"no lexical probability for %s<%s> of %q; assign probabilities before tagging",
					a.Tag, a.Lemma, w.Form)
			}
		}
	}
	if err := t.Annotate(s); err != nil {
		return err
	}
	if t.force {
		forceSelect(s)
	}
	return nil
}

// checkWords rejects missing words and analyses, which decoded input may
// contain.
func checkWords(s Sentence) error {
	for i, w := range s {
		if w == nil {
			return newError(KindPrecondition, "word %d is missing", i)
		}
		for j, a := range w.Analyses {
			if a == nil {
				return newError(KindPrecondition, "analysis %d of %q is missing", j, w.Form)
			}
		}
	}
	return nil
}

// forceSelect keeps only the first selected analysis of each word.
func forceSelect(s Sentence) {
	for _, w := range s {
		sel := w.SelectedIndices()
		if len(sel) < 2 {
			continue
		}
		w.UnselectAll()
		w.Select(sel[0])
	}
}

// AnnotateAll analyzes sentences with up to workers goroutines. Each
// sentence is solved independently; the grammar is shared read-only.
// It returns the error of the lowest-numbered failing sentence, or the
// context's error if ctx is done before all sentences were dispatched.
func (t *RelaxTagger) AnnotateAll(ctx context.Context, sentences []Sentence, workers int) error {
	if workers < 1 {
		workers = 1
	}
	errs := make([]error, len(sentences))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := t.Analyze(sentences[j]); err != nil {
					errs[j] = fmt.Errorf("sentence %d: %w", j, err)
				}
			}
		}()
	}

	var ctxErr error
dispatch:
	for j := range sentences {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- j:
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return ctxErr
}
