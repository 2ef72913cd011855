// Package relaxcg provides a part-of-speech disambiguator driven by a
// Constraint Grammar and solved by relaxation labelling.
//
// Words come in with their candidate analyses already selected and weighted
// by a lexical probability. For each ambiguous word the grammar rules whose
// head matches an analysis are checked against the sentence context; those
// that apply become constraints of a relax.Problem, and the analyses with
// the highest weight once the problem converges stay selected.
package relaxcg

import "log/slog"

// New loads the grammar named in cfg and returns a ready-to-use tagger.
func New(cfg Config, logger *slog.Logger) (*RelaxTagger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Grammar == "" {
		return nil, newError(KindConfig, "no constraint grammar file configured")
	}
	g, err := LoadGrammar(cfg.Grammar, logger)
	if err != nil {
		return nil, err
	}
	return NewRelaxTagger(g, cfg, logger)
}
