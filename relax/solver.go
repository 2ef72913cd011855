package relax

import (
	"log/slog"
	"math"
)

// Solver runs relaxation labelling iterations over a Problem.
// A Solver holds no per-problem state and may be shared by goroutines
// solving different problems.
type Solver struct {
	// MaxIter bounds the number of iterations.
	MaxIter int
	// ScaleFactor normalizes supports into [-1,1]; 0 disables normalization.
	ScaleFactor float64
	// Epsilon is the convergence threshold on the maximum weight change.
	Epsilon float64

	logger *slog.Logger
}

// Stats summarizes one Solve run.
type Stats struct {
	Iterations int
	// MaxChange is the largest weight change of the last iteration.
	MaxChange float64
	Converged bool
}

// NewSolver returns a solver with the given parameters.
func NewSolver(maxIter int, scaleFactor, epsilon float64) *Solver {
	return &Solver{
		MaxIter:     maxIter,
		ScaleFactor: scaleFactor,
		Epsilon:     epsilon,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithLogger returns a copy of s logging to logger.
func (s *Solver) WithLogger(logger *slog.Logger) *Solver {
	c := *s
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c.logger = logger.With(slog.String("component", "relax"))
	return &c
}

// Solve iterates until the maximum weight change drops below Epsilon or
// MaxIter iterations have run. The first iteration always runs.
func (s *Solver) Solve(p *Problem) Stats {
	var st Stats
	change := 0.0
	for st.Iterations < s.MaxIter && (st.Iterations == 0 || change >= s.Epsilon) {
		change = s.Step(p)
		st.Iterations++
		s.logger.Debug("relaxation iteration",
			slog.Int("iteration", st.Iterations),
			slog.Float64("max_change", change))
	}
	st.MaxChange = change
	st.Converged = change < s.Epsilon
	return st
}

// Step computes one iteration: next weights from current weights for every
// ambiguous variable, then swaps buffers. It returns the maximum absolute
// weight change.
func (s *Solver) Step(p *Problem) float64 {
	change := 0.0
	next := 1 - p.cur
	var support []float64

	for v := range p.vars {
		labels := p.vars[v]
		if len(labels) < 2 {
			continue
		}
		if cap(support) < len(labels) {
			support = make([]float64, len(labels))
		}
		support = support[:len(labels)]

		fnorm := 0.0
		for j := range labels {
			support[j] = 0
			cw := labels[j].weight[p.cur]
			// a zero weight never changes again
			if cw <= 0 {
				continue
			}
			for _, ct := range labels[j].constraints {
				support[j] += p.Value(ct)
			}
			support[j] = s.normalize(support[j])
			fnorm += cw * (1 + support[j])
		}

		if !(fnorm > 0) {
			s.logger.Debug("degenerate normalization, holding weights",
				slog.Int("var", v), slog.String("name", p.names[v]),
				slog.Float64("fnorm", fnorm))
			for j := range labels {
				labels[j].weight[next] = labels[j].weight[p.cur]
			}
			continue
		}

		for j := range labels {
			cw := labels[j].weight[p.cur]
			nw := 0.0
			if cw > 0 {
				nw = cw * (1 + support[j]) / fnorm
			}
			labels[j].weight[next] = nw
			if d := math.Abs(nw - cw); d > change {
				change = d
			}
		}
	}

	// variables with fewer than two labels hold the same weight in both
	// buffers since AddLabel, so the swap leaves them untouched
	p.swap()
	return change
}

// normalize maps a support value into [-1,1] using the scale factor.
func (s *Solver) normalize(x float64) float64 {
	if s.ScaleFactor == 0 {
		return x
	}
	if math.Abs(x) >= s.ScaleFactor {
		return math.Copysign(1, x)
	}
	return x / s.ScaleFactor
}
