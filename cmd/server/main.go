// Command server exposes the relaxation tagger as a JSON REST API.
//
// Endpoints:
//
//	POST /api/tag       body: {"words":[...]} or {"sentences":[{"words":[...]}, ...]}
//	GET  /api/grammar
//	GET  /api/match?pattern=<pattern>&literal=<literal>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gonuts/flag"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/cours-de-latin/relaxcg"
)

// ---- JSON response types ------------------------------------------------

type tagRequest struct {
	Words     []*relaxcg.Word    `json:"words"`
	Sentences []relaxcg.Sentence `json:"sentences"`
}

type tagResponse struct {
	Sentences []relaxcg.Sentence `json:"sentences"`
}

type grammarResponse struct {
	Rules      int      `json:"rules"`
	Sets       int      `json:"sets"`
	SensesUsed bool     `json:"senses_used"`
	Heads      []string `json:"heads"`
	Warnings   []string `json:"warnings"`
}

type matchResponse struct {
	Pattern string `json:"pattern"`
	Literal string `json:"literal"`
	Match   bool   `json:"match"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ---- helpers ------------------------------------------------------------

type ctxKey int

const (
	loggerKey ctxKey = iota
	requestIDKey
)

// withRequestID tags every request with a fresh id, echoed in the
// X-Request-Id header and attached to the request's logger.
func withRequestID(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		l := logger.With(slog.String("request_id", id))
		w.Header().Set("X-Request-Id", id)

		ctx := context.WithValue(r.Context(), loggerKey, l)
		ctx = context.WithValue(ctx, requestIDKey, id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		l.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("elapsed", time.Since(start)))
	})
}

func requestLogger(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger(r).Error("encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	id, _ := r.Context().Value(requestIDKey).(string)
	writeJSON(w, r, status, errorResponse{Error: msg, RequestID: id})
}

// ---- handlers -----------------------------------------------------------

func handleTag(tg *relaxcg.RelaxTagger, workers int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, r, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body tagRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, r, http.StatusBadRequest, "body must be a JSON sentence or a 'sentences' list")
			return
		}
		sentences := body.Sentences
		if body.Words != nil {
			sentences = append(sentences, relaxcg.Sentence(body.Words))
		}
		if len(sentences) == 0 {
			writeError(w, r, http.StatusBadRequest, "no sentence to tag")
			return
		}
		for i, s := range sentences {
			for _, word := range s {
				if word == nil {
					writeError(w, r, http.StatusBadRequest, fmt.Sprintf("sentence %d: null word", i))
					return
				}
				for _, a := range word.Analyses {
					if a == nil {
						writeError(w, r, http.StatusBadRequest, fmt.Sprintf("sentence %d: null analysis of %q", i, word.Form))
						return
					}
				}
			}
		}

		if err := tg.AnnotateAll(r.Context(), sentences, workers); err != nil {
			status := http.StatusInternalServerError
			if relaxcg.IsKind(err, relaxcg.KindPrecondition) {
				status = http.StatusUnprocessableEntity
			}
			requestLogger(r).Warn("tagging failed", slog.Any("error", err))
			writeError(w, r, status, err.Error())
			return
		}
		writeJSON(w, r, http.StatusOK, tagResponse{Sentences: sentences})
	}
}

func handleGrammar(g *relaxcg.Grammar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, r, http.StatusMethodNotAllowed, "GET required")
			return
		}
		warnings := make([]string, 0, len(g.Warnings))
		for _, e := range g.Warnings {
			warnings = append(warnings, e.Error())
		}
		writeJSON(w, r, http.StatusOK, grammarResponse{
			Rules:      g.NumRules(),
			Sets:       g.NumSets(),
			SensesUsed: g.SensesUsed,
			Heads:      g.Heads(),
			Warnings:   warnings,
		})
	}
}

func handleMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, r, http.StatusMethodNotAllowed, "GET required")
			return
		}
		q := r.URL.Query()
		pattern, literal := q.Get("pattern"), q.Get("literal")
		if pattern == "" || literal == "" {
			writeError(w, r, http.StatusBadRequest, "missing 'pattern' or 'literal' query parameter")
			return
		}
		writeJSON(w, r, http.StatusOK, matchResponse{
			Pattern: pattern,
			Literal: literal,
			Match:   relaxcg.MatchPattern(pattern, literal),
		})
	}
}

func newHandler(tg *relaxcg.RelaxTagger, workers int, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tag", handleTag(tg, workers))
	mux.HandleFunc("/api/grammar", handleGrammar(tg.Grammar()))
	mux.HandleFunc("/api/match", handleMatch())
	return cors.Default().Handler(withRequestID(logger, mux))
}

// ---- main ---------------------------------------------------------------

func main() {
	confPath := flag.String("conf", "", "path to a YAML configuration file")
	grammar := flag.String("grammar", "", "constraint grammar file (overrides the configuration)")
	addr := flag.String("addr", ":8080", "listen address")
	workers := flag.Int("workers", 4, "sentences tagged in parallel per request")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg := relaxcg.DefaultConfig()
	if *confPath != "" {
		var err error
		if cfg, err = relaxcg.LoadConfig(*confPath); err != nil {
			logger.Error("failed to load configuration", slog.Any("error", err))
			os.Exit(1)
		}
	}
	if *grammar != "" {
		cfg.Grammar = *grammar
	}

	logger.Info("loading grammar", slog.String("file", cfg.Grammar))
	tg, err := relaxcg.New(cfg, logger)
	if err != nil {
		logger.Error("failed to load grammar", slog.Any("error", err))
		os.Exit(1)
	}
	g := tg.Grammar()
	logger.Info("grammar loaded",
		slog.Int("rules", g.NumRules()),
		slog.Int("sets", g.NumSets()),
		slog.Int("warnings", len(g.Warnings)))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newHandler(tg, *workers, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("listening", slog.String("addr", *addr))
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}
