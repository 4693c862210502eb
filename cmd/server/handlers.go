package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cours-de-latin/reducer"
)

type reduceResponse struct {
	Score           int               `json:"score"`
	Tree            *reducer.TreeNode `json:"tree"`
	AmbiguousBefore int               `json:"ambiguous_before"`
	AmbiguousAfter  int               `json:"ambiguous_after"`
}

type meaningsResponse struct {
	Word     string            `json:"word"`
	Meanings []reducer.Meaning `json:"meanings"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Lexicon bool   `json:"lexicon"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.requestLogger(r).Error("encode response", slog.String("error", err.Error()))
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, errorResponse{Error: msg})
}

// handleReduce decodes a forest document, reduces it and returns the
// resulting tree.
func (s *server) handleReduce(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "reduce")
	defer span.End()
	logger := s.requestLogger(r)

	// Symbols are interned per request; score adjustments are looked up
	// by name in the shared grammar.
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	f, err := reducer.Decode(body, reducer.NewGrammar(), s.rt.MeaningProvider())
	if err != nil {
		failSpan(span, err)
		s.metrics.reductions.WithLabelValues("bad_document").Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	before := f.Ambiguity()
	s.metrics.ambiguity.Observe(float64(before))
	span.SetAttributes(
		attribute.Int("forest.nodes", f.Len()),
		attribute.Int("forest.ambiguous", before),
	)

	start := time.Now()
	_, score, err := s.rt.Reducer.GoWithScore(f)
	if err != nil {
		failSpan(span, err)
		s.metrics.reductions.WithLabelValues("failed").Inc()
		logger.Warn("reduction failed", slog.String("error", err.Error()))
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	tree, err := f.Tree()
	if err != nil {
		failSpan(span, err)
		s.metrics.reductions.WithLabelValues("failed").Inc()
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.metrics.reductions.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.Int("forest.score", score))
	logger.Debug("forest reduced",
		slog.Int("ambiguous", before),
		slog.Int("score", score),
		slog.Duration("elapsed", time.Since(start)))

	s.writeJSON(w, r, http.StatusOK, reduceResponse{
		Score:           score,
		Tree:            tree,
		AmbiguousBefore: before,
		AmbiguousAfter:  f.Ambiguity(),
	})
}

// handleMeanings looks a word up in the lexicon.
func (s *server) handleMeanings(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "lookup")
	defer span.End()

	if s.rt.Lexicon == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "no lexicon configured")
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, r, http.StatusBadRequest, "missing 'word' query parameter")
		return
	}
	atStart, _ := strconv.ParseBool(r.URL.Query().Get("sentence_start"))
	span.SetAttributes(attribute.String("word", word), attribute.Bool("sentence_start", atStart))

	w2, meanings := s.rt.Lexicon.LookupWord(word, atStart)
	span.SetAttributes(attribute.Int("meanings", len(meanings)))
	status := http.StatusOK
	if len(meanings) == 0 {
		status = http.StatusNotFound
		meanings = []reducer.Meaning{}
	}
	s.writeJSON(w, r, status, meaningsResponse{Word: w2, Meanings: meanings})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Lexicon: s.rt.Lexicon != nil})
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
