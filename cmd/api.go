package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/nil-compliance/internal/engine"
	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/monitoring"
	"github.com/sells-group/nil-compliance/internal/store"
)

// newRouter builds the HTTP API over the engine. Routing is separate from
// server lifecycle so tests can drive the handler directly. The collector is
// optional; without it the metrics route is not registered.
func newRouter(eng *engine.Engine, col *monitoring.Collector, rps float64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if rps > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(rps), int(rps))))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/deals", handleCreateDeal(eng))
		r.Get("/deals", handleListDeals(eng))
		r.Get("/deals/{dealID}", handleGetDeal(eng))
		r.Get("/deals/{dealID}/events", handleListEvents(eng))
		r.Get("/deals/{dealID}/deadline", handleDeadline(eng))
		r.Post("/deals/{dealID}/submit", handleSubmit(eng))
		r.Post("/deals/{dealID}/review", handleReview(eng))
		r.Post("/deals/{dealID}/complete-conditions", handleCompleteConditions(eng))
		r.Post("/deals/{dealID}/respond", handleRespond(eng))
		r.Post("/deals/{dealID}/resubmit", handleResubmit(eng))
		r.Post("/deals/{dealID}/rescore", handleRescore(eng))
		r.Get("/athletes/{athleteID}/action-center", handleActionCenter(eng))
		r.Get("/athletes/{athleteID}/summary", handleSummary(eng))
		r.Get("/rules", handleRules(eng))
		if col != nil {
			r.Get("/metrics", handleMetrics(col))
		}
	})

	return r
}

// rateLimit applies one shared token bucket across all clients.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

// writeError maps engine error kinds onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case eris.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case model.IsKind(err, model.KindValidation):
		status = http.StatusBadRequest
	case model.IsKind(err, model.KindScoreTooLow):
		status = http.StatusUnprocessableEntity
	case model.IsKind(err, model.KindIllegalTransition), model.IsKind(err, model.KindStaleState):
		status = http.StatusConflict
	}

	body := map[string]string{"error": err.Error()}
	if kind := model.KindOf(err); kind != "" {
		body["kind"] = string(kind)
	}
	writeJSON(w, status, body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// actionRequest is the shared body for lifecycle endpoints.
type actionRequest struct {
	Actor string `json:"actor"`
	Notes string `json:"notes"`
}

func handleCreateDeal(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var facts model.DealFacts
		if !decodeBody(w, r, &facts) {
			return
		}
		deal, err := eng.CreateDeal(r.Context(), facts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, deal)
	}
}

func handleListDeals(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := store.DealFilter{
			AthleteID: q.Get("athlete_id"),
			State:     model.SubmissionState(q.Get("state")),
			Status:    model.OverallStatus(q.Get("status")),
		}
		deals, err := eng.ListDeals(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deals)
	}
}

func handleGetDeal(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deal, err := eng.GetDeal(r.Context(), chi.URLParam(r, "dealID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deal)
	}
}

func handleListEvents(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := eng.ListEvents(r.Context(), chi.URLParam(r, "dealID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func handleDeadline(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := eng.ComputeDeadline(r.Context(), chi.URLParam(r, "dealID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func handleSubmit(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req actionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		deal, err := eng.SubmitForReview(r.Context(), chi.URLParam(r, "dealID"), req.Actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deal)
	}
}

func handleReview(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			actionRequest
			Decision model.ReviewDecision `json:"decision"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		deal, err := eng.ApplyReviewDecision(r.Context(), chi.URLParam(r, "dealID"), req.Decision, req.Actor, req.Notes)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deal)
	}
}

func handleCompleteConditions(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req actionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		deal, err := eng.CompleteConditions(r.Context(), chi.URLParam(r, "dealID"), req.Actor, req.Notes)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deal)
	}
}

func handleRespond(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req actionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		deal, err := eng.RespondToRevision(r.Context(), chi.URLParam(r, "dealID"), req.Actor, req.Notes)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deal)
	}
}

func handleResubmit(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var facts model.DealFacts
		if !decodeBody(w, r, &facts) {
			return
		}
		deal, err := eng.ResubmitDeal(r.Context(), chi.URLParam(r, "dealID"), facts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, deal)
	}
}

func handleRescore(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deal, err := eng.RescoreDeal(r.Context(), chi.URLParam(r, "dealID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deal)
	}
}

func handleActionCenter(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		todos, err := eng.BuildActionCenter(r.Context(), chi.URLParam(r, "athleteID"), nil)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, todos)
	}
}

func handleSummary(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := eng.Summarize(r.Context(), chi.URLParam(r, "athleteID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

func handleRules(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, eng.Rules().All())
	}
}

func handleMetrics(col *monitoring.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := col.Collect(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}
