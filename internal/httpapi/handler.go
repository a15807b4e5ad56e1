package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/engine"
)

var validate = validator.New()

// Operations is the engine surface served over HTTP. *engine.Engine
// implements it.
type Operations interface {
	RunDraw(ctx context.Context, groupID, requesterID string) (engine.DrawResult, error)
	GetAssignment(ctx context.Context, groupID, requesterID, participantID string) (domain.Assignment, error)
	AddExclusion(ctx context.Context, req domain.ExclusionRequest) (domain.ExclusionResult, error)
	RemoveExclusion(ctx context.Context, groupID, requesterID, exclusionID string) error
	ListExclusions(ctx context.Context, groupID, requesterID, participantID string) ([]domain.ExclusionView, error)
}

// Pinger reports storage health. *store.Store implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the giftcycle API.
type Handler struct {
	ops    Operations
	health Pinger
	logger *slog.Logger
}

// NewHandler creates a Handler. A nil logger uses slog.Default().
func NewHandler(ops Operations, health Pinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{ops: ops, health: health, logger: logger}
}

// NewRouter returns a chi router with every route and middleware mounted.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers HTTP routes for the API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1/groups/{groupID}", func(r chi.Router) {
		r.Use(RequireRequester)

		r.Post("/draw", h.handleDraw)
		r.Get("/participants/{participantID}/assignment", h.handleAssignment)
		r.Get("/participants/{participantID}/exclusions", h.handleListExclusions)
		r.Post("/exclusions", h.handleAddExclusion)
		r.Delete("/exclusions/{exclusionID}", h.handleRemoveExclusion)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, Response{
				Status: "error",
				Error:  &ErrorResponse{Code: "UNAVAILABLE", Message: "storage unreachable"},
			})
			return
		}
	}
	writeOK(w, http.StatusOK, map[string]string{"health": "ok"})
}

func (h *Handler) handleDraw(w http.ResponseWriter, r *http.Request) {
	res, err := h.ops.RunDraw(r.Context(), chi.URLParam(r, "groupID"), RequesterFrom(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, http.StatusOK, res)
}

func (h *Handler) handleAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := h.ops.GetAssignment(r.Context(),
		chi.URLParam(r, "groupID"),
		RequesterFrom(r.Context()),
		chi.URLParam(r, "participantID"),
	)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, http.StatusOK, a)
}

func (h *Handler) handleListExclusions(w http.ResponseWriter, r *http.Request) {
	views, err := h.ops.ListExclusions(r.Context(),
		chi.URLParam(r, "groupID"),
		RequesterFrom(r.Context()),
		chi.URLParam(r, "participantID"),
	)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, http.StatusOK, views)
}

// addExclusionBody is the POST /exclusions payload.
type addExclusionBody struct {
	Who    string `json:"who" validate:"required"`
	Whom   string `json:"whom" validate:"required"`
	Mutual bool   `json:"mutual"`
}

func (h *Handler) handleAddExclusion(w http.ResponseWriter, r *http.Request) {
	var body addExclusionBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, h.logger, domain.NewInvalidArgument("invalid JSON body: "+err.Error()))
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, h.logger, domain.NewInvalidArgument(err.Error()))
		return
	}

	res, err := h.ops.AddExclusion(r.Context(), domain.ExclusionRequest{
		GroupID:     chi.URLParam(r, "groupID"),
		RequesterID: RequesterFrom(r.Context()),
		Who:         body.Who,
		Whom:        body.Whom,
		Mutual:      body.Mutual,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, http.StatusCreated, res)
}

func (h *Handler) handleRemoveExclusion(w http.ResponseWriter, r *http.Request) {
	err := h.ops.RemoveExclusion(r.Context(),
		chi.URLParam(r, "groupID"),
		RequesterFrom(r.Context()),
		chi.URLParam(r, "exclusionID"),
	)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]string{"removed": chi.URLParam(r, "exclusionID")})
}
