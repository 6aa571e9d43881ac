package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/savvy-app/archie-server/internal/api"
	"github.com/savvy-app/archie-server/internal/config"
)

// Handler exposes the tutor actions over HTTP.
type Handler struct {
	svc        *Service
	cfg        *config.Config
	transcript TranscriptLogger
}

// NewHandler creates the action endpoint handler. A nil transcript
// logger disables transcripts.
func NewHandler(svc *Service, cfg *config.Config, transcript TranscriptLogger) *Handler {
	if transcript == nil {
		transcript = noopTranscript{}
	}
	return &Handler{svc: svc, cfg: cfg, transcript: transcript}
}

// RegisterRoutes mounts the action endpoint. The path mirrors the
// original cloud function so existing app builds keep working; new
// builds post to the root.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chatWithTutor", h.HandleAction)
	r.Post("/", h.HandleAction)
}

// HandleAction decodes the request, validates the action discriminant
// and dispatches. All failures are converted to the uniform error
// envelope here; nothing below this layer writes to the response.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.ActionTimeout)
	defer cancel()

	reqID := chiMiddleware.GetReqID(r.Context())
	start := time.Now()

	result, err := h.dispatch(ctx, reqID, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrValidation) {
			status = http.StatusBadRequest
		}
		slog.Error("Action failed",
			"action", req.Action,
			"status", status,
			"error", err,
			"duration", time.Since(start),
		)
		api.Error(w, status, err.Error())
		return
	}

	slog.Info("Action complete", "action", req.Action, "duration", time.Since(start))
	api.JSON(w, http.StatusOK, result)
}

// dispatch routes on the action discriminant. Unknown actions are
// rejected before any upload or model call happens.
func (h *Handler) dispatch(ctx context.Context, reqID string, req Request) (any, error) {
	switch req.Action {
	case ActionGenerateTitle:
		return h.svc.GenerateTitle(ctx, req.Message)
	case ActionChat:
		return h.chatWithTranscript(ctx, reqID, req)
	case ActionMathVision:
		return h.svc.MathVision(ctx, req.Image)
	case ActionGenerateFlashcards:
		return h.svc.GenerateFlashcards(ctx, req.Topic, req.Message)
	default:
		return nil, errf(ErrValidation, "Unknown action")
	}
}

func (h *Handler) chatWithTranscript(ctx context.Context, reqID string, req Request) (any, error) {
	h.transcript.Log(TranscriptEvent{
		RequestID: reqID,
		Action:    string(req.Action),
		Direction: "user",
		Content:   req.Message,
	})

	res, err := h.svc.Chat(ctx, req)
	if err != nil {
		h.transcript.Log(TranscriptEvent{
			RequestID: reqID,
			Action:    string(req.Action),
			Direction: "assistant",
			Error:     err.Error(),
		})
		return nil, err
	}

	h.transcript.Log(TranscriptEvent{
		RequestID: reqID,
		Action:    string(req.Action),
		Direction: "assistant",
		Content:   res.Text,
	})
	return res, nil
}
