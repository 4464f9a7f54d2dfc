package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/habitflow/backend/internal/datekey"
	"github.com/habitflow/backend/internal/habits"
	"github.com/habitflow/backend/internal/middleware"
	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/internal/telemetry/tracing"
	"github.com/habitflow/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=ai_test

type aiService interface {
	Suggest(ctx context.Context, req SuggestionRequest) ([]Suggestion, error)
	Ask(ctx context.Context, prompt string) (string, error)
	AnalyzeFood(ctx context.Context, image []byte, mimeType string) (*FoodAnalysis, error)
}

type habitsSource interface {
	List(ctx context.Context, ownerID int) ([]*habits.Habit, error)
}

type SuggestionsRequest struct {
	UserGoals string `json:"userGoals"`
}

type SuggestionsResponse struct {
	Success     bool         `json:"success"`
	Suggestions []Suggestion `json:"suggestions"`
	Timestamp   time.Time    `json:"timestamp"`
}

type AskRequest struct {
	Prompt string `json:"prompt"`
}

type AskResponse struct {
	Reply string `json:"reply"`
}

type Handler struct {
	service aiService
	habits  habitsSource
	clock   datekey.Clock
	now     func() time.Time
}

func NewHandler(service aiService, habitsSrc habitsSource, clock datekey.Clock) *Handler {
	return &Handler{
		service: service,
		habits:  habitsSrc,
		clock:   clock,
		now:     time.Now,
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	aiRouter := mainRouter.PathPrefix("/api").Subrouter()
	aiRouter.HandleFunc("/ai/suggestions", h.HandleSuggestions).Methods("POST", "OPTIONS").Name("ai-suggestions")
	aiRouter.HandleFunc("/gemini/ask", h.HandleAsk).Methods("POST", "OPTIONS").Name("ai-ask")
	aiRouter.HandleFunc("/gemini/analyze-food", h.HandleAnalyzeFood).Methods("POST", "OPTIONS").Name("ai-analyze-food")

	// model calls are paid for, limit them per user
	aiRouter.Use(middleware.RateLimit(rateLimiter, "ai", allowedPerMin, metricsManager))
}

func writeAIError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotConfigured):
		pkg.WriteError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, ErrEmptyPrompt), errors.Is(err, ErrInvalidImage), errors.Is(err, ErrImageTooLarge):
		pkg.WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		pkg.WriteError(w, "ai request failed", http.StatusInternalServerError)
	}
}

func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.suggestions")
	defer span.End()

	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		pkg.WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	// habits and completion rate come from the store, only goals come from the client
	var req SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		pkg.WriteError(w, "invalid suggestions payload", http.StatusBadRequest)
		return
	}

	ownerHabits, err := h.habits.List(ctx, ownerID)
	if err != nil {
		log.Errorf("ai suggestions, list habits: %s", err)
		pkg.WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	suggestions, err := h.service.Suggest(ctx, SuggestionRequest{
		Habits:         ownerHabits,
		CompletionRate: habits.OverallCompletion(ownerHabits, h.clock.Today()),
		UserGoals:      req.UserGoals,
	})
	if err != nil {
		writeAIError(w, "ai suggestions", err)
		return
	}

	pkg.WriteJSON(w, SuggestionsResponse{
		Success:     true,
		Suggestions: suggestions,
		Timestamp:   h.now().UTC(),
	}, http.StatusOK)
}

func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.ask")
	defer span.End()

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteError(w, "prompt is required", http.StatusBadRequest)
		return
	}

	reply, err := h.service.Ask(ctx, req.Prompt)
	if err != nil {
		writeAIError(w, "ai ask", err)
		return
	}
	pkg.WriteJSON(w, AskResponse{Reply: reply}, http.StatusOK)
}

func (h *Handler) HandleAnalyzeFood(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.analyze_food")
	defer span.End()

	// room for the multipart envelope on top of the image itself
	const maxBodySize = MaxImageSize + (1 << 20)
	if r.ContentLength > maxBodySize {
		writeAIError(w, "ai analyze food", ErrImageTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := r.ParseMultipartForm(MaxImageSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeAIError(w, "ai analyze food", ErrImageTooLarge)
			return
		}
		pkg.WriteError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		pkg.WriteError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		log.Errorf("ai analyze food, read image: %s", err)
		pkg.WriteError(w, "read image failed", http.StatusBadRequest)
		return
	}

	analysis, err := h.service.AnalyzeFood(ctx, image, header.Header.Get("Content-Type"))
	if err != nil {
		writeAIError(w, "ai analyze food", err)
		return
	}
	pkg.WriteJSON(w, analysis, http.StatusOK)
}
