package habits

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/habitflow/backend/internal/middleware"
	"github.com/habitflow/backend/internal/telemetry/tracing"
	"github.com/habitflow/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=habits_test

type habitsService interface {
	List(ctx context.Context, ownerID int) ([]*Habit, error)
	Get(ctx context.Context, ownerID int, id string) (*Habit, error)
	Create(ctx context.Context, ownerID int, in HabitInput) (*Habit, error)
	Update(ctx context.Context, ownerID int, id string, patch HabitPatch) (*Habit, error)
	Toggle(ctx context.Context, ownerID int, id string, date string) (*Habit, error)
	Delete(ctx context.Context, ownerID int, id string) error
	WeeklyProgress(ctx context.Context, ownerID int) ([]DayProgress, error)
	MonthlyProgress(ctx context.Context, ownerID int) ([]DayProgress, error)
	OverallCompletion(ctx context.Context, ownerID int) (int, error)
	Stats(ctx context.Context, ownerID int) (Stats, error)
	Rewards(ctx context.Context, ownerID int) ([]Reward, error)
}

type ToggleRequest struct {
	Date string `json:"date"`
}

type OverallResponse struct {
	Percentage int `json:"percentage"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type Handler struct {
	service habitsService
}

func NewHandler(service habitsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/api/habits", h.HandleList).Methods("GET", "OPTIONS").Name("list-habits")
	r.HandleFunc("/api/habits", h.HandleCreate).Methods("POST", "OPTIONS").Name("create-habit")
	r.HandleFunc("/api/habits/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-habit")
	r.HandleFunc("/api/habits/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-habit")
	r.HandleFunc("/api/habits/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-habit")
	r.HandleFunc("/api/habits/{id}/toggle", h.HandleToggle).Methods("POST", "OPTIONS").Name("toggle-habit")

	r.HandleFunc("/api/progress/weekly", h.HandleWeeklyProgress).Methods("GET", "OPTIONS").Name("progress-weekly")
	r.HandleFunc("/api/progress/monthly", h.HandleMonthlyProgress).Methods("GET", "OPTIONS").Name("progress-monthly")
	r.HandleFunc("/api/progress/overall", h.HandleOverallProgress).Methods("GET", "OPTIONS").Name("progress-overall")
	r.HandleFunc("/api/progress/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("progress-stats")
	r.HandleFunc("/api/rewards", h.HandleRewards).Methods("GET", "OPTIONS").Name("rewards")
}

// writeServiceError maps service errors to status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		pkg.WriteError(w, validationErr.Field+": "+validationErr.Reason, http.StatusBadRequest)
	case errors.Is(err, ErrValidation):
		pkg.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrHabitNotFound):
		pkg.WriteError(w, "habit not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		pkg.WriteError(w, "not allowed to access this habit", http.StatusForbidden)
	default:
		log.Errorf("%s: %s", op, err)
		pkg.WriteError(w, "internal error", http.StatusInternalServerError)
	}
}

func ownerFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		pkg.WriteError(w, "authentication required", http.StatusUnauthorized)
	}
	return ownerID, ok
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.list")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	habits, err := h.service.List(ctx, ownerID)
	if err != nil {
		writeServiceError(w, "list habits", err)
		return
	}
	pkg.WriteJSON(w, habits, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.get")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	habit, err := h.service.Get(ctx, ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, "get habit", err)
		return
	}
	pkg.WriteJSON(w, habit, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.create")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var in HabitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Tracef("new habit, unmarshal json params: %s", err)
		pkg.WriteError(w, "invalid habit payload", http.StatusBadRequest)
		return
	}

	habit, err := h.service.Create(ctx, ownerID, in)
	if err != nil {
		writeServiceError(w, "create habit", err)
		return
	}
	pkg.WriteJSON(w, habit, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.update")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var patch HabitPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update habit, unmarshal json params: %s", err)
		pkg.WriteError(w, "invalid habit payload", http.StatusBadRequest)
		return
	}

	habit, err := h.service.Update(ctx, ownerID, mux.Vars(r)["id"], patch)
	if err != nil {
		writeServiceError(w, "update habit", err)
		return
	}
	pkg.WriteJSON(w, habit, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.delete")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.service.Delete(ctx, ownerID, id); err != nil {
		writeServiceError(w, "delete habit", err)
		return
	}
	pkg.WriteJSON(w, DeleteResponse{Message: "habit deleted", ID: id}, http.StatusOK)
}

func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.toggle")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	// an empty body toggles today
	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Tracef("toggle habit, unmarshal json params: %s", err)
		pkg.WriteError(w, "invalid toggle payload", http.StatusBadRequest)
		return
	}

	habit, err := h.service.Toggle(ctx, ownerID, mux.Vars(r)["id"], req.Date)
	if err != nil {
		writeServiceError(w, "toggle habit", err)
		return
	}
	pkg.WriteJSON(w, habit, http.StatusOK)
}

func (h *Handler) HandleWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.weekly")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	progress, err := h.service.WeeklyProgress(ctx, ownerID)
	if err != nil {
		writeServiceError(w, "weekly progress", err)
		return
	}
	pkg.WriteJSON(w, progress, http.StatusOK)
}

func (h *Handler) HandleMonthlyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.monthly")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	progress, err := h.service.MonthlyProgress(ctx, ownerID)
	if err != nil {
		writeServiceError(w, "monthly progress", err)
		return
	}
	pkg.WriteJSON(w, progress, http.StatusOK)
}

func (h *Handler) HandleOverallProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.overall")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	percentage, err := h.service.OverallCompletion(ctx, ownerID)
	if err != nil {
		writeServiceError(w, "overall progress", err)
		return
	}
	pkg.WriteJSON(w, OverallResponse{Percentage: percentage}, http.StatusOK)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.stats")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(ctx, ownerID)
	if err != nil {
		writeServiceError(w, "progress stats", err)
		return
	}
	pkg.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) HandleRewards(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rewards")
	defer span.End()

	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	rewards, err := h.service.Rewards(ctx, ownerID)
	if err != nil {
		writeServiceError(w, "rewards", err)
		return
	}
	pkg.WriteJSON(w, rewards, http.StatusOK)
}
