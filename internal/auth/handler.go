package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/habitflow/backend/internal/middleware"
	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/internal/telemetry/tracing"
	"github.com/habitflow/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type authService interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
	Me(ctx context.Context, userID int) (*User, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type Handler struct {
	service authService
}

func NewHandler(service authService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginAllowedPerMin int,
	metricsManager *metrics.Manager,
) {
	mainRouter.HandleFunc("/api/auth/me", h.HandleMe).Methods("GET", "OPTIONS").Name("auth-me")
	mainRouter.HandleFunc("/api/auth/logout", h.HandleLogout).Methods("POST", "OPTIONS").Name("auth-logout")

	// rate limit register and login to slow down credential stuffing
	limitedRouter := mainRouter.PathPrefix("/api/auth").Subrouter()
	limitedRouter.HandleFunc("/register", h.HandleRegister).Methods("POST", "OPTIONS").Name("auth-register")
	limitedRouter.HandleFunc("/login", h.HandleLogin).Methods("POST", "OPTIONS").Name("auth-login")
	limitedRouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		pkg.WriteError(w, "invalid register payload", http.StatusBadRequest)
		return
	}

	u, err := h.service.Register(ctx, req)
	switch {
	case errors.Is(err, ErrInvalidInput):
		pkg.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrUserExists):
		pkg.WriteError(w, "email already registered", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("register user: %s", err)
		pkg.WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, u, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		pkg.WriteError(w, "login failed", http.StatusBadRequest)
		return
	}

	if loginReq.Email == "" {
		pkg.WriteError(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		pkg.WriteError(w, "error, password empty", http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(ctx, loginReq.Email, loginReq.Password, time.Now())
	if errors.Is(err, ErrInvalidCredentials) {
		log.Tracef("failed login attempt for: %s", loginReq.Email)
		pkg.WriteError(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		pkg.WriteError(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	pkg.WriteJSON(w, LoginResponse{Token: token}, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	authToken := middleware.BearerToken(r)
	if authToken == "" {
		pkg.WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	loggedOut, err := h.service.Logout(ctx, authToken)
	if err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		pkg.WriteError(w, "invalid or expired session", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		pkg.WriteError(w, "invalid or expired session", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSON(w, map[string]string{"message": "logged out"}, http.StatusOK)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.me")
	defer span.End()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		pkg.WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	u, err := h.service.Me(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		pkg.WriteError(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get user %d: %s", userID, err)
		pkg.WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, u, http.StatusOK)
}
