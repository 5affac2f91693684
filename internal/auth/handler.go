package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/spendwise/spendwise/internal/platform/httpx"
	"github.com/spendwise/spendwise/internal/shared"
)

// Handler wires HTTP endpoints for registration and login.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers user routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	_, token, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateEmail) {
			httpx.Message(w, http.StatusBadRequest, shared.ErrDuplicateEmail.Error())
			return
		}
		h.logger.Error("register user", slog.Any("error", err))
		httpx.ServerError(w)
		return
	}

	httpx.JSON(w, http.StatusCreated, tokenResponse{Message: "user registered", Token: token})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "email and password are required")
		return
	}

	_, token, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// "user not found" and "invalid credentials" are deliberately
		// distinct, matching the documented behaviour. This allows email
		// enumeration; see DESIGN.md before tightening it.
		switch {
		case errors.Is(err, shared.ErrUserNotFound):
			httpx.Message(w, http.StatusBadRequest, shared.ErrUserNotFound.Error())
		case errors.Is(err, shared.ErrInvalidCredentials):
			httpx.Message(w, http.StatusBadRequest, shared.ErrInvalidCredentials.Error())
		default:
			h.logger.Error("login user", slog.Any("error", err))
			httpx.ServerError(w)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, tokenResponse{Message: "login successful", Token: token})
}
