package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"wordofday/internal/domain"
	"wordofday/internal/middleware"

	"go.uber.org/zap"
)

// UserHandler serves the subscriber endpoints
type UserHandler struct {
	service UserServiceInterface
	logger  *zap.Logger
}

// NewUserHandler creates a UserHandler
func NewUserHandler(service UserServiceInterface, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register subscribes a new user.
// POST /users/
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Missing name or email")
		return
	}

	user, err := h.service.Register(r.Context(), req.Name, req.Email)
	switch {
	case err == nil:
		middleware.WriteJSON(w, http.StatusCreated, user)
	case errors.Is(err, domain.ErrDuplicateEmail):
		middleware.WriteError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, domain.ErrValidation):
		middleware.WriteError(w, http.StatusBadRequest, domain.ValidationMessage(err))
	default:
		h.logger.Error("Failed to register user", zap.Error(err))
		middleware.WriteError(w, http.StatusInternalServerError, "Could not create user")
	}
}

// Count returns the number of subscribers.
// GET /users/count
func (h *UserHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.logger.Error("Failed to count users", zap.Error(err))
		middleware.WriteError(w, http.StatusInternalServerError, "Could not count users")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}
