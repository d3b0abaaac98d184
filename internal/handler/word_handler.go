package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"wordofday/internal/domain"
	"wordofday/internal/middleware"
	"wordofday/internal/service"

	"go.uber.org/zap"
)

const maxBulkBodyBytes = 10 << 20

// WordHandler serves the vocabulary endpoints
type WordHandler struct {
	service WordServiceInterface
	logger  *zap.Logger
}

// NewWordHandler creates a WordHandler
func NewWordHandler(service WordServiceInterface, logger *zap.Logger) *WordHandler {
	return &WordHandler{
		service: service,
		logger:  logger,
	}
}

// Create adds one word.
// POST /words/
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.WordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	word, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, err, "Could not create word")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, word)
}

// BulkCreate adds a JSON array of words in one transaction.
// POST /words/bulk
func (h *WordHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBulkBodyBytes))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Could not read request body")
		return
	}

	if !isJSONArray(body) {
		middleware.WriteError(w, http.StatusBadRequest, "Request body must be a list of words")
		return
	}

	var inputs []domain.WordInput
	if err := json.Unmarshal(body, &inputs); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Each word must be an object with title, description and example")
		return
	}

	n, err := h.service.BulkCreate(r.Context(), inputs)
	if err != nil {
		h.writeServiceError(w, err, "An error occurred while saving words")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully added %d words.", n),
	})
}

// List returns a page of words.
// GET /words/?skip=0&limit=100
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", service.DefaultWordLimit)

	words, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		h.writeServiceError(w, err, "Could not list words")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, words)
}

// Today returns the word of the day.
// GET /words/today
func (h *WordHandler) Today(w http.ResponseWriter, r *http.Request) {
	word, err := h.service.Today(r.Context())
	if errors.Is(err, domain.ErrWordNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Word of the day not found")
		return
	}
	if err != nil {
		h.writeServiceError(w, err, "Could not get word of the day")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, word)
}

func (h *WordHandler) writeServiceError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, domain.ErrValidation) {
		middleware.WriteError(w, http.StatusBadRequest, domain.ValidationMessage(err))
		return
	}
	h.logger.Error(msg, zap.Error(err))
	middleware.WriteError(w, http.StatusInternalServerError, msg)
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '[' && json.Valid(trimmed)
}

// queryInt reads an integer query parameter, falling back to def when it is
// absent or malformed
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
