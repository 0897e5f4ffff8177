// handlers_history.go - Answered-question history handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/studyquery/backend/internal/models"
)

// HistoryHandlerImpl implements the HistoryHandler interface
type HistoryHandlerImpl struct {
	history HistoryStore
}

// NewHistoryHandler creates a new history handler. A nil store means
// history is disabled and the endpoint serves an empty list.
func NewHistoryHandler(history HistoryStore) HistoryHandler {
	return &HistoryHandlerImpl{history: history}
}

// HandleRecentQuestions returns recently answered questions, newest first
func (h *HistoryHandlerImpl) HandleRecentQuestions(c echo.Context) error {
	if h.history == nil {
		return c.JSON(http.StatusOK, []models.HistoryEntry{})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}

	entries, err := h.history.Recent(limit)
	if err != nil {
		return NewInternalError("failed to load history", err)
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	return c.JSON(http.StatusOK, entries)
}
