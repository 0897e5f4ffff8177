// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/studyquery/backend/internal/models"
)

// DocumentHandler handles document selection and transfer operations
type DocumentHandler interface {
	HandleSelectDocument(c echo.Context) error
	HandleStartTransfer(c echo.Context) error
	HandleSlotStatus(c echo.Context) error
	HandleRecentDocuments(c echo.Context) error
}

// QueryHandler handles question submission and answer retrieval
type QueryHandler interface {
	HandleSubmitQuestion(c echo.Context) error
	HandleQueryStatus(c echo.Context) error
	HandleAnswer(c echo.Context) error
	HandleAnswerMsgpack(c echo.Context) error
	HandleSuggestedQuestions(c echo.Context) error
}

// StatusHandler serves the combined gateway snapshot
type StatusHandler interface {
	HandleGatewayStatus(c echo.Context) error
}

// HistoryHandler handles answered-question history
type HistoryHandler interface {
	HandleRecentQuestions(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// HistoryStore is the subset of the history store the handlers need.
// Allows mocking in tests; may be nil when history is disabled.
type HistoryStore interface {
	Record(question string, kind models.AnswerKind, elapsed time.Duration) error
	Recent(limit int) ([]models.HistoryEntry, error)
}
