// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/studyquery/backend/internal/models"
	"github.com/studyquery/backend/internal/remote"
	"github.com/studyquery/backend/internal/state"
	"github.com/studyquery/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store   storage.Store
	State   *state.Manager
	Remote  remote.Client
	History HistoryStore // nil when history is disabled

	Questions *models.QuestionSet
	Version   string

	UploadTimeout time.Duration
	QueryTimeout  time.Duration
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Document DocumentHandler
	Query    QueryHandler
	Status   StatusHandler
	History  HistoryHandler
	StatusWS *StatusWebSocketHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Version),
		Document: NewDocumentHandler(deps.Store, deps.State, deps.Remote, deps.UploadTimeout),
		Query:    NewQueryHandler(deps.State, deps.Remote, deps.History, deps.Questions, deps.QueryTimeout),
		Status:   NewStatusHandler(deps.State),
		History:  NewHistoryHandler(deps.History),
		StatusWS: NewStatusWebSocketHandler(deps.State),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)
	e.GET("/api/health", handlers.Health.HandleHealth)

	// Document slot routes
	docGroup := e.Group("/api/documents")
	docGroup.POST("/:role", handlers.Document.HandleSelectDocument)
	docGroup.POST("/:role/transfer", handlers.Document.HandleStartTransfer)
	docGroup.GET("/:role/status", handlers.Document.HandleSlotStatus)
	docGroup.GET("/recent", handlers.Document.HandleRecentDocuments)

	// Query session routes
	queryGroup := e.Group("/api/query")
	queryGroup.POST("", handlers.Query.HandleSubmitQuestion)
	queryGroup.GET("/status", handlers.Query.HandleQueryStatus)
	queryGroup.GET("/answer", handlers.Query.HandleAnswer)
	queryGroup.GET("/answer/msgpack", handlers.Query.HandleAnswerMsgpack)

	// Suggested questions and history
	e.GET("/api/questions/suggested", handlers.Query.HandleSuggestedQuestions)
	e.GET("/api/history", handlers.History.HandleRecentQuestions)

	// Combined gateway snapshot
	e.GET("/api/status", handlers.Status.HandleGatewayStatus)
}

// RegisterWebSocketRoutes registers WebSocket routes
func RegisterWebSocketRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/ws/status", handlers.StatusWS.HandleStatusWebSocket)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}
