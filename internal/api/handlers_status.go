// handlers_status.go - Combined gateway snapshot handler
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/studyquery/backend/internal/state"
)

// StatusHandlerImpl implements the StatusHandler interface
type StatusHandlerImpl struct {
	state *state.Manager
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(stateMgr *state.Manager) StatusHandler {
	return &StatusHandlerImpl{state: stateMgr}
}

// HandleGatewayStatus returns both slots, the query session and the
// submission gate in one snapshot. This is the frontend's polling endpoint.
func (h *StatusHandlerImpl) HandleGatewayStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.state.Status())
}
