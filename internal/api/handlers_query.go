// handlers_query.go - Question submission and answer retrieval handlers
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/studyquery/backend/internal/answer"
	"github.com/studyquery/backend/internal/models"
	"github.com/studyquery/backend/internal/remote"
	"github.com/studyquery/backend/internal/state"
	"github.com/vmihailenco/msgpack/v5"
)

// QueryHandlerImpl implements the QueryHandler interface
type QueryHandlerImpl struct {
	state        *state.Manager
	remote       remote.Client
	history      HistoryStore
	questions    *models.QuestionSet
	queryTimeout time.Duration
}

// NewQueryHandler creates a new query handler instance
func NewQueryHandler(stateMgr *state.Manager, client remote.Client, history HistoryStore, questions *models.QuestionSet, queryTimeout time.Duration) QueryHandler {
	if queryTimeout <= 0 {
		queryTimeout = 2 * time.Minute
	}
	return &QueryHandlerImpl{
		state:        stateMgr,
		remote:       client,
		history:      history,
		questions:    questions,
		queryTimeout: queryTimeout,
	}
}

type submitQuestionRequest struct {
	Question string `json:"question"`
}

// HandleSubmitQuestion starts an asynchronous question submission. Rejected
// with 409 while the submission gate is closed.
func (h *QueryHandlerImpl) HandleSubmitQuestion(c echo.Context) error {
	var req submitQuestionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return NewValidationError("question")
	}

	if err := h.state.BeginQuery(question); err != nil {
		if errors.Is(err, state.ErrSubmissionBlocked) {
			return NewConflictError("questions cannot be submitted right now")
		}
		return NewInternalError("failed to submit question", err)
	}

	go h.runQuery(question)

	return c.JSON(http.StatusAccepted, h.state.Query())
}

// runQuery performs the remote call in the background, interprets the
// payload and settles the session's terminal state.
func (h *QueryHandlerImpl) runQuery(question string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.queryTimeout)
	defer cancel()

	started := time.Now()
	payload, err := h.remote.Query(ctx, question)
	if err != nil {
		var svcErr *remote.ServiceError
		if errors.As(err, &svcErr) {
			h.state.FailQuery(svcErr.Message)
		} else {
			fmt.Printf("[Query] Transport failure: %v\n", err)
			h.state.FailQuery(connectivityMessage)
		}
		return
	}

	result := answer.Interpret(payload.Mode, payload.Answer, payload.ImageData, payload.Sources)
	if err := h.state.CompleteQuery(result); err != nil {
		fmt.Printf("[Query] Failed to record answer: %v\n", err)
		return
	}

	if h.history != nil {
		if err := h.history.Record(question, result.Kind, time.Since(started)); err != nil {
			fmt.Printf("[Query] Failed to record history: %v\n", err)
		}
	}
}

// HandleQueryStatus returns the current query session snapshot. The result
// body is served by the answer endpoints, not here.
func (h *QueryHandlerImpl) HandleQueryStatus(c echo.Context) error {
	session := h.state.Query()
	session.LastResult = nil
	return c.JSON(http.StatusOK, session)
}

// HandleAnswer returns the current interpreted answer, or 404 when no
// terminal result is held.
func (h *QueryHandlerImpl) HandleAnswer(c echo.Context) error {
	result, ok := h.state.LastResult()
	if !ok {
		return NewNotFoundError("answer", "current")
	}

	return c.JSON(http.StatusOK, result)
}

// HandleAnswerMsgpack returns the current answer in MessagePack format
func (h *QueryHandlerImpl) HandleAnswerMsgpack(c echo.Context) error {
	result, ok := h.state.LastResult()
	if !ok {
		return NewNotFoundError("answer", "current")
	}

	data, err := msgpack.Marshal(result)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleSuggestedQuestions returns the bundled question catalog
func (h *QueryHandlerImpl) HandleSuggestedQuestions(c echo.Context) error {
	set := h.questions
	if set == nil {
		set = &models.QuestionSet{}
	}

	return c.JSON(http.StatusOK, set)
}
