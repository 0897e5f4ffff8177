// handlers_document.go - Document slot operation handlers
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/studyquery/backend/internal/models"
	"github.com/studyquery/backend/internal/remote"
	"github.com/studyquery/backend/internal/state"
	"github.com/studyquery/backend/internal/storage"
)

// connectivityMessage is shown when the inference service could not be
// reached at all. Application-level failures carry the service's own
// message instead.
const connectivityMessage = "Could not reach the inference service. Please check the connection and try again."

// DocumentHandlerImpl implements the DocumentHandler interface
type DocumentHandlerImpl struct {
	store         storage.Store
	state         *state.Manager
	remote        remote.Client
	uploadTimeout time.Duration
}

// NewDocumentHandler creates a new document handler instance
func NewDocumentHandler(store storage.Store, stateMgr *state.Manager, client remote.Client, uploadTimeout time.Duration) DocumentHandler {
	if uploadTimeout <= 0 {
		uploadTimeout = 5 * time.Minute
	}
	return &DocumentHandlerImpl{
		store:         store,
		state:         stateMgr,
		remote:        client,
		uploadTimeout: uploadTimeout,
	}
}

// HandleSelectDocument accepts a document (multipart/form-data) for a slot.
// Selection only stages the document; the transfer is a separate call.
func (h *DocumentHandlerImpl) HandleSelectDocument(c echo.Context) error {
	role := models.SlotRole(c.Param("role"))
	if !role.Valid() {
		return NewValidationError("role")
	}

	file, err := c.FormFile("document")
	if err != nil {
		return NewBadRequestError("no document provided", err)
	}

	src, err := file.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded document", err)
	}
	defer src.Close()

	info, err := h.store.Save(file.Filename, src)
	if err != nil {
		return NewInternalError("failed to save document", err)
	}

	slot, err := h.state.Select(role, info)
	if err != nil {
		return NewInternalError("failed to select document", err)
	}

	return c.JSON(http.StatusCreated, slot)
}

// HandleStartTransfer starts an asynchronous transfer of the selected
// document to the inference service.
func (h *DocumentHandlerImpl) HandleStartTransfer(c echo.Context) error {
	role := models.SlotRole(c.Param("role"))
	if !role.Valid() {
		return NewValidationError("role")
	}

	slot, err := h.state.BeginTransfer(role)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrTransferInProgress):
			return NewConflictError("a transfer is already in progress for this slot")
		case errors.Is(err, state.ErrNotSelected), errors.Is(err, state.ErrNoFileSelected):
			return NewConflictError("no document selected for this slot")
		default:
			return NewInternalError("failed to start transfer", err)
		}
	}

	go h.runTransfer(role, slot.File)

	return c.JSON(http.StatusAccepted, slot)
}

// runTransfer performs the actual upload in the background and settles the
// slot's terminal state.
func (h *DocumentHandlerImpl) runTransfer(role models.SlotRole, file *models.FileInfo) {
	ctx, cancel := context.WithTimeout(context.Background(), h.uploadTimeout)
	defer cancel()

	src, err := h.store.Open(file.ID)
	if err != nil {
		fmt.Printf("[Transfer] Failed to open document %s: %v\n", file.ID, err)
		h.state.FailTransfer(role, "The selected document could not be read")
		return
	}
	defer src.Close()

	result, err := h.remote.UploadDocument(ctx, role, file.Name, src)
	if err != nil {
		var svcErr *remote.ServiceError
		if errors.As(err, &svcErr) {
			h.state.FailTransfer(role, svcErr.Message)
		} else {
			fmt.Printf("[Transfer] Transport failure for %s slot: %v\n", role, err)
			h.state.FailTransfer(role, connectivityMessage)
		}
		return
	}

	fmt.Printf("[Transfer] %s document indexed: %d units\n", role, result.IndexedUnits)
	h.state.CompleteTransfer(role, result.IndexedUnits)
}

// HandleSlotStatus returns the current snapshot of one slot
func (h *DocumentHandlerImpl) HandleSlotStatus(c echo.Context) error {
	role := models.SlotRole(c.Param("role"))
	if !role.Valid() {
		return NewValidationError("role")
	}

	slot, err := h.state.Slot(role)
	if err != nil {
		return NewNotFoundError("slot", string(role))
	}

	return c.JSON(http.StatusOK, slot)
}

// HandleRecentDocuments returns a list of recently selected documents
func (h *DocumentHandlerImpl) HandleRecentDocuments(c echo.Context) error {
	files, err := h.store.List(20)
	if err != nil {
		return NewInternalError("failed to list documents", err)
	}

	return c.JSON(http.StatusOK, files)
}
