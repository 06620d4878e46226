package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/response"
	"change-ops-api/internal/service"
)

// ChangeHandler handles change request endpoints
type ChangeHandler struct {
	changeService service.ChangeService
}

// NewChangeHandler creates a new ChangeHandler
func NewChangeHandler(changeService service.ChangeService) *ChangeHandler {
	return &ChangeHandler{changeService: changeService}
}

// CreateChange godoc
// @Summary      Create a change request
// @Tags         changes
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateChangeRequestRequest true "Change request payload"
// @Success      201 {object} response.SuccessResponse{data=dto.ChangeRequestResponse}
// @Failure      400 {object} response.ErrorResponse "Validation failed"
// @Router       /changes [post]
func (h *ChangeHandler) CreateChange(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.CreateChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.changeService.CreateChange(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListChanges lists change requests, optionally filtered by status
func (h *ChangeHandler) ListChanges(c *gin.Context) {
	var status *domain.ChangeStatus
	if s := c.Query("status"); s != "" {
		cs := domain.ChangeStatus(s)
		status = &cs
	}

	result, err := h.changeService.ListChanges(c.Request.Context(), status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetChange returns a single change request
func (h *ChangeHandler) GetChange(c *gin.Context) {
	changeID, ok := pathID(c, "changeId", "change ID")
	if !ok {
		return
	}

	result, err := h.changeService.GetChange(c.Request.Context(), changeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Submit moves a draft change into the review queue
func (h *ChangeHandler) Submit(c *gin.Context) {
	h.transition(c, h.changeService.Submit)
}

// BeginReview claims a pending change for review
func (h *ChangeHandler) BeginReview(c *gin.Context) {
	h.transition(c, h.changeService.BeginReview)
}

// Approve approves a change under review
func (h *ChangeHandler) Approve(c *gin.Context) {
	changeID, ok := pathID(c, "changeId", "change ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.ApproveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.changeService.Approve(c.Request.Context(), changeID, userID, req.Notes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Deny rejects a change under review with a mandatory reason
func (h *ChangeHandler) Deny(c *gin.Context) {
	changeID, ok := pathID(c, "changeId", "change ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.DenyRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Denial reason is required")
		return
	}

	result, err := h.changeService.Deny(c.Request.Context(), changeID, userID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Cancel withdraws a change request before execution
func (h *ChangeHandler) Cancel(c *gin.Context) {
	h.transition(c, h.changeService.Cancel)
}

// Schedule godoc
// @Summary      Schedule an approved change
// @Tags         changes
// @Accept       json
// @Produce      json
// @Param        changeId path string true "Change ID (UUID)"
// @Param        request body dto.ScheduleChangeRequest true "Planned execution date"
// @Success      200 {object} response.SuccessResponse{data=dto.ChangeRequestResponse}
// @Failure      409 {object} response.ErrorResponse "Illegal transition"
// @Router       /changes/{changeId}/schedule [post]
func (h *ChangeHandler) Schedule(c *gin.Context) {
	changeID, ok := pathID(c, "changeId", "change ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.ScheduleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Scheduled date is required")
		return
	}

	result, err := h.changeService.Schedule(c.Request.Context(), changeID, userID, req.ScheduledDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Execute starts executing a scheduled change
func (h *ChangeHandler) Execute(c *gin.Context) {
	h.transition(c, h.changeService.StartExecution)
}

// Complete records a successful execution outcome
func (h *ChangeHandler) Complete(c *gin.Context) {
	h.transition(c, h.changeService.CompleteExecution)
}

// Fail records a failed execution outcome
func (h *ChangeHandler) Fail(c *gin.Context) {
	changeID, ok := pathID(c, "changeId", "change ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.FailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failure reason is required")
		return
	}

	result, err := h.changeService.FailExecution(c.Request.Context(), changeID, userID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Rollback marks a failed change as rolled back
func (h *ChangeHandler) Rollback(c *gin.Context) {
	h.transition(c, h.changeService.Rollback)
}

type changeTransition func(ctx context.Context, changeID, userID uuid.UUID) (*dto.ChangeRequestResponse, error)

func (h *ChangeHandler) transition(c *gin.Context, op changeTransition) {
	changeID, ok := pathID(c, "changeId", "change ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), changeID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
