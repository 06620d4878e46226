package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/response"
	"change-ops-api/internal/service"
)

// RequestHandler handles project request endpoints
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateRequest godoc
// @Summary      Create a project request
// @Description  Creates a project request in DRAFT status for the authenticated user
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProjectRequestRequest true "Project request payload"
// @Success      201 {object} response.SuccessResponse{data=dto.ProjectRequestResponse}
// @Failure      400 {object} response.ErrorResponse "Validation failed"
// @Router       /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.requestService.CreateRequest(c.Request.Context(), &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListRequests godoc
// @Summary      List project requests
// @Tags         requests
// @Produce      json
// @Param        status query string false "Filter by status"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ProjectRequestResponse}
// @Router       /requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	var status *domain.RequestStatus
	if s := c.Query("status"); s != "" {
		rs := domain.RequestStatus(s)
		status = &rs
	}

	result, err := h.requestService.ListRequests(c.Request.Context(), status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetRequest godoc
// @Summary      Get a project request
// @Tags         requests
// @Produce      json
// @Param        requestId path string true "Request ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectRequestResponse}
// @Failure      404 {object} response.ErrorResponse "Request not found"
// @Router       /requests/{requestId} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, ok := pathID(c, "requestId", "request ID")
	if !ok {
		return
	}

	result, err := h.requestService.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Submit moves a draft request into the review queue
func (h *RequestHandler) Submit(c *gin.Context) {
	requestID, ok := pathID(c, "requestId", "request ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.requestService.Submit(c.Request.Context(), requestID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// BeginReview claims a pending request for review
func (h *RequestHandler) BeginReview(c *gin.Context) {
	requestID, ok := pathID(c, "requestId", "request ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.requestService.BeginReview(c.Request.Context(), requestID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Approve godoc
// @Summary      Approve a project request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        requestId path string true "Request ID (UUID)"
// @Param        request body dto.ApproveRequestRequest false "Approval notes"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectRequestResponse}
// @Failure      409 {object} response.ErrorResponse "Illegal transition"
// @Router       /requests/{requestId}/approve [post]
func (h *RequestHandler) Approve(c *gin.Context) {
	requestID, ok := pathID(c, "requestId", "request ID")
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

	result, err := h.requestService.Approve(c.Request.Context(), requestID, userID, req.Notes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Deny rejects a request under review with a mandatory reason
func (h *RequestHandler) Deny(c *gin.Context) {
	requestID, ok := pathID(c, "requestId", "request ID")
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

	result, err := h.requestService.Deny(c.Request.Context(), requestID, userID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Cancel withdraws a request. Only the requester may cancel.
func (h *RequestHandler) Cancel(c *gin.Context) {
	requestID, ok := pathID(c, "requestId", "request ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.CancelRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.requestService.Cancel(c.Request.Context(), requestID, userID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Convert godoc
// @Summary      Convert an approved request into a project
// @Description  Materializes a PLANNING project from an approved request. Idempotency is enforced so a request converts exactly once.
// @Tags         requests
// @Produce      json
// @Param        requestId path string true "Request ID (UUID)"
// @Success      201 {object} response.SuccessResponse{data=dto.ConvertResponse}
// @Failure      409 {object} response.ErrorResponse "Already converted"
// @Router       /requests/{requestId}/convert [post]
func (h *RequestHandler) Convert(c *gin.Context) {
	requestID, ok := pathID(c, "requestId", "request ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.requestService.Convert(c.Request.Context(), requestID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}
