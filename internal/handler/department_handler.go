package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"change-ops-api/internal/dto"
	"change-ops-api/internal/response"
	"change-ops-api/internal/service"
)

// DepartmentHandler handles department endpoints
type DepartmentHandler struct {
	departmentService service.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departmentService service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// CreateDepartment godoc
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateDepartmentRequest true "Department payload"
// @Success      201 {object} response.SuccessResponse{data=dto.DepartmentResponse}
// @Failure      409 {object} response.ErrorResponse "Name already exists"
// @Router       /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.departmentService.CreateDepartment(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListDepartments lists departments; pass active=true for active ones only
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	result, err := h.departmentService.ListDepartments(c.Request.Context(), activeOnly)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetDepartment returns a single department
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	departmentID, ok := pathID(c, "departmentId", "department ID")
	if !ok {
		return
	}

	result, err := h.departmentService.GetDepartment(c.Request.Context(), departmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Deactivate retires a department
func (h *DepartmentHandler) Deactivate(c *gin.Context) {
	departmentID, ok := pathID(c, "departmentId", "department ID")
	if !ok {
		return
	}

	result, err := h.departmentService.Deactivate(c.Request.Context(), departmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
