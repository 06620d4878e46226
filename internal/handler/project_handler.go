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

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        status query string false "Filter by status"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ProjectResponse}
// @Router       /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var status *domain.ProjectStatus
	if s := c.Query("status"); s != "" {
		ps := domain.ProjectStatus(s)
		status = &ps
	}

	result, err := h.projectService.ListProjects(c.Request.Context(), status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetProject godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Router       /projects/{projectId} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectId", "project ID")
	if !ok {
		return
	}

	result, err := h.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateProject updates project metadata
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectId", "project ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.projectService.UpdateProject(c.Request.Context(), projectID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Activate starts a planned project
func (h *ProjectHandler) Activate(c *gin.Context) {
	h.transition(c, h.projectService.Activate)
}

// Hold pauses an active project
func (h *ProjectHandler) Hold(c *gin.Context) {
	h.transition(c, h.projectService.Hold)
}

// Resume returns a held project to active
func (h *ProjectHandler) Resume(c *gin.Context) {
	h.transition(c, h.projectService.Resume)
}

// Complete godoc
// @Summary      Complete a project
// @Description  Fails with INCOMPLETE_WORK when the project still has open tasks
// @Tags         projects
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      409 {object} response.ErrorResponse "Open tasks remain"
// @Router       /projects/{projectId}/complete [post]
func (h *ProjectHandler) Complete(c *gin.Context) {
	h.transition(c, h.projectService.Complete)
}

// Cancel cancels a project
func (h *ProjectHandler) Cancel(c *gin.Context) {
	projectID, ok := pathID(c, "projectId", "project ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.CancelProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.projectService.Cancel(c.Request.Context(), projectID, userID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

type projectTransition func(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error)

func (h *ProjectHandler) transition(c *gin.Context, op projectTransition) {
	projectID, ok := pathID(c, "projectId", "project ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), projectID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
