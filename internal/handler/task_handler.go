package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"change-ops-api/internal/dto"
	"change-ops-api/internal/response"
	"change-ops-api/internal/service"
)

// TaskHandler handles task endpoints
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask godoc
// @Summary      Add a task to a project
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.CreateTaskRequest true "Task payload"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      400 {object} response.ErrorResponse "Validation failed"
// @Router       /projects/{projectId}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	projectID, ok := pathID(c, "projectId", "project ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.taskService.CreateTask(c.Request.Context(), projectID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// CreateTasks adds a batch of tasks to a project
func (h *TaskHandler) CreateTasks(c *gin.Context) {
	projectID, ok := pathID(c, "projectId", "project ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.BulkCreateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.taskService.CreateTasks(c.Request.Context(), projectID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListProjectTasks godoc
// @Summary      List tasks of a project
// @Tags         tasks
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TaskResponse}
// @Router       /projects/{projectId}/tasks [get]
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	projectID, ok := pathID(c, "projectId", "project ID")
	if !ok {
		return
	}

	result, err := h.taskService.ListProjectTasks(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := pathID(c, "taskId", "task ID")
	if !ok {
		return
	}

	result, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// AssignDepartment routes a task to a department pool
func (h *TaskHandler) AssignDepartment(c *gin.Context) {
	taskID, ok := pathID(c, "taskId", "task ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.AssignDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Department ID is required")
		return
	}

	result, err := h.taskService.AssignToDepartment(c.Request.Context(), taskID, userID, req.DepartmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// AssignUser assigns a task directly to a user
func (h *TaskHandler) AssignUser(c *gin.Context) {
	taskID, ok := pathID(c, "taskId", "task ID")
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "User ID is required")
		return
	}

	result, err := h.taskService.AssignToUser(c.Request.Context(), taskID, actor, req.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Claim godoc
// @Summary      Claim a pooled task
// @Description  Takes an unassigned task out of its department pool. At most one concurrent claimer wins; everyone else receives NOT_CLAIMABLE.
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      409 {object} response.ErrorResponse "Task not claimable"
// @Router       /tasks/{taskId}/claim [post]
func (h *TaskHandler) Claim(c *gin.Context) {
	h.transition(c, h.taskService.Claim)
}

// Unassign clears the department and assignee, returning the task to the
// unassigned pool
func (h *TaskHandler) Unassign(c *gin.Context) {
	h.transition(c, h.taskService.Unassign)
}

// Start moves a task to in progress
func (h *TaskHandler) Start(c *gin.Context) {
	h.transition(c, h.taskService.Start)
}

// Block marks a task blocked with a reason
func (h *TaskHandler) Block(c *gin.Context) {
	taskID, ok := pathID(c, "taskId", "task ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.BlockTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Blocked reason is required")
		return
	}

	result, err := h.taskService.Block(c.Request.Context(), taskID, userID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Unblock returns a blocked task to in progress
func (h *TaskHandler) Unblock(c *gin.Context) {
	h.transition(c, h.taskService.Unblock)
}

// Complete finishes a task
func (h *TaskHandler) Complete(c *gin.Context) {
	taskID, ok := pathID(c, "taskId", "task ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.taskService.Complete(c.Request.Context(), taskID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Cancel cancels a task
func (h *TaskHandler) Cancel(c *gin.Context) {
	h.transition(c, h.taskService.Cancel)
}

type taskTransition func(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error)

func (h *TaskHandler) transition(c *gin.Context, op taskTransition) {
	taskID, ok := pathID(c, "taskId", "task ID")
	if !ok {
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), taskID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
