package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/metrics"
	"change-ops-api/internal/repository"
	"change-ops-api/internal/response"
)

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(ctx context.Context, projectID, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	CreateTasks(ctx context.Context, projectID, userID uuid.UUID, req *dto.BulkCreateTasksRequest) ([]*dto.TaskResponse, error)
	GetTask(ctx context.Context, taskID uuid.UUID) (*dto.TaskResponse, error)
	ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]*dto.TaskResponse, error)
	AssignToDepartment(ctx context.Context, taskID, actorID uuid.UUID, departmentID uuid.UUID) (*dto.TaskResponse, error)
	AssignToUser(ctx context.Context, taskID, actorID uuid.UUID, userID uuid.UUID) (*dto.TaskResponse, error)
	Claim(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error)
	Unassign(ctx context.Context, taskID, actorID uuid.UUID) (*dto.TaskResponse, error)
	Start(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error)
	Block(ctx context.Context, taskID, userID uuid.UUID, reason string) (*dto.TaskResponse, error)
	Unblock(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error)
	Complete(ctx context.Context, taskID, userID uuid.UUID, req *dto.CompleteTaskRequest) (*dto.TaskResponse, error)
	Cancel(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error)
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	taskRepo       repository.TaskRepository
	projectRepo    repository.ProjectRepository
	departmentRepo repository.DepartmentRepository
	activity       *activityRecorder
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, departmentRepo repository.DepartmentRepository, activityRepo repository.ActivityRepository, m *metrics.Metrics, logger *zap.Logger) TaskService {
	return &taskServiceImpl{
		taskRepo:       taskRepo,
		projectRepo:    projectRepo,
		departmentRepo: departmentRepo,
		activity:       newActivityRecorder(activityRepo, logger),
		metrics:        m,
		logger:         logger,
	}
}

// CreateTask adds a single task to a project
func (s *taskServiceImpl) CreateTask(ctx context.Context, projectID, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkProjectOpen(ctx, projectID); err != nil {
		return nil, err
	}

	task := s.buildTask(projectID, userID, req)
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, userID, "created", nil)
	return dto.ToTaskResponse(task), nil
}

// CreateTasks adds a batch of tasks to a project in one insert
func (s *taskServiceImpl) CreateTasks(ctx context.Context, projectID, userID uuid.UUID, req *dto.BulkCreateTasksRequest) ([]*dto.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkProjectOpen(ctx, projectID); err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(req.Tasks))
	for i := range req.Tasks {
		tasks = append(tasks, s.buildTask(projectID, userID, &req.Tasks[i]))
	}

	if err := s.taskRepo.CreateBatch(ctx, tasks); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create tasks", err.Error())
	}

	for _, t := range tasks {
		s.activity.record(ctx, domain.ActivityEntityTask, t.ID, userID, "created", nil)
	}
	return dto.ToTaskResponses(tasks), nil
}

// GetTask retrieves a task by ID
func (s *taskServiceImpl) GetTask(ctx context.Context, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return dto.ToTaskResponse(task), nil
}

// ListProjectTasks retrieves all tasks belonging to a project
func (s *taskServiceImpl) ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]*dto.TaskResponse, error) {
	tasks, err := s.taskRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tasks", err.Error())
	}
	return dto.ToTaskResponses(tasks), nil
}

// AssignToDepartment routes a task to a department pool. Any existing user
// assignment is cleared so the task becomes claimable again.
func (s *taskServiceImpl) AssignToDepartment(ctx context.Context, taskID, actorID uuid.UUID, departmentID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status.IsTerminal() {
		return nil, response.NewAppError(response.ErrCodeIllegalTransition,
			"Cannot assign a task in terminal state "+string(task.Status), "")
	}

	department, err := s.departmentRepo.FindByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Department not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch department", err.Error())
	}
	if !department.IsActive {
		return nil, response.NewValidationError("Department is not active", department.Name)
	}

	task.AssignedToDepartmentID = &department.ID
	task.AssignedToUserID = nil

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assign task", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, actorID, "routed_to_department",
		map[string]string{"department_id": department.ID.String()})
	return dto.ToTaskResponse(task), nil
}

// AssignToUser assigns a task directly to a user, bypassing the pool
func (s *taskServiceImpl) AssignToUser(ctx context.Context, taskID, actorID uuid.UUID, userID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status.IsTerminal() {
		return nil, response.NewAppError(response.ErrCodeIllegalTransition,
			"Cannot assign a task in terminal state "+string(task.Status), "")
	}

	task.AssignedToUserID = &userID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assign task", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, actorID, "assigned",
		map[string]string{"user_id": userID.String()})
	return dto.ToTaskResponse(task), nil
}

// Claim lets a user take an unassigned task out of a department pool. The
// claim is a conditional update so concurrent claimers get at most one winner;
// every loser receives NOT_CLAIMABLE.
func (s *taskServiceImpl) Claim(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status.IsTerminal() {
		return nil, response.NewAppError(response.ErrCodeNotClaimable,
			"Task is in terminal state "+string(task.Status), "")
	}
	if task.AssignedToDepartmentID == nil {
		return nil, response.NewAppError(response.ErrCodeNotClaimable,
			"Task is not in a department pool", "")
	}
	if task.AssignedToUserID != nil {
		return nil, response.NewAppError(response.ErrCodeNotClaimable,
			"Task is already assigned", "")
	}

	claimed, err := s.taskRepo.Claim(ctx, taskID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to claim task", err.Error())
	}
	if !claimed {
		return nil, response.NewAppError(response.ErrCodeNotClaimable,
			"Task was claimed by another user", "")
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskClaimed()
	}
	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, userID, "claimed", nil)

	task.AssignedToUserID = &userID
	return dto.ToTaskResponse(task), nil
}

// Unassign clears both the department and the assignee, returning the task
// to the unassigned pool. Legal from any status.
func (s *taskServiceImpl) Unassign(ctx context.Context, taskID, actorID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.AssignedToDepartmentID = nil
	task.AssignedToUserID = nil
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to unassign task", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, actorID, "unassigned", nil)
	return dto.ToTaskResponse(task), nil
}

// Start moves a task to IN_PROGRESS. The task must have an assignee.
func (s *taskServiceImpl) Start(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedToUserID == nil {
		return nil, response.NewAppError(response.ErrCodeUnassigned,
			"Task has no assignee", "")
	}
	if !task.Status.CanTransitionTo(domain.TaskStatusInProgress) {
		return nil, response.NewIllegalTransitionError(string(task.Status), string(domain.TaskStatusInProgress))
	}

	task.Status = domain.TaskStatusInProgress
	if task.StartedDate == nil {
		now := time.Now().UTC()
		task.StartedDate = &now
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to start task", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, userID, "started", nil)
	return dto.ToTaskResponse(task), nil
}

// Block marks a task as blocked with a mandatory reason
func (s *taskServiceImpl) Block(ctx context.Context, taskID, userID uuid.UUID, reason string) (*dto.TaskResponse, error) {
	if reason == "" {
		return nil, response.NewValidationError("Blocked reason is required", "")
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(domain.TaskStatusBlocked) {
		return nil, response.NewIllegalTransitionError(string(task.Status), string(domain.TaskStatusBlocked))
	}

	now := time.Now().UTC()
	task.Status = domain.TaskStatusBlocked
	task.BlockedReason = reason
	task.BlockedDate = &now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to block task", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, userID, "blocked",
		map[string]string{"reason": reason})
	return dto.ToTaskResponse(task), nil
}

// Unblock returns a blocked task to IN_PROGRESS
func (s *taskServiceImpl) Unblock(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.TaskStatusBlocked {
		return nil, response.NewIllegalTransitionError(string(task.Status), string(domain.TaskStatusInProgress))
	}

	task.Status = domain.TaskStatusInProgress
	task.BlockedReason = ""
	task.BlockedDate = nil

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to unblock task", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, userID, "unblocked", nil)
	return dto.ToTaskResponse(task), nil
}

// Complete finishes a task and records the hours actually spent
func (s *taskServiceImpl) Complete(ctx context.Context, taskID, userID uuid.UUID, req *dto.CompleteTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(domain.TaskStatusCompleted) {
		return nil, response.NewIllegalTransitionError(string(task.Status), string(domain.TaskStatusCompleted))
	}

	now := time.Now().UTC()
	task.Status = domain.TaskStatusCompleted
	task.CompletedDate = &now
	if req != nil && req.ActualHours != nil {
		if *req.ActualHours < 0 {
			return nil, response.NewValidationError("actualHours must not be negative", "")
		}
		task.ActualHours = *req.ActualHours
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to complete task", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCompleted()
	}
	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, userID, "completed", nil)
	return dto.ToTaskResponse(task), nil
}

// Cancel cancels a task from any non-terminal state
func (s *taskServiceImpl) Cancel(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(domain.TaskStatusCancelled) {
		return nil, response.NewIllegalTransitionError(string(task.Status), string(domain.TaskStatusCancelled))
	}

	task.Status = domain.TaskStatusCancelled
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to cancel task", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityTask, task.ID, userID, "cancelled", nil)
	return dto.ToTaskResponse(task), nil
}

func (s *taskServiceImpl) buildTask(projectID, userID uuid.UUID, req *dto.CreateTaskRequest) *domain.Task {
	return &domain.Task{
		ProjectID:       projectID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          domain.TaskStatusNotStarted,
		Priority:        req.Priority,
		CreatedByUserID: userID,
		EstimatedHours:  req.EstimatedHours,
		DueDate:         req.DueDate,
	}
}

// checkProjectOpen verifies the project exists and can still receive tasks
func (s *taskServiceImpl) checkProjectOpen(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	if project.Status.IsTerminal() {
		return response.NewAppError(response.ErrCodeIllegalTransition,
			"Cannot add tasks to a project in terminal state "+string(project.Status), "")
	}
	return nil
}

func (s *taskServiceImpl) findTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Task not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch task", err.Error())
	}
	return task, nil
}
