package service

import (
	"context"
	"errors"
	"strings"
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

// ProjectService defines the interface for project business logic
type ProjectService interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (*dto.ProjectResponse, error)
	ListProjects(ctx context.Context, status *domain.ProjectStatus) ([]*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Activate(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error)
	Hold(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error)
	Resume(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error)
	Complete(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error)
	Cancel(ctx context.Context, projectID, userID uuid.UUID, reason string) (*dto.ProjectResponse, error)
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	activity    *activityRecorder
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, activityRepo repository.ActivityRepository, m *metrics.Metrics, logger *zap.Logger) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		activity:    newActivityRecorder(activityRepo, logger),
		metrics:     m,
		logger:      logger,
	}
}

// GetProject retrieves a project by ID
func (s *projectServiceImpl) GetProject(ctx context.Context, projectID uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectResponse(project), nil
}

// ListProjects retrieves all projects, optionally filtered by status
func (s *projectServiceImpl) ListProjects(ctx context.Context, status *domain.ProjectStatus) ([]*dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindAll(ctx, status)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch projects", err.Error())
	}

	responses := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		if p == nil {
			continue
		}
		responses = append(responses, dto.ToProjectResponse(p))
	}
	return responses, nil
}

// UpdateProject updates project metadata fields if provided
func (s *projectServiceImpl) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.Status.IsTerminal() {
		return nil, response.NewAppError(response.ErrCodeIllegalTransition,
			"Cannot update a project in terminal state "+string(project.Status), "")
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Priority != nil {
		project.Priority = *req.Priority
	}
	if req.ProjectManagerUserID != nil {
		project.ProjectManagerUserID = req.ProjectManagerUserID
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.TargetCompletionDate != nil {
		project.TargetCompletionDate = req.TargetCompletionDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update project", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityProject, project.ID, userID, "updated", nil)
	return dto.ToProjectResponse(project), nil
}

// Activate moves a project from PLANNING (or ON_HOLD via Resume) to ACTIVE
// and stamps the start date on first activation
func (s *projectServiceImpl) Activate(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error) {
	return s.transition(ctx, projectID, userID, domain.ProjectStatusActive, "activated")
}

// Hold pauses an active project
func (s *projectServiceImpl) Hold(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error) {
	return s.transition(ctx, projectID, userID, domain.ProjectStatusOnHold, "put_on_hold")
}

// Resume returns a held project to ACTIVE
func (s *projectServiceImpl) Resume(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectStatusOnHold {
		return nil, response.NewIllegalTransitionError(string(project.Status), string(domain.ProjectStatusActive))
	}
	return s.transition(ctx, projectID, userID, domain.ProjectStatusActive, "resumed")
}

// Complete finishes a project. Every owned task must be in a terminal state;
// otherwise the call fails with INCOMPLETE_WORK listing the blocking task ids.
func (s *projectServiceImpl) Complete(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.Status.CanTransitionTo(domain.ProjectStatusCompleted) {
		return nil, response.NewIllegalTransitionError(string(project.Status), string(domain.ProjectStatusCompleted))
	}

	openTasks, err := s.taskRepo.FindOpenByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check open tasks", err.Error())
	}
	if len(openTasks) > 0 {
		ids := make([]string, 0, len(openTasks))
		for _, t := range openTasks {
			ids = append(ids, t.ID.String())
		}
		return nil, response.NewAppError(response.ErrCodeIncompleteWork,
			"Project has open tasks", strings.Join(ids, ", "))
	}

	now := time.Now().UTC()
	project.Status = domain.ProjectStatusCompleted
	project.ActualCompletionDate = &now

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to complete project", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementProjectCompleted()
	}
	s.activity.record(ctx, domain.ActivityEntityProject, project.ID, userID, "completed", nil)
	return dto.ToProjectResponse(project), nil
}

// Cancel cancels a project that has not completed
func (s *projectServiceImpl) Cancel(ctx context.Context, projectID, userID uuid.UUID, reason string) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.Status.CanTransitionTo(domain.ProjectStatusCancelled) {
		return nil, response.NewIllegalTransitionError(string(project.Status), string(domain.ProjectStatusCancelled))
	}

	project.Status = domain.ProjectStatusCancelled
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to cancel project", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityProject, project.ID, userID, "cancelled",
		map[string]string{"reason": reason})
	return dto.ToProjectResponse(project), nil
}

// transition applies a simple status transition with no extra preconditions
func (s *projectServiceImpl) transition(ctx context.Context, projectID, userID uuid.UUID, target domain.ProjectStatus, action string) (*dto.ProjectResponse, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.Status.CanTransitionTo(target) {
		return nil, response.NewIllegalTransitionError(string(project.Status), string(target))
	}

	if target == domain.ProjectStatusActive && project.StartDate == nil {
		now := time.Now().UTC()
		project.StartDate = &now
	}
	project.Status = target

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update project status", err.Error())
	}

	s.activity.record(ctx, domain.ActivityEntityProject, project.ID, userID, action, nil)
	return dto.ToProjectResponse(project), nil
}

// findProject fetches a project and maps the not-found case
func (s *projectServiceImpl) findProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	return project, nil
}
