package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/response"
)

func newProjectService(projectRepo *MockProjectRepository, taskRepo *MockTaskRepository) ProjectService {
	logger, _ := zap.NewDevelopment()
	if taskRepo == nil {
		taskRepo = &MockTaskRepository{}
	}
	return NewProjectService(projectRepo, taskRepo, &MockActivityRepository{}, nil, logger)
}

func projectInStatus(status domain.ProjectStatus) *MockProjectRepository {
	return &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
			return &domain.Project{
				BaseModel: domain.BaseModel{ID: id},
				Name:      "Cluster migration",
				Status:    status,
				Priority:  domain.PriorityMedium,
			}, nil
		},
	}
}

func TestProjectService_Activate(t *testing.T) {
	service := newProjectService(projectInStatus(domain.ProjectStatusPlanning), nil)

	resp, err := service.Activate(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if resp.Status != domain.ProjectStatusActive {
		t.Errorf("Expected status ACTIVE, got %s", resp.Status)
	}
	if resp.StartDate == nil {
		t.Error("Expected start date to be stamped on first activation")
	}
}

func TestProjectService_Resume_KeepsStartDate(t *testing.T) {
	started := domain.Project{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Status:    domain.ProjectStatusOnHold,
		Priority:  domain.PriorityMedium,
	}
	start := started.CreatedAt
	started.StartDate = &start

	mockRepo := &MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
			copied := started
			return &copied, nil
		},
	}

	service := newProjectService(mockRepo, nil)
	resp, err := service.Resume(context.Background(), started.ID, uuid.New())
	if err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if resp.Status != domain.ProjectStatusActive {
		t.Errorf("Expected status ACTIVE, got %s", resp.Status)
	}
	if resp.StartDate == nil || !resp.StartDate.Equal(start) {
		t.Error("Expected the original start date to survive a resume")
	}
}

func TestProjectService_Resume_OnlyFromHold(t *testing.T) {
	service := newProjectService(projectInStatus(domain.ProjectStatusActive), nil)
	_, err := service.Resume(context.Background(), uuid.New(), uuid.New())
	if code := appErrorCode(t, err); code != response.ErrCodeIllegalTransition {
		t.Errorf("Expected %s, got %s", response.ErrCodeIllegalTransition, code)
	}
}

func TestProjectService_Hold(t *testing.T) {
	service := newProjectService(projectInStatus(domain.ProjectStatusActive), nil)
	resp, err := service.Hold(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Hold failed: %v", err)
	}
	if resp.Status != domain.ProjectStatusOnHold {
		t.Errorf("Expected status ON_HOLD, got %s", resp.Status)
	}
}

func TestProjectService_Complete(t *testing.T) {
	taskRepo := &MockTaskRepository{
		FindOpenByProjectIDFunc: func(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
			return nil, nil
		},
	}

	service := newProjectService(projectInStatus(domain.ProjectStatusActive), taskRepo)
	resp, err := service.Complete(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Status != domain.ProjectStatusCompleted {
		t.Errorf("Expected status COMPLETED, got %s", resp.Status)
	}
	if resp.ActualCompletionDate == nil {
		t.Error("Expected actual completion date to be stamped")
	}
}

func TestProjectService_Complete_OpenTasks(t *testing.T) {
	openTaskID := uuid.New()
	taskRepo := &MockTaskRepository{
		FindOpenByProjectIDFunc: func(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
			return []*domain.Task{
				{BaseModel: domain.BaseModel{ID: openTaskID}, Status: domain.TaskStatusInProgress},
			}, nil
		},
	}

	service := newProjectService(projectInStatus(domain.ProjectStatusActive), taskRepo)
	_, err := service.Complete(context.Background(), uuid.New(), uuid.New())

	appErr, ok := err.(*response.AppError)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != response.ErrCodeIncompleteWork {
		t.Errorf("Expected %s, got %s", response.ErrCodeIncompleteWork, appErr.Code)
	}
	if !strings.Contains(appErr.Details, openTaskID.String()) {
		t.Errorf("Expected open task id in details, got %q", appErr.Details)
	}
}

func TestProjectService_Cancel(t *testing.T) {
	service := newProjectService(projectInStatus(domain.ProjectStatusPlanning), nil)
	resp, err := service.Cancel(context.Background(), uuid.New(), uuid.New(), "superseded")
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if resp.Status != domain.ProjectStatusCancelled {
		t.Errorf("Expected status CANCELLED, got %s", resp.Status)
	}
}

func TestProjectService_Update_RejectsTerminal(t *testing.T) {
	for _, status := range []domain.ProjectStatus{
		domain.ProjectStatusCompleted,
		domain.ProjectStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			service := newProjectService(projectInStatus(status), nil)
			name := "Renamed project"
			_, err := service.UpdateProject(context.Background(), uuid.New(), uuid.New(), &dto.UpdateProjectRequest{Name: &name})
			if code := appErrorCode(t, err); code != response.ErrCodeIllegalTransition {
				t.Errorf("Expected %s, got %s", response.ErrCodeIllegalTransition, code)
			}
		})
	}
}

func TestProjectService_Update(t *testing.T) {
	service := newProjectService(projectInStatus(domain.ProjectStatusActive), nil)

	name := "Renamed project"
	priority := domain.PriorityUrgent
	resp, err := service.UpdateProject(context.Background(), uuid.New(), uuid.New(), &dto.UpdateProjectRequest{
		Name:     &name,
		Priority: &priority,
	})
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if resp.Name != name {
		t.Errorf("Expected name %q, got %q", name, resp.Name)
	}
	if resp.Priority != domain.PriorityUrgent {
		t.Errorf("Expected priority URGENT, got %s", resp.Priority)
	}
}
