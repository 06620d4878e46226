package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
)

// MockRequestRepository is a mock implementation of RequestRepository
type MockRequestRepository struct {
	CreateFunc        func(ctx context.Context, request *domain.ProjectRequest) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.ProjectRequest, error)
	FindAllFunc       func(ctx context.Context, status *domain.RequestStatus) ([]*domain.ProjectRequest, error)
	FindRecentFunc    func(ctx context.Context, limit int) ([]*domain.ProjectRequest, error)
	UpdateFunc        func(ctx context.Context, request *domain.ProjectRequest) error
	CountByStatusFunc func(ctx context.Context, status domain.RequestStatus) (int64, error)
	ConvertFunc       func(ctx context.Context, requestID uuid.UUID, project *domain.Project) error
}

func (m *MockRequestRepository) Create(ctx context.Context, request *domain.ProjectRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, request)
	}
	return nil
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProjectRequest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRequestRepository) FindAll(ctx context.Context, status *domain.RequestStatus) ([]*domain.ProjectRequest, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, status)
	}
	return nil, nil
}

func (m *MockRequestRepository) FindRecent(ctx context.Context, limit int) ([]*domain.ProjectRequest, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockRequestRepository) Update(ctx context.Context, request *domain.ProjectRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, request)
	}
	return nil
}

func (m *MockRequestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *MockRequestRepository) Convert(ctx context.Context, requestID uuid.UUID, project *domain.Project) error {
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, requestID, project)
	}
	return nil
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	CreateFunc        func(ctx context.Context, project *domain.Project) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindAllFunc       func(ctx context.Context, status *domain.ProjectStatus) ([]*domain.Project, error)
	FindRecentFunc    func(ctx context.Context, limit int) ([]*domain.Project, error)
	UpdateFunc        func(ctx context.Context, project *domain.Project) error
	CountByStatusFunc func(ctx context.Context, status domain.ProjectStatus) (int64, error)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindAll(ctx context.Context, status *domain.ProjectStatus) ([]*domain.Project, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, status)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Project, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc              func(ctx context.Context, task *domain.Task) error
	CreateBatchFunc         func(ctx context.Context, tasks []*domain.Task) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByProjectIDFunc     func(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	FindOpenByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	FindRecentFunc          func(ctx context.Context, limit int) ([]*domain.Task, error)
	UpdateFunc              func(ctx context.Context, task *domain.Task) error
	ClaimFunc               func(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
	CountByStatusFunc       func(ctx context.Context, status domain.TaskStatus) (int64, error)
	CountUnassignedFunc     func(ctx context.Context) (int64, error)
	CountPooledFunc         func(ctx context.Context) (int64, error)
	CountOverdueFunc        func(ctx context.Context, now time.Time) (int64, error)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tasks)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindOpenByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	if m.FindOpenByProjectIDFunc != nil {
		return m.FindOpenByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Task, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) Claim(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, taskID, userID)
	}
	return true, nil
}

func (m *MockTaskRepository) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *MockTaskRepository) CountUnassigned(ctx context.Context) (int64, error) {
	if m.CountUnassignedFunc != nil {
		return m.CountUnassignedFunc(ctx)
	}
	return 0, nil
}

func (m *MockTaskRepository) CountPooled(ctx context.Context) (int64, error) {
	if m.CountPooledFunc != nil {
		return m.CountPooledFunc(ctx)
	}
	return 0, nil
}

func (m *MockTaskRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.CountOverdueFunc != nil {
		return m.CountOverdueFunc(ctx, now)
	}
	return 0, nil
}

// MockDepartmentRepository is a mock implementation of DepartmentRepository
type MockDepartmentRepository struct {
	CreateFunc   func(ctx context.Context, department *domain.Department) error
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	FindAllFunc  func(ctx context.Context, activeOnly bool) ([]*domain.Department, error)
	UpdateFunc   func(ctx context.Context, department *domain.Department) error
}

func (m *MockDepartmentRepository) Create(ctx context.Context, department *domain.Department) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, department)
	}
	return nil
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDepartmentRepository) FindAll(ctx context.Context, activeOnly bool) ([]*domain.Department, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *MockDepartmentRepository) Update(ctx context.Context, department *domain.Department) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, department)
	}
	return nil
}

// MockChangeRepository is a mock implementation of ChangeRepository
type MockChangeRepository struct {
	CreateFunc           func(ctx context.Context, change *domain.ChangeRequest) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error)
	FindAllFunc          func(ctx context.Context, status *domain.ChangeStatus) ([]*domain.ChangeRequest, error)
	FindRecentFunc       func(ctx context.Context, limit int) ([]*domain.ChangeRequest, error)
	FindDecidedSinceFunc func(ctx context.Context, since time.Time) ([]*domain.ChangeRequest, error)
	FindExecutedFunc     func(ctx context.Context) ([]*domain.ChangeRequest, error)
	UpdateFunc           func(ctx context.Context, change *domain.ChangeRequest) error
	CountByStatusFunc    func(ctx context.Context, status domain.ChangeStatus) (int64, error)
}

func (m *MockChangeRepository) Create(ctx context.Context, change *domain.ChangeRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, change)
	}
	return nil
}

func (m *MockChangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockChangeRepository) FindAll(ctx context.Context, status *domain.ChangeStatus) ([]*domain.ChangeRequest, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, status)
	}
	return nil, nil
}

func (m *MockChangeRepository) FindRecent(ctx context.Context, limit int) ([]*domain.ChangeRequest, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockChangeRepository) FindDecidedSince(ctx context.Context, since time.Time) ([]*domain.ChangeRequest, error) {
	if m.FindDecidedSinceFunc != nil {
		return m.FindDecidedSinceFunc(ctx, since)
	}
	return nil, nil
}

func (m *MockChangeRepository) FindExecuted(ctx context.Context) ([]*domain.ChangeRequest, error) {
	if m.FindExecutedFunc != nil {
		return m.FindExecutedFunc(ctx)
	}
	return nil, nil
}

func (m *MockChangeRepository) Update(ctx context.Context, change *domain.ChangeRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, change)
	}
	return nil
}

func (m *MockChangeRepository) CountByStatus(ctx context.Context, status domain.ChangeStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	CreateFunc     func(ctx context.Context, activity *domain.Activity) error
	FindRecentFunc func(ctx context.Context, entityType domain.ActivityEntityType, limit int) ([]*domain.Activity, error)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, activity)
	}
	return nil
}

func (m *MockActivityRepository) FindRecent(ctx context.Context, entityType domain.ActivityEntityType, limit int) ([]*domain.Activity, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, entityType, limit)
	}
	return nil, nil
}

// MockStatsCache is a mock implementation of StatsCache
type MockStatsCache struct {
	GetDashboardFunc func(ctx context.Context) (*dto.DashboardStats, error)
	SetDashboardFunc func(ctx context.Context, stats *dto.DashboardStats) error
}

func (m *MockStatsCache) GetDashboard(ctx context.Context) (*dto.DashboardStats, error) {
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatsCache) SetDashboard(ctx context.Context, stats *dto.DashboardStats) error {
	if m.SetDashboardFunc != nil {
		return m.SetDashboardFunc(ctx, stats)
	}
	return nil
}
