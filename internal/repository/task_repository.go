package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	CreateBatch(ctx context.Context, tasks []*domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	FindOpenByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	FindRecent(ctx context.Context, limit int) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Claim(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
	CountUnassigned(ctx context.Context) (int64, error)
	CountPooled(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
}

// taskRepositoryImpl is the GORM implementation of TaskRepository
type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create creates a new task
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// CreateBatch creates multiple tasks in a single statement
func (r *taskRepositoryImpl) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

// FindByID finds a task by ID
func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByProjectID finds all tasks owned by a project
func (r *taskRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindOpenByProjectID finds the project's tasks that are not yet in a
// terminal state
func (r *taskRepositoryImpl) FindOpenByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND status NOT IN ?", projectID,
			[]domain.TaskStatus{domain.TaskStatusCompleted, domain.TaskStatusCancelled}).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindRecent finds the most recently updated tasks, newest first
func (r *taskRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves a task
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Claim performs the conditional claim update. The task must still be in the
// department pool (department set, no individual assignee) at commit time;
// a last-write-wins update would silently overwrite a racing claimer, so
// the WHERE clause carries the pool condition and the caller checks the
// returned flag.
func (r *taskRepositoryImpl) Claim(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND assigned_to_department_id IS NOT NULL AND assigned_to_user_id IS NULL", taskID).
		Update("assigned_to_user_id", userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus counts tasks in the given status
func (r *taskRepositoryImpl) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnassigned counts open tasks with no department and no assignee
func (r *taskRepositoryImpl) CountUnassigned(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("assigned_to_department_id IS NULL AND assigned_to_user_id IS NULL AND status NOT IN ?",
			[]domain.TaskStatus{domain.TaskStatusCompleted, domain.TaskStatusCancelled}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPooled counts tasks sitting in a department pool awaiting claim
func (r *taskRepositoryImpl) CountPooled(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("assigned_to_department_id IS NOT NULL AND assigned_to_user_id IS NULL AND status NOT IN ?",
			[]domain.TaskStatus{domain.TaskStatusCompleted, domain.TaskStatusCancelled}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOverdue counts tasks past their due date that are not terminal
func (r *taskRepositoryImpl) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("due_date IS NOT NULL AND due_date < ? AND status NOT IN ?", now,
			[]domain.TaskStatus{domain.TaskStatusCompleted, domain.TaskStatusCancelled}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
