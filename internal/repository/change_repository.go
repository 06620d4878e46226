package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
)

// ChangeRepository defines the interface for change request data access
type ChangeRepository interface {
	Create(ctx context.Context, change *domain.ChangeRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error)
	FindAll(ctx context.Context, status *domain.ChangeStatus) ([]*domain.ChangeRequest, error)
	FindRecent(ctx context.Context, limit int) ([]*domain.ChangeRequest, error)
	FindDecidedSince(ctx context.Context, since time.Time) ([]*domain.ChangeRequest, error)
	FindExecuted(ctx context.Context) ([]*domain.ChangeRequest, error)
	Update(ctx context.Context, change *domain.ChangeRequest) error
	CountByStatus(ctx context.Context, status domain.ChangeStatus) (int64, error)
}

// changeRepositoryImpl is the GORM implementation of ChangeRepository
type changeRepositoryImpl struct {
	db *gorm.DB
}

// NewChangeRepository creates a new instance of ChangeRepository
func NewChangeRepository(db *gorm.DB) ChangeRepository {
	return &changeRepositoryImpl{db: db}
}

// Create creates a new change request
func (r *changeRepositoryImpl) Create(ctx context.Context, change *domain.ChangeRequest) error {
	return r.db.WithContext(ctx).Create(change).Error
}

// FindByID finds a change request by ID
func (r *changeRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error) {
	var change domain.ChangeRequest
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&change).Error; err != nil {
		return nil, err
	}
	return &change, nil
}

// FindAll finds all change requests, optionally filtered by status
func (r *changeRepositoryImpl) FindAll(ctx context.Context, status *domain.ChangeStatus) ([]*domain.ChangeRequest, error) {
	var changes []*domain.ChangeRequest
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// FindRecent finds the most recently updated change requests, newest first
func (r *changeRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*domain.ChangeRequest, error) {
	var changes []*domain.ChangeRequest
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// FindDecidedSince finds change requests whose execution reached a decision
// (completed or failed) on or after the given time
func (r *changeRepositoryImpl) FindDecidedSince(ctx context.Context, since time.Time) ([]*domain.ChangeRequest, error) {
	var changes []*domain.ChangeRequest
	if err := r.db.WithContext(ctx).
		Where("decision_date IS NOT NULL AND decision_date >= ?", since).
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// FindExecuted finds change requests with a terminal execution outcome
func (r *changeRepositoryImpl) FindExecuted(ctx context.Context) ([]*domain.ChangeRequest, error) {
	var changes []*domain.ChangeRequest
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []domain.ChangeStatus{
			domain.ChangeStatusCompleted,
			domain.ChangeStatusFailed,
			domain.ChangeStatusRolledBack,
		}).
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// Update saves a change request
func (r *changeRepositoryImpl) Update(ctx context.Context, change *domain.ChangeRequest) error {
	return r.db.WithContext(ctx).Save(change).Error
}

// CountByStatus counts change requests in the given status
func (r *changeRepositoryImpl) CountByStatus(ctx context.Context, status domain.ChangeStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ChangeRequest{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
