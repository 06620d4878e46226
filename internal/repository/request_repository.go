package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
)

// ErrNotConverted is returned by Convert when the conditional status update
// matched no row, meaning the request was not in APPROVED state at commit
// time (typically because a concurrent convert already won).
var ErrNotConverted = errors.New("request is not in approved state")

// RequestRepository defines the interface for project request data access
type RequestRepository interface {
	Create(ctx context.Context, request *domain.ProjectRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ProjectRequest, error)
	FindAll(ctx context.Context, status *domain.RequestStatus) ([]*domain.ProjectRequest, error)
	FindRecent(ctx context.Context, limit int) ([]*domain.ProjectRequest, error)
	Update(ctx context.Context, request *domain.ProjectRequest) error
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error)
	Convert(ctx context.Context, requestID uuid.UUID, project *domain.Project) error
}

// requestRepositoryImpl is the GORM implementation of RequestRepository
type requestRepositoryImpl struct {
	db *gorm.DB
}

// NewRequestRepository creates a new instance of RequestRepository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepositoryImpl{db: db}
}

// Create creates a new project request
func (r *requestRepositoryImpl) Create(ctx context.Context, request *domain.ProjectRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// FindByID finds a project request by ID
func (r *requestRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProjectRequest, error) {
	var request domain.ProjectRequest
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindAll finds all project requests, optionally filtered by status
func (r *requestRepositoryImpl) FindAll(ctx context.Context, status *domain.RequestStatus) ([]*domain.ProjectRequest, error) {
	var requests []*domain.ProjectRequest
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindRecent finds the most recently updated requests, newest first
func (r *requestRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*domain.ProjectRequest, error) {
	var requests []*domain.ProjectRequest
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Update saves a project request
func (r *requestRepositoryImpl) Update(ctx context.Context, request *domain.ProjectRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// CountByStatus counts requests in the given status
func (r *requestRepositoryImpl) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ProjectRequest{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Convert atomically converts an approved request and creates its project.
// The status update is conditional on the row still being APPROVED, so two
// racing converts cannot both create a project; the loser gets
// ErrNotConverted. Either the whole transaction commits or none of it does.
func (r *requestRepositoryImpl) Convert(ctx context.Context, requestID uuid.UUID, project *domain.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.ProjectRequest{}).
			Where("id = ? AND status = ?", requestID, domain.RequestStatusApproved).
			Update("status", domain.RequestStatusConverted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotConverted
		}

		if err := tx.Create(project).Error; err != nil {
			return err
		}

		return tx.Model(&domain.ProjectRequest{}).
			Where("id = ?", requestID).
			Update("converted_to_project_id", project.ID).Error
	})
}
