package repository

import (
	"context"

	"gorm.io/gorm"

	"change-ops-api/internal/domain"
)

// ActivityRepository defines the interface for the transition audit log
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	FindRecent(ctx context.Context, entityType domain.ActivityEntityType, limit int) ([]*domain.Activity, error)
}

// activityRepositoryImpl is the GORM implementation of ActivityRepository
type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create appends an activity row
func (r *activityRepositoryImpl) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// FindRecent finds the newest activity rows for an entity type, newest first
func (r *activityRepositoryImpl) FindRecent(ctx context.Context, entityType domain.ActivityEntityType, limit int) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	if err := r.db.WithContext(ctx).
		Where("entity_type = ?", entityType).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
