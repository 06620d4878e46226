package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
)

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	Create(ctx context.Context, department *domain.Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*domain.Department, error)
	Update(ctx context.Context, department *domain.Department) error
}

// departmentRepositoryImpl is the GORM implementation of DepartmentRepository
type departmentRepositoryImpl struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new instance of DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create creates a new department
func (r *departmentRepositoryImpl) Create(ctx context.Context, department *domain.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

// FindByID finds a department by ID
func (r *departmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	var department domain.Department
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// FindAll finds all departments, optionally restricted to active ones
func (r *departmentRepositoryImpl) FindAll(ctx context.Context, activeOnly bool) ([]*domain.Department, error) {
	var departments []*domain.Department
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// Update saves a department
func (r *departmentRepositoryImpl) Update(ctx context.Context, department *domain.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}
