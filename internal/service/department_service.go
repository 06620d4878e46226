package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/repository"
	"change-ops-api/internal/response"
)

// DepartmentService defines the interface for department business logic
type DepartmentService interface {
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetDepartment(ctx context.Context, departmentID uuid.UUID) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context, activeOnly bool) ([]*dto.DepartmentResponse, error)
	Deactivate(ctx context.Context, departmentID uuid.UUID) (*dto.DepartmentResponse, error)
}

// departmentServiceImpl is the implementation of DepartmentService
type departmentServiceImpl struct {
	departmentRepo repository.DepartmentRepository
	logger         *zap.Logger
}

// NewDepartmentService creates a new instance of DepartmentService
func NewDepartmentService(departmentRepo repository.DepartmentRepository, logger *zap.Logger) DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// CreateDepartment creates an active department
func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &domain.Department{
		Name:                    req.Name,
		Description:             req.Description,
		DepartmentManagerUserID: req.DepartmentManagerUserID,
		IsActive:                true,
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Department name already exists", req.Name)
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create department", err.Error())
	}

	return dto.ToDepartmentResponse(department), nil
}

// GetDepartment retrieves a department by ID
func (s *departmentServiceImpl) GetDepartment(ctx context.Context, departmentID uuid.UUID) (*dto.DepartmentResponse, error) {
	department, err := s.findDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return dto.ToDepartmentResponse(department), nil
}

// ListDepartments retrieves departments, optionally restricted to active ones
func (s *departmentServiceImpl) ListDepartments(ctx context.Context, activeOnly bool) ([]*dto.DepartmentResponse, error) {
	departments, err := s.departmentRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch departments", err.Error())
	}

	responses := make([]*dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		if d == nil {
			continue
		}
		responses = append(responses, dto.ToDepartmentResponse(d))
	}
	return responses, nil
}

// Deactivate retires a department. Existing pooled tasks keep their routing;
// new routing to this department is rejected.
func (s *departmentServiceImpl) Deactivate(ctx context.Context, departmentID uuid.UUID) (*dto.DepartmentResponse, error) {
	department, err := s.findDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	department.IsActive = false
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to deactivate department", err.Error())
	}

	return dto.ToDepartmentResponse(department), nil
}

func (s *departmentServiceImpl) findDepartment(ctx context.Context, departmentID uuid.UUID) (*domain.Department, error) {
	department, err := s.departmentRepo.FindByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Department not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch department", err.Error())
	}
	return department, nil
}
