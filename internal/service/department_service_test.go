package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"change-ops-api/internal/domain"
	"change-ops-api/internal/dto"
	"change-ops-api/internal/response"
)

func newDepartmentService(departmentRepo *MockDepartmentRepository) DepartmentService {
	logger, _ := zap.NewDevelopment()
	return NewDepartmentService(departmentRepo, logger)
}

func TestDepartmentService_CreateDepartment(t *testing.T) {
	mockRepo := &MockDepartmentRepository{
		CreateFunc: func(ctx context.Context, department *domain.Department) error {
			department.ID = uuid.New()
			return nil
		},
	}

	service := newDepartmentService(mockRepo)
	resp, err := service.CreateDepartment(context.Background(), &dto.CreateDepartmentRequest{
		Name:        "Infrastructure",
		Description: "Owns compute, network and storage platforms",
	})
	if err != nil {
		t.Fatalf("CreateDepartment failed: %v", err)
	}
	if !resp.IsActive {
		t.Error("Expected a new department to be active")
	}
	if resp.Name != "Infrastructure" {
		t.Errorf("Expected name kept, got %q", resp.Name)
	}
}

func TestDepartmentService_CreateDepartment_DuplicateName(t *testing.T) {
	mockRepo := &MockDepartmentRepository{
		CreateFunc: func(ctx context.Context, department *domain.Department) error {
			return gorm.ErrDuplicatedKey
		},
	}

	service := newDepartmentService(mockRepo)
	_, err := service.CreateDepartment(context.Background(), &dto.CreateDepartmentRequest{Name: "Infrastructure"})
	if code := appErrorCode(t, err); code != response.ErrCodeAlreadyExists {
		t.Errorf("Expected %s, got %s", response.ErrCodeAlreadyExists, code)
	}
}

func TestDepartmentService_Deactivate(t *testing.T) {
	mockRepo := &MockDepartmentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
			return &domain.Department{BaseModel: domain.BaseModel{ID: id}, Name: "Legacy", IsActive: true}, nil
		},
	}

	service := newDepartmentService(mockRepo)
	resp, err := service.Deactivate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if resp.IsActive {
		t.Error("Expected department to be inactive")
	}
}

func TestDepartmentService_ListDepartments_ActiveOnly(t *testing.T) {
	var asked bool
	mockRepo := &MockDepartmentRepository{
		FindAllFunc: func(ctx context.Context, activeOnly bool) ([]*domain.Department, error) {
			asked = activeOnly
			return []*domain.Department{
				{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Infrastructure", IsActive: true},
			}, nil
		},
	}

	service := newDepartmentService(mockRepo)
	resp, err := service.ListDepartments(context.Background(), true)
	if err != nil {
		t.Fatalf("ListDepartments failed: %v", err)
	}
	if !asked {
		t.Error("Expected the active-only filter to reach the repository")
	}
	if len(resp) != 1 {
		t.Errorf("Expected 1 department, got %d", len(resp))
	}
}
