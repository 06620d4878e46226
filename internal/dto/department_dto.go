package dto

import (
	"time"

	"github.com/google/uuid"

	"change-ops-api/internal/domain"
)

// CreateDepartmentRequest represents the request to create a department
type CreateDepartmentRequest struct {
	Name                    string     `json:"name" binding:"required,min=2,max=100" example:"Infrastructure"`
	Description             string     `json:"description" binding:"max=500" example:"Owns compute, network and storage platforms"`
	DepartmentManagerUserID *uuid.UUID `json:"departmentManagerUserId,omitempty"`
}

// DepartmentResponse represents a department snapshot
type DepartmentResponse struct {
	ID                      uuid.UUID  `json:"departmentId"`
	Name                    string     `json:"name"`
	Description             string     `json:"description"`
	DepartmentManagerUserID *uuid.UUID `json:"departmentManagerUserId,omitempty"`
	IsActive                bool       `json:"isActive"`
	MemberCount             int        `json:"memberCount"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

// ToDepartmentResponse converts a domain Department to its response DTO
func ToDepartmentResponse(d *domain.Department) *DepartmentResponse {
	if d == nil {
		return nil
	}
	return &DepartmentResponse{
		ID:                      d.ID,
		Name:                    d.Name,
		Description:             d.Description,
		DepartmentManagerUserID: d.DepartmentManagerUserID,
		IsActive:                d.IsActive,
		MemberCount:             d.MemberCount,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}
