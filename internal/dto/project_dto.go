package dto

import (
	"time"

	"github.com/google/uuid"

	"change-ops-api/internal/domain"
)

// UpdateProjectRequest represents the request to update project metadata.
// All fields are optional.
type UpdateProjectRequest struct {
	Name                 *string         `json:"name,omitempty"`
	Description          *string         `json:"description,omitempty"`
	Priority             *domain.Priority `json:"priority,omitempty"`
	ProjectManagerUserID *uuid.UUID      `json:"projectManagerUserId,omitempty"`
	StartDate            *time.Time      `json:"startDate,omitempty"`
	TargetCompletionDate *time.Time      `json:"targetCompletionDate,omitempty"`
}

// Validate checks field-level constraints on the provided fields
func (r *UpdateProjectRequest) Validate() error {
	errs := fieldErrors{}
	if r.Name != nil {
		errs.requireLength("name", *r.Name, TitleMinLen, TitleMaxLen)
	}
	if r.Priority != nil && !domain.ValidPriority(*r.Priority) {
		errs["priority"] = "must be one of LOW, MEDIUM, HIGH, URGENT"
	}
	return errs.toError()
}

// CancelProjectRequest carries the cancellation reason
type CancelProjectRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ProjectResponse represents a project snapshot
type ProjectResponse struct {
	ID                     uuid.UUID            `json:"projectId"`
	Name                   string               `json:"name"`
	Description            string               `json:"description"`
	Status                 domain.ProjectStatus `json:"status"`
	Priority               domain.Priority      `json:"priority"`
	ProjectManagerUserID   *uuid.UUID           `json:"projectManagerUserId,omitempty"`
	StartDate              *time.Time           `json:"startDate,omitempty"`
	TargetCompletionDate   *time.Time           `json:"targetCompletionDate,omitempty"`
	ActualCompletionDate   *time.Time           `json:"actualCompletionDate,omitempty"`
	CreatedByUserID        uuid.UUID            `json:"createdByUserId"`
	ConvertedFromRequestID *uuid.UUID           `json:"convertedFromRequestId,omitempty"`
	CreatedAt              time.Time            `json:"createdAt"`
	UpdatedAt              time.Time            `json:"updatedAt"`
}

// ToProjectResponse converts a domain Project to its response DTO
func ToProjectResponse(p *domain.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		Description:            p.Description,
		Status:                 p.Status,
		Priority:               p.Priority,
		ProjectManagerUserID:   p.ProjectManagerUserID,
		StartDate:              p.StartDate,
		TargetCompletionDate:   p.TargetCompletionDate,
		ActualCompletionDate:   p.ActualCompletionDate,
		CreatedByUserID:        p.CreatedByUserID,
		ConvertedFromRequestID: p.ConvertedFromRequestID,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}
