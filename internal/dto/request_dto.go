package dto

import (
	"time"

	"github.com/google/uuid"

	"change-ops-api/internal/domain"
)

// CreateProjectRequestRequest represents the request to create a new project request
// @Description Request body for creating a project request in DRAFT status
type CreateProjectRequestRequest struct {
	Title                 string          `json:"title" binding:"required" example:"DB Migration"`
	Description           string          `json:"description" binding:"required" example:"Migrate the orders database to the new cluster"`
	BusinessJustification string          `json:"businessJustification" binding:"required" example:"Current cluster reaches end of support in Q3"`
	Priority              domain.Priority `json:"priority" binding:"required" example:"HIGH"`
}

// Validate checks field-level constraints and returns a validation error
// carrying a field-to-message mapping when any constraint is violated
func (r *CreateProjectRequestRequest) Validate() error {
	errs := fieldErrors{}
	errs.requireLength("title", r.Title, TitleMinLen, TitleMaxLen)
	errs.requireLength("description", r.Description, LongTextMinLen, LongTextMaxLen)
	errs.requireLength("businessJustification", r.BusinessJustification, LongTextMinLen, LongTextMaxLen)
	if !domain.ValidPriority(r.Priority) {
		errs["priority"] = "must be one of LOW, MEDIUM, HIGH, URGENT"
	}
	return errs.toError()
}

// ReviewActionRequest carries the optional notes for beginReview
type ReviewActionRequest struct {
	Notes string `json:"notes,omitempty" example:"Picking this up"`
}

// ApproveRequestRequest carries the approval notes
type ApproveRequestRequest struct {
	Notes string `json:"notes,omitempty" example:"ok"`
}

// DenyRequestRequest carries the mandatory denial reason
type DenyRequestRequest struct {
	Reason string `json:"reason" binding:"required" example:"Out of budget for this quarter"`
}

// CancelRequestRequest carries the mandatory cancellation reason
type CancelRequestRequest struct {
	Reason string `json:"reason" binding:"required" example:"Superseded by the platform migration"`
}

// ProjectRequestResponse represents a project request snapshot
type ProjectRequestResponse struct {
	ID                    uuid.UUID            `json:"requestId"`
	Title                 string               `json:"title"`
	Description           string               `json:"description"`
	BusinessJustification string               `json:"businessJustification"`
	Status                domain.RequestStatus `json:"status"`
	Priority              domain.Priority      `json:"priority"`
	RequestingUserID      uuid.UUID            `json:"requestingUserId"`
	SubmittedDate         *time.Time           `json:"submittedDate,omitempty"`
	ReviewedDate          *time.Time           `json:"reviewedDate,omitempty"`
	ReviewedByUserID      *uuid.UUID           `json:"reviewedByUserId,omitempty"`
	ReviewNotes           string               `json:"reviewNotes,omitempty"`
	ApprovalDate          *time.Time           `json:"approvalDate,omitempty"`
	ApprovedByUserID      *uuid.UUID           `json:"approvedByUserId,omitempty"`
	ApprovalNotes         string               `json:"approvalNotes,omitempty"`
	DenialReason          string               `json:"denialReason,omitempty"`
	CancellationReason    string               `json:"cancellationReason,omitempty"`
	ConvertedToProjectID  *uuid.UUID           `json:"convertedToProjectId,omitempty"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

// ToProjectRequestResponse converts a domain ProjectRequest to its response DTO
func ToProjectRequestResponse(r *domain.ProjectRequest) *ProjectRequestResponse {
	if r == nil {
		return nil
	}
	return &ProjectRequestResponse{
		ID:                    r.ID,
		Title:                 r.Title,
		Description:           r.Description,
		BusinessJustification: r.BusinessJustification,
		Status:                r.Status,
		Priority:              r.Priority,
		RequestingUserID:      r.RequestingUserID,
		SubmittedDate:         r.SubmittedDate,
		ReviewedDate:          r.ReviewedDate,
		ReviewedByUserID:      r.ReviewedByUserID,
		ReviewNotes:           r.ReviewNotes,
		ApprovalDate:          r.ApprovalDate,
		ApprovedByUserID:      r.ApprovedByUserID,
		ApprovalNotes:         r.ApprovalNotes,
		DenialReason:          r.DenialReason,
		CancellationReason:    r.CancellationReason,
		ConvertedToProjectID:  r.ConvertedToProjectID,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

// ConvertResponse is returned by the convert action and carries both the
// updated request and the newly created project
type ConvertResponse struct {
	Request *ProjectRequestResponse `json:"request"`
	Project *ProjectResponse        `json:"project"`
}
