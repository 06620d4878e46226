package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the lifecycle status of a ProjectRequest
type RequestStatus string

const (
	RequestStatusDraft     RequestStatus = "DRAFT"
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusInReview  RequestStatus = "IN_REVIEW"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusDenied    RequestStatus = "DENIED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
	RequestStatusConverted RequestStatus = "CONVERTED"
)

// requestTransitions defines the legal status transitions for a ProjectRequest.
// Terminal states (DENIED, CANCELLED, CONVERTED) have no outgoing edges.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusDraft:    {RequestStatusPending, RequestStatusCancelled},
	RequestStatusPending:  {RequestStatusInReview, RequestStatusCancelled},
	RequestStatusInReview: {RequestStatusApproved, RequestStatusDenied, RequestStatusCancelled},
	RequestStatusApproved: {RequestStatusConverted},
}

// CanTransitionTo reports whether the transition from s to target is legal
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	for _, next := range requestTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// ProjectRequest represents a proposal for work awaiting review and approval.
// Requests are never physically deleted; terminal states are retained for
// audit and reporting.
type ProjectRequest struct {
	BaseModel
	Title                 string        `gorm:"type:varchar(255);not null" json:"title"`
	Description           string        `gorm:"type:text;not null" json:"description"`
	BusinessJustification string        `gorm:"type:text;not null" json:"business_justification"`
	Status                RequestStatus `gorm:"type:varchar(50);not null;default:'DRAFT';index:idx_project_requests_status" json:"status"`
	Priority              Priority      `gorm:"type:varchar(50);not null" json:"priority"`
	RequestingUserID      uuid.UUID     `gorm:"type:uuid;not null;index:idx_project_requests_requesting_user" json:"requesting_user_id"`
	SubmittedDate         *time.Time    `gorm:"type:timestamp" json:"submitted_date,omitempty"`
	ReviewedDate          *time.Time    `gorm:"type:timestamp" json:"reviewed_date,omitempty"`
	ReviewedByUserID      *uuid.UUID    `gorm:"type:uuid" json:"reviewed_by_user_id,omitempty"`
	ReviewNotes           string        `gorm:"type:text" json:"review_notes,omitempty"`
	ApprovalDate          *time.Time    `gorm:"type:timestamp" json:"approval_date,omitempty"`
	ApprovedByUserID      *uuid.UUID    `gorm:"type:uuid" json:"approved_by_user_id,omitempty"`
	ApprovalNotes         string        `gorm:"type:text" json:"approval_notes,omitempty"`
	DenialReason          string        `gorm:"type:text" json:"denial_reason,omitempty"`
	CancellationReason    string        `gorm:"type:text" json:"cancellation_reason,omitempty"`
	ConvertedToProjectID  *uuid.UUID    `gorm:"type:uuid;index:idx_project_requests_converted_to" json:"converted_to_project_id,omitempty"`
}

// TableName specifies the table name for ProjectRequest
func (ProjectRequest) TableName() string {
	return "project_requests"
}
