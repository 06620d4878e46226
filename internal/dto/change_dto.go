package dto

import (
	"time"

	"github.com/google/uuid"

	"change-ops-api/internal/domain"
)

// CreateChangeRequestRequest represents the request to create a change request
type CreateChangeRequestRequest struct {
	Title            string            `json:"title" binding:"required" example:"Upgrade payment gateway TLS"`
	Description      string            `json:"description" binding:"required" example:"Rotate certificates and enforce TLS 1.3 on the payment gateway"`
	ChangeType       domain.ChangeType `json:"changeType" binding:"required" example:"NORMAL"`
	Priority         domain.Priority   `json:"priority" binding:"required" example:"HIGH"`
	RiskLevel        domain.RiskLevel  `json:"riskLevel" binding:"required" example:"MEDIUM"`
	ImpactAssessment string            `json:"impactAssessment" binding:"required" example:"Brief connection resets expected during cutover window"`
	RollbackPlan     string            `json:"rollbackPlan" binding:"required" example:"Re-deploy previous certificate bundle and restart the gateway pods"`
	AffectedSystems  string            `json:"affectedSystems" binding:"required" example:"payment-gateway, checkout, billing"`
}

// Validate checks field-level constraints
func (r *CreateChangeRequestRequest) Validate() error {
	errs := fieldErrors{}
	errs.requireLength("title", r.Title, TitleMinLen, TitleMaxLen)
	errs.requireLength("description", r.Description, LongTextMinLen, LongTextMaxLen)
	errs.requireLength("impactAssessment", r.ImpactAssessment, LongTextMinLen, LongTextMaxLen)
	errs.requireLength("rollbackPlan", r.RollbackPlan, LongTextMinLen, LongTextMaxLen)
	errs.requireLength("affectedSystems", r.AffectedSystems, AffectedSystemsMinLen, AffectedSystemsMaxLen)
	if !domain.ValidPriority(r.Priority) {
		errs["priority"] = "must be one of LOW, MEDIUM, HIGH, URGENT"
	}
	switch r.ChangeType {
	case domain.ChangeTypeStandard, domain.ChangeTypeNormal, domain.ChangeTypeEmergency:
	default:
		errs["changeType"] = "must be one of STANDARD, NORMAL, EMERGENCY"
	}
	switch r.RiskLevel {
	case domain.RiskLevelLow, domain.RiskLevelMedium, domain.RiskLevelHigh, domain.RiskLevelCritical:
	default:
		errs["riskLevel"] = "must be one of LOW, MEDIUM, HIGH, CRITICAL"
	}
	return errs.toError()
}

// ScheduleChangeRequest carries the planned execution date
type ScheduleChangeRequest struct {
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
}

// FailChangeRequest carries the failure reason
type FailChangeRequest struct {
	Reason string `json:"reason" binding:"required" example:"Healthchecks failed after certificate rotation"`
}

// ChangeRequestResponse represents a change request snapshot
type ChangeRequestResponse struct {
	ID               uuid.UUID           `json:"changeId"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	ChangeType       domain.ChangeType   `json:"changeType"`
	Status           domain.ChangeStatus `json:"status"`
	Priority         domain.Priority     `json:"priority"`
	RiskLevel        domain.RiskLevel    `json:"riskLevel"`
	ImpactAssessment string              `json:"impactAssessment"`
	RollbackPlan     string              `json:"rollbackPlan"`
	AffectedSystems  string              `json:"affectedSystems"`
	RequestingUserID uuid.UUID           `json:"requestingUserId"`
	SubmittedDate    *time.Time          `json:"submittedDate,omitempty"`
	ReviewedDate     *time.Time          `json:"reviewedDate,omitempty"`
	ReviewedByUserID *uuid.UUID          `json:"reviewedByUserId,omitempty"`
	ApprovalDate     *time.Time          `json:"approvalDate,omitempty"`
	ApprovedByUserID *uuid.UUID          `json:"approvedByUserId,omitempty"`
	ApprovalNotes    string              `json:"approvalNotes,omitempty"`
	DenialReason     string              `json:"denialReason,omitempty"`
	ScheduledDate    *time.Time          `json:"scheduledDate,omitempty"`
	ExecutionStarted *time.Time          `json:"executionStarted,omitempty"`
	DecisionDate     *time.Time          `json:"decisionDate,omitempty"`
	RolledBackDate   *time.Time          `json:"rolledBackDate,omitempty"`
	FailureReason    string              `json:"failureReason,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// ToChangeRequestResponse converts a domain ChangeRequest to its response DTO
func ToChangeRequestResponse(cr *domain.ChangeRequest) *ChangeRequestResponse {
	if cr == nil {
		return nil
	}
	return &ChangeRequestResponse{
		ID:               cr.ID,
		Title:            cr.Title,
		Description:      cr.Description,
		ChangeType:       cr.ChangeType,
		Status:           cr.Status,
		Priority:         cr.Priority,
		RiskLevel:        cr.RiskLevel,
		ImpactAssessment: cr.ImpactAssessment,
		RollbackPlan:     cr.RollbackPlan,
		AffectedSystems:  cr.AffectedSystems,
		RequestingUserID: cr.RequestingUserID,
		SubmittedDate:    cr.SubmittedDate,
		ReviewedDate:     cr.ReviewedDate,
		ReviewedByUserID: cr.ReviewedByUserID,
		ApprovalDate:     cr.ApprovalDate,
		ApprovedByUserID: cr.ApprovedByUserID,
		ApprovalNotes:    cr.ApprovalNotes,
		DenialReason:     cr.DenialReason,
		ScheduledDate:    cr.ScheduledDate,
		ExecutionStarted: cr.ExecutionStarted,
		DecisionDate:     cr.DecisionDate,
		RolledBackDate:   cr.RolledBackDate,
		FailureReason:    cr.FailureReason,
		CreatedAt:        cr.CreatedAt,
		UpdatedAt:        cr.UpdatedAt,
	}
}
