package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType classifies how a change request is handled
type ChangeType string

const (
	ChangeTypeStandard  ChangeType = "STANDARD"
	ChangeTypeNormal    ChangeType = "NORMAL"
	ChangeTypeEmergency ChangeType = "EMERGENCY"
)

// RiskLevel represents the assessed risk of executing a change
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// ChangeStatus represents the lifecycle status of a ChangeRequest. It
// mirrors the project-request machine through APPROVED and then adds
// execution states.
type ChangeStatus string

const (
	ChangeStatusDraft      ChangeStatus = "DRAFT"
	ChangeStatusPending    ChangeStatus = "PENDING"
	ChangeStatusInReview   ChangeStatus = "IN_REVIEW"
	ChangeStatusApproved   ChangeStatus = "APPROVED"
	ChangeStatusDenied     ChangeStatus = "DENIED"
	ChangeStatusCancelled  ChangeStatus = "CANCELLED"
	ChangeStatusScheduled  ChangeStatus = "SCHEDULED"
	ChangeStatusExecuting  ChangeStatus = "EXECUTING"
	ChangeStatusCompleted  ChangeStatus = "COMPLETED"
	ChangeStatusFailed     ChangeStatus = "FAILED"
	ChangeStatusRolledBack ChangeStatus = "ROLLED_BACK"
)

// changeTransitions defines the legal status transitions for a ChangeRequest
var changeTransitions = map[ChangeStatus][]ChangeStatus{
	ChangeStatusDraft:     {ChangeStatusPending, ChangeStatusCancelled},
	ChangeStatusPending:   {ChangeStatusInReview, ChangeStatusCancelled},
	ChangeStatusInReview:  {ChangeStatusApproved, ChangeStatusDenied, ChangeStatusCancelled},
	ChangeStatusApproved:  {ChangeStatusScheduled, ChangeStatusCancelled},
	ChangeStatusScheduled: {ChangeStatusExecuting, ChangeStatusCancelled},
	ChangeStatusExecuting: {ChangeStatusCompleted, ChangeStatusFailed},
	ChangeStatusFailed:    {ChangeStatusRolledBack},
}

// CanTransitionTo reports whether the transition from s to target is legal
func (s ChangeStatus) CanTransitionTo(target ChangeStatus) bool {
	for _, next := range changeTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s
func (s ChangeStatus) IsTerminal() bool {
	return len(changeTransitions[s]) == 0
}

// ChangeRequest represents a request to change a production system. Its
// execution outcome (completed, failed, rolled back) feeds the analytics
// aggregations.
type ChangeRequest struct {
	BaseModel
	Title            string       `gorm:"type:varchar(255);not null" json:"title"`
	Description      string       `gorm:"type:text;not null" json:"description"`
	ChangeType       ChangeType   `gorm:"type:varchar(50);not null" json:"change_type"`
	Status           ChangeStatus `gorm:"type:varchar(50);not null;default:'DRAFT';index:idx_change_requests_status" json:"status"`
	Priority         Priority     `gorm:"type:varchar(50);not null" json:"priority"`
	RiskLevel        RiskLevel    `gorm:"type:varchar(50);not null" json:"risk_level"`
	ImpactAssessment string       `gorm:"type:text;not null" json:"impact_assessment"`
	RollbackPlan     string       `gorm:"type:text;not null" json:"rollback_plan"`
	// AffectedSystems is a comma-separated list of system names.
	AffectedSystems  string     `gorm:"type:varchar(500);not null" json:"affected_systems"`
	RequestingUserID uuid.UUID  `gorm:"type:uuid;not null;index:idx_change_requests_requesting_user" json:"requesting_user_id"`
	SubmittedDate    *time.Time `gorm:"type:timestamp" json:"submitted_date,omitempty"`
	ReviewedDate     *time.Time `gorm:"type:timestamp" json:"reviewed_date,omitempty"`
	ReviewedByUserID *uuid.UUID `gorm:"type:uuid" json:"reviewed_by_user_id,omitempty"`
	ApprovalDate     *time.Time `gorm:"type:timestamp" json:"approval_date,omitempty"`
	ApprovedByUserID *uuid.UUID `gorm:"type:uuid" json:"approved_by_user_id,omitempty"`
	ApprovalNotes    string     `gorm:"type:text" json:"approval_notes,omitempty"`
	DenialReason     string     `gorm:"type:text" json:"denial_reason,omitempty"`
	ScheduledDate    *time.Time `gorm:"type:timestamp" json:"scheduled_date,omitempty"`
	ExecutionStarted *time.Time `gorm:"type:timestamp" json:"execution_started,omitempty"`
	// DecisionDate is set when execution reaches COMPLETED or FAILED and is
	// the date the monthly trend series buckets on.
	DecisionDate   *time.Time `gorm:"type:timestamp;index:idx_change_requests_decision_date" json:"decision_date,omitempty"`
	RolledBackDate *time.Time `gorm:"type:timestamp" json:"rolled_back_date,omitempty"`
	FailureReason  string     `gorm:"type:text" json:"failure_reason,omitempty"`
}

// TableName specifies the table name for ChangeRequest
func (ChangeRequest) TableName() string {
	return "change_requests"
}
