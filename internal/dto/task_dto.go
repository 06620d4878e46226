package dto

import (
	"time"

	"github.com/google/uuid"

	"change-ops-api/internal/domain"
)

// CreateTaskRequest represents the request to add a task to a project
type CreateTaskRequest struct {
	Title          string          `json:"title" binding:"required" example:"Write migration scripts"`
	Description    string          `json:"description" binding:"required" example:"Scripts for schema and data migration with dry-run support"`
	Priority       domain.Priority `json:"priority" binding:"required" example:"MEDIUM"`
	EstimatedHours *float64        `json:"estimatedHours,omitempty" example:"16"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
}

// Validate checks field-level constraints
func (r *CreateTaskRequest) Validate() error {
	errs := fieldErrors{}
	errs.requireLength("title", r.Title, TitleMinLen, TitleMaxLen)
	errs.requireLength("description", r.Description, LongTextMinLen, LongTextMaxLen)
	if !domain.ValidPriority(r.Priority) {
		errs["priority"] = "must be one of LOW, MEDIUM, HIGH, URGENT"
	}
	if r.EstimatedHours != nil && *r.EstimatedHours < 0 {
		errs["estimatedHours"] = "must not be negative"
	}
	return errs.toError()
}

// BulkCreateTasksRequest seeds a project with an initial batch of tasks
type BulkCreateTasksRequest struct {
	Tasks []CreateTaskRequest `json:"tasks" binding:"required,min=1,dive"`
}

// Validate checks every task in the batch
func (r *BulkCreateTasksRequest) Validate() error {
	for i := range r.Tasks {
		if err := r.Tasks[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AssignDepartmentRequest routes a task to a department pool
type AssignDepartmentRequest struct {
	DepartmentID uuid.UUID `json:"departmentId" binding:"required"`
}

// AssignUserRequest assigns a task directly to a user
type AssignUserRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

// BlockTaskRequest carries the mandatory blocked reason
type BlockTaskRequest struct {
	Reason string `json:"reason" binding:"required" example:"Waiting on network team firewall change"`
}

// CompleteTaskRequest carries the hours actually spent
type CompleteTaskRequest struct {
	ActualHours *float64 `json:"actualHours,omitempty" example:"12.5"`
}

// TaskResponse represents a task snapshot
type TaskResponse struct {
	ID                     uuid.UUID         `json:"taskId"`
	ProjectID              uuid.UUID         `json:"projectId"`
	Title                  string            `json:"title"`
	Description            string            `json:"description"`
	Status                 domain.TaskStatus `json:"status"`
	Priority               domain.Priority   `json:"priority"`
	AssignedToDepartmentID *uuid.UUID        `json:"assignedToDepartmentId,omitempty"`
	AssignedToUserID       *uuid.UUID        `json:"assignedToUserId,omitempty"`
	CreatedByUserID        uuid.UUID         `json:"createdByUserId"`
	EstimatedHours         *float64          `json:"estimatedHours,omitempty"`
	ActualHours            float64           `json:"actualHours"`
	DueDate                *time.Time        `json:"dueDate,omitempty"`
	StartedDate            *time.Time        `json:"startedDate,omitempty"`
	CompletedDate          *time.Time        `json:"completedDate,omitempty"`
	BlockedReason          string            `json:"blockedReason,omitempty"`
	BlockedDate            *time.Time        `json:"blockedDate,omitempty"`
	CreatedAt              time.Time         `json:"createdAt"`
	UpdatedAt              time.Time         `json:"updatedAt"`
}

// ToTaskResponse converts a domain Task to its response DTO
func ToTaskResponse(t *domain.Task) *TaskResponse {
	if t == nil {
		return nil
	}
	return &TaskResponse{
		ID:                     t.ID,
		ProjectID:              t.ProjectID,
		Title:                  t.Title,
		Description:            t.Description,
		Status:                 t.Status,
		Priority:               t.Priority,
		AssignedToDepartmentID: t.AssignedToDepartmentID,
		AssignedToUserID:       t.AssignedToUserID,
		CreatedByUserID:        t.CreatedByUserID,
		EstimatedHours:         t.EstimatedHours,
		ActualHours:            t.ActualHours,
		DueDate:                t.DueDate,
		StartedDate:            t.StartedDate,
		CompletedDate:          t.CompletedDate,
		BlockedReason:          t.BlockedReason,
		BlockedDate:            t.BlockedDate,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of domain Tasks, skipping nil entries
func ToTaskResponses(tasks []*domain.Task) []*TaskResponse {
	responses := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		responses = append(responses, ToTaskResponse(t))
	}
	return responses
}
