package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle status of a Task
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// taskTransitions defines the legal status transitions for a Task
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusNotStarted: {TaskStatusInProgress, TaskStatusBlocked, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusBlocked, TaskStatusCompleted, TaskStatusCancelled},
	TaskStatusBlocked:    {TaskStatusInProgress, TaskStatusCancelled},
}

// CanTransitionTo reports whether the transition from s to target is legal
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	for _, next := range taskTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s
func (s TaskStatus) IsTerminal() bool {
	return len(taskTransitions[s]) == 0
}

// Task represents a unit of work inside a Project. A task is routed to a
// department pool first and then claimed by (or directly assigned to) an
// individual user.
type Task struct {
	BaseModel
	ProjectID              uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_project_id" json:"project_id"`
	Title                  string     `gorm:"type:varchar(255);not null" json:"title"`
	Description            string     `gorm:"type:text" json:"description"`
	Status                 TaskStatus `gorm:"type:varchar(50);not null;default:'NOT_STARTED';index:idx_tasks_status" json:"status"`
	Priority               Priority   `gorm:"type:varchar(50);not null" json:"priority"`
	AssignedToDepartmentID *uuid.UUID `gorm:"type:uuid;index:idx_tasks_assigned_department" json:"assigned_to_department_id,omitempty"`
	AssignedToUserID       *uuid.UUID `gorm:"type:uuid;index:idx_tasks_assigned_user" json:"assigned_to_user_id,omitempty"`
	CreatedByUserID        uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_user_id"`
	EstimatedHours         *float64   `json:"estimated_hours,omitempty"`
	ActualHours            float64    `gorm:"not null;default:0" json:"actual_hours"`
	DueDate                *time.Time `gorm:"type:timestamp;index:idx_tasks_due_date" json:"due_date,omitempty"`
	StartedDate            *time.Time `gorm:"type:timestamp" json:"started_date,omitempty"`
	CompletedDate          *time.Time `gorm:"type:timestamp" json:"completed_date,omitempty"`
	BlockedReason          string     `gorm:"type:text" json:"blocked_reason,omitempty"`
	BlockedDate            *time.Time `gorm:"type:timestamp" json:"blocked_date,omitempty"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether the task is past its due date and not yet in a
// terminal state
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Status.IsTerminal()
}
