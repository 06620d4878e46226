package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle status of a Project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// projectTransitions defines the legal status transitions for a Project
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusPlanning: {ProjectStatusActive, ProjectStatusCancelled},
	ProjectStatusActive:   {ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled},
	ProjectStatusOnHold:   {ProjectStatusActive, ProjectStatusCompleted, ProjectStatusCancelled},
}

// CanTransitionTo reports whether the transition from s to target is legal
func (s ProjectStatus) CanTransitionTo(target ProjectStatus) bool {
	for _, next := range projectTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s
func (s ProjectStatus) IsTerminal() bool {
	return len(projectTransitions[s]) == 0
}

// Project represents approved work converted from a request. A project owns
// its tasks exclusively.
type Project struct {
	BaseModel
	Name                   string        `gorm:"type:varchar(255);not null" json:"name"`
	Description            string        `gorm:"type:text" json:"description"`
	Status                 ProjectStatus `gorm:"type:varchar(50);not null;default:'PLANNING';index:idx_projects_status" json:"status"`
	Priority               Priority      `gorm:"type:varchar(50);not null" json:"priority"`
	ProjectManagerUserID   *uuid.UUID    `gorm:"type:uuid;index:idx_projects_manager" json:"project_manager_user_id,omitempty"`
	StartDate              *time.Time    `gorm:"type:timestamp" json:"start_date,omitempty"`
	TargetCompletionDate   *time.Time    `gorm:"type:timestamp" json:"target_completion_date,omitempty"`
	ActualCompletionDate   *time.Time    `gorm:"type:timestamp" json:"actual_completion_date,omitempty"`
	CreatedByUserID        uuid.UUID     `gorm:"type:uuid;not null" json:"created_by_user_id"`
	ConvertedFromRequestID *uuid.UUID    `gorm:"type:uuid;uniqueIndex:uq_projects_converted_from" json:"converted_from_request_id,omitempty"`
	Tasks                  []Task        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}
