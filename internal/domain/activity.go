package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityEntityType identifies which entity an activity row refers to
type ActivityEntityType string

const (
	ActivityEntityRequest ActivityEntityType = "REQUEST"
	ActivityEntityProject ActivityEntityType = "PROJECT"
	ActivityEntityTask    ActivityEntityType = "TASK"
	ActivityEntityChange  ActivityEntityType = "CHANGE"
)

// Activity is an append-only record of an accepted state transition. It
// backs the recent-activity dashboard lists and the audit trail.
type Activity struct {
	BaseModel
	EntityType ActivityEntityType `gorm:"type:varchar(50);not null;index:idx_activities_entity,priority:1" json:"entity_type"`
	EntityID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_activities_entity,priority:2" json:"entity_id"`
	Action     string             `gorm:"type:varchar(100);not null" json:"action"`
	ActorID    uuid.UUID          `gorm:"type:uuid;not null;index:idx_activities_actor" json:"actor_id"`
	Details    datatypes.JSON     `gorm:"type:jsonb" json:"details,omitempty"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}
