package domain

import "github.com/google/uuid"

// Department represents an organizational unit that tasks are routed to
// before an individual claims them
type Department struct {
	BaseModel
	Name                    string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_departments_name" json:"name"`
	Description             string     `gorm:"type:text" json:"description"`
	DepartmentManagerUserID *uuid.UUID `gorm:"type:uuid" json:"department_manager_user_id,omitempty"`
	IsActive                bool       `gorm:"not null;default:true;index:idx_departments_is_active" json:"is_active"`
	MemberCount             int        `gorm:"not null;default:0" json:"member_count"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "departments"
}
