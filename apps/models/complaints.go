package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Complaint status constants
const (
	ComplaintStatusOpen       = "open"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
)

// Complaint priority constants
const (
	ComplaintPriorityLow    = "Low"
	ComplaintPriorityMedium = "Medium"
	ComplaintPriorityHigh   = "High"
	ComplaintPriorityUrgent = "Urgent"
)

// Complaint is a ticket raised by an employee. The insert-time row-level
// security policy requires DepartmentName to match the submitting user's
// role's department; application code does not re-check that.
type Complaint struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID          *uuid.UUID     `gorm:"column:user_id;type:uuid;index;fk:users" json:"user_id"`
	RoleID          *uuid.UUID     `gorm:"column:role_id;type:uuid;fk:roles" json:"role_id"`
	DepartmentName  string         `gorm:"column:department_name;not null" json:"department_name"`
	Category        string         `gorm:"column:category;not null" json:"category"`
	Priority        string         `gorm:"column:priority;not null;default:'Medium';check:priority IN ('Low','Medium','High','Urgent')" json:"priority"`
	Subject         string         `gorm:"column:subject;not null" json:"subject"`
	Description     string         `gorm:"column:description;not null" json:"description"`
	AttachmentsURLs datatypes.JSON `gorm:"column:attachments_urls;type:jsonb;not null;default:'[]'" json:"attachments_urls"`
	IsAnonymous     bool           `gorm:"column:is_anonymous;not null;default:false" json:"is_anonymous"`
	Status          string         `gorm:"column:status;not null;default:'open';check:status IN ('open','in_progress','resolved','closed')" json:"status"`
	AssignedTo      *uuid.UUID     `gorm:"column:assigned_to;type:uuid;fk:users" json:"assigned_to"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// IsValidComplaintPriority checks a priority value against the enum.
func IsValidComplaintPriority(priority string) bool {
	switch priority {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh, ComplaintPriorityUrgent:
		return true
	}
	return false
}
