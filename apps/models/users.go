package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is the application-owned profile row. The auth identity itself lives in
// the external provider and is referenced through AuthUserID; credentials are
// never stored here.
type User struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AuthUserID  uuid.UUID      `gorm:"column:auth_user_id;type:uuid;uniqueIndex" json:"auth_user_id"`
	Email       string         `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Name        string         `gorm:"column:name;size:255;not null" json:"name"`
	RoleID      *uuid.UUID     `gorm:"column:role_id;type:uuid;index;fk:roles" json:"role_id"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Role *Role `gorm:"foreignKey:RoleID;references:ID" json:"roles,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Theme preference values accepted by the profile routes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// IsValidTheme checks whether a theme value is one the portal understands.
func IsValidTheme(theme string) bool {
	return theme == ThemeDark || theme == ThemeLight
}
