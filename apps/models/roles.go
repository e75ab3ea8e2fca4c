package models

import (
	"time"

	"github.com/getevo/evo/v2/lib/db"
	"github.com/getevo/restify"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a (role name, department) pair. Rows are append-only and created on
// demand the first time a signup references a combination not yet seen.
type Role struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleName       string    `gorm:"column:role_name;size:100;not null;uniqueIndex:idx_role_department" json:"role_name"`
	DepartmentName string    `gorm:"column:department_name;size:100;not null;uniqueIndex:idx_role_department" json:"department_name"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	restify.API
}

func (Role) TableName() string {
	return "roles"
}

// GetOrCreateRole resolves a role by (name, department), creating it when it
// does not exist yet.
func GetOrCreateRole(roleName, departmentName string) (*Role, error) {
	var role Role
	err := db.Where("role_name = ? AND department_name = ?", roleName, departmentName).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	role = Role{
		RoleName:       roleName,
		DepartmentName: departmentName,
	}
	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// RolesByDepartment lists roles in a department ordered by name.
func RolesByDepartment(departmentName string) ([]Role, error) {
	var roles []Role
	err := db.Where("department_name = ?", departmentName).
		Order("role_name ASC").
		Find(&roles).Error
	return roles, err
}
