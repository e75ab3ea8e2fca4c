package team

import (
	"github.com/getevo/evo/v2/lib/db"
	"github.com/google/uuid"
	"github.com/stafflink/portal-backend/apps/models"
)

// Store abstracts the roster queries so the department resolution is testable
// without a database.
type Store interface {
	RoleByID(id uuid.UUID) (*models.Role, error)
	RolesByDepartment(departmentName string) ([]models.Role, error)
	ActiveMembersByRoleIDs(roleIDs []uuid.UUID) ([]models.User, error)
}

type gormStore struct{}

func (gormStore) RoleByID(id uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := db.Where("id = ?", id).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (gormStore) RolesByDepartment(departmentName string) ([]models.Role, error) {
	return models.RolesByDepartment(departmentName)
}

func (gormStore) ActiveMembersByRoleIDs(roleIDs []uuid.UUID) ([]models.User, error) {
	var members []models.User
	err := db.Preload("Role").
		Where("role_id IN ? AND is_active = ?", roleIDs, true).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

var store Store = gormStore{}
