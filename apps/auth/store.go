package auth

import (
	"github.com/getevo/evo/v2/lib/db"
	"github.com/google/uuid"
	"github.com/stafflink/portal-backend/apps/models"
)

// gormStore is the database-backed ProfileStore. All access goes through the
// service-role connection; row-level security does not apply here.
type gormStore struct{}

func (gormStore) GetOrCreateRole(roleName, departmentName string) (*models.Role, error) {
	return models.GetOrCreateRole(roleName, departmentName)
}

func (gormStore) CreateProfile(user *models.User) error {
	return db.Create(user).Error
}

func (gormStore) DeleteProfile(id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&models.User{}).Error
}

func (gormStore) ProfileByAuthID(authUserID uuid.UUID) (*models.User, error) {
	var user models.User
	err := db.Preload("Role").Where("auth_user_id = ?", authUserID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
