package team

import (
	"errors"

	"github.com/getevo/evo/v2"
	"github.com/google/uuid"
	"github.com/stafflink/portal-backend/apps/auth"
	"github.com/stafflink/portal-backend/apps/models"
	"github.com/stafflink/portal-backend/lib/response"
	"gorm.io/gorm"
)

// Controller handles team roster endpoints
type Controller struct{}

// Roster handles GET /api/team: members of the caller's department.
func (c Controller) Roster(request *evo.Request) any {
	user, _, appErr := auth.RequestUser(request)
	if appErr != nil {
		return response.Error(*appErr)
	}

	department, members, rosterErr := roster(store, user)
	if rosterErr != nil {
		return response.Error(*rosterErr)
	}

	return response.OK(map[string]any{
		"department": department,
		"members":    members,
	})
}

// roster resolves the caller's department and its members. Role lookup and
// membership lookup stay two separate queries; the member query filters on
// the department's role id set.
func roster(s Store, user *models.User) (string, []models.User, *response.AppError) {
	if user.RoleID == nil {
		appErr := response.NewError(response.ErrorCodeValidation,
			"User has no role assigned", 400)
		return "", nil, &appErr
	}

	role, err := s.RoleByID(*user.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, &response.ErrRoleNotFound
		}
		return "", nil, &response.ErrDatabaseError
	}

	roles, err := s.RolesByDepartment(role.DepartmentName)
	if err != nil {
		return "", nil, &response.ErrDatabaseError
	}

	roleIDs := make([]uuid.UUID, 0, len(roles))
	for _, r := range roles {
		roleIDs = append(roleIDs, r.ID)
	}

	members, err := s.ActiveMembersByRoleIDs(roleIDs)
	if err != nil {
		return "", nil, &response.ErrDatabaseError
	}

	return role.DepartmentName, members, nil
}
