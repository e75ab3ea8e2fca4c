package profile

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/getevo/evo/v2"
	"github.com/getevo/evo/v2/lib/db"
	"github.com/getevo/evo/v2/lib/log"
	"github.com/stafflink/portal-backend/apps/auth"
	"github.com/stafflink/portal-backend/apps/models"
	"github.com/stafflink/portal-backend/lib/gotrue"
	"github.com/stafflink/portal-backend/lib/response"
	"gorm.io/datatypes"
)

// Controller handles profile mutation endpoints
type Controller struct{}

// UpdateName handles PUT /api/profile/name
func (c Controller) UpdateName(request *evo.Request) any {
	user, _, appErr := auth.RequestUser(request)
	if appErr != nil {
		return response.Error(*appErr)
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := request.BodyParser(&input); err != nil {
		return response.Error(response.ErrInvalidInput)
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return response.Error(response.NewError(response.ErrorCodeValidation,
			"Name must be at least 2 characters", 400))
	}

	if err := db.Model(user).Update("name", name).Error; err != nil {
		return response.Error(response.ErrDatabaseError)
	}
	user.Name = name

	return response.OK(map[string]any{"user": user})
}

// UpdatePassword handles PUT /api/profile/password. The new password is set
// through the provider admin API, so the current session stays valid.
func (c Controller) UpdatePassword(request *evo.Request) any {
	user, _, appErr := auth.RequestUser(request)
	if appErr != nil {
		return response.Error(*appErr)
	}

	var input struct {
		NewPassword string `json:"new_password"`
	}
	if err := request.BodyParser(&input); err != nil {
		return response.Error(response.ErrInvalidInput)
	}

	if len(input.NewPassword) < 6 {
		return response.Error(response.NewError(response.ErrorCodeValidation,
			"Password must be at least 6 characters", 400))
	}

	err := gotrue.Default().AdminUpdatePassword(context.Background(), user.AuthUserID.String(), input.NewPassword)
	if err != nil {
		log.Error("Password update failed for user %s: %v", user.ID, err)
		return response.Error(response.ErrUpstreamError)
	}

	return response.OK(map[string]any{"success": true})
}

// UpdatePreferences handles PUT /api/profile/preferences. Only the theme key
// is written; every other preference key survives untouched.
func (c Controller) UpdatePreferences(request *evo.Request) any {
	user, _, appErr := auth.RequestUser(request)
	if appErr != nil {
		return response.Error(*appErr)
	}

	var input struct {
		Theme string `json:"theme"`
	}
	if err := request.BodyParser(&input); err != nil {
		return response.Error(response.ErrInvalidInput)
	}

	if !models.IsValidTheme(input.Theme) {
		return response.Error(response.NewError(response.ErrorCodeValidation,
			"Theme must be 'dark' or 'light'", 400))
	}

	merged, err := MergeTheme(user.Preferences, input.Theme)
	if err != nil {
		return response.Error(response.ErrInternalError)
	}

	if err := db.Model(user).Update("preferences", merged).Error; err != nil {
		return response.Error(response.ErrDatabaseError)
	}
	user.Preferences = merged

	return response.OK(map[string]any{"user": user})
}

// MergeTheme sets the theme key in a preferences document, preserving all
// other keys.
func MergeTheme(preferences datatypes.JSON, theme string) (datatypes.JSON, error) {
	prefs := map[string]any{}
	if len(preferences) > 0 {
		if err := json.Unmarshal(preferences, &prefs); err != nil {
			return nil, err
		}
	}
	prefs["theme"] = theme

	out, err := json.Marshal(prefs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}
