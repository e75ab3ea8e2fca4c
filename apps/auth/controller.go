package auth

import (
	"context"
	"errors"
	"time"

	"github.com/getevo/evo/v2"
	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/outcome"
	"github.com/stafflink/portal-backend/apps/models"
	"github.com/stafflink/portal-backend/apps/redis"
	"github.com/stafflink/portal-backend/lib/gotrue"
	"github.com/stafflink/portal-backend/lib/response"
)

// Controller handles authentication endpoints
type Controller struct{}

// SignUp handles POST /api/auth/signup
func (c Controller) SignUp(request *evo.Request) any {
	var input SignUpInput
	if err := request.BodyParser(&input); err != nil {
		return response.Error(response.ErrInvalidInput)
	}

	svc := DefaultService()
	user, session, err := svc.SignUp(context.Background(), input)
	if err != nil {
		switch {
		case errors.Is(err, gotrue.ErrDuplicateEmail):
			return response.Error(response.ErrDuplicateEmail)
		case errors.Is(err, ErrValidation):
			return response.Error(response.ErrMissingRequired)
		case errors.Is(err, gotrue.ErrNotConfigured):
			return response.Error(response.ErrUpstreamError)
		default:
			log.Error("Signup failed for %s: %v", input.Email, err)
			return response.Error(response.ErrInternalError)
		}
	}

	return response.CreatedWithMessage(map[string]any{
		"user":         user,
		"access_token": session.AccessToken,
	}, "Account created successfully")
}

// SignIn handles POST /api/auth/signin
func (c Controller) SignIn(request *evo.Request) any {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := request.BodyParser(&input); err != nil {
		return response.Error(response.ErrInvalidInput)
	}

	svc := DefaultService()
	user, session, err := svc.SignIn(context.Background(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, gotrue.ErrInvalidCredentials) || errors.Is(err, ErrProfileNotFound) {
			return response.Error(response.ErrInvalidCredentials)
		}
		if errors.Is(err, ErrValidation) {
			return response.Error(response.ErrMissingRequired)
		}
		log.Error("Signin failed for %s: %v", input.Email, err)
		return response.Error(response.ErrInternalError)
	}

	return response.OKWithMessage(map[string]any{
		"user":         user,
		"access_token": session.AccessToken,
	}, "Signed in successfully")
}

// SignOut handles POST /api/auth/signout. Signing out never fails: without a
// token it is a no-op, otherwise the token lands on the redis denylist for its
// remaining lifetime and the provider logout is best-effort.
func (c Controller) SignOut(request *evo.Request) any {
	token, _ := RequestToken(request)
	return signOut(context.Background(), token)
}

func signOut(ctx context.Context, token string) outcome.Response {
	if token == "" {
		return response.Message("Signed out successfully")
	}

	var ttl time.Duration
	if claims, err := VerifyAccessToken(token); err == nil {
		ttl = claims.TokenTTL()
	}
	redis.RevokeToken(token, ttl)

	if err := gotrue.Default().SignOut(ctx, token); err != nil {
		log.Debug("Provider signout failed: %v", err)
	}

	return response.Message("Signed out successfully")
}

// Me handles GET /api/auth/me
func (c Controller) Me(request *evo.Request) any {
	user, _, appErr := RequestUser(request)
	if appErr != nil {
		return response.Error(*appErr)
	}
	return response.OK(map[string]any{"user": user})
}

// RolesByDepartment handles GET /api/auth/roles/:department
func (c Controller) RolesByDepartment(request *evo.Request) any {
	department := request.Param("department").String()
	if department == "" {
		return response.Error(response.ErrMissingRequired)
	}

	if err := models.Ensure(); err != nil {
		return response.Error(response.ErrDatabaseError)
	}

	roles, err := models.RolesByDepartment(department)
	if err != nil {
		return response.Error(response.ErrDatabaseError)
	}

	return response.OK(map[string]any{"roles": roles})
}
