package auth

import (
	"github.com/getevo/evo/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stafflink/portal-backend/apps/models"
	"github.com/stafflink/portal-backend/lib/response"
)

const (
	// LocalsUser is the fiber locals key holding the authenticated profile.
	LocalsUser = "portal.user"
	// LocalsToken is the fiber locals key holding the raw access token.
	LocalsToken = "portal.token"
	// LocalsClaims is the fiber locals key holding the verified token claims.
	LocalsClaims = "portal.claims"
)

// RequestToken extracts the bearer token from an evo request.
func RequestToken(request *evo.Request) (string, bool) {
	return BearerToken(request.Header("Authorization"))
}

// RequestUser authenticates an evo request. It returns the profile and the
// verified claims, or an AppError the handler returns as-is: 401 when no
// token was sent, 403 when the token is invalid, revoked, or matches no
// profile row.
func RequestUser(request *evo.Request) (*models.User, *Claims, *response.AppError) {
	token, ok := RequestToken(request)
	if !ok {
		return nil, nil, &response.ErrUnauthorized
	}

	claims, err := VerifyAccessToken(token)
	if err != nil {
		return nil, nil, &response.ErrInvalidToken
	}

	authUserID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, &response.ErrInvalidToken
	}

	svc := DefaultService()
	profile, err := svc.Store.ProfileByAuthID(authUserID)
	if err != nil {
		return nil, nil, &response.ErrInvalidToken
	}

	return profile, claims, nil
}

// RequireAuth is a fiber middleware for routes registered directly on the
// fiber router (multipart uploads). It stores the profile, claims and raw
// token in locals for the handler.
func RequireAuth(c *fiber.Ctx) error {
	token, ok := BearerToken(c.Get("Authorization"))
	if !ok {
		return fiberError(c, response.ErrUnauthorized)
	}

	claims, err := VerifyAccessToken(token)
	if err != nil {
		return fiberError(c, response.ErrInvalidToken)
	}

	authUserID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return fiberError(c, response.ErrInvalidToken)
	}

	svc := DefaultService()
	profile, err := svc.Store.ProfileByAuthID(authUserID)
	if err != nil {
		return fiberError(c, response.ErrInvalidToken)
	}

	c.Locals(LocalsUser, profile)
	c.Locals(LocalsToken, token)
	c.Locals(LocalsClaims, claims)
	return c.Next()
}

// UserFromLocals reads back the profile stored by RequireAuth.
func UserFromLocals(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(LocalsUser).(*models.User)
	return user, ok
}

// ClaimsFromLocals reads back the claims stored by RequireAuth.
func ClaimsFromLocals(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(LocalsClaims).(*Claims)
	return claims, ok
}

func fiberError(c *fiber.Ctx, appErr response.AppError) error {
	return c.Status(appErr.StatusCode).JSON(fiber.Map{
		"error":   string(appErr.Code),
		"message": appErr.Message,
	})
}
