package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/getevo/evo/v2/lib/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stafflink/portal-backend/apps/events"
	"github.com/stafflink/portal-backend/apps/models"
	"github.com/stafflink/portal-backend/lib/gotrue"
	"gorm.io/datatypes"
)

var validate = validator.New()

// ErrProfileNotFound is returned when the provider accepted the credentials
// but no profile row exists for the identity.
var ErrProfileNotFound = errors.New("profile not found for auth identity")

// ErrValidation wraps input validation failures so handlers can map them to
// 400 with errors.Is.
var ErrValidation = errors.New("validation error")

// IdentityProvider is the slice of the provider auth API the service needs.
// Satisfied by *gotrue.Client.
type IdentityProvider interface {
	AdminCreateUser(ctx context.Context, email, password, name string) (*gotrue.Identity, error)
	AdminDeleteUser(ctx context.Context, id string) error
	AdminUpdatePassword(ctx context.Context, id, password string) error
	SignInWithPassword(ctx context.Context, email, password string) (*gotrue.Session, error)
	SignOut(ctx context.Context, token string) error
}

// ProfileStore abstracts the profile/role persistence used by signup and
// signin so the orchestration is testable without a database.
type ProfileStore interface {
	GetOrCreateRole(roleName, departmentName string) (*models.Role, error)
	CreateProfile(user *models.User) error
	DeleteProfile(id uuid.UUID) error
	ProfileByAuthID(authUserID uuid.UUID) (*models.User, error)
}

// Service sequences calls to the identity provider and the profile store. The
// only multi-step flow in the portal is signup with its compensating delete.
type Service struct {
	Provider IdentityProvider
	Store    ProfileStore
}

// DefaultService wires the service against the process-wide provider client
// and the database-backed store.
func DefaultService() *Service {
	return &Service{
		Provider: gotrue.Default(),
		Store:    &gormStore{},
	}
}

// SignUpInput carries the signup form fields.
type SignUpInput struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Name           string `json:"name" validate:"required"`
	RoleName       string `json:"roleName" validate:"required"`
	DepartmentName string `json:"departmentName" validate:"required"`
}

// SignUp registers a new portal user: resolve-or-create the role, create the
// auth identity at the provider, insert the profile row, and sign in to obtain
// a session. Any failure after the identity was created triggers a
// compensating delete of that identity so no orphaned identity survives a
// failed signup. The compensating delete itself is best-effort.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (*models.User, *gotrue.Session, error) {
	if err := validate.Struct(input); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := models.Ensure(); err != nil {
		return nil, nil, fmt.Errorf("schema bootstrap failed: %w", err)
	}

	role, err := s.Store.GetOrCreateRole(input.RoleName, input.DepartmentName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	identity, err := s.Provider.AdminCreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, nil, err
	}

	authUserID, err := uuid.Parse(identity.ID)
	if err != nil {
		s.rollbackIdentity(ctx, identity.ID)
		return nil, nil, fmt.Errorf("provider returned malformed identity id %q: %w", identity.ID, err)
	}

	profile := &models.User{
		AuthUserID:  authUserID,
		Email:       input.Email,
		Name:        input.Name,
		RoleID:      &role.ID,
		IsActive:    true,
		Preferences: datatypes.JSON([]byte(`{}`)),
	}

	if err := s.Store.CreateProfile(profile); err != nil {
		s.rollbackIdentity(ctx, identity.ID)
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	session, err := s.Provider.SignInWithPassword(ctx, input.Email, input.Password)
	if err != nil {
		if derr := s.Store.DeleteProfile(profile.ID); derr != nil {
			log.Warning("Failed to remove profile after signin failure: %v", derr)
		}
		s.rollbackIdentity(ctx, identity.ID)
		return nil, nil, fmt.Errorf("post-signup signin failed: %w", err)
	}

	joined, err := s.Store.ProfileByAuthID(authUserID)
	if err != nil {
		// The profile exists; fall back to the row we just wrote.
		joined = profile
		joined.Role = role
	}

	events.UserSignedUp(joined.ID.String(), joined.Email, role.DepartmentName)

	return joined, session, nil
}

// rollbackIdentity deletes the provider identity created during a failed
// signup. A failed delete is logged and swallowed; no retry is attempted.
func (s *Service) rollbackIdentity(ctx context.Context, identityID string) {
	if err := s.Provider.AdminDeleteUser(ctx, identityID); err != nil {
		log.Error("Compensating delete of auth identity %s failed: %v", identityID, err)
	}
}

// SignIn delegates the credential check to the provider, then loads the
// joined profile row.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, *gotrue.Session, error) {
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if err := models.Ensure(); err != nil {
		return nil, nil, fmt.Errorf("schema bootstrap failed: %w", err)
	}

	session, err := s.Provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	authUserID, err := uuid.Parse(session.User.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("provider returned malformed identity id %q: %w", session.User.ID, err)
	}

	profile, err := s.Store.ProfileByAuthID(authUserID)
	if err != nil {
		return nil, nil, ErrProfileNotFound
	}

	return profile, session, nil
}

// CurrentUser resolves a profile from a bearer token. Any failure yields nil;
// callers treat that as "not authenticated".
func (s *Service) CurrentUser(ctx context.Context, token string) *models.User {
	claims, err := VerifyAccessToken(token)
	if err != nil {
		return nil
	}

	authUserID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil
	}

	profile, err := s.Store.ProfileByAuthID(authUserID)
	if err != nil {
		return nil
	}
	return profile
}
