package gotrue

import (
	"context"
	"net/http"
)

// Identity is the provider-owned auth record. Only the identifier and email are
// of interest to the portal; credentials never leave the provider.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of a successful password grant.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	User         Identity `json:"user"`
}

type adminCreateUserRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type adminUpdateUserRequest struct {
	Password string `json:"password"`
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminCreateUser registers a new auth identity with a pre-confirmed email.
// Returns ErrDuplicateEmail when the address is already registered.
func (c *Client) AdminCreateUser(ctx context.Context, email, password, name string) (*Identity, error) {
	req := adminCreateUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
		UserMetadata: map[string]any{"name": name},
	}

	var identity Identity
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.ServiceKey, req, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// AdminDeleteUser removes an auth identity. Used as the compensating action
// when a signup fails after the identity was created.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+id, c.ServiceKey, nil, nil)
}

// AdminUpdatePassword sets a new password for an identity without requiring an
// active session.
func (c *Client) AdminUpdatePassword(ctx context.Context, id, password string) error {
	return c.do(ctx, http.MethodPut, "/admin/users/"+id, c.ServiceKey, adminUpdateUserRequest{Password: password}, nil)
}

// SignInWithPassword performs the password grant. Returns ErrInvalidCredentials
// when the provider rejects the email/password pair.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.ServiceKey, passwordGrantRequest{
		Email:    email,
		Password: password,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut invalidates the session behind the given access token.
func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
}
