package scopedb

import (
	"encoding/json"
	"fmt"

	"github.com/getevo/evo/v2/lib/db"
	"gorm.io/gorm"
)

// Claims is the subset of the verified access token that row-level security
// policies evaluate. Sub is the provider auth identity id.
type Claims struct {
	Sub   string `json:"sub"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// ClaimsJSON renders claims the way the database expects them in
// request.jwt.claims. Role defaults to "authenticated".
func ClaimsJSON(claims Claims) (string, error) {
	if claims.Role == "" {
		claims.Role = "authenticated"
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}
	return string(data), nil
}

// AsUser runs fn inside a transaction scoped to the given end user: the
// connection switches to the authenticated role and carries the user's claims,
// so row-level security policies evaluate as that user. A fresh scope is built
// per call; the shared service-role handle is never mutated.
func AsUser(claims Claims, fn func(tx *gorm.DB) error) error {
	payload, err := ClaimsJSON(claims)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL ROLE authenticated").Error; err != nil {
			return fmt.Errorf("failed to assume authenticated role: %w", err)
		}
		if err := tx.Exec("SELECT set_config('request.jwt.claims', ?, true)", payload).Error; err != nil {
			return fmt.Errorf("failed to set request claims: %w", err)
		}
		return fn(tx)
	})
}
