package models

import (
	"sync"

	"github.com/getevo/evo/v2/lib/db"
	"github.com/getevo/evo/v2/lib/log"
)

// The portal does not own its database: tables live in the provider's Postgres
// and are created lazily with idempotent DDL the first time a request needs
// them, mirroring how the schema was originally provisioned.

const createRolesTableSQL = `
CREATE TABLE IF NOT EXISTS public.roles (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    role_name VARCHAR(100) NOT NULL,
    department_name VARCHAR(100) NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    UNIQUE(role_name, department_name)
);
`

const createUsersTableSQL = `
CREATE TABLE IF NOT EXISTS public.users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    auth_user_id UUID REFERENCES auth.users(id) ON DELETE CASCADE,
    email VARCHAR(255) UNIQUE NOT NULL,
    name VARCHAR(255) NOT NULL,
    role_id UUID REFERENCES roles(id),
    is_active BOOLEAN DEFAULT true,
    preferences JSONB NOT NULL DEFAULT '{}'::jsonb,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`

const createComplaintsTableSQL = `
CREATE TABLE IF NOT EXISTS public.complaints (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID REFERENCES public.users(id) ON DELETE SET NULL,
    role_id UUID REFERENCES public.roles(id) ON DELETE SET NULL,
    department_name TEXT NOT NULL,
    category TEXT NOT NULL,
    priority TEXT NOT NULL CHECK (priority IN ('Low','Medium','High','Urgent')) DEFAULT 'Medium',
    subject TEXT NOT NULL,
    description TEXT NOT NULL,
    attachments_urls JSONB NOT NULL DEFAULT '[]'::jsonb,
    is_anonymous BOOLEAN NOT NULL DEFAULT false,
    status TEXT NOT NULL CHECK (status IN ('open','in_progress','resolved','closed')) DEFAULT 'open',
    assigned_to UUID REFERENCES public.users(id) ON DELETE SET NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var (
	ensureOnce sync.Once
	ensureErr  error
)

// Ensure creates the portal tables and security policies if they do not exist
// yet. Safe to call on every request; the work runs once per process.
func Ensure() error {
	ensureOnce.Do(func() {
		ensureErr = ensureSchema()
	})
	return ensureErr
}

// MarkEnsured records the schema as already provisioned without touching the
// database. Used by tests that exercise services against mock stores.
func MarkEnsured() {
	ensureOnce.Do(func() {})
}

func ensureSchema() error {
	statements := []string{
		createRolesTableSQL,
		createUsersTableSQL,
		createComplaintsTableSQL,
	}
	statements = append(statements, securityStatements...)

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Error("Schema bootstrap failed: %v", err)
			return err
		}
	}

	log.Debug("Database schema and policies are ready")
	return nil
}
