package models

import (
	"strings"
	"testing"
)

func TestComplaintInsertPolicyMatchesDepartment(t *testing.T) {
	var policy string
	for _, stmt := range securityStatements {
		if strings.Contains(stmt, "complaints_insert_by_role_and_dept") {
			policy = stmt
			break
		}
	}
	if policy == "" {
		t.Fatal("complaint insert policy is missing")
	}

	// The insert check must bind both the submitting user and the
	// department to the caller's role row.
	for _, predicate := range []string{
		"cur.public_user_id = public.complaints.user_id",
		"cur.department_name = public.complaints.department_name",
		"FOR INSERT",
		"TO authenticated",
	} {
		if !strings.Contains(policy, predicate) {
			t.Errorf("policy is missing predicate %q", predicate)
		}
	}
}

func TestSchemaStatementsAreIdempotent(t *testing.T) {
	for _, stmt := range []string{createRolesTableSQL, createUsersTableSQL, createComplaintsTableSQL} {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("table DDL is not idempotent: %.60s", stmt)
		}
	}

	for _, stmt := range securityStatements {
		idempotent := strings.Contains(stmt, "create or replace") ||
			strings.Contains(stmt, "IF NOT EXISTS") ||
			strings.Contains(stmt, "if exists")
		if !idempotent {
			t.Errorf("security statement is not idempotent: %.60s", stmt)
		}
	}
}

func TestIsValidComplaintPriority(t *testing.T) {
	for _, p := range []string{"Low", "Medium", "High", "Urgent"} {
		if !IsValidComplaintPriority(p) {
			t.Errorf("%s should be a valid priority", p)
		}
	}
	for _, p := range []string{"", "low", "URGENT", "critical"} {
		if IsValidComplaintPriority(p) {
			t.Errorf("%s should not be a valid priority", p)
		}
	}
}

func TestIsValidTheme(t *testing.T) {
	if !IsValidTheme("dark") || !IsValidTheme("light") {
		t.Error("dark and light must be accepted")
	}
	for _, theme := range []string{"", "Dark", "solarized", "auto"} {
		if IsValidTheme(theme) {
			t.Errorf("%s should be rejected", theme)
		}
	}
}
