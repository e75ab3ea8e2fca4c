package complaints

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stafflink/portal-backend/apps/auth"
	"github.com/stafflink/portal-backend/apps/models"
)

func TestParseForm(t *testing.T) {
	base := map[string][]string{
		"department":  {"BPO"},
		"category":    {"workplace"},
		"subject":     {"Broken chair"},
		"description": {"The chair at desk 14 is broken."},
	}

	clone := func(overrides map[string][]string) *multipart.Form {
		values := map[string][]string{}
		for k, v := range base {
			values[k] = v
		}
		for k, v := range overrides {
			if v == nil {
				delete(values, k)
				continue
			}
			values[k] = v
		}
		return &multipart.Form{Value: values}
	}

	t.Run("defaults priority to Medium", func(t *testing.T) {
		form, appErr := parseForm(clone(nil))
		if appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if form.Priority != models.ComplaintPriorityMedium {
			t.Fatalf("expected Medium, got %s", form.Priority)
		}
	})

	t.Run("accepts explicit priority", func(t *testing.T) {
		form, appErr := parseForm(clone(map[string][]string{"priority": {"Urgent"}}))
		if appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if form.Priority != models.ComplaintPriorityUrgent {
			t.Fatalf("expected Urgent, got %s", form.Priority)
		}
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		if _, appErr := parseForm(clone(map[string][]string{"priority": {"Catastrophic"}})); appErr == nil {
			t.Fatal("expected a validation error")
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		form, appErr := parseForm(clone(map[string][]string{"subject": {"  Broken chair  "}}))
		if appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if form.Subject != "Broken chair" {
			t.Fatalf("subject not trimmed: %q", form.Subject)
		}
	})

	t.Run("anonymous flag", func(t *testing.T) {
		form, appErr := parseForm(clone(map[string][]string{"is_anonymous": {"true"}}))
		if appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if !form.IsAnonymous {
			t.Fatal("expected anonymous complaint")
		}
	})

	for _, field := range []string{"department", "category", "subject", "description"} {
		t.Run("missing "+field, func(t *testing.T) {
			if _, appErr := parseForm(clone(map[string][]string{field: nil})); appErr == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

// newCreateApp wires Create behind a stub that injects an authenticated user,
// bypassing token verification.
func newCreateApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/complaints", func(c *fiber.Ctx) error {
		user := &models.User{ID: uuid.New(), AuthUserID: uuid.New(), Email: "jane@example.com"}
		c.Locals(auth.LocalsUser, user)
		c.Locals(auth.LocalsClaims, &auth.Claims{
			Email:            user.Email,
			RegisteredClaims: jwt.RegisteredClaims{Subject: user.AuthUserID.String()},
		})
		return Create(c)
	})
	return app
}

func multipartBody(t *testing.T, fields map[string]string, attachments int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for i := 0; i < attachments; i++ {
		part, err := writer.CreateFormFile("attachments", "photo.png")
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write([]byte("fake image data")); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"department":  "BPO",
		"category":    "workplace",
		"subject":     "Broken chair",
		"description": "The chair at desk 14 is broken.",
	}
}

func TestCreateRejectsTooManyAttachments(t *testing.T) {
	app := newCreateApp()
	body, contentType := multipartBody(t, validFields(), MaxAttachments+1)

	req, _ := http.NewRequest(http.MethodPost, "/api/complaints", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if payload["error"] != "validation_error" {
		t.Fatalf("expected validation_error, got %v", payload["error"])
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	app := newCreateApp()
	fields := validFields()
	delete(fields, "subject")
	body, contentType := multipartBody(t, fields, 0)

	req, _ := http.NewRequest(http.MethodPost, "/api/complaints", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateRejectsInvalidPriority(t *testing.T) {
	app := newCreateApp()
	fields := validFields()
	fields["priority"] = "ASAP"
	body, contentType := multipartBody(t, fields, 0)

	req, _ := http.NewRequest(http.MethodPost, "/api/complaints", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDiscardUploadsWithStorageDisabled(t *testing.T) {
	// Cleanup is best-effort: with no storage backend configured every
	// delete fails, but that must only produce warnings.
	discardUploads(t.Context(), []string{"c-1/1_a.png", "c-1/2_b.png"})
}
