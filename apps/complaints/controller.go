package complaints

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/getevo/evo/v2"
	"github.com/getevo/evo/v2/lib/db"
	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/pagination"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stafflink/portal-backend/apps/auth"
	"github.com/stafflink/portal-backend/apps/events"
	"github.com/stafflink/portal-backend/apps/models"
	"github.com/stafflink/portal-backend/apps/storage"
	"github.com/stafflink/portal-backend/lib/response"
	"github.com/stafflink/portal-backend/lib/scopedb"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxAttachments caps the number of files per complaint.
const MaxAttachments = 5

// Controller handles complaint endpoints
type Controller struct{}

// List handles GET /api/complaints, newest first, paginated.
func (c Controller) List(request *evo.Request) any {
	if err := models.Ensure(); err != nil {
		return response.Error(response.ErrDatabaseError)
	}

	var complaints []models.Complaint
	query := db.Model(&models.Complaint{}).Order("created_at DESC")

	p, err := pagination.New(query, request, &complaints, pagination.Options{MaxSize: 100})
	if err != nil {
		return response.Error(response.ErrDatabaseError)
	}

	return response.OKWithMeta(map[string]any{"complaints": complaints}, &response.Meta{
		Page:       p.CurrentPage,
		Limit:      p.Size,
		Total:      int64(p.Records),
		TotalPages: p.Pages,
		Count:      len(complaints),
	})
}

// Mine handles GET /api/complaints/mine, the caller's complaints newest first.
func (c Controller) Mine(request *evo.Request) any {
	user, _, appErr := auth.RequestUser(request)
	if appErr != nil {
		return response.Error(*appErr)
	}

	var complaints []models.Complaint
	err := db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&complaints).Error
	if err != nil {
		return response.Error(response.ErrDatabaseError)
	}

	return response.List(map[string]any{"complaints": complaints}, len(complaints))
}

// createForm is the parsed multipart complaint submission.
type createForm struct {
	DepartmentName string
	Category       string
	Priority       string
	Subject        string
	Description    string
	IsAnonymous    bool
}

// parseForm reads and validates the multipart form fields. The returned
// AppError is nil when the form is acceptable.
func parseForm(form *multipart.Form) (*createForm, *response.AppError) {
	value := func(key string) string {
		if vs, ok := form.Value[key]; ok && len(vs) > 0 {
			return strings.TrimSpace(vs[0])
		}
		return ""
	}

	out := &createForm{
		DepartmentName: value("department"),
		Category:       value("category"),
		Priority:       value("priority"),
		Subject:        value("subject"),
		Description:    value("description"),
		IsAnonymous:    value("is_anonymous") == "true",
	}

	if out.DepartmentName == "" || out.Category == "" || out.Subject == "" || out.Description == "" {
		return nil, &response.ErrMissingRequired
	}

	if out.Priority == "" {
		out.Priority = models.ComplaintPriorityMedium
	}
	if !models.IsValidComplaintPriority(out.Priority) {
		return nil, &response.ErrInvalidInput
	}

	return out, nil
}

// uploadAttachments pushes each file to the complaint bucket and returns the
// public URLs and object keys in submission order. On failure the keys
// uploaded so far are returned so the caller can discard them.
func uploadAttachments(ctx context.Context, complaintID uuid.UUID, files []*multipart.FileHeader) (urls, keys []string, err error) {
	urls = make([]string, 0, len(files))
	keys = make([]string, 0, len(files))
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			return urls, keys, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return urls, keys, err
		}

		key := storage.ObjectPath(complaintID.String(), time.Now(), file.Filename)
		contentType := file.Header.Get("Content-Type")
		if err := storage.Upload(ctx, storage.ComplaintBucket, key, data, contentType); err != nil {
			return urls, keys, err
		}
		keys = append(keys, key)
		urls = append(urls, storage.PublicURL(storage.ComplaintBucket, key))
	}
	return urls, keys, nil
}

// discardUploads removes objects belonging to a complaint that was never
// written, so rejected submissions leave no orphaned attachments behind.
func discardUploads(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := storage.Delete(ctx, storage.ComplaintBucket, key); err != nil {
			log.Warning("Failed to remove orphaned attachment %s: %v", key, err)
		}
	}
}

// Create handles POST /api/complaints. Registered directly on the fiber
// router behind RequireAuth because it consumes a multipart form.
func Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromLocals(c)
	if !ok {
		return fiberError(c, response.ErrUnauthorized)
	}
	claims, ok := auth.ClaimsFromLocals(c)
	if !ok {
		return fiberError(c, response.ErrUnauthorized)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiberError(c, response.ErrInvalidInput)
	}

	input, appErr := parseForm(form)
	if appErr != nil {
		return fiberError(c, *appErr)
	}

	files := form.File["attachments"]
	if len(files) > MaxAttachments {
		return fiberError(c, response.NewError(response.ErrorCodeValidation,
			"A complaint can carry at most 5 attachments", fiber.StatusBadRequest))
	}

	if err := models.Ensure(); err != nil {
		return fiberError(c, response.ErrDatabaseError)
	}

	ctx := context.Background()
	if len(files) > 0 {
		if err := storage.EnsureBucket(ctx, storage.ComplaintBucket); err != nil {
			log.Error("Failed to ensure complaint bucket: %v", err)
			return fiberError(c, response.ErrUpstreamError)
		}
	}

	complaintID := uuid.New()
	urls, keys, err := uploadAttachments(ctx, complaintID, files)
	if err != nil {
		log.Error("Attachment upload failed for complaint %s: %v", complaintID, err)
		discardUploads(ctx, keys)
		return fiberError(c, response.ErrUpstreamError)
	}

	attachments, err := json.Marshal(urls)
	if err != nil {
		discardUploads(ctx, keys)
		return fiberError(c, response.ErrInternalError)
	}

	complaint := models.Complaint{
		ID:              complaintID,
		UserID:          &user.ID,
		RoleID:          user.RoleID,
		DepartmentName:  input.DepartmentName,
		Category:        input.Category,
		Priority:        input.Priority,
		Subject:         input.Subject,
		Description:     input.Description,
		AttachmentsURLs: datatypes.JSON(attachments),
		IsAnonymous:     input.IsAnonymous,
		Status:          models.ComplaintStatusOpen,
	}

	// Insert under the caller's identity so the row-level security policy
	// checks ownership and department membership.
	err = scopedb.AsUser(scopedb.Claims{Sub: claims.Subject, Email: claims.Email}, func(tx *gorm.DB) error {
		return tx.Create(&complaint).Error
	})
	if err != nil {
		log.Error("Complaint insert rejected for user %s: %v", user.ID, err)
		discardUploads(ctx, keys)
		return fiberError(c, response.ErrDatabaseError)
	}

	events.ComplaintCreated(complaint.ID.String(), complaint.DepartmentName, complaint.Priority, len(urls))

	return c.Status(fiber.StatusCreated).JSON(response.APIResponse{
		Success: true,
		Data:    map[string]any{"complaint": complaint},
		Message: "Complaint submitted successfully",
	})
}

func fiberError(c *fiber.Ctx, appErr response.AppError) error {
	return c.Status(appErr.StatusCode).JSON(fiber.Map{
		"error":   string(appErr.Code),
		"message": appErr.Message,
	})
}
