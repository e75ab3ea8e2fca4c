package events

import (
	"encoding/json"
	"time"

	"github.com/getevo/evo/v2/lib/log"
)

// Subjects for portal events.
const (
	SubjectUserSignedUp     = "portal.user.signedup"
	SubjectComplaintCreated = "portal.complaint.created"
)

// Envelope is the payload shape published for every portal event.
type Envelope struct {
	Event     string         `json:"event"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// publish sends an event envelope. Best-effort by contract: a failed publish
// logs and never fails the originating request.
func publish(subject string, data map[string]any) {
	if !IsConnected() {
		return
	}
	conn := Connection()

	payload, err := json.Marshal(Envelope{
		Event:     subject,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	})
	if err != nil {
		log.Warning("Failed to marshal %s event: %v", subject, err)
		return
	}

	if err := conn.Publish(subject, payload); err != nil {
		log.Warning("Failed to publish %s event: %v", subject, err)
	}
}

// UserSignedUp announces a completed signup.
func UserSignedUp(userID, email, departmentName string) {
	publish(SubjectUserSignedUp, map[string]any{
		"user_id":         userID,
		"email":           email,
		"department_name": departmentName,
	})
}

// ComplaintCreated announces a newly submitted complaint.
func ComplaintCreated(complaintID, departmentName, priority string, attachments int) {
	publish(SubjectComplaintCreated, map[string]any{
		"complaint_id":    complaintID,
		"department_name": departmentName,
		"priority":        priority,
		"attachments":     attachments,
	})
}
