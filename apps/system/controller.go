package system

import (
	"time"

	"github.com/getevo/evo/v2"
	"github.com/getevo/evo/v2/lib/db"
	"github.com/stafflink/portal-backend/apps/models"
	"github.com/stafflink/portal-backend/lib/response"
)

type Controller struct{}

func (c Controller) HealthHandler(request *evo.Request) any {
	return response.OK("ok")
}

func (c Controller) UptimeHandler(request *evo.Request) any {
	uptimeData := map[string]any{
		"uptime": int64(time.Since(StartupTime).Seconds()),
	}
	return response.OK(uptimeData)
}

// GetDepartments returns the distinct department names known to the portal.
func (c Controller) GetDepartments(request *evo.Request) any {
	if err := models.Ensure(); err != nil {
		return response.Error(response.ErrDatabaseError)
	}

	var departments []string
	err := db.Model(&models.Role{}).
		Distinct("department_name").
		Order("department_name ASC").
		Pluck("department_name", &departments).Error
	if err != nil {
		return response.Error(response.ErrDatabaseError)
	}

	return response.List(departments, len(departments))
}

// Priority represents a complaint priority option
type Priority struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// GetPriorities returns the complaint priority options.
func (c Controller) GetPriorities(request *evo.Request) any {
	priorities := []Priority{
		{
			Value:       models.ComplaintPriorityLow,
			Label:       "Low",
			Description: "Minor issue, no urgency",
		},
		{
			Value:       models.ComplaintPriorityMedium,
			Label:       "Medium",
			Description: "Standard issue, handled in order",
		},
		{
			Value:       models.ComplaintPriorityHigh,
			Label:       "High",
			Description: "Significant issue affecting daily work",
		},
		{
			Value:       models.ComplaintPriorityUrgent,
			Label:       "Urgent",
			Description: "Critical issue requiring immediate attention",
		},
	}

	return response.List(priorities, len(priorities))
}
