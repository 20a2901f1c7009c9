package response

import (
	"time"

	"dronedesk/internal/api/models"

	"github.com/shopspring/decimal"
)

type Job struct {
	ID            uint             `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Type          models.JobType   `json:"type"`
	Status        models.JobStatus `json:"status"`
	Priority      int              `json:"priority"`
	ClientID      uint             `json:"clientId"`
	Location      string           `json:"location"`
	ScheduledDate *time.Time       `json:"scheduledDate,omitempty"`
	CompletedDate *time.Time       `json:"completedDate,omitempty"`
	ClientPrice   *decimal.Decimal `json:"clientPrice,omitempty"`
	PilotPayout   *decimal.Decimal `json:"pilotPayout,omitempty"`
	// Commission is the derived display value (stored amount wins).
	Commission decimal.Decimal `json:"commission"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type Assignment struct {
	ID         uint       `json:"id"`
	JobID      uint       `json:"jobId"`
	PilotID    uint       `json:"pilotId"`
	AssignedAt time.Time  `json:"assignedAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	Superseded bool       `json:"superseded"`
	Notes      string     `json:"notes"`
	Payment    *Payment   `json:"payment,omitempty"`
}

type JobWithAssignments struct {
	Job
	Assignments []Assignment `json:"assignments"`
}
