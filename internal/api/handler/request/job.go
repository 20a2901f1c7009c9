package request

import (
	"time"

	"dronedesk/internal/api/models"

	"github.com/shopspring/decimal"
)

type CreateJob struct {
	Title          string           `json:"title" validate:"required"`
	Description    string           `json:"description"`
	Type           models.JobType   `json:"type"`
	ClientID       uint             `json:"clientId" validate:"required"`
	Priority       int              `json:"priority" validate:"omitempty,min=1,max=3"`
	Location       string           `json:"location"`
	ScheduledDate  *time.Time       `json:"scheduledDate,omitempty"`
	ClientPrice    *decimal.Decimal `json:"clientPrice,omitempty"`
	PilotPayout    *decimal.Decimal `json:"pilotPayout,omitempty"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
}

// TransitionJob requests one edge walk in the job lifecycle.
type TransitionJob struct {
	Status models.JobStatus `json:"status" validate:"required"`
}

type AssignPilot struct {
	PilotID uint   `json:"pilotId" validate:"required"`
	Notes   string `json:"notes"`
}
