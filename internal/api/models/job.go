package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobStatusDraft             JobStatus = "DRAFT"
	JobStatusPendingAssignment JobStatus = "PENDING_ASSIGNMENT"
	JobStatusAssigned          JobStatus = "ASSIGNED"
	JobStatusInProgress        JobStatus = "IN_PROGRESS"
	JobStatusCaptureComplete   JobStatus = "CAPTURE_COMPLETE"
	JobStatusDelivered         JobStatus = "DELIVERED"
	JobStatusCompleted         JobStatus = "COMPLETED"
	JobStatusCancelled         JobStatus = "CANCELLED"
)

// JobStatuses lists every job state, in lifecycle order.
var JobStatuses = []JobStatus{
	JobStatusDraft,
	JobStatusPendingAssignment,
	JobStatusAssigned,
	JobStatusInProgress,
	JobStatusCaptureComplete,
	JobStatusDelivered,
	JobStatusCompleted,
	JobStatusCancelled,
}

// jobTransitions is the single definition of the legal job status graph.
// Every state but the terminal two may also move to CANCELLED; that edge is
// handled in CanTransitionTo rather than repeated per row.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:             {JobStatusPendingAssignment},
	JobStatusPendingAssignment: {JobStatusAssigned},
	JobStatusAssigned:          {JobStatusInProgress},
	JobStatusInProgress:        {JobStatusCaptureComplete},
	JobStatusCaptureComplete:   {JobStatusDelivered},
	JobStatusDelivered:         {JobStatusCompleted},
	JobStatusCompleted:         {},
	JobStatusCancelled:         {},
}

// IsTerminal reports whether no further transition is permitted.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// IsValid reports whether s is a known job status.
func (s JobStatus) IsValid() bool {
	_, ok := jobTransitions[s]
	return ok
}

// CanTransitionTo reports whether the edge s -> target is in the job graph.
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == JobStatusCancelled {
		return true
	}
	for _, next := range jobTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// JobType is the category of drone work being ordered.
type JobType string

const (
	JobTypeMapping    JobType = "mapping"
	JobTypeInspection JobType = "inspection"
	JobTypeRealEstate JobType = "real_estate"
	JobTypeSurvey     JobType = "survey"
	JobTypeOther      JobType = "other"
)

// Job priorities, 1 = highest.
const (
	JobPriorityHigh   = 1
	JobPriorityMedium = 2
	JobPriorityLow    = 3
)

type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Type        JobType   `gorm:"type:varchar(20);default:other" json:"type"`
	Status      JobStatus `gorm:"type:varchar(30);default:DRAFT;index" json:"status"`
	Priority    int       `gorm:"default:2" json:"priority"`

	ClientID uint    `gorm:"not null;index" json:"clientId"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`

	Location string `json:"location"`

	// Money is fixed-point: commission and payout math must not drift.
	ClientPrice    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"clientPrice,omitempty"`
	PilotPayout    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"pilotPayout,omitempty"`
	CommissionRate decimal.Decimal  `gorm:"type:numeric(5,2);default:0" json:"commissionRate"`
	// CommissionAmount, when set, is authoritative over the rate-derived figure.
	CommissionAmount *decimal.Decimal `gorm:"type:numeric(12,2)" json:"commissionAmount,omitempty"`

	Assignments []JobAssignment `gorm:"foreignKey:JobID" json:"assignments,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}

// Commission returns the commission owed on the job. A stored commission
// amount wins; the rate-derived figure is a fallback, so a retroactive rate
// change cannot silently rewrite history.
func (slf Job) Commission() decimal.Decimal {
	if slf.CommissionAmount != nil {
		return slf.CommissionAmount.RoundBank(2)
	}
	if slf.ClientPrice == nil {
		return decimal.Zero
	}
	return slf.ClientPrice.Mul(slf.CommissionRate).Div(decimal.NewFromInt(100)).RoundBank(2)
}
