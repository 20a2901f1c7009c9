package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobAssignment links a job to the pilot tasked to fly it. A job accumulates
// assignment rows over time, but at most one is active (non-superseded); the
// partial unique index on job_id is what holds that under concurrent
// assigns. AcceptedAt is nil until the pilot accepts.
type JobAssignment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	JobID uint `gorm:"not null;index;uniqueIndex:uniq_job_active_assignment,where:superseded = false AND deleted_at IS NULL" json:"jobId"`
	Job   *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`

	PilotID uint   `gorm:"not null;index" json:"pilotId"`
	Pilot   *Pilot `gorm:"foreignKey:PilotID" json:"pilot,omitempty"`

	AssignedAt time.Time  `gorm:"not null" json:"assignedAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	Superseded bool       `gorm:"default:false;index" json:"superseded"`
	Notes      string     `json:"notes"`

	Payment *PilotPayment `gorm:"foreignKey:AssignmentID" json:"payment,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (JobAssignment) TableName() string {
	return "job_assignments"
}

// IsAccepted reports whether the pilot has accepted the assignment.
func (a JobAssignment) IsAccepted() bool {
	return a.AcceptedAt != nil
}

// PaymentStatus is the payout stage of a pilot payment. Advancement is
// strictly monotonic: PENDING -> APPROVED -> PAID, no skipping.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusPaid     PaymentStatus = "PAID"
)

var paymentTransitions = map[PaymentStatus]PaymentStatus{
	PaymentStatusPending:  PaymentStatusApproved,
	PaymentStatusApproved: PaymentStatusPaid,
}

// CanTransitionTo reports whether target is the next stage after s.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	return paymentTransitions[s] == target
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid
}

// PilotPayment is money owed to a pilot for an accepted assignment. At most
// one payment exists per assignment, and a payment may only be created once
// the assignment has been accepted.
type PilotPayment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PilotID uint   `gorm:"not null;index" json:"pilotId"`
	Pilot   *Pilot `gorm:"foreignKey:PilotID" json:"pilot,omitempty"`

	AssignmentID uint           `gorm:"not null;uniqueIndex" json:"assignmentId"`
	Assignment   *JobAssignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`

	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status    PaymentStatus   `gorm:"type:varchar(20);default:PENDING;index" json:"status"`
	Method    string          `json:"method"`
	Reference string          `gorm:"type:varchar(64)" json:"reference"`

	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	PaidAt     *time.Time `gorm:"index" json:"paidAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PilotPayment) TableName() string {
	return "pilot_payments"
}
