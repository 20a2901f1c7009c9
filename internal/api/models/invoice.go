package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus is the billing state of a client invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"
	InvoiceStatusSent    InvoiceStatus = "SENT"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
	InvoiceStatusVoid    InvoiceStatus = "VOID"
)

// invoiceTransitions defines the legal invoice edges. OVERDUE -> OVERDUE is
// present so the periodic sweep can re-run without erroring, and an overdue
// invoice can still be settled or voided.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:   {InvoiceStatusSent, InvoiceStatusVoid},
	InvoiceStatusSent:    {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusVoid},
	InvoiceStatusOverdue: {InvoiceStatusOverdue, InvoiceStatusPaid, InvoiceStatusVoid},
	InvoiceStatusPaid:    {},
	InvoiceStatusVoid:    {},
}

func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, next := range invoiceTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoid
}

// IsLocked reports whether line items and amounts may no longer change.
func (s InvoiceStatus) IsLocked() bool {
	return s.IsTerminal()
}

// Invoice bills a client, optionally for a specific job. The amount fields
// are derived from the line items and must always reconcile:
// Amount == sum(line totals) and TotalAmount == Amount + Tax.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint    `gorm:"not null;index" json:"clientId"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	JobID *uint `gorm:"index" json:"jobId,omitempty"`
	Job   *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`

	InvoiceNumber string        `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	Status        InvoiceStatus `gorm:"type:varchar(20);default:DRAFT;index" json:"status"`

	Amount      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount"`
	Tax         decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"tax"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"totalAmount"`

	IssueDate *time.Time `json:"issueDate,omitempty"`
	DueDate   *time.Time `gorm:"index" json:"dueDate,omitempty"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`

	LineItems []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"lineItems,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLineItem is one billed position. Total is always Qty x UnitPrice
// rounded to the cent; it is recomputed by the engine, never trusted from
// the caller.
type InvoiceLineItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"not null;index" json:"invoiceId"`

	Position    int             `gorm:"not null" json:"position"`
	Description string          `gorm:"not null" json:"description"`
	Qty         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"qty"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}
