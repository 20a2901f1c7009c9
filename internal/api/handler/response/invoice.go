package response

import (
	"time"

	"dronedesk/internal/api/models"

	"github.com/shopspring/decimal"
)

type InvoiceLineItem struct {
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

type Invoice struct {
	ID            uint                 `json:"id"`
	ClientID      uint                 `json:"clientId"`
	JobID         *uint                `json:"jobId,omitempty"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Status        models.InvoiceStatus `json:"status"`
	Amount        decimal.Decimal      `json:"amount"`
	Tax           decimal.Decimal      `json:"tax"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	IssueDate     *time.Time           `json:"issueDate,omitempty"`
	DueDate       *time.Time           `json:"dueDate,omitempty"`
	PaidAt        *time.Time           `json:"paidAt,omitempty"`
	LineItems     []InvoiceLineItem    `json:"lineItems"`
	CreatedAt     time.Time            `json:"createdAt"`
}
