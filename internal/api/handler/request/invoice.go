package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type LineItem struct {
	Description string          `json:"description" validate:"required"`
	Qty         decimal.Decimal `json:"qty" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"required"`
}

type CreateInvoice struct {
	ClientID      uint            `json:"clientId" validate:"required"`
	JobID         *uint           `json:"jobId,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber" validate:"required"`
	Tax           decimal.Decimal `json:"tax"`
	LineItems     []LineItem      `json:"lineItems" validate:"dive"`
}

// ReplaceLineItems rewrites the invoice positions; totals are recomputed
// server-side, never trusted from the payload.
type ReplaceLineItems struct {
	Tax       decimal.Decimal `json:"tax"`
	LineItems []LineItem      `json:"lineItems" validate:"required,dive"`
}

type SendInvoice struct {
	DueDate time.Time `json:"dueDate" validate:"required"`
}
