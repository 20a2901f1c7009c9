package response

import (
	"time"

	"dronedesk/internal/api/models"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID           uint                 `json:"id"`
	PilotID      uint                 `json:"pilotId"`
	AssignmentID uint                 `json:"assignmentId"`
	Amount       decimal.Decimal      `json:"amount"`
	Status       models.PaymentStatus `json:"status"`
	Method       string               `json:"method,omitempty"`
	Reference    string               `json:"reference"`
	ApprovedAt   *time.Time           `json:"approvedAt,omitempty"`
	PaidAt       *time.Time           `json:"paidAt,omitempty"`
}

type W9 struct {
	PilotID           uint                  `json:"pilotId"`
	LegalName         string                `json:"legalName"`
	BusinessName      string                `json:"businessName,omitempty"`
	TaxClassification string                `json:"taxClassification,omitempty"`
	TINType           models.TINType        `json:"tinType"`
	MaskedTIN         string                `json:"maskedTin"`
	ReviewStatus      models.W9ReviewStatus `json:"reviewStatus"`
	ReviewedAt        *time.Time            `json:"reviewedAt,omitempty"`
}
