package request

import (
	"dronedesk/internal/api/models"

	"github.com/shopspring/decimal"
)

type CreateLead struct {
	CompanyName  string           `json:"companyName"`
	ContactName  string           `json:"contactName" validate:"required"`
	ContactEmail string           `json:"contactEmail" validate:"required,email"`
	ContactPhone string           `json:"contactPhone"`
	Source       string           `json:"source"`
	Value        *decimal.Decimal `json:"value,omitempty"`
	Notes        string           `json:"notes"`
}

type TransitionLead struct {
	Status models.LeadStatus `json:"status" validate:"required"`
}
