package response

import (
	"time"

	"dronedesk/internal/api/models"

	"github.com/shopspring/decimal"
)

type Lead struct {
	ID                uint              `json:"id"`
	CompanyName       string            `json:"companyName,omitempty"`
	ContactName       string            `json:"contactName"`
	ContactEmail      string            `json:"contactEmail"`
	ContactPhone      string            `json:"contactPhone,omitempty"`
	Source            string            `json:"source,omitempty"`
	Status            models.LeadStatus `json:"status"`
	Value             decimal.Decimal   `json:"value"`
	ConvertedClientID *uint             `json:"convertedClientId,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

type Client struct {
	ID           uint      `json:"id"`
	CompanyName  string    `json:"companyName,omitempty"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Address      string    `json:"address,omitempty"`
	LeadID       *uint     `json:"leadId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
