package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a customer that orders jobs and receives invoices. When a client
// originated from a lead, LeadID points back at it; the unique index is what
// makes lead conversion idempotent under retry.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyName  string `json:"companyName"`
	ContactName  string `gorm:"not null" json:"contactName"`
	ContactEmail string `gorm:"not null;index" json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`

	LeadID *uint `gorm:"uniqueIndex" json:"leadId,omitempty"`

	Jobs     []Job     `gorm:"foreignKey:ClientID" json:"jobs,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}
