package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeadStatus is the sales pipeline stage of a lead or quote request.
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "NEW"
	LeadStatusContacted    LeadStatus = "CONTACTED"
	LeadStatusQualified    LeadStatus = "QUALIFIED"
	LeadStatusProposalSent LeadStatus = "PROPOSAL_SENT"
	LeadStatusNegotiating  LeadStatus = "NEGOTIATING"
	LeadStatusWon          LeadStatus = "WON"
	LeadStatusLost         LeadStatus = "LOST"
	LeadStatusConverted    LeadStatus = "CONVERTED"
)

// leadTransitions models the pipeline NEW -> ... -> {WON|LOST}. A lead may
// be marked LOST from any live stage. CONVERTED is reached only through
// ConvertToClient, from WON.
var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadStatusNew:          {LeadStatusContacted, LeadStatusLost},
	LeadStatusContacted:    {LeadStatusQualified, LeadStatusLost},
	LeadStatusQualified:    {LeadStatusProposalSent, LeadStatusLost},
	LeadStatusProposalSent: {LeadStatusNegotiating, LeadStatusWon, LeadStatusLost},
	LeadStatusNegotiating:  {LeadStatusWon, LeadStatusLost},
	LeadStatusWon:          {LeadStatusConverted},
	LeadStatusLost:         {},
	LeadStatusConverted:    {},
}

func (s LeadStatus) CanTransitionTo(target LeadStatus) bool {
	for _, next := range leadTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusLost || s == LeadStatusConverted
}

// Lead is an inbound quote request that may convert into a Client exactly
// once. The conversion back-reference lives on clients.lead_id.
type Lead struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyName  string     `json:"companyName"`
	ContactName  string     `gorm:"not null" json:"contactName"`
	ContactEmail string     `gorm:"not null" json:"contactEmail"`
	ContactPhone string     `json:"contactPhone"`
	Source       string     `json:"source"`
	Status       LeadStatus `gorm:"type:varchar(20);default:NEW;index" json:"status"`

	// Value is the estimated deal size.
	Value decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"value"`
	Notes string          `json:"notes"`

	ConvertedClientID *uint   `json:"convertedClientId,omitempty"`
	ConvertedClient   *Client `gorm:"foreignKey:ConvertedClientID" json:"convertedClient,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lead) TableName() string {
	return "leads"
}
