package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Pilot is a contractor who flies jobs and receives payouts.
type Pilot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string `json:"phone"`

	// FAA Part 107 certificate number, informational only.
	CertificateNumber string `json:"certificateNumber"`
	Active            bool   `gorm:"default:true" json:"active"`

	W9 *W9Form `gorm:"foreignKey:PilotID" json:"w9,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Pilot) TableName() string {
	return "pilots"
}

// W9ReviewStatus is the compliance review state of a submitted W-9.
type W9ReviewStatus string

const (
	W9ReviewPending  W9ReviewStatus = "PENDING"
	W9ReviewApproved W9ReviewStatus = "APPROVED"
	W9ReviewRejected W9ReviewStatus = "REJECTED"
)

// TINType distinguishes the taxpayer id kind on a W-9.
type TINType string

const (
	TINTypeSSN TINType = "SSN"
	TINTypeEIN TINType = "EIN"
)

// W9Form is the current W-9 on file for a pilot; resubmission replaces the
// row. Only the last four digits of the TIN are ever retained.
type W9Form struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PilotID uint `gorm:"not null;uniqueIndex" json:"pilotId"`

	LegalName         string  `gorm:"not null" json:"legalName"`
	BusinessName      string  `json:"businessName"`
	TaxClassification string  `json:"taxClassification"`
	TINType           TINType `gorm:"type:varchar(3);not null" json:"tinType"`
	TINLast4          string  `gorm:"type:varchar(4);not null" json:"tinLast4"`
	Address           string  `json:"address"`

	ReviewStatus W9ReviewStatus `gorm:"type:varchar(20);default:PENDING" json:"reviewStatus"`
	ReviewedAt   *time.Time     `json:"reviewedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (W9Form) TableName() string {
	return "w9_forms"
}

// Masked TIN render formats, one per TIN type.
const (
	SSNMaskFormat = "***-**-%s"
	EINMaskFormat = "**-***%s"
)

// MaskTIN renders a masked taxpayer id from its last four digits. The full
// number never reaches this system, only the masked form is ever rendered.
func MaskTIN(tinType TINType, last4 string) string {
	if last4 == "" {
		return ""
	}
	if tinType == TINTypeEIN {
		return fmt.Sprintf(EINMaskFormat, last4)
	}
	return fmt.Sprintf(SSNMaskFormat, last4)
}
