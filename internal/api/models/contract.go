package models

import (
	"time"

	"gorm.io/gorm"
)

// ContractStatus is the signature state of a contract. SIGNED and VOID are
// terminal; a signature is an append-only fact and is never cleared.
type ContractStatus string

const (
	ContractStatusDraft  ContractStatus = "DRAFT"
	ContractStatusSent   ContractStatus = "SENT"
	ContractStatusSigned ContractStatus = "SIGNED"
	ContractStatusVoid   ContractStatus = "VOID"
)

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractStatusDraft:  {ContractStatusSent, ContractStatusVoid},
	ContractStatusSent:   {ContractStatusSigned, ContractStatusVoid},
	ContractStatusSigned: {},
	ContractStatusVoid:   {},
}

func (s ContractStatus) CanTransitionTo(target ContractStatus) bool {
	for _, next := range contractTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusSigned || s == ContractStatusVoid
}

// ExternalAgreementMarker builds the idempotency marker stored when an
// e-signature webhook signs a contract, e.g. "ADOBE:abc123".
func ExternalAgreementMarker(provider, agreementID string) string {
	return provider + ":" + agreementID
}

// SignatureProviderAdobe is the only e-signature provider currently wired.
const SignatureProviderAdobe = "ADOBE"

// Contract is an agreement with exactly one counterparty: a client or a
// pilot. Content is frozen at send time. The four signature fields are set
// together, atomically, on signing, and never individually.
type Contract struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title  string         `gorm:"not null" json:"title"`
	Type   string         `gorm:"type:varchar(40)" json:"type"`
	Status ContractStatus `gorm:"type:varchar(20);default:DRAFT;index" json:"status"`

	// Counterparty: exactly one of ClientID / PilotID is set.
	ClientID *uint   `gorm:"index" json:"clientId,omitempty"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	PilotID  *uint   `gorm:"index" json:"pilotId,omitempty"`
	Pilot    *Pilot  `gorm:"foreignKey:PilotID" json:"pilot,omitempty"`

	Content string     `gorm:"type:text" json:"content"`
	SentAt  *time.Time `json:"sentAt,omitempty"`

	SignedAt      *time.Time `json:"signedAt,omitempty"`
	SignedByName  *string    `json:"signedByName,omitempty"`
	SignedByEmail *string    `json:"signedByEmail,omitempty"`
	SignatureIP   *string    `gorm:"column:signature_ip" json:"signatureIp,omitempty"`

	// SignatureID is a server-generated id for the signing event itself.
	SignatureID *string `gorm:"type:varchar(64)" json:"signatureId,omitempty"`

	// ExternalAgreementID carries the "<PROVIDER>:<agreementId>" marker when
	// the signature arrived via webhook, making redelivery a no-op.
	ExternalAgreementID *string `gorm:"uniqueIndex" json:"externalAgreementId,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Contract) TableName() string {
	return "contracts"
}

// IsSigned reports whether the contract carries a complete signature.
func (c Contract) IsSigned() bool {
	return c.Status == ContractStatusSigned &&
		c.SignedAt != nil && c.SignedByName != nil && c.SignedByEmail != nil && c.SignatureIP != nil
}
