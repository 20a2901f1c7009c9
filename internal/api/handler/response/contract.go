package response

import (
	"time"

	"dronedesk/internal/api/models"
)

type Contract struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	Type          string                `json:"type,omitempty"`
	Status        models.ContractStatus `json:"status"`
	ClientID      *uint                 `json:"clientId,omitempty"`
	PilotID       *uint                 `json:"pilotId,omitempty"`
	SentAt        *time.Time            `json:"sentAt,omitempty"`
	SignedAt      *time.Time            `json:"signedAt,omitempty"`
	SignedByName  *string               `json:"signedByName,omitempty"`
	SignedByEmail *string               `json:"signedByEmail,omitempty"`
	SignatureIP   *string               `json:"signatureIp,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}
