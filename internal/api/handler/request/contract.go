package request

type CreateContract struct {
	Title    string `json:"title" validate:"required"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	ClientID *uint  `json:"clientId,omitempty"`
	PilotID  *uint  `json:"pilotId,omitempty"`
}

type SendContract struct {
	// Content, when set, replaces the draft text before it freezes.
	Content string `json:"content"`
}

type SignContract struct {
	SignerName  string `json:"signerName" validate:"required"`
	SignerEmail string `json:"signerEmail" validate:"required,email"`
}

// AdobeSignWebhook is the payload the e-signature callback delivers. The
// agreement id doubles as the idempotency key for redeliveries.
type AdobeSignWebhook struct {
	ContractID  uint   `json:"contractId" validate:"required"`
	AgreementID string `json:"agreementId" validate:"required"`
	SignerName  string `json:"signerName" validate:"required"`
	SignerEmail string `json:"signerEmail" validate:"required,email"`
	SignerIP    string `json:"signerIp"`
}
