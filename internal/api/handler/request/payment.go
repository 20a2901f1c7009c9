package request

import "dronedesk/internal/api/models"

type MarkPaymentPaid struct {
	Method string `json:"method"`
}

type SubmitW9 struct {
	LegalName         string         `json:"legalName" validate:"required"`
	BusinessName      string         `json:"businessName"`
	TaxClassification string         `json:"taxClassification"`
	TINType           models.TINType `json:"tinType" validate:"required"`
	TINLast4          string         `json:"tinLast4" validate:"required,len=4"`
	Address           string         `json:"address"`
}

type ReviewW9 struct {
	Approved bool `json:"approved"`
}
