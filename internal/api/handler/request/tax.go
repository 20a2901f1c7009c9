package request

type EmailTaxReport struct {
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
}
