package response

import "time"

type Pilot struct {
	ID                uint      `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	CertificateNumber string    `json:"certificateNumber,omitempty"`
	Active            bool      `json:"active"`
	W9                *W9       `json:"w9,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
