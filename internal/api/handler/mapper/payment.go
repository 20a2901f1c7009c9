package mapper

import (
	"dronedesk/internal/api/handler/request"
	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/models"
)

func ToPilotModel(req request.CreatePilot) models.Pilot {
	return models.Pilot{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		CertificateNumber: req.CertificateNumber,
	}
}

func ToPilotResponse(pilot models.Pilot) response.Pilot {
	out := response.Pilot{
		ID:                pilot.ID,
		FirstName:         pilot.FirstName,
		LastName:          pilot.LastName,
		Email:             pilot.Email,
		Phone:             pilot.Phone,
		CertificateNumber: pilot.CertificateNumber,
		Active:            pilot.Active,
		CreatedAt:         pilot.CreatedAt,
	}
	if pilot.W9 != nil {
		w9 := ToW9Response(*pilot.W9)
		out.W9 = &w9
	}
	return out
}

func ToPaymentResponse(p models.PilotPayment) response.Payment {
	return response.Payment{
		ID:           p.ID,
		PilotID:      p.PilotID,
		AssignmentID: p.AssignmentID,
		Amount:       p.Amount,
		Status:       p.Status,
		Method:       p.Method,
		Reference:    p.Reference,
		ApprovedAt:   p.ApprovedAt,
		PaidAt:       p.PaidAt,
	}
}

func ToW9Response(w9 models.W9Form) response.W9 {
	return response.W9{
		PilotID:           w9.PilotID,
		LegalName:         w9.LegalName,
		BusinessName:      w9.BusinessName,
		TaxClassification: w9.TaxClassification,
		TINType:           w9.TINType,
		MaskedTIN:         models.MaskTIN(w9.TINType, w9.TINLast4),
		ReviewStatus:      w9.ReviewStatus,
		ReviewedAt:        w9.ReviewedAt,
	}
}
