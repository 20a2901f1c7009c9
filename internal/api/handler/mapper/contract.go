package mapper

import (
	"dronedesk/internal/api/handler/request"
	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/models"
)

func ToContractModel(req request.CreateContract) models.Contract {
	return models.Contract{
		Title:    req.Title,
		Type:     req.Type,
		Content:  req.Content,
		ClientID: req.ClientID,
		PilotID:  req.PilotID,
	}
}

func ToContractResponse(c models.Contract) response.Contract {
	return response.Contract{
		ID:            c.ID,
		Title:         c.Title,
		Type:          c.Type,
		Status:        c.Status,
		ClientID:      c.ClientID,
		PilotID:       c.PilotID,
		SentAt:        c.SentAt,
		SignedAt:      c.SignedAt,
		SignedByName:  c.SignedByName,
		SignedByEmail: c.SignedByEmail,
		SignatureIP:   c.SignatureIP,
		CreatedAt:     c.CreatedAt,
	}
}

func ToContractResponses(contracts []models.Contract) []response.Contract {
	out := make([]response.Contract, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, ToContractResponse(c))
	}
	return out
}
