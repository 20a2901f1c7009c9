package mapper

import (
	"dronedesk/internal/api/handler/request"
	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/models"
)

func ToLeadModel(req request.CreateLead) models.Lead {
	lead := models.Lead{
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Source:       req.Source,
		Notes:        req.Notes,
	}
	if req.Value != nil {
		lead.Value = *req.Value
	}
	return lead
}

func ToLeadResponse(lead models.Lead) response.Lead {
	return response.Lead{
		ID:                lead.ID,
		CompanyName:       lead.CompanyName,
		ContactName:       lead.ContactName,
		ContactEmail:      lead.ContactEmail,
		ContactPhone:      lead.ContactPhone,
		Source:            lead.Source,
		Status:            lead.Status,
		Value:             lead.Value,
		ConvertedClientID: lead.ConvertedClientID,
		CreatedAt:         lead.CreatedAt,
	}
}

func ToClientResponse(client models.Client) response.Client {
	return response.Client{
		ID:           client.ID,
		CompanyName:  client.CompanyName,
		ContactName:  client.ContactName,
		ContactEmail: client.ContactEmail,
		ContactPhone: client.ContactPhone,
		Address:      client.Address,
		LeadID:       client.LeadID,
		CreatedAt:    client.CreatedAt,
	}
}
