package mapper

import (
	"dronedesk/internal/api/handler/request"
	"dronedesk/internal/api/handler/response"
	"dronedesk/internal/api/models"
)

func ToInvoiceModel(req request.CreateInvoice) models.Invoice {
	return models.Invoice{
		ClientID:      req.ClientID,
		JobID:         req.JobID,
		InvoiceNumber: req.InvoiceNumber,
		Tax:           req.Tax,
		LineItems:     ToLineItemModels(req.LineItems),
	}
}

// ToLineItemModels carries only the caller-owned fields; position and total
// are recomputed by the engine.
func ToLineItemModels(items []request.LineItem) []models.InvoiceLineItem {
	out := make([]models.InvoiceLineItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.InvoiceLineItem{
			Description: item.Description,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
		})
	}
	return out
}

func ToInvoiceResponse(inv models.Invoice) response.Invoice {
	items := make([]response.InvoiceLineItem, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		items = append(items, response.InvoiceLineItem{
			Position:    item.Position,
			Description: item.Description,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return response.Invoice{
		ID:            inv.ID,
		ClientID:      inv.ClientID,
		JobID:         inv.JobID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        inv.Status,
		Amount:        inv.Amount,
		Tax:           inv.Tax,
		TotalAmount:   inv.TotalAmount,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		PaidAt:        inv.PaidAt,
		LineItems:     items,
		CreatedAt:     inv.CreatedAt,
	}
}
