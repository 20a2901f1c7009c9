package repo

import (
	"dronedesk"
	"dronedesk/internal/api/models"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	Db *gorm.DB
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{Db: dronedesk.DB}
}

// FindByID retrieves an invoice with its line items in position order
func (slf *InvoiceRepository) FindByID(id uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := slf.Db.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_line_items.position ASC")
		}).
		First(&invoice, id).Error
	return invoice, err
}

// FindAllByClient retrieves a client's invoices, newest first
func (slf *InvoiceRepository) FindAllByClient(clientID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := slf.Db.
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// ExistsByNumber checks the human-assigned invoice number sequence
func (slf *InvoiceRepository) ExistsByNumber(number string) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.Invoice{}).Where("invoice_number = ?", number).Count(&count).Error
	return count > 0, err
}
