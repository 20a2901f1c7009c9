package repo

import (
	"dronedesk"
	"dronedesk/internal/api/models"

	"gorm.io/gorm"
)

type LeadRepository struct {
	Db *gorm.DB
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{Db: dronedesk.DB}
}

// FindByID retrieves a lead by ID
func (slf *LeadRepository) FindByID(id uint) (models.Lead, error) {
	var lead models.Lead
	err := slf.Db.First(&lead, id).Error
	return lead, err
}

// FindAllByStatus retrieves leads in a pipeline stage, newest first
func (slf *LeadRepository) FindAllByStatus(status models.LeadStatus) ([]models.Lead, error) {
	var leads []models.Lead
	err := slf.Db.
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}
