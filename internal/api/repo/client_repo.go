package repo

import (
	"dronedesk"
	"dronedesk/internal/api/models"

	"gorm.io/gorm"
)

type ClientRepository struct {
	Db *gorm.DB
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{Db: dronedesk.DB}
}

// FindByID retrieves a client by ID
func (slf *ClientRepository) FindByID(id uint) (models.Client, error) {
	var client models.Client
	err := slf.Db.First(&client, id).Error
	return client, err
}

// FindByLead retrieves the client a lead converted into, if any
func (slf *ClientRepository) FindByLead(tx *gorm.DB, leadID uint) (models.Client, error) {
	var client models.Client
	err := tx.Where("lead_id = ?", leadID).First(&client).Error
	return client, err
}

// GetAll retrieves all clients
func (slf *ClientRepository) GetAll() ([]models.Client, error) {
	var clients []models.Client
	err := slf.Db.Order("company_name ASC").Find(&clients).Error
	return clients, err
}
