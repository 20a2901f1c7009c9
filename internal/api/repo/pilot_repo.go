package repo

import (
	"errors"

	"dronedesk"
	"dronedesk/internal/api/models"

	"gorm.io/gorm"
)

type PilotRepository struct {
	Db *gorm.DB
}

func NewPilotRepository() *PilotRepository {
	return &PilotRepository{Db: dronedesk.DB}
}

// FindByID retrieves a pilot by ID
func (slf *PilotRepository) FindByID(id uint) (models.Pilot, error) {
	var pilot models.Pilot
	err := slf.Db.First(&pilot, id).Error
	return pilot, err
}

// FindByIDWithW9 retrieves a pilot with the current W-9 on file
func (slf *PilotRepository) FindByIDWithW9(id uint) (models.Pilot, error) {
	var pilot models.Pilot
	err := slf.Db.Preload("W9").First(&pilot, id).Error
	return pilot, err
}

// FindAllByIDsWithW9 retrieves the given pilots with their W-9s in one query
func (slf *PilotRepository) FindAllByIDsWithW9(ids []uint) ([]models.Pilot, error) {
	var pilots []models.Pilot
	err := slf.Db.Preload("W9").Where("id IN ?", ids).Find(&pilots).Error
	return pilots, err
}

// UpsertW9 replaces the pilot's current W-9 record
func (slf *PilotRepository) UpsertW9(form *models.W9Form) error {
	var existing models.W9Form
	err := slf.Db.Where("pilot_id = ?", form.PilotID).First(&existing).Error
	if err == nil {
		form.ID = existing.ID
		return slf.Db.Save(form).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return slf.Db.Create(form).Error
	}
	return err
}
