package service

import (
	"errors"
	"fmt"
	"time"

	"dronedesk"
	"dronedesk/internal/api/models"
	"dronedesk/internal/api/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type PilotService struct {
	pilotRepo *repo.PilotRepository
	logger    zerolog.Logger
}

func NewPilotService() *PilotService {
	return &PilotService{
		pilotRepo: repo.NewPilotRepository(),
		logger:    dronedesk.Logger,
	}
}

// Create registers a new pilot
func (slf *PilotService) Create(pilot models.Pilot) (*models.Pilot, error) {
	if err := slf.pilotRepo.Db.Create(&pilot).Error; err != nil {
		slf.logger.Error().Err(err).Msg("Error creating pilot")
		return nil, err
	}
	return &pilot, nil
}

// FindByID retrieves a pilot with the current W-9 on file
func (slf *PilotService) FindByID(id uint) (*models.Pilot, error) {
	pilot, err := slf.pilotRepo.FindByIDWithW9(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pilot %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &pilot, nil
}

// SubmitW9 stores the pilot's current W-9, replacing any earlier submission
// and resetting review to PENDING. Only the TIN's last four digits are
// accepted; the caller must never send the full number.
func (slf *PilotService) SubmitW9(form models.W9Form) (*models.W9Form, error) {
	if len(form.TINLast4) != 4 {
		return nil, fmt.Errorf("tinLast4 must be exactly 4 digits: %w", models.ErrValidation)
	}
	if form.TINType != models.TINTypeSSN && form.TINType != models.TINTypeEIN {
		return nil, fmt.Errorf("tinType must be SSN or EIN: %w", models.ErrValidation)
	}
	if _, err := slf.pilotRepo.FindByID(form.PilotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pilot %d: %w", form.PilotID, models.ErrNotFound)
		}
		return nil, err
	}

	form.ReviewStatus = models.W9ReviewPending
	form.ReviewedAt = nil
	if err := slf.pilotRepo.UpsertW9(&form); err != nil {
		slf.logger.Error().Err(err).Uint("pilotId", form.PilotID).Msg("Error storing W-9")
		return nil, err
	}
	slf.logger.Info().Uint("pilotId", form.PilotID).Msg("W-9 submitted")
	return &form, nil
}

// ReviewW9 records the compliance decision on a pending W-9.
func (slf *PilotService) ReviewW9(pilotID uint, approved bool, actor models.Actor) (*models.W9Form, error) {
	var form models.W9Form
	err := slf.pilotRepo.Db.Where("pilot_id = ?", pilotID).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no W-9 on file for pilot %d: %w", pilotID, models.ErrNotFound)
		}
		return nil, err
	}

	status := models.W9ReviewApproved
	if !approved {
		status = models.W9ReviewRejected
	}
	now := time.Now()

	res := slf.pilotRepo.Db.Model(&models.W9Form{}).
		Where("id = ? AND review_status = ?", form.ID, form.ReviewStatus).
		Updates(map[string]any{
			"review_status": status,
			"reviewed_at":   now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("W-9 for pilot %d was modified concurrently: %w", pilotID, models.ErrConflict)
	}

	form.ReviewStatus = status
	form.ReviewedAt = &now
	slf.logger.Info().
		Uint("pilotId", pilotID).
		Str("reviewStatus", string(status)).
		Uint("actorId", actor.UserID).
		Msg("W-9 reviewed")
	return &form, nil
}
