package service

import (
	"errors"
	"fmt"

	"dronedesk"
	"dronedesk/internal/api/models"
	"dronedesk/internal/api/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type LeadService struct {
	leadRepo   *repo.LeadRepository
	clientRepo *repo.ClientRepository
	logger     zerolog.Logger
}

func NewLeadService() *LeadService {
	return &LeadService{
		leadRepo:   repo.NewLeadRepository(),
		clientRepo: repo.NewClientRepository(),
		logger:     dronedesk.Logger,
	}
}

// Create registers a new lead in NEW
func (slf *LeadService) Create(lead models.Lead) (*models.Lead, error) {
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if err := slf.leadRepo.Db.Create(&lead).Error; err != nil {
		slf.logger.Error().Err(err).Msg("Error creating lead")
		return nil, err
	}
	return &lead, nil
}

// FindByID retrieves a lead by ID
func (slf *LeadService) FindByID(id uint) (*models.Lead, error) {
	lead, err := slf.leadRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lead %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &lead, nil
}

// Transition moves a lead along the sales pipeline.
func (slf *LeadService) Transition(leadID uint, target models.LeadStatus, actor models.Actor) (*models.Lead, error) {
	lead, err := slf.FindByID(leadID)
	if err != nil {
		return nil, err
	}

	current := lead.Status
	if !current.CanTransitionTo(target) {
		return nil, models.NewInvalidTransition("lead", string(current), string(target))
	}

	res := slf.leadRepo.Db.Model(&models.Lead{}).
		Where("id = ? AND status = ?", leadID, current).
		Update("status", target)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("lead %d was modified concurrently: %w", leadID, models.ErrConflict)
	}

	slf.logger.Info().
		Uint("leadId", leadID).
		Str("from", string(current)).
		Str("to", string(target)).
		Uint("actorId", actor.UserID).
		Msg("Lead transitioned")

	return slf.FindByID(leadID)
}

// ConvertToClient turns a won lead into a client exactly once. The check on
// the clients.lead_id back-reference runs inside the same transaction as the
// create, so a retried conversion finds the first client instead of making a
// duplicate; the unique index backs this up under concurrency.
func (slf *LeadService) ConvertToClient(leadID uint, actor models.Actor) (*models.Client, error) {
	tx := slf.leadRepo.Db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	existing, err := slf.clientRepo.FindByLead(tx, leadID)
	if err == nil {
		tx.Rollback()
		slf.logger.Info().Uint("leadId", leadID).Uint("clientId", existing.ID).Msg("Lead already converted")
		return nil, fmt.Errorf("lead %d already converted to client %d: %w", leadID, existing.ID, models.ErrAlreadyConverted)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, err
	}

	var lead models.Lead
	if err = tx.First(&lead, leadID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lead %d: %w", leadID, models.ErrNotFound)
		}
		return nil, err
	}
	if lead.Status == models.LeadStatusConverted {
		tx.Rollback()
		return nil, fmt.Errorf("lead %d already converted: %w", leadID, models.ErrAlreadyConverted)
	}
	if lead.Status != models.LeadStatusWon {
		tx.Rollback()
		return nil, fmt.Errorf("lead %d is %s, only won leads convert: %w", leadID, lead.Status, models.ErrPreconditionFailed)
	}

	client := models.Client{
		CompanyName:  lead.CompanyName,
		ContactName:  lead.ContactName,
		ContactEmail: lead.ContactEmail,
		ContactPhone: lead.ContactPhone,
		LeadID:       &lead.ID,
	}
	if err = tx.Create(&client).Error; err != nil {
		tx.Rollback()
		// A concurrent conversion can slip past the FindByLead check; the
		// clients.lead_id unique index is the arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("lead %d already converted: %w", leadID, models.ErrAlreadyConverted)
		}
		slf.logger.Error().Err(err).Uint("leadId", leadID).Msg("Error creating client from lead")
		return nil, err
	}

	res := tx.Model(&models.Lead{}).
		Where("id = ? AND status = ?", leadID, models.LeadStatusWon).
		Updates(map[string]any{
			"status":              models.LeadStatusConverted,
			"converted_client_id": client.ID,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("lead %d was modified concurrently: %w", leadID, models.ErrConflict)
	}

	if err = tx.Commit().Error; err != nil {
		slf.logger.Error().Err(err).Uint("leadId", leadID).Msg("Error committing lead conversion")
		return nil, err
	}

	slf.logger.Info().
		Uint("leadId", leadID).
		Uint("clientId", client.ID).
		Uint("actorId", actor.UserID).
		Msg("Lead converted to client")

	return &client, nil
}
