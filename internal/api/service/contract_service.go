package service

import (
	"errors"
	"fmt"
	"time"

	"dronedesk"
	"dronedesk/internal/api/models"
	"dronedesk/internal/api/repo"
	"dronedesk/pkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ContractService struct {
	contractRepo *repo.ContractRepository
	logger       zerolog.Logger
}

func NewContractService() *ContractService {
	return &ContractService{
		contractRepo: repo.NewContractRepository(),
		logger:       dronedesk.Logger,
	}
}

// Create registers a DRAFT contract. Exactly one counterparty is required.
func (slf *ContractService) Create(contract models.Contract) (*models.Contract, error) {
	if (contract.ClientID == nil) == (contract.PilotID == nil) {
		return nil, fmt.Errorf("contract needs exactly one counterparty: %w", models.ErrValidation)
	}
	contract.Status = models.ContractStatusDraft
	if err := slf.contractRepo.Db.Create(&contract).Error; err != nil {
		slf.logger.Error().Err(err).Msg("Error creating contract")
		return nil, err
	}
	return &contract, nil
}

// FindByID retrieves a contract by ID
func (slf *ContractService) FindByID(id uint) (*models.Contract, error) {
	contract, err := slf.contractRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contract %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &contract, nil
}

// Send freezes the contract text and moves DRAFT -> SENT. The stored content
// is what gets signed; later template edits must not reach a sent contract.
func (slf *ContractService) Send(contractID uint, content string, actor models.Actor) (*models.Contract, error) {
	contract, err := slf.FindByID(contractID)
	if err != nil {
		return nil, err
	}
	if !contract.Status.CanTransitionTo(models.ContractStatusSent) {
		return nil, models.NewInvalidTransition("contract", string(contract.Status), string(models.ContractStatusSent))
	}

	updates := map[string]any{
		"status":  models.ContractStatusSent,
		"sent_at": time.Now(),
	}
	if content != "" {
		updates["content"] = content
	}

	res := slf.contractRepo.Db.Model(&models.Contract{}).
		Where("id = ? AND status = ?", contractID, contract.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("contract %d was modified concurrently: %w", contractID, models.ErrConflict)
	}

	slf.logger.Info().Uint("contractId", contractID).Uint("actorId", actor.UserID).Msg("Contract sent")
	return slf.FindByID(contractID)
}

// Sign records the signing event. The status check and the write of all four
// signature fields happen in a single conditional UPDATE keyed on SENT, so a
// double-submission cannot overwrite a prior signature: the losing caller
// re-reads and gets AlreadySigned (or Voided), never a corrupted record.
func (slf *ContractService) Sign(contractID uint, signerName, signerEmail, signerIP string) (*models.Contract, error) {
	return slf.sign(contractID, signerName, signerEmail, signerIP, nil)
}

// SignFromWebhook handles an e-signature provider callback, keyed by the
// contract id the agreement was created for. The agreement id is stored as
// "ADOBE:<agreementId>"; a redelivered webhook matches the marker and no-ops
// instead of failing or double-signing.
func (slf *ContractService) SignFromWebhook(contractID uint, agreementID, signerName, signerEmail, signerIP string) (*models.Contract, error) {
	marker := models.ExternalAgreementMarker(models.SignatureProviderAdobe, agreementID)

	existing, err := slf.contractRepo.FindByAgreementMarker(marker)
	if err == nil {
		slf.logger.Info().Str("marker", marker).Uint("contractId", existing.ID).Msg("Duplicate webhook delivery ignored")
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return slf.sign(contractID, signerName, signerEmail, signerIP, &marker)
}

func (slf *ContractService) sign(contractID uint, signerName, signerEmail, signerIP string, marker *string) (*models.Contract, error) {
	now := time.Now()
	updates := map[string]any{
		"status":          models.ContractStatusSigned,
		"signed_at":       now,
		"signed_by_name":  signerName,
		"signed_by_email": signerEmail,
		"signature_ip":    signerIP,
		"signature_id":    uuid.NewString(),
	}
	if marker != nil {
		updates["external_agreement_id"] = *marker
	}

	res := slf.contractRepo.Db.Model(&models.Contract{}).
		Where("id = ? AND status = ?", contractID, models.ContractStatusSent).
		Updates(updates)
	if res.Error != nil {
		slf.logger.Error().Err(res.Error).Uint("contractId", contractID).Msg("Error signing contract")
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		contract, err := slf.contractRepo.FindByID(contractID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("contract %d: %w", contractID, models.ErrNotFound)
			}
			return nil, err
		}
		switch contract.Status {
		case models.ContractStatusSigned:
			// Two deliveries of the same webhook can both miss the marker
			// lookup; the loser re-reads its own marker and stays a no-op.
			if marker != nil && contract.ExternalAgreementID != nil && *contract.ExternalAgreementID == *marker {
				return &contract, nil
			}
			return nil, fmt.Errorf("contract %d: %w", contractID, models.ErrAlreadySigned)
		case models.ContractStatusVoid:
			return nil, fmt.Errorf("contract %d: %w", contractID, models.ErrVoided)
		default:
			return nil, models.NewInvalidTransition("contract", string(contract.Status), string(models.ContractStatusSigned))
		}
	}

	slf.logger.Info().
		Uint("contractId", contractID).
		Str("signerEmail", signerEmail).
		Msg("Contract signed")

	pkg.PublishEvent("crm.contract.signed", map[string]any{
		"contractId":  contractID,
		"signerEmail": signerEmail,
	})

	return slf.FindByID(contractID)
}

// Void cancels a contract that has not been signed.
func (slf *ContractService) Void(contractID uint, actor models.Actor) (*models.Contract, error) {
	contract, err := slf.FindByID(contractID)
	if err != nil {
		return nil, err
	}
	if !contract.Status.CanTransitionTo(models.ContractStatusVoid) {
		if contract.Status == models.ContractStatusSigned {
			return nil, fmt.Errorf("contract %d: %w", contractID, models.ErrAlreadySigned)
		}
		return nil, models.NewInvalidTransition("contract", string(contract.Status), string(models.ContractStatusVoid))
	}

	res := slf.contractRepo.Db.Model(&models.Contract{}).
		Where("id = ? AND status = ?", contractID, contract.Status).
		Update("status", models.ContractStatusVoid)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("contract %d was modified concurrently: %w", contractID, models.ErrConflict)
	}

	slf.logger.Info().Uint("contractId", contractID).Uint("actorId", actor.UserID).Msg("Contract voided")
	return slf.FindByID(contractID)
}
