package repo

import (
	"dronedesk"
	"dronedesk/internal/api/models"

	"gorm.io/gorm"
)

type ContractRepository struct {
	Db *gorm.DB
}

func NewContractRepository() *ContractRepository {
	return &ContractRepository{Db: dronedesk.DB}
}

// FindByID retrieves a contract by ID
func (slf *ContractRepository) FindByID(id uint) (models.Contract, error) {
	var contract models.Contract
	err := slf.Db.First(&contract, id).Error
	return contract, err
}

// FindByAgreementMarker looks up a contract by its webhook idempotency
// marker, e.g. "ADOBE:<agreementId>".
func (slf *ContractRepository) FindByAgreementMarker(marker string) (models.Contract, error) {
	var contract models.Contract
	err := slf.Db.Where("external_agreement_id = ?", marker).First(&contract).Error
	return contract, err
}

// FindAllByCounterparty retrieves contracts for one client or pilot
func (slf *ContractRepository) FindAllByCounterparty(clientID, pilotID *uint) ([]models.Contract, error) {
	var contracts []models.Contract
	q := slf.Db.Order("created_at DESC")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	if pilotID != nil {
		q = q.Where("pilot_id = ?", *pilotID)
	}
	err := q.Find(&contracts).Error
	return contracts, err
}
