package repo

import (
	"time"

	"dronedesk"
	"dronedesk/internal/api/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	Db *gorm.DB
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{Db: dronedesk.DB}
}

// FindByID retrieves a pilot payment by ID
func (slf *PaymentRepository) FindByID(id uint) (models.PilotPayment, error) {
	var payment models.PilotPayment
	err := slf.Db.First(&payment, id).Error
	return payment, err
}

// FindByAssignment retrieves the payment owned by an assignment, if any
func (slf *PaymentRepository) FindByAssignment(assignmentID uint) (models.PilotPayment, error) {
	var payment models.PilotPayment
	err := slf.Db.Where("assignment_id = ?", assignmentID).First(&payment).Error
	return payment, err
}

// FindAllByPilot retrieves a pilot's payments, newest first
func (slf *PaymentRepository) FindAllByPilot(pilotID uint) ([]models.PilotPayment, error) {
	var payments []models.PilotPayment
	err := slf.Db.
		Where("pilot_id = ?", pilotID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// FindPaidWithin retrieves PAID payments whose paid_at falls in [from, to).
// This is the tax aggregation scan; it deliberately runs on the plain
// session, outside any write transaction.
func (slf *PaymentRepository) FindPaidWithin(from, to time.Time) ([]models.PilotPayment, error) {
	var payments []models.PilotPayment
	err := slf.Db.
		Where("status = ? AND paid_at >= ? AND paid_at < ?", models.PaymentStatusPaid, from, to).
		Order("pilot_id ASC, paid_at ASC").
		Find(&payments).Error
	return payments, err
}
