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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AssignmentService struct {
	assignmentRepo *repo.AssignmentRepository
	paymentRepo    *repo.PaymentRepository
	jobRepo        *repo.JobRepository
	logger         zerolog.Logger
}

func NewAssignmentService() *AssignmentService {
	return &AssignmentService{
		assignmentRepo: repo.NewAssignmentRepository(),
		paymentRepo:    repo.NewPaymentRepository(),
		jobRepo:        repo.NewJobRepository(),
		logger:         dronedesk.Logger,
	}
}

// AssignPilot links a pilot to a job. The job must be waiting for (or
// already carrying) an assignment, and only one active assignment may exist
// at a time: assigning over a live one is a Conflict, the dispatcher has to
// supersede it first.
func (slf *AssignmentService) AssignPilot(jobID, pilotID uint, notes string, actor models.Actor) (*models.JobAssignment, error) {
	job, err := slf.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %d: %w", jobID, models.ErrNotFound)
		}
		return nil, err
	}
	if job.Status != models.JobStatusPendingAssignment && job.Status != models.JobStatusAssigned {
		return nil, fmt.Errorf("job %d is %s, not assignable: %w", jobID, job.Status, models.ErrPreconditionFailed)
	}

	tx := slf.assignmentRepo.Db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var active int64
	if err = tx.Model(&models.JobAssignment{}).
		Where("job_id = ? AND superseded = ?", jobID, false).
		Count(&active).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if active > 0 {
		tx.Rollback()
		return nil, fmt.Errorf("job %d already has an active assignment: %w", jobID, models.ErrConflict)
	}

	assignment := models.JobAssignment{
		JobID:      jobID,
		PilotID:    pilotID,
		AssignedAt: time.Now(),
		Notes:      notes,
	}
	if err = tx.Create(&assignment).Error; err != nil {
		tx.Rollback()
		// The partial unique index on active assignments catches the race
		// the count above cannot see.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("job %d already has an active assignment: %w", jobID, models.ErrConflict)
		}
		slf.logger.Error().Err(err).Uint("jobId", jobID).Uint("pilotId", pilotID).Msg("Error creating assignment")
		return nil, err
	}

	if err = tx.Commit().Error; err != nil {
		return nil, err
	}

	slf.logger.Info().
		Uint("jobId", jobID).
		Uint("pilotId", pilotID).
		Uint("actorId", actor.UserID).
		Msg("Pilot assigned")

	return &assignment, nil
}

// SupersedeAssignment retires the active assignment so a new pilot can be
// assigned. Accepted history rows are kept.
func (slf *AssignmentService) SupersedeAssignment(assignmentID uint, actor models.Actor) error {
	res := slf.assignmentRepo.Db.Model(&models.JobAssignment{}).
		Where("id = ? AND superseded = ?", assignmentID, false).
		Update("superseded", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("assignment %d not active: %w", assignmentID, models.ErrNotFound)
	}
	slf.logger.Info().Uint("assignmentId", assignmentID).Uint("actorId", actor.UserID).Msg("Assignment superseded")
	return nil
}

// AcceptAssignment records the pilot's acceptance. Re-accepting an already
// accepted assignment is a no-op, not an error.
func (slf *AssignmentService) AcceptAssignment(assignmentID uint, actor models.Actor) (*models.JobAssignment, error) {
	assignment, err := slf.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assignment %d: %w", assignmentID, models.ErrNotFound)
		}
		return nil, err
	}
	if assignment.IsAccepted() {
		return &assignment, nil
	}

	now := time.Now()
	res := slf.assignmentRepo.Db.Model(&models.JobAssignment{}).
		Where("id = ? AND accepted_at IS NULL", assignmentID).
		Update("accepted_at", now)
	if res.Error != nil {
		slf.logger.Error().Err(res.Error).Uint("assignmentId", assignmentID).Msg("Error accepting assignment")
		return nil, res.Error
	}
	// RowsAffected == 0 means a concurrent accept beat us, which is the
	// same outcome the caller asked for.

	assignment, err = slf.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}
	slf.logger.Info().Uint("assignmentId", assignmentID).Uint("actorId", actor.UserID).Msg("Assignment accepted")
	return &assignment, nil
}

// MakePayoutEligible creates the PENDING pilot payment for each accepted
// active assignment on a deliverable job. It runs inside the caller's
// transaction and is idempotent: the payment is keyed by assignment id, so
// a repeated call finds the existing row instead of creating a second one.
func (slf *AssignmentService) MakePayoutEligible(tx *gorm.DB, job models.Job) error {
	var assignments []models.JobAssignment
	if err := tx.
		Where("job_id = ? AND superseded = ? AND accepted_at IS NOT NULL", job.ID, false).
		Find(&assignments).Error; err != nil {
		return err
	}

	amount := decimal.Zero
	if job.PilotPayout != nil {
		amount = *job.PilotPayout
	}

	for _, assignment := range assignments {
		payment := models.PilotPayment{
			PilotID:      assignment.PilotID,
			AssignmentID: assignment.ID,
			Amount:       amount,
			Status:       models.PaymentStatusPending,
			Reference:    uuid.NewString(),
		}
		if err := tx.Where("assignment_id = ?", assignment.ID).FirstOrCreate(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("payment for assignment %d created concurrently: %w", assignment.ID, models.ErrConflict)
			}
			return err
		}
	}
	return nil
}

// ApprovePayment advances a payment PENDING -> APPROVED.
func (slf *AssignmentService) ApprovePayment(paymentID uint, actor models.Actor) (*models.PilotPayment, error) {
	return slf.advancePayment(paymentID, models.PaymentStatusApproved, "", actor)
}

// MarkPaid advances a payment APPROVED -> PAID, stamping paid_at and the
// method in the same write. Skipping the approval stage is rejected.
func (slf *AssignmentService) MarkPaid(paymentID uint, method string, actor models.Actor) (*models.PilotPayment, error) {
	return slf.advancePayment(paymentID, models.PaymentStatusPaid, method, actor)
}

// advancePayment performs the monotonic stage move with a conditional
// update, so two racing approvals resolve to one winner and one
// InvalidTransition.
func (slf *AssignmentService) advancePayment(paymentID uint, target models.PaymentStatus, method string, actor models.Actor) (*models.PilotPayment, error) {
	payment, err := slf.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %d: %w", paymentID, models.ErrNotFound)
		}
		return nil, err
	}

	current := payment.Status
	if !current.CanTransitionTo(target) {
		return nil, models.NewInvalidTransition("payment", string(current), string(target))
	}

	now := time.Now()
	updates := map[string]any{"status": target}
	switch target {
	case models.PaymentStatusApproved:
		updates["approved_at"] = now
	case models.PaymentStatusPaid:
		updates["paid_at"] = now
		if method != "" {
			updates["method"] = method
		}
	}

	res := slf.paymentRepo.Db.Model(&models.PilotPayment{}).
		Where("id = ? AND status = ?", paymentID, current).
		Updates(updates)
	if res.Error != nil {
		slf.logger.Error().Err(res.Error).Uint("paymentId", paymentID).Msg("Error advancing payment")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("payment %d was modified concurrently: %w", paymentID, models.ErrConflict)
	}

	slf.logger.Info().
		Uint("paymentId", paymentID).
		Str("from", string(current)).
		Str("to", string(target)).
		Uint("actorId", actor.UserID).
		Msg("Payment advanced")

	if target == models.PaymentStatusPaid {
		pkg.PublishEvent("crm.payment.paid", map[string]any{
			"paymentId": paymentID,
			"pilotId":   payment.PilotID,
			"amount":    payment.Amount,
		})
	}

	payment, err = slf.paymentRepo.FindByID(paymentID)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
