package service

import (
	"errors"
	"fmt"
	"time"

	"dronedesk"
	"dronedesk/internal/api/models"
	"dronedesk/internal/api/repo"
	"dronedesk/pkg"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type JobService struct {
	jobRepo           *repo.JobRepository
	assignmentService *AssignmentService
	logger            zerolog.Logger
}

func NewJobService() *JobService {
	return &JobService{
		jobRepo:           repo.NewJobRepository(),
		assignmentService: NewAssignmentService(),
		logger:            dronedesk.Logger,
	}
}

// Create registers a new job in DRAFT
func (slf *JobService) Create(job models.Job) (*models.Job, error) {
	if job.Status == "" {
		job.Status = models.JobStatusDraft
	}
	if job.Priority == 0 {
		job.Priority = models.JobPriorityMedium
	}
	if err := slf.jobRepo.Db.Create(&job).Error; err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		return nil, err
	}
	return &job, nil
}

// FindByID retrieves a job with its assignment history
func (slf *JobService) FindByID(id uint) (*models.Job, error) {
	job, err := slf.jobRepo.FindByIDWithAssignments(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %d: %w", id, models.ErrNotFound)
		}
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error getting job")
		return nil, err
	}
	return &job, nil
}

// FindAllByClient retrieves a client's jobs
func (slf *JobService) FindAllByClient(clientID uint) ([]models.Job, error) {
	return slf.jobRepo.FindAllByClient(clientID)
}

// FindAllByStatus retrieves jobs in a given lifecycle state
func (slf *JobService) FindAllByStatus(status models.JobStatus) ([]models.Job, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown job status %q: %w", status, models.ErrValidation)
	}
	return slf.jobRepo.FindAllByStatus(status)
}

// TransitionJob moves a job along its lifecycle graph. The edge check, the
// status write and any side effects (payout eligibility on DELIVERED or
// COMPLETED) happen in one transaction; the status write is conditional on
// the status we read, so a concurrent racer loses with Conflict instead of
// silently double-applying.
func (slf *JobService) TransitionJob(jobID uint, target models.JobStatus, actor models.Actor) (*models.Job, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("unknown job status %q: %w", target, models.ErrValidation)
	}

	job, err := slf.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %d: %w", jobID, models.ErrNotFound)
		}
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Error loading job for transition")
		return nil, err
	}

	current := job.Status
	if !current.CanTransitionTo(target) {
		return nil, models.NewInvalidTransition("job", string(current), string(target))
	}

	tx := slf.jobRepo.Db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if target == models.JobStatusAssigned {
		count, countErr := slf.assignmentService.assignmentRepo.CountAcceptedActiveByJob(tx, jobID)
		if countErr != nil {
			tx.Rollback()
			return nil, countErr
		}
		if count == 0 {
			tx.Rollback()
			return nil, fmt.Errorf("job %d has no accepted assignment: %w", jobID, models.ErrPreconditionFailed)
		}
	}

	updates := map[string]any{"status": target}
	if target == models.JobStatusCompleted {
		updates["completed_date"] = time.Now()
	}

	res := tx.Model(&models.Job{}).
		Where("id = ? AND status = ?", jobID, current).
		Updates(updates)
	if res.Error != nil {
		tx.Rollback()
		slf.logger.Error().Err(res.Error).Uint("jobId", jobID).Msg("Error updating job status")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Someone moved the job between our read and our write.
		tx.Rollback()
		return nil, fmt.Errorf("job %d was modified concurrently: %w", jobID, models.ErrConflict)
	}

	if target == models.JobStatusDelivered || target == models.JobStatusCompleted {
		if err = slf.assignmentService.MakePayoutEligible(tx, job); err != nil {
			tx.Rollback()
			slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Error making payout eligible")
			return nil, err
		}
	}

	if err = tx.Commit().Error; err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Error committing job transition")
		return nil, err
	}

	slf.logger.Info().
		Uint("jobId", jobID).
		Str("from", string(current)).
		Str("to", string(target)).
		Uint("actorId", actor.UserID).
		Str("actorRole", string(actor.Role)).
		Msg("Job transitioned")

	pkg.PublishEvent("crm.job.status", map[string]any{
		"jobId": jobID,
		"from":  current,
		"to":    target,
	})

	return slf.FindByID(jobID)
}
