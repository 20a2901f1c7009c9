package repo

import (
	"dronedesk"
	"dronedesk/internal/api/models"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	Db *gorm.DB
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{Db: dronedesk.DB}
}

// FindByID retrieves an assignment by ID
func (slf *AssignmentRepository) FindByID(id uint) (models.JobAssignment, error) {
	var assignment models.JobAssignment
	err := slf.Db.First(&assignment, id).Error
	return assignment, err
}

// FindActiveByJob retrieves the single non-superseded assignment for a job,
// if any. gorm.ErrRecordNotFound means the job is unassigned.
func (slf *AssignmentRepository) FindActiveByJob(jobID uint) (models.JobAssignment, error) {
	var assignment models.JobAssignment
	err := slf.Db.
		Where("job_id = ? AND superseded = ?", jobID, false).
		First(&assignment).Error
	return assignment, err
}

// FindAllByPilot retrieves a pilot's assignment history, newest first
func (slf *AssignmentRepository) FindAllByPilot(pilotID uint) ([]models.JobAssignment, error) {
	var assignments []models.JobAssignment
	err := slf.Db.
		Where("pilot_id = ?", pilotID).
		Preload("Job").
		Order("assigned_at DESC").
		Find(&assignments).Error
	return assignments, err
}

// CountAcceptedActiveByJob counts accepted, non-superseded assignments on a job
func (slf *AssignmentRepository) CountAcceptedActiveByJob(tx *gorm.DB, jobID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.JobAssignment{}).
		Where("job_id = ? AND superseded = ? AND accepted_at IS NOT NULL", jobID, false).
		Count(&count).Error
	return count, err
}
