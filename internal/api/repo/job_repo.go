package repo

import (
	"dronedesk"
	"dronedesk/internal/api/models"

	"gorm.io/gorm"
)

type JobRepository struct {
	Db *gorm.DB
}

func NewJobRepository() *JobRepository {
	return &JobRepository{Db: dronedesk.DB}
}

// FindByID retrieves a job by ID
func (slf *JobRepository) FindByID(id uint) (models.Job, error) {
	var job models.Job
	err := slf.Db.First(&job, id).Error
	return job, err
}

// FindByIDWithAssignments retrieves a job with its assignment history
func (slf *JobRepository) FindByIDWithAssignments(id uint) (models.Job, error) {
	var job models.Job
	err := slf.Db.
		Preload("Assignments").
		Preload("Assignments.Payment").
		First(&job, id).Error
	return job, err
}

// FindAllByClient retrieves all jobs for a client
func (slf *JobRepository) FindAllByClient(clientID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// FindAllByStatus retrieves jobs in a given status
func (slf *JobRepository) FindAllByStatus(status models.JobStatus) ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.
		Where("status = ?", status).
		Order("priority ASC, created_at DESC").
		Find(&jobs).Error
	return jobs, err
}
