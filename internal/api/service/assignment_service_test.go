package service

import (
	"errors"
	"sync"
	"testing"

	"dronedesk"
	"dronedesk/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignment_AssignPilot(t *testing.T) {
	setupTestDB(t)

	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	job := createTestJob(t, client.ID, models.JobStatusPendingAssignment)
	defer cleanupTestJob(t, job.ID)

	assignment, err := service.AssignPilot(job.ID, pilot.ID, "bring the thermal camera", models.Actor{UserID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotZero(t, assignment.ID)

	assert.Equal(t, job.ID, assignment.JobID)
	assert.Equal(t, pilot.ID, assignment.PilotID)
	assert.False(t, assignment.Superseded)
	assert.Nil(t, assignment.AcceptedAt)
}

func TestAssignment_AssignPilot_JobNotAssignable(t *testing.T) {
	setupTestDB(t)

	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	job := createTestJob(t, client.ID, models.JobStatusDraft)
	defer cleanupTestJob(t, job.ID)

	_, err := service.AssignPilot(job.ID, pilot.ID, "", models.Actor{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrPreconditionFailed))
}

func TestAssignment_SecondActiveAssignmentConflicts(t *testing.T) {
	setupTestDB(t)

	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilotA := createTestPilot(t)
	defer cleanupTestPilot(t, pilotA.ID)
	pilotB := createTestPilot(t)
	defer cleanupTestPilot(t, pilotB.ID)
	job := createTestJob(t, client.ID, models.JobStatusPendingAssignment)
	defer cleanupTestJob(t, job.ID)

	first, err := service.AssignPilot(job.ID, pilotA.ID, "", models.Actor{UserID: 1})
	require.NoError(t, err)

	_, err = service.AssignPilot(job.ID, pilotB.ID, "", models.Actor{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConflict))

	// Supersede the active one, then the reassignment goes through.
	err = service.SupersedeAssignment(first.ID, models.Actor{UserID: 1})
	require.NoError(t, err)

	second, err := service.AssignPilot(job.ID, pilotB.ID, "", models.Actor{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, pilotB.ID, second.PilotID)
}

func TestAssignment_Accept_Idempotent(t *testing.T) {
	setupTestDB(t)

	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	job := createTestJob(t, client.ID, models.JobStatusPendingAssignment)
	defer cleanupTestJob(t, job.ID)

	assignment, err := service.AssignPilot(job.ID, pilot.ID, "", models.Actor{UserID: 1})
	require.NoError(t, err)

	accepted, err := service.AcceptAssignment(assignment.ID, models.Actor{UserID: 2, Role: models.RolePilot})
	require.NoError(t, err)
	require.NotNil(t, accepted.AcceptedAt)
	firstAcceptedAt := *accepted.AcceptedAt

	again, err := service.AcceptAssignment(assignment.ID, models.Actor{UserID: 2, Role: models.RolePilot})
	require.NoError(t, err)
	require.NotNil(t, again.AcceptedAt)
	assert.WithinDuration(t, firstAcceptedAt, *again.AcceptedAt, 0, "re-accept must not move the timestamp")
}

func TestPayment_ApproveThenPay(t *testing.T) {
	setupTestDB(t)

	jobService := NewJobService()
	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	job := createTestJob(t, client.ID, models.JobStatusCaptureComplete)
	defer cleanupTestJob(t, job.ID)
	assignment := acceptedAssignment(t, job.ID, pilot.ID)

	_, err := jobService.TransitionJob(job.ID, models.JobStatusDelivered, models.Actor{UserID: 1})
	require.NoError(t, err)

	var payment models.PilotPayment
	require.NoError(t, dronedesk.DB.Where("assignment_id = ?", assignment.ID).First(&payment).Error)

	approved, err := service.ApprovePayment(payment.ID, models.Actor{UserID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	paid, err := service.MarkPaid(payment.ID, "ach", models.Actor{UserID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, "ach", paid.Method)
}

func TestPayment_CannotSkipApproval(t *testing.T) {
	setupTestDB(t)

	jobService := NewJobService()
	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	job := createTestJob(t, client.ID, models.JobStatusCaptureComplete)
	defer cleanupTestJob(t, job.ID)
	assignment := acceptedAssignment(t, job.ID, pilot.ID)

	_, err := jobService.TransitionJob(job.ID, models.JobStatusDelivered, models.Actor{UserID: 1})
	require.NoError(t, err)

	var payment models.PilotPayment
	require.NoError(t, dronedesk.DB.Where("assignment_id = ?", assignment.ID).First(&payment).Error)

	_, err = service.MarkPaid(payment.ID, "ach", models.Actor{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))
}

func TestPayment_DoubleApproveRejected(t *testing.T) {
	setupTestDB(t)

	jobService := NewJobService()
	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	job := createTestJob(t, client.ID, models.JobStatusCaptureComplete)
	defer cleanupTestJob(t, job.ID)
	assignment := acceptedAssignment(t, job.ID, pilot.ID)

	_, err := jobService.TransitionJob(job.ID, models.JobStatusDelivered, models.Actor{UserID: 1})
	require.NoError(t, err)

	var payment models.PilotPayment
	require.NoError(t, dronedesk.DB.Where("assignment_id = ?", assignment.ID).First(&payment).Error)

	_, err = service.ApprovePayment(payment.ID, models.Actor{UserID: 1})
	require.NoError(t, err)

	_, err = service.ApprovePayment(payment.ID, models.Actor{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))
}

func TestAssignment_ConcurrentAssign_OneWinner(t *testing.T) {
	setupTestDB(t)

	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	job := createTestJob(t, client.ID, models.JobStatusPendingAssignment)
	defer cleanupTestJob(t, job.ID)

	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, results[n] = service.AssignPilot(job.ID, pilot.ID, "", models.Actor{UserID: 1})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.True(t, errors.Is(err, models.ErrConflict), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)

	var active int64
	require.NoError(t, dronedesk.DB.Model(&models.JobAssignment{}).
		Where("job_id = ? AND superseded = ?", job.ID, false).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestPayment_MarkPaid_MethodStampedWithStatus(t *testing.T) {
	setupTestDB(t)

	jobService := NewJobService()
	service := NewAssignmentService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	job := createTestJob(t, client.ID, models.JobStatusCaptureComplete)
	defer cleanupTestJob(t, job.ID)
	assignment := acceptedAssignment(t, job.ID, pilot.ID)

	_, err := jobService.TransitionJob(job.ID, models.JobStatusDelivered, models.Actor{UserID: 1})
	require.NoError(t, err)

	var payment models.PilotPayment
	require.NoError(t, dronedesk.DB.Where("assignment_id = ?", assignment.ID).First(&payment).Error)

	_, err = service.ApprovePayment(payment.ID, models.Actor{UserID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = service.MarkPaid(payment.ID, "wire", models.Actor{UserID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	// The stored row carries status, paid_at and method from one write.
	var row models.PilotPayment
	require.NoError(t, dronedesk.DB.First(&row, payment.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, row.Status)
	assert.Equal(t, "wire", row.Method)
	assert.NotNil(t, row.PaidAt)
}
