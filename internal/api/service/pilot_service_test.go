package service

import (
	"errors"
	"testing"

	"dronedesk/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPilot_SubmitW9_Validation(t *testing.T) {
	setupTestDB(t)

	service := NewPilotService()
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)

	_, err := service.SubmitW9(models.W9Form{PilotID: pilot.ID, LegalName: "L", TINType: models.TINTypeSSN, TINLast4: "12345"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = service.SubmitW9(models.W9Form{PilotID: pilot.ID, LegalName: "L", TINType: "ITIN", TINLast4: "1234"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestPilot_SubmitW9_ResubmissionReplacesAndResetsReview(t *testing.T) {
	setupTestDB(t)

	service := NewPilotService()
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)

	first, err := service.SubmitW9(models.W9Form{
		PilotID:   pilot.ID,
		LegalName: "Jordan Pilot",
		TINType:   models.TINTypeSSN,
		TINLast4:  "1111",
	})
	require.NoError(t, err)
	assert.Equal(t, models.W9ReviewPending, first.ReviewStatus)

	approved, err := service.ReviewW9(pilot.ID, true, models.Actor{UserID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.W9ReviewApproved, approved.ReviewStatus)
	require.NotNil(t, approved.ReviewedAt)

	// A new submission replaces the row and goes back to PENDING review.
	second, err := service.SubmitW9(models.W9Form{
		PilotID:   pilot.ID,
		LegalName: "Jordan Pilot LLC",
		TINType:   models.TINTypeEIN,
		TINLast4:  "2222",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resubmission replaces, not appends")
	assert.Equal(t, models.W9ReviewPending, second.ReviewStatus)
	assert.Nil(t, second.ReviewedAt)

	reloaded, err := service.FindByID(pilot.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.W9)
	assert.Equal(t, "2222", reloaded.W9.TINLast4)
	assert.Equal(t, models.TINTypeEIN, reloaded.W9.TINType)
}

func TestPilot_ReviewW9_Reject(t *testing.T) {
	setupTestDB(t)

	service := NewPilotService()
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)

	_, err := service.SubmitW9(models.W9Form{
		PilotID:   pilot.ID,
		LegalName: "Jordan Pilot",
		TINType:   models.TINTypeSSN,
		TINLast4:  "3333",
	})
	require.NoError(t, err)

	rejected, err := service.ReviewW9(pilot.ID, false, models.Actor{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.W9ReviewRejected, rejected.ReviewStatus)
}

func TestPilot_ReviewW9_NoneOnFile(t *testing.T) {
	setupTestDB(t)

	service := NewPilotService()
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)

	_, err := service.ReviewW9(pilot.ID, true, models.Actor{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
