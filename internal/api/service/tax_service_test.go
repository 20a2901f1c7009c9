package service

import (
	"strings"
	"testing"
	"time"

	"dronedesk"
	"dronedesk/internal/api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPaidPayment fabricates the full chain a payout needs: a completed
// job, an accepted assignment and a PAID payment stamped inside the year.
func createPaidPayment(t *testing.T, clientID, pilotID uint, amount string, paidAt time.Time) models.Job {
	job := createTestJob(t, clientID, models.JobStatusCompleted)
	assignment := acceptedAssignment(t, job.ID, pilotID)

	approvedAt := paidAt.Add(-24 * time.Hour)
	payment := models.PilotPayment{
		PilotID:      pilotID,
		AssignmentID: assignment.ID,
		Amount:       decimal.RequireFromString(amount),
		Status:       models.PaymentStatusPaid,
		Reference:    uuid.NewString(),
		ApprovedAt:   &approvedAt,
		PaidAt:       &paidAt,
	}
	require.NoError(t, dronedesk.DB.Create(&payment).Error)
	return job
}

func submitApprovedW9(t *testing.T, pilotID uint, tinType models.TINType, last4 string) {
	form := models.W9Form{
		PilotID:      pilotID,
		LegalName:    "Legal Name",
		TINType:      tinType,
		TINLast4:     last4,
		ReviewStatus: models.W9ReviewApproved,
	}
	require.NoError(t, dronedesk.DB.Create(&form).Error)
}

func findRow(rows []PilotTaxSummary, pilotID uint) *PilotTaxSummary {
	for i := range rows {
		if rows[i].PilotID == pilotID {
			return &rows[i]
		}
	}
	return nil
}

func TestTax_AggregateForYear_SumsPaidPayments(t *testing.T) {
	setupTestDB(t)

	service := NewTaxService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)

	year := 2097
	jobA := createPaidPayment(t, client.ID, pilot.ID, "400.00", time.Date(year, time.March, 5, 12, 0, 0, 0, time.UTC))
	defer cleanupTestJob(t, jobA.ID)
	jobB := createPaidPayment(t, client.ID, pilot.ID, "300.00", time.Date(year, time.November, 20, 12, 0, 0, 0, time.UTC))
	defer cleanupTestJob(t, jobB.ID)
	// Outside the year, must not count.
	jobC := createPaidPayment(t, client.ID, pilot.ID, "999.00", time.Date(year+1, time.January, 2, 12, 0, 0, 0, time.UTC))
	defer cleanupTestJob(t, jobC.ID)

	rows, err := service.AggregateForYear(year)
	require.NoError(t, err)

	row := findRow(rows, pilot.ID)
	require.NotNil(t, row)
	assert.Equal(t, "700.00", row.TotalPaid.StringFixed(2))
	assert.Equal(t, 2, row.PaymentCount)
	assert.True(t, row.Requires1099, "700 crosses the 600 threshold")
	assert.False(t, row.W9Approved)
	assert.True(t, row.MissingW9, "1099 due but no approved W-9 on file")
}

func TestTax_AggregateForYear_BelowThreshold(t *testing.T) {
	setupTestDB(t)

	service := NewTaxService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)

	year := 2098
	job := createPaidPayment(t, client.ID, pilot.ID, "599.99", time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC))
	defer cleanupTestJob(t, job.ID)

	rows, err := service.AggregateForYear(year)
	require.NoError(t, err)

	row := findRow(rows, pilot.ID)
	require.NotNil(t, row)
	assert.False(t, row.Requires1099)
	assert.False(t, row.MissingW9, "no 1099 due, so nothing is missing")
}

func TestTax_AggregateForYear_ExactThresholdRequires1099(t *testing.T) {
	setupTestDB(t)

	service := NewTaxService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)

	year := 2099
	job := createPaidPayment(t, client.ID, pilot.ID, "600.00", time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC))
	defer cleanupTestJob(t, job.ID)

	rows, err := service.AggregateForYear(year)
	require.NoError(t, err)

	row := findRow(rows, pilot.ID)
	require.NotNil(t, row)
	assert.True(t, row.Requires1099, "the threshold is inclusive")
}

func TestTax_AggregateForYear_ApprovedW9(t *testing.T) {
	setupTestDB(t)

	service := NewTaxService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	submitApprovedW9(t, pilot.ID, models.TINTypeEIN, "4321")

	year := 2100
	job := createPaidPayment(t, client.ID, pilot.ID, "1500.00", time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC))
	defer cleanupTestJob(t, job.ID)

	rows, err := service.AggregateForYear(year)
	require.NoError(t, err)

	row := findRow(rows, pilot.ID)
	require.NotNil(t, row)
	assert.True(t, row.Requires1099)
	assert.True(t, row.W9Approved)
	assert.False(t, row.MissingW9)
	assert.Equal(t, "Legal Name", row.LegalName)
	assert.Equal(t, "**-***4321", row.MaskedTIN)
}

func TestTax_CSVForYear(t *testing.T) {
	setupTestDB(t)

	service := NewTaxService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)
	pilot := createTestPilot(t)
	defer cleanupTestPilot(t, pilot.ID)
	submitApprovedW9(t, pilot.ID, models.TINTypeSSN, "1234")

	year := 2101
	job := createPaidPayment(t, client.ID, pilot.ID, "750.00", time.Date(year, time.May, 1, 0, 0, 0, 0, time.UTC))
	defer cleanupTestJob(t, job.ID)

	csvData, err := service.CSVForYear(year)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csvData), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "pilot_id,pilot_name,legal_name,business_name,tin,total_paid,requires_1099,w9_approved,missing_w9", lines[0])
	assert.Contains(t, csvData, "***-**-1234")
	assert.Contains(t, csvData, "750.00")
	assert.NotContains(t, csvData, "1234567", "no full TIN may ever appear")
}
