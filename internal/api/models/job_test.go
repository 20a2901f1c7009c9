package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJobStatus_ForwardPath(t *testing.T) {
	path := []JobStatus{
		JobStatusDraft,
		JobStatusPendingAssignment,
		JobStatusAssigned,
		JobStatusInProgress,
		JobStatusCaptureComplete,
		JobStatusDelivered,
		JobStatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, path[i].CanTransitionTo(path[i+1]),
			"expected %s -> %s to be legal", path[i], path[i+1])
	}
}

func TestJobStatus_NoSkippingStages(t *testing.T) {
	assert.False(t, JobStatusDraft.CanTransitionTo(JobStatusAssigned))
	assert.False(t, JobStatusDraft.CanTransitionTo(JobStatusCompleted))
	assert.False(t, JobStatusPendingAssignment.CanTransitionTo(JobStatusInProgress))
	assert.False(t, JobStatusAssigned.CanTransitionTo(JobStatusDelivered))
	assert.False(t, JobStatusInProgress.CanTransitionTo(JobStatusCompleted))
}

func TestJobStatus_NoGoingBackwards(t *testing.T) {
	assert.False(t, JobStatusAssigned.CanTransitionTo(JobStatusDraft))
	assert.False(t, JobStatusDelivered.CanTransitionTo(JobStatusInProgress))
	assert.False(t, JobStatusInProgress.CanTransitionTo(JobStatusPendingAssignment))
}

func TestJobStatus_CancellableFromAnyLiveState(t *testing.T) {
	for _, s := range JobStatuses {
		if s.IsTerminal() {
			assert.False(t, s.CanTransitionTo(JobStatusCancelled), "%s is terminal", s)
			continue
		}
		assert.True(t, s.CanTransitionTo(JobStatusCancelled), "%s should be cancellable", s)
	}
}

func TestJobStatus_TerminalStatesAreDeadEnds(t *testing.T) {
	for _, target := range JobStatuses {
		assert.False(t, JobStatusCompleted.CanTransitionTo(target))
		assert.False(t, JobStatusCancelled.CanTransitionTo(target))
	}
}

func TestJobStatus_IsValid(t *testing.T) {
	assert.True(t, JobStatusDraft.IsValid())
	assert.True(t, JobStatusCancelled.IsValid())
	assert.False(t, JobStatus("SHIPPED").IsValid())
	assert.False(t, JobStatus("").IsValid())
}

func TestJob_Commission_FromRate(t *testing.T) {
	price := decimal.RequireFromString("1000.00")
	job := Job{
		ClientPrice:    &price,
		CommissionRate: decimal.RequireFromString("15"),
	}
	assert.True(t, job.Commission().Equal(decimal.RequireFromString("150.00")),
		"got %s", job.Commission())
}

func TestJob_Commission_StoredAmountWins(t *testing.T) {
	price := decimal.RequireFromString("1000.00")
	stored := decimal.RequireFromString("99.50")
	job := Job{
		ClientPrice:      &price,
		CommissionRate:   decimal.RequireFromString("15"),
		CommissionAmount: &stored,
	}
	assert.True(t, job.Commission().Equal(stored), "got %s", job.Commission())
}

func TestJob_Commission_NoPrice(t *testing.T) {
	job := Job{CommissionRate: decimal.RequireFromString("20")}
	assert.True(t, job.Commission().IsZero())
}

func TestJob_Commission_BankersRounding(t *testing.T) {
	// 8.5% of 25.00 is 2.125, banker's rounding lands on the even cent.
	price := decimal.RequireFromString("25.00")
	job := Job{
		ClientPrice:    &price,
		CommissionRate: decimal.RequireFromString("8.5"),
	}
	assert.Equal(t, "2.12", job.Commission().StringFixed(2))
}
