package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_StrictlyMonotonic(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusApproved))
	assert.True(t, PaymentStatusApproved.CanTransitionTo(PaymentStatusPaid))

	// No skipping, no going back, no leaving PAID.
	assert.False(t, PaymentStatusPending.CanTransitionTo(PaymentStatusPaid))
	assert.False(t, PaymentStatusApproved.CanTransitionTo(PaymentStatusPending))
	assert.False(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusApproved))
	assert.False(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusPending))
}

func TestPaymentStatus_Terminal(t *testing.T) {
	assert.True(t, PaymentStatusPaid.IsTerminal())
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.False(t, PaymentStatusApproved.IsTerminal())
}

func TestJobAssignment_IsAccepted(t *testing.T) {
	assert.False(t, JobAssignment{}.IsAccepted())
	now := time.Now()
	assert.True(t, JobAssignment{AcceptedAt: &now}.IsAccepted())
}
