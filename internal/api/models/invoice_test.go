package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatus_LegalEdges(t *testing.T) {
	assert.True(t, InvoiceStatusDraft.CanTransitionTo(InvoiceStatusSent))
	assert.True(t, InvoiceStatusDraft.CanTransitionTo(InvoiceStatusVoid))
	assert.True(t, InvoiceStatusSent.CanTransitionTo(InvoiceStatusPaid))
	assert.True(t, InvoiceStatusSent.CanTransitionTo(InvoiceStatusOverdue))
	assert.True(t, InvoiceStatusSent.CanTransitionTo(InvoiceStatusVoid))
	assert.True(t, InvoiceStatusOverdue.CanTransitionTo(InvoiceStatusPaid))
	assert.True(t, InvoiceStatusOverdue.CanTransitionTo(InvoiceStatusVoid))
}

func TestInvoiceStatus_IllegalEdges(t *testing.T) {
	assert.False(t, InvoiceStatusDraft.CanTransitionTo(InvoiceStatusPaid), "draft invoices cannot be settled directly")
	assert.False(t, InvoiceStatusDraft.CanTransitionTo(InvoiceStatusOverdue))
	assert.False(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusVoid))
	assert.False(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusSent))
	assert.False(t, InvoiceStatusVoid.CanTransitionTo(InvoiceStatusSent))
	assert.False(t, InvoiceStatusVoid.CanTransitionTo(InvoiceStatusPaid))
}

func TestInvoiceStatus_Locked(t *testing.T) {
	assert.False(t, InvoiceStatusDraft.IsLocked())
	assert.False(t, InvoiceStatusSent.IsLocked())
	assert.False(t, InvoiceStatusOverdue.IsLocked())
	assert.True(t, InvoiceStatusPaid.IsLocked())
	assert.True(t, InvoiceStatusVoid.IsLocked())
}
