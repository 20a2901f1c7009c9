package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"dronedesk"
	"dronedesk/internal/api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueInvoiceNumber() string {
	return fmt.Sprintf("INV-%d", time.Now().UnixNano())
}

func cleanupTestInvoice(t *testing.T, id uint) {
	if id > 0 {
		dronedesk.DB.Unscoped().Where("invoice_id = ?", id).Delete(&models.InvoiceLineItem{})
		dronedesk.DB.Unscoped().Delete(&models.Invoice{}, id)
	}
}

func lineItem(desc, qty, unitPrice string) models.InvoiceLineItem {
	return models.InvoiceLineItem{
		Description: desc,
		Qty:         decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(unitPrice),
	}
}

func TestInvoice_CreateDraft_Recalculates(t *testing.T) {
	setupTestDB(t)

	service := NewInvoiceService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)

	created, err := service.CreateDraft(models.Invoice{
		ClientID:      client.ID,
		InvoiceNumber: uniqueInvoiceNumber(),
		Tax:           decimal.RequireFromString("10.00"),
		LineItems: []models.InvoiceLineItem{
			lineItem("Flight time", "2", "150.00"),
			lineItem("Editing", "1.5", "80.00"),
		},
	})
	require.NoError(t, err)
	defer cleanupTestInvoice(t, created.ID)

	assert.Equal(t, models.InvoiceStatusDraft, created.Status)
	require.Len(t, created.LineItems, 2)
	assert.Equal(t, 1, created.LineItems[0].Position)
	assert.Equal(t, 2, created.LineItems[1].Position)
	assert.Equal(t, "300.00", created.LineItems[0].Total.StringFixed(2))
	assert.Equal(t, "120.00", created.LineItems[1].Total.StringFixed(2))
	assert.Equal(t, "420.00", created.Amount.StringFixed(2))
	assert.Equal(t, "430.00", created.TotalAmount.StringFixed(2))
}

func TestInvoice_CreateDraft_DuplicateNumber(t *testing.T) {
	setupTestDB(t)

	service := NewInvoiceService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)

	number := uniqueInvoiceNumber()
	created, err := service.CreateDraft(models.Invoice{ClientID: client.ID, InvoiceNumber: number})
	require.NoError(t, err)
	defer cleanupTestInvoice(t, created.ID)

	_, err = service.CreateDraft(models.Invoice{ClientID: client.ID, InvoiceNumber: number})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConflict))
}

func TestInvoice_LineTotal_BankersRounding(t *testing.T) {
	// Half-cent totals round to the even cent in both directions.
	assert.Equal(t, "2.12", ComputeLineTotal(decimal.RequireFromString("1"), decimal.RequireFromString("2.125")).StringFixed(2))
	assert.Equal(t, "2.14", ComputeLineTotal(decimal.RequireFromString("1"), decimal.RequireFromString("2.135")).StringFixed(2))
	assert.Equal(t, "0.38", ComputeLineTotal(decimal.RequireFromString("0.5"), decimal.RequireFromString("0.75")).StringFixed(2))
}

func TestInvoice_ReplaceLineItems_Recalculates(t *testing.T) {
	setupTestDB(t)

	service := NewInvoiceService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)

	created, err := service.CreateDraft(models.Invoice{
		ClientID:      client.ID,
		InvoiceNumber: uniqueInvoiceNumber(),
		LineItems:     []models.InvoiceLineItem{lineItem("Flight time", "1", "100.00")},
	})
	require.NoError(t, err)
	defer cleanupTestInvoice(t, created.ID)

	updated, err := service.ReplaceLineItems(created.ID, []models.InvoiceLineItem{
		lineItem("Flight time", "3", "100.00"),
		lineItem("Rush fee", "1", "50.00"),
	}, decimal.RequireFromString("5.00"), models.Actor{UserID: 1})
	require.NoError(t, err)

	require.Len(t, updated.LineItems, 2)
	assert.Equal(t, "350.00", updated.Amount.StringFixed(2))
	assert.Equal(t, "5.00", updated.Tax.StringFixed(2))
	assert.Equal(t, "355.00", updated.TotalAmount.StringFixed(2))

	// The old line item row is gone, not orphaned.
	var count int64
	require.NoError(t, dronedesk.DB.Model(&models.InvoiceLineItem{}).Where("invoice_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestInvoice_ReplaceLineItems_LockedAfterPaid(t *testing.T) {
	setupTestDB(t)

	service := NewInvoiceService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)

	created, err := service.CreateDraft(models.Invoice{
		ClientID:      client.ID,
		InvoiceNumber: uniqueInvoiceNumber(),
		LineItems:     []models.InvoiceLineItem{lineItem("Flight time", "1", "100.00")},
	})
	require.NoError(t, err)
	defer cleanupTestInvoice(t, created.ID)

	_, err = service.Send(created.ID, time.Now().Add(14*24*time.Hour), models.Actor{UserID: 1})
	require.NoError(t, err)
	_, err = service.MarkPaid(created.ID, models.Actor{UserID: 1})
	require.NoError(t, err)

	_, err = service.ReplaceLineItems(created.ID, []models.InvoiceLineItem{
		lineItem("Flight time", "9", "100.00"),
	}, decimal.Zero, models.Actor{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestInvoice_SendStampsDates(t *testing.T) {
	setupTestDB(t)

	service := NewInvoiceService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)

	created, err := service.CreateDraft(models.Invoice{
		ClientID:      client.ID,
		InvoiceNumber: uniqueInvoiceNumber(),
		LineItems:     []models.InvoiceLineItem{lineItem("Flight time", "1", "100.00")},
	})
	require.NoError(t, err)
	defer cleanupTestInvoice(t, created.ID)

	due := time.Now().Add(30 * 24 * time.Hour)
	sent, err := service.Send(created.ID, due, models.Actor{UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusSent, sent.Status)
	require.NotNil(t, sent.IssueDate)
	require.NotNil(t, sent.DueDate)
}

func TestInvoice_DraftCannotBePaidDirectly(t *testing.T) {
	setupTestDB(t)

	service := NewInvoiceService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)

	created, err := service.CreateDraft(models.Invoice{ClientID: client.ID, InvoiceNumber: uniqueInvoiceNumber()})
	require.NoError(t, err)
	defer cleanupTestInvoice(t, created.ID)

	_, err = service.MarkPaid(created.ID, models.Actor{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))
}

func TestInvoice_VoidTerminal(t *testing.T) {
	setupTestDB(t)

	service := NewInvoiceService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)

	created, err := service.CreateDraft(models.Invoice{ClientID: client.ID, InvoiceNumber: uniqueInvoiceNumber()})
	require.NoError(t, err)
	defer cleanupTestInvoice(t, created.ID)

	voided, err := service.Void(created.ID, models.Actor{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusVoid, voided.Status)

	_, err = service.Send(created.ID, time.Now(), models.Actor{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))
}

func TestInvoice_SweepOverdue(t *testing.T) {
	setupTestDB(t)

	service := NewInvoiceService()
	client := createTestClient(t)
	defer cleanupTestClient(t, client.ID)

	created, err := service.CreateDraft(models.Invoice{
		ClientID:      client.ID,
		InvoiceNumber: uniqueInvoiceNumber(),
		LineItems:     []models.InvoiceLineItem{lineItem("Flight time", "1", "100.00")},
	})
	require.NoError(t, err)
	defer cleanupTestInvoice(t, created.ID)

	// Send it with a due date already in the past.
	_, err = service.Send(created.ID, time.Now().Add(-48*time.Hour), models.Actor{UserID: 1})
	require.NoError(t, err)

	count, err := service.SweepOverdue()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)

	swept, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusOverdue, swept.Status)

	// A second sweep finds nothing to do for this invoice.
	_, err = service.SweepOverdue()
	require.NoError(t, err)
	still, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusOverdue, still.Status)

	// And an overdue invoice can still be settled.
	paid, err := service.MarkPaid(created.ID, models.Actor{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
}
