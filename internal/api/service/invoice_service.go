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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// invoiceSweepLockKey guards the overdue sweep across instances. The sweep
// itself is idempotent, the lock only avoids duplicate reminder mails.
const invoiceSweepLockKey = "lock:invoice-overdue-sweep"

type InvoiceService struct {
	invoiceRepo *repo.InvoiceRepository
	clientRepo  *repo.ClientRepository
	logger      zerolog.Logger
}

func NewInvoiceService() *InvoiceService {
	return &InvoiceService{
		invoiceRepo: repo.NewInvoiceRepository(),
		clientRepo:  repo.NewClientRepository(),
		logger:      dronedesk.Logger,
	}
}

// ComputeLineTotal returns qty x unitPrice rounded to the cent with banker's
// rounding, so rounding bias cannot accumulate across many invoices.
func ComputeLineTotal(qty, unitPrice decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitPrice).RoundBank(2)
}

// CreateDraft registers a new DRAFT invoice with recalculated line items.
func (slf *InvoiceService) CreateDraft(invoice models.Invoice) (*models.Invoice, error) {
	if invoice.InvoiceNumber == "" {
		return nil, fmt.Errorf("invoice number is required: %w", models.ErrValidation)
	}
	exists, err := slf.invoiceRepo.ExistsByNumber(invoice.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("invoice number %s already used: %w", invoice.InvoiceNumber, models.ErrConflict)
	}

	invoice.Status = models.InvoiceStatusDraft
	recalculate(&invoice)

	if err = slf.invoiceRepo.Db.Create(&invoice).Error; err != nil {
		slf.logger.Error().Err(err).Msg("Error creating invoice")
		return nil, err
	}
	return &invoice, nil
}

// FindByID retrieves an invoice with its line items
func (slf *InvoiceService) FindByID(id uint) (*models.Invoice, error) {
	invoice, err := slf.invoiceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &invoice, nil
}

// recalculate rewrites the derived fields in place: every line total from
// qty x unitPrice, amount from the line totals, totalAmount from amount+tax.
func recalculate(invoice *models.Invoice) {
	amount := decimal.Zero
	for i := range invoice.LineItems {
		invoice.LineItems[i].Position = i + 1
		invoice.LineItems[i].Total = ComputeLineTotal(invoice.LineItems[i].Qty, invoice.LineItems[i].UnitPrice)
		amount = amount.Add(invoice.LineItems[i].Total)
	}
	invoice.Amount = amount
	invoice.Tax = invoice.Tax.RoundBank(2)
	invoice.TotalAmount = invoice.Amount.Add(invoice.Tax)
}

// ReplaceLineItems swaps the invoice's line items and recalculates all
// derived amounts in one transaction. Mutation is rejected once the invoice
// is PAID or VOID.
func (slf *InvoiceService) ReplaceLineItems(invoiceID uint, items []models.InvoiceLineItem, tax decimal.Decimal, actor models.Actor) (*models.Invoice, error) {
	invoice, err := slf.invoiceRepo.FindByID(invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice %d: %w", invoiceID, models.ErrNotFound)
		}
		return nil, err
	}
	if invoice.Status.IsLocked() {
		return nil, fmt.Errorf("invoice %s is %s and can no longer change: %w",
			invoice.InvoiceNumber, invoice.Status, models.ErrValidation)
	}

	invoice.LineItems = items
	invoice.Tax = tax
	recalculate(&invoice)

	tx := slf.invoiceRepo.Db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err = tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceLineItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i := range invoice.LineItems {
		invoice.LineItems[i].ID = 0
		invoice.LineItems[i].InvoiceID = invoiceID
		if err = tx.Create(&invoice.LineItems[i]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	res := tx.Model(&models.Invoice{}).
		Where("id = ? AND status = ?", invoiceID, invoice.Status).
		Updates(map[string]any{
			"amount":       invoice.Amount,
			"tax":          invoice.Tax,
			"total_amount": invoice.TotalAmount,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// The invoice got sent/paid/voided under us.
		tx.Rollback()
		return nil, fmt.Errorf("invoice %d was modified concurrently: %w", invoiceID, models.ErrConflict)
	}

	if err = tx.Commit().Error; err != nil {
		slf.logger.Error().Err(err).Uint("invoiceId", invoiceID).Msg("Error committing line item update")
		return nil, err
	}

	slf.logger.Info().
		Uint("invoiceId", invoiceID).
		Int("lineItems", len(items)).
		Uint("actorId", actor.UserID).
		Msg("Invoice recalculated")

	return slf.FindByID(invoiceID)
}

// Send moves DRAFT -> SENT, stamps issue/due dates and mails the client.
func (slf *InvoiceService) Send(invoiceID uint, dueDate time.Time, actor models.Actor) (*models.Invoice, error) {
	invoice, err := slf.transition(invoiceID, models.InvoiceStatusSent, map[string]any{
		"issue_date": time.Now(),
		"due_date":   dueDate,
	}, actor)
	if err != nil {
		return nil, err
	}

	slf.notifyClient(*invoice, fmt.Sprintf("Invoice %s", invoice.InvoiceNumber),
		fmt.Sprintf("Invoice %s for %s is due on %s.",
			invoice.InvoiceNumber, invoice.TotalAmount.StringFixed(2), dueDate.Format("2006-01-02")))
	return invoice, nil
}

// MarkPaid settles an invoice (SENT or OVERDUE).
func (slf *InvoiceService) MarkPaid(invoiceID uint, actor models.Actor) (*models.Invoice, error) {
	return slf.transition(invoiceID, models.InvoiceStatusPaid, map[string]any{
		"paid_at": time.Now(),
	}, actor)
}

// Void cancels an invoice that has not been paid.
func (slf *InvoiceService) Void(invoiceID uint, actor models.Actor) (*models.Invoice, error) {
	return slf.transition(invoiceID, models.InvoiceStatusVoid, nil, actor)
}

// transition is the shared conditional-update edge walk for invoices.
func (slf *InvoiceService) transition(invoiceID uint, target models.InvoiceStatus, extra map[string]any, actor models.Actor) (*models.Invoice, error) {
	invoice, err := slf.invoiceRepo.FindByID(invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice %d: %w", invoiceID, models.ErrNotFound)
		}
		return nil, err
	}

	current := invoice.Status
	if current == target && target == models.InvoiceStatusOverdue {
		// Sweep re-run, nothing to do.
		return &invoice, nil
	}
	if !current.CanTransitionTo(target) {
		return nil, models.NewInvalidTransition("invoice", string(current), string(target))
	}

	updates := map[string]any{"status": target}
	for k, v := range extra {
		updates[k] = v
	}

	res := slf.invoiceRepo.Db.Model(&models.Invoice{}).
		Where("id = ? AND status = ?", invoiceID, current).
		Updates(updates)
	if res.Error != nil {
		slf.logger.Error().Err(res.Error).Uint("invoiceId", invoiceID).Msg("Error updating invoice status")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("invoice %d was modified concurrently: %w", invoiceID, models.ErrConflict)
	}

	slf.logger.Info().
		Uint("invoiceId", invoiceID).
		Str("from", string(current)).
		Str("to", string(target)).
		Uint("actorId", actor.UserID).
		Msg("Invoice transitioned")

	return slf.FindByID(invoiceID)
}

// SweepOverdue marks every SENT invoice past its due date OVERDUE. It is the
// only time-based transition in the system and must stay safe to re-run: the
// WHERE clause only matches invoices that still need the move, so a second
// sweep is a no-op. Returns how many invoices changed.
func (slf *InvoiceService) SweepOverdue() (int, error) {
	locked, err := pkg.RedisTryLock(invoiceSweepLockKey, time.Minute)
	if err != nil && !errors.Is(err, pkg.ErrRedisUnavailable) {
		return 0, err
	}
	if !locked {
		slf.logger.Debug().Msg("Overdue sweep already running elsewhere")
		return 0, nil
	}
	defer pkg.RedisUnlock(invoiceSweepLockKey)

	now := time.Now()
	var due []models.Invoice
	if err = slf.invoiceRepo.Db.
		Where("status = ? AND due_date < ?", models.InvoiceStatusSent, now).
		Find(&due).Error; err != nil {
		return 0, err
	}

	swept := 0
	for _, invoice := range due {
		res := slf.invoiceRepo.Db.Model(&models.Invoice{}).
			Where("id = ? AND status = ?", invoice.ID, models.InvoiceStatusSent).
			Update("status", models.InvoiceStatusOverdue)
		if res.Error != nil {
			slf.logger.Error().Err(res.Error).Uint("invoiceId", invoice.ID).Msg("Error marking invoice overdue")
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}
		swept++
		slf.notifyClient(invoice, fmt.Sprintf("Invoice %s is overdue", invoice.InvoiceNumber),
			fmt.Sprintf("Invoice %s for %s was due on %s and is now overdue.",
				invoice.InvoiceNumber, invoice.TotalAmount.StringFixed(2), invoice.DueDate.Format("2006-01-02")))
	}

	if swept > 0 {
		slf.logger.Info().Int("count", swept).Msg("Invoices marked overdue")
	}
	return swept, nil
}

// notifyClient sends a best-effort email to the invoice's client contact.
func (slf *InvoiceService) notifyClient(invoice models.Invoice, subject, body string) {
	client, err := slf.clientRepo.FindByID(invoice.ClientID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("clientId", invoice.ClientID).Msg("Failed to load client for invoice email")
		return
	}
	if client.ContactEmail == "" {
		return
	}
	msg := pkg.EmailMessage{
		To:      []string{client.ContactEmail},
		Subject: subject,
		Body:    body,
	}
	if err := pkg.SendEmail(msg); err != nil {
		slf.logger.Error().Err(err).Uint("invoiceId", invoice.ID).Msg("Failed to send invoice email")
	}
}
