package service

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"dronedesk"
	"dronedesk/internal/api/models"
	"dronedesk/internal/api/repo"
	"dronedesk/pkg"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PilotTaxSummary is one 1099 report row for a pilot and tax year.
type PilotTaxSummary struct {
	PilotID      uint            `json:"pilotId"`
	PilotName    string          `json:"pilotName"`
	LegalName    string          `json:"legalName"`
	BusinessName string          `json:"businessName"`
	TINType      models.TINType  `json:"tinType,omitempty"`
	MaskedTIN    string          `json:"maskedTin"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	PaymentCount int             `json:"paymentCount"`
	Requires1099 bool            `json:"requires1099"`
	W9Approved   bool            `json:"w9Approved"`
	// MissingW9 flags pilots who need a 1099 but have no approved W-9 on
	// file; this is the actionable alert set for year-end compliance.
	MissingW9 bool `json:"missingW9"`
}

type TaxService struct {
	paymentRepo *repo.PaymentRepository
	pilotRepo   *repo.PilotRepository
	config      dronedesk.AppConfig
	logger      zerolog.Logger
}

func NewTaxService() *TaxService {
	return &TaxService{
		paymentRepo: repo.NewPaymentRepository(),
		pilotRepo:   repo.NewPilotRepository(),
		config:      dronedesk.GetConfig(),
		logger:      dronedesk.Logger,
	}
}

// AggregateForYear recomputes the 1099 obligations for a calendar year from
// the PAID payments alone. Nothing here is cached or persisted: the report
// is always consistent with the latest payment and W-9 state. The scan runs
// on the plain read-committed session outside any write transaction.
func (slf *TaxService) AggregateForYear(year int) ([]PilotTaxSummary, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	payments, err := slf.paymentRepo.FindPaidWithin(from, to)
	if err != nil {
		slf.logger.Error().Err(err).Int("year", year).Msg("Error loading paid payments")
		return nil, err
	}
	if len(payments) == 0 {
		return []PilotTaxSummary{}, nil
	}

	totals := make(map[uint]*PilotTaxSummary)
	var pilotIDs []uint
	for _, payment := range payments {
		row, ok := totals[payment.PilotID]
		if !ok {
			row = &PilotTaxSummary{PilotID: payment.PilotID, TotalPaid: decimal.Zero}
			totals[payment.PilotID] = row
			pilotIDs = append(pilotIDs, payment.PilotID)
		}
		row.TotalPaid = row.TotalPaid.Add(payment.Amount)
		row.PaymentCount++
	}

	pilots, err := slf.pilotRepo.FindAllByIDsWithW9(pilotIDs)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error loading pilots for tax report")
		return nil, err
	}

	threshold := slf.config.TaxConfig.Form1099Threshold
	for _, pilot := range pilots {
		row := totals[pilot.ID]
		if row == nil {
			continue
		}
		row.PilotName = pilot.FirstName + " " + pilot.LastName
		row.Requires1099 = row.TotalPaid.GreaterThanOrEqual(threshold)
		if pilot.W9 != nil {
			row.LegalName = pilot.W9.LegalName
			row.BusinessName = pilot.W9.BusinessName
			row.TINType = pilot.W9.TINType
			row.MaskedTIN = models.MaskTIN(pilot.W9.TINType, pilot.W9.TINLast4)
			row.W9Approved = pilot.W9.ReviewStatus == models.W9ReviewApproved
		}
		row.MissingW9 = row.Requires1099 && !row.W9Approved
	}

	rows := make([]PilotTaxSummary, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PilotID < rows[j].PilotID })
	return rows, nil
}

// CSVForYear renders the aggregation the way the reporting collaborator
// consumes it: one row per pilot, masked TIN only.
func (slf *TaxService) CSVForYear(year int) (string, error) {
	rows, err := slf.AggregateForYear(year)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"pilot_id", "pilot_name", "legal_name", "business_name", "tin", "total_paid", "requires_1099", "w9_approved", "missing_w9"}
	if err = w.Write(header); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.PilotID), 10),
			row.PilotName,
			row.LegalName,
			row.BusinessName,
			row.MaskedTIN,
			row.TotalPaid.StringFixed(2),
			strconv.FormatBool(row.Requires1099),
			strconv.FormatBool(row.W9Approved),
			strconv.FormatBool(row.MissingW9),
		}
		if err = w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EmailYearReport mails the yearly CSV to the given recipients, typically
// the accountant preparing the 1099 filings.
func (slf *TaxService) EmailYearReport(year int, recipients []string) error {
	csvData, err := slf.CSVForYear(year)
	if err != nil {
		return err
	}

	filename := "1099-report-" + strconv.Itoa(year) + ".csv"
	err = pkg.SendEmail(pkg.EmailMessage{
		To:          recipients,
		Subject:     "1099 contractor payment report " + strconv.Itoa(year),
		Body:        "Attached is the 1099 payment aggregation for " + strconv.Itoa(year) + ".",
		Attachments: []pkg.Attachment{pkg.AttachmentFromCSV(filename, csvData)},
	})
	if err != nil {
		slf.logger.Error().Err(err).Int("year", year).Msg("Error mailing tax report")
		return err
	}
	slf.logger.Info().Int("year", year).Strs("to", recipients).Msg("Mailed 1099 report")
	return nil
}
