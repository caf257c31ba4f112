package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"angkot/internal/repositories"
	"angkot/internal/utils"
)

// DocsService menghasilkan ekspor laporan harian: PDF dan CSV trip legs.
type DocsService struct {
	Reports ReportService
	Store   repositories.Storage
	Loader  func(ctx context.Context, chatID int64, day time.Time) (DailyReport, error)
}

func (s DocsService) GenerateDailyReportPDF(ctx context.Context, chatID int64, day time.Time) ([]byte, string, error) {
	report, err := s.loadReport(ctx, chatID, day)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent("", "docs", "generate_report_pdf", fmt.Sprintf("chat_id=%d day=%s", chatID, utils.FormatDay(day)))
	return buildDailyReportPDF(report)
}

func (s DocsService) loadReport(ctx context.Context, chatID int64, day time.Time) (DailyReport, error) {
	if s.Loader != nil {
		return s.Loader(ctx, chatID, day)
	}
	return s.Reports.DailyReport(ctx, chatID, day)
}

func buildDailyReportPDF(r DailyReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Harian Angkot", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "LAPORAN HARIAN ANGKOT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Tanggal: "+utils.FormatReportDay(r.Day))
	pdf.Ln(10)

	if len(r.Sections) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "Belum ada perjalanan pada tanggal ini.")
		pdf.Ln(7)
	}

	for _, section := range r.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Driver: "+section.Driver)
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		for _, fare := range section.Fares {
			line := fmt.Sprintf("- %s (%s) %s", fare.Passenger, fare.Category, utils.FormatRupiah(int64(fare.Price)))
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Total Driver: "+utils.FormatRupiah(int64(section.Subtotal)))
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Total Pendapatan: "+utils.FormatRupiah(int64(r.Total)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("LAPORAN_%s.pdf", utils.FormatDay(r.Day))
	return buf.Bytes(), filename, nil
}

// GenerateLegsCSV exports the raw trip legs for a day, the ledger-level
// counterpart of the bot's report text.
func (s DocsService) GenerateLegsCSV(ctx context.Context, chatID int64, day time.Time) ([]byte, string, error) {
	legs, err := s.Store.ListLegs(ctx, chatID, day)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent("", "docs", "generate_legs_csv", fmt.Sprintf("chat_id=%d day=%s rows=%d", chatID, utils.FormatDay(day), len(legs)))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"driver_name", "passenger_name", "leg_type", "trip_date"}); err != nil {
		return nil, "", err
	}
	for _, leg := range legs {
		record := []string{leg.DriverName, leg.PassengerName, string(leg.Leg), utils.FormatDay(leg.Day)}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("trip_legs_%s.csv", utils.FormatDay(day))
	return buf.Bytes(), filename, nil
}
