package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"angkot/internal/domain"
	"angkot/internal/repositories"
	"angkot/internal/utils"
)

// ReportService builds the daily ledger view. Reports are computed per
// request and never stored.
type ReportService struct {
	Store repositories.Storage
}

// DriverSection is one driver's classified passengers for the day.
type DriverSection struct {
	Driver   string
	Fares    []domain.PassengerFare
	Subtotal int
}

// DailyReport is the aggregate over all drivers active on one day.
type DailyReport struct {
	ChatID   int64
	Day      time.Time
	Sections []DriverSection
	Total    int
}

// DailyReport loads every driver with a leg on day and classifies each
// passenger. Today and an explicit date share this path; the day is only a
// filter.
func (s ReportService) DailyReport(ctx context.Context, chatID int64, day time.Time) (DailyReport, error) {
	day = utils.DayOf(day)
	report := DailyReport{ChatID: chatID, Day: day}

	drivers, err := s.Store.GetDriversByDate(ctx, chatID, day)
	if err != nil {
		utils.LogEvent("", "report", "daily_report_error", err.Error())
		return report, domain.InternalError{Msg: "gagal membuat laporan", Err: err}
	}

	for _, driver := range drivers {
		departed, err := s.Store.GetDeparturePassengers(ctx, driver, chatID, day)
		if err != nil {
			utils.LogEvent("", "report", "daily_report_error", err.Error())
			return report, domain.InternalError{Msg: "gagal membuat laporan", Err: err}
		}
		returned, err := s.Store.GetReturnPassengers(ctx, driver, chatID, day)
		if err != nil {
			utils.LogEvent("", "report", "daily_report_error", err.Error())
			return report, domain.InternalError{Msg: "gagal membuat laporan", Err: err}
		}

		section := DriverSection{Driver: driver, Fares: domain.Classify(departed, returned)}
		for _, fare := range section.Fares {
			section.Subtotal += fare.Price
		}
		report.Sections = append(report.Sections, section)
		report.Total += section.Subtotal
	}

	return report, nil
}

// Render formats the report as chat text. Category headers appear only
// when the category has passengers; a driver with empty legs still gets a
// section with a zero subtotal.
func (r DailyReport) Render() string {
	if len(r.Sections) == 0 {
		return fmt.Sprintf("📊 Belum ada perjalanan pada tanggal %s", utils.FormatReportDay(r.Day))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Laporan Perjalanan %s\n", utils.FormatReportDay(r.Day))
	b.WriteString("================\n")

	for _, section := range r.Sections {
		fmt.Fprintf(&b, "\n🚗 Driver: %s\n", section.Driver)
		writeCategory(&b, "Pulang-Pergi", section.Fares, domain.CategoryRoundTrip)
		writeCategory(&b, "Antar Saja", section.Fares, domain.CategoryDepartureOnly)
		writeCategory(&b, "Jemput Saja", section.Fares, domain.CategoryReturnOnly)
		fmt.Fprintf(&b, "💰 Total Driver: %s\n", utils.FormatRupiah(int64(section.Subtotal)))
	}

	fmt.Fprintf(&b, "\n💰 Total Pendapatan: %s", utils.FormatRupiah(int64(r.Total)))
	return b.String()
}

func writeCategory(b *strings.Builder, title string, fares []domain.PassengerFare, cat domain.Category) {
	wroteHeader := false
	for _, fare := range fares {
		if fare.Category != cat {
			continue
		}
		if !wroteHeader {
			fmt.Fprintf(b, "%s:\n", title)
			wroteHeader = true
		}
		fmt.Fprintf(b, "- %s (%s)\n", fare.Passenger, utils.FormatRupiah(int64(fare.Price)))
	}
}
