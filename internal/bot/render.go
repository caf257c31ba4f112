package bot

import (
	"fmt"
	"strings"

	"angkot/internal/domain"
	"angkot/internal/services"
	"angkot/internal/utils"
)

// renderLegOutcome builds the confirmation reply for one recorded leg.
func renderLegOutcome(out services.LegOutcome) string {
	var sb strings.Builder

	if out.Leg == domain.LegDeparture {
		sb.WriteString("✅ Keberangkatan berhasil dicatat\n\n")
	} else {
		sb.WriteString("✅ Kepulangan berhasil dicatat\n\n")
	}
	fmt.Fprintf(&sb, "Driver: %s\n", out.Driver)
	fmt.Fprintf(&sb, "Tanggal: %s\n", utils.FormatReportDay(out.Day))
	sb.WriteString("Daftar Penumpang:\n")

	for _, line := range out.Lines {
		if line.RoundTrip {
			fmt.Fprintf(&sb, "- %s (%s - Pulang-Pergi)\n", line.Passenger, utils.FormatRupiah(int64(line.Price)))
		} else {
			fmt.Fprintf(&sb, "- %s (%s - Sekali jalan)\n", line.Passenger, utils.FormatRupiah(int64(line.Price)))
		}
	}

	if len(out.NoShows) > 0 {
		sb.WriteString("\n⚠️ Berangkat tapi tidak ikut pulang:\n")
		for _, p := range out.NoShows {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
	}

	fmt.Fprintf(&sb, "\n💰 Total: %s", utils.FormatRupiah(int64(out.Total)))
	return sb.String()
}

// renderNoteOutcome builds the confirmation reply for a structured note.
func renderNoteOutcome(out services.NoteOutcome) string {
	var sb strings.Builder

	sb.WriteString("✅ Catatan harian berhasil dicatat\n\n")
	fmt.Fprintf(&sb, "Driver: %s\n", out.Driver)
	fmt.Fprintf(&sb, "Tanggal: %s\n", utils.FormatReportDay(out.Day))

	writeNoteSection(&sb, "Antar & Jemput", out.RoundTrip, domain.RoundTripPrice)
	writeNoteSection(&sb, "Antar Saja", out.DepartureOnly, domain.SingleTripPrice)
	writeNoteSection(&sb, "Jemput Saja", out.ReturnOnly, domain.SingleTripPrice)

	fmt.Fprintf(&sb, "\n💰 Total: %s", utils.FormatRupiah(int64(out.Total)))
	return sb.String()
}

func writeNoteSection(sb *strings.Builder, title string, names []string, price int) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	for _, n := range names {
		fmt.Fprintf(sb, "- %s (%s)\n", n, utils.FormatRupiah(int64(price)))
	}
}
