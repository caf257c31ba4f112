package bot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"angkot/internal/domain"
	"angkot/internal/services"
	"angkot/internal/utils"
)

func outcomeDay() time.Time {
	return time.Date(2025, 3, 25, 0, 0, 0, 0, utils.Location())
}

func TestRenderDepartureOutcome(t *testing.T) {
	out := services.LegOutcome{
		Driver: "Pak Ahmad",
		Day:    outcomeDay(),
		Leg:    domain.LegDeparture,
		Lines: []services.FareLine{
			{Passenger: "Santri Ali", Price: domain.SingleTripPrice},
			{Passenger: "Santri Umar", Price: domain.SingleTripPrice},
		},
		Total: 2 * domain.SingleTripPrice,
	}

	text := renderLegOutcome(out)
	for _, want := range []string{
		"✅ Keberangkatan berhasil dicatat",
		"Driver: Pak Ahmad",
		"Tanggal: 25-03-2025",
		"- Santri Ali (Rp 10.000 - Sekali jalan)",
		"💰 Total: Rp 20.000",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestRenderReturnOutcomeWithNoShows(t *testing.T) {
	out := services.LegOutcome{
		Driver: "Pak Ahmad",
		Day:    outcomeDay(),
		Leg:    domain.LegReturn,
		Lines: []services.FareLine{
			{Passenger: "Santri Ali", Price: domain.RoundTripPrice - domain.SingleTripPrice, RoundTrip: true},
		},
		NoShows: []string{"Santri Umar"},
		Total:   domain.RoundTripPrice - domain.SingleTripPrice,
	}

	text := renderLegOutcome(out)
	for _, want := range []string{
		"✅ Kepulangan berhasil dicatat",
		"- Santri Ali (Rp 5.000 - Pulang-Pergi)",
		"Berangkat tapi tidak ikut pulang:",
		"- Santri Umar",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestRenderNoteOutcomeSkipsEmptySections(t *testing.T) {
	out := services.NoteOutcome{
		Driver:    "Pak Ahmad",
		Day:       outcomeDay(),
		RoundTrip: []string{"Santri Ali"},
		Total:     domain.RoundTripPrice,
	}

	text := renderNoteOutcome(out)
	if !strings.Contains(text, "Antar & Jemput:") {
		t.Fatalf("missing round-trip section:\n%s", text)
	}
	if strings.Contains(text, "Antar Saja:") || strings.Contains(text, "Jemput Saja:") {
		t.Fatalf("empty sections rendered:\n%s", text)
	}
	if !strings.Contains(text, "💰 Total: Rp 15.000") {
		t.Fatalf("total missing:\n%s", text)
	}
}

func TestRenderErrorHidesInternalCause(t *testing.T) {
	err := domain.InternalError{Msg: "gagal menyimpan", Err: errors.New("dial tcp: connection refused")}
	text := renderError(err)
	if strings.Contains(text, "connection refused") {
		t.Fatalf("internal cause leaked: %q", text)
	}

	verr := domain.ValidationError{Msg: "Nama driver tidak boleh kosong."}
	if got := renderError(verr); got != "Nama driver tidak boleh kosong." {
		t.Fatalf("validation text changed: %q", got)
	}
}
