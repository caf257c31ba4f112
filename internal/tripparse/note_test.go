package tripparse

import (
	"strings"
	"testing"

	"angkot/internal/domain"
)

func TestParseNoteThreeSections(t *testing.T) {
	raw := strings.Join([]string{
		"Driver: Pak Ahmad",
		"antar & jemput",
		"1. Santri Ali",
		"2. Santri Budi",
		"antar aja",
		"1. Santri Umar",
		"jemput aja",
		"1. Santri Hasan",
	}, "\n")

	note, err := ParseNote(raw)
	if err != nil {
		t.Fatalf("ParseNote returned error: %v", err)
	}
	if note.DriverName != "Pak Ahmad" {
		t.Fatalf("driver = %q", note.DriverName)
	}
	if len(note.RoundTrip) != 2 || note.RoundTrip[0] != "Santri Ali" || note.RoundTrip[1] != "Santri Budi" {
		t.Fatalf("round-trip = %v", note.RoundTrip)
	}
	if len(note.DepartureOnly) != 1 || note.DepartureOnly[0] != "Santri Umar" {
		t.Fatalf("departure-only = %v", note.DepartureOnly)
	}
	if len(note.ReturnOnly) != 1 || note.ReturnOnly[0] != "Santri Hasan" {
		t.Fatalf("return-only = %v", note.ReturnOnly)
	}
}

func TestParseNoteSectionsOptional(t *testing.T) {
	note, err := ParseNote("Driver: Pak Ahmad\njemput saja\n- Santri Hasan")
	if err != nil {
		t.Fatalf("ParseNote returned error: %v", err)
	}
	if len(note.RoundTrip) != 0 || len(note.DepartureOnly) != 0 {
		t.Fatalf("unexpected entries: %+v", note)
	}
	if len(note.ReturnOnly) != 1 {
		t.Fatalf("return-only = %v", note.ReturnOnly)
	}
}

func TestParseNoteHeaderAliases(t *testing.T) {
	note, err := ParseNote("Driver: X\nantar dan jemput\n1. Ali\nANTAR SAJA\n1. Umar")
	if err != nil {
		t.Fatalf("ParseNote returned error: %v", err)
	}
	if len(note.RoundTrip) != 1 || len(note.DepartureOnly) != 1 {
		t.Fatalf("aliases not recognized: %+v", note)
	}
}

func TestParseNotePassengerBeforeHeader(t *testing.T) {
	_, err := ParseNote("Driver: Pak Ahmad\n1. Santri Ali\nantar aja\n1. Santri Umar")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "sebelum judul bagian") {
		t.Fatalf("wrong diagnostic: %v", err)
	}
}

func TestParseNoteUnrecognizedLine(t *testing.T) {
	_, err := ParseNote("Driver: Pak Ahmad\nantar aja\nini bukan daftar")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "tidak dikenali") {
		t.Fatalf("wrong diagnostic: %v", err)
	}
}

func TestParseNoteMissingDriver(t *testing.T) {
	_, err := ParseNote("antar aja\n1. Santri Ali")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseNoteNoPassengers(t *testing.T) {
	_, err := ParseNote("Driver: Pak Ahmad\nantar aja\njemput aja")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
