package tripparse

import (
	"strings"
	"testing"

	"angkot/internal/domain"
	"angkot/internal/utils"
)

func TestParseTripLineForm(t *testing.T) {
	raw := "Driver: Pak Ahmad\n- Santri Ali\n1. Santri Umar\n2. Santri Hasan"

	trip, err := ParseTrip(raw)
	if err != nil {
		t.Fatalf("ParseTrip returned error: %v", err)
	}
	if trip.DriverName != "Pak Ahmad" {
		t.Fatalf("driver = %q", trip.DriverName)
	}
	want := []string{"Santri Ali", "Santri Umar", "Santri Hasan"}
	if len(trip.Passengers) != len(want) {
		t.Fatalf("passengers = %v", trip.Passengers)
	}
	for i, name := range want {
		if trip.Passengers[i] != name {
			t.Fatalf("passengers = %v, want %v", trip.Passengers, want)
		}
	}
	if trip.HasDay {
		t.Fatalf("HasDay set without a Date line")
	}
}

func TestParseTripKeepsInputOrder(t *testing.T) {
	trip, err := ParseTrip("Driver: X\n- Bob\n- Alice")
	if err != nil {
		t.Fatalf("ParseTrip returned error: %v", err)
	}
	if len(trip.Passengers) != 2 || trip.Passengers[0] != "Bob" || trip.Passengers[1] != "Alice" {
		t.Fatalf("order not preserved: %v", trip.Passengers)
	}
}

func TestParseTripMissingDriverLine(t *testing.T) {
	_, err := ParseTrip("- Santri Ali\n- Santri Umar")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Driver:") {
		t.Fatalf("diagnostic does not name the expected line: %v", err)
	}
}

func TestParseTripEmptyDriverName(t *testing.T) {
	_, err := ParseTrip("Driver:\n- Santri Ali")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseTripNoPassengers(t *testing.T) {
	_, err := ParseTrip("Driver: Pak Ahmad")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "penumpang") {
		t.Fatalf("diagnostic not about passengers: %v", err)
	}
}

func TestParseTripSkipsEmptyDashLines(t *testing.T) {
	trip, err := ParseTrip("Driver: Pak Ahmad\n- Santri Ali\n-\n-   \n- Santri Umar")
	if err != nil {
		t.Fatalf("ParseTrip returned error: %v", err)
	}
	if len(trip.Passengers) != 2 {
		t.Fatalf("empty dash lines counted: %v", trip.Passengers)
	}
}

func TestParseTripIgnoresUnrecognizedLines(t *testing.T) {
	trip, err := ParseTrip("Driver: Pak Ahmad\ncatatan tambahan\n- Santri Ali")
	if err != nil {
		t.Fatalf("ParseTrip returned error: %v", err)
	}
	if len(trip.Passengers) != 1 || trip.Passengers[0] != "Santri Ali" {
		t.Fatalf("passengers = %v", trip.Passengers)
	}
}

func TestParseTripDateLine(t *testing.T) {
	for _, raw := range []string{
		"Driver: Pak Ahmad\nDate: 25-03-2024\n- Santri Ali",
		"Driver: Pak Ahmad\nDate: 25/03/2024\n- Santri Ali",
	} {
		trip, err := ParseTrip(raw)
		if err != nil {
			t.Fatalf("ParseTrip(%q) returned error: %v", raw, err)
		}
		if !trip.HasDay {
			t.Fatalf("HasDay not set for %q", raw)
		}
		if got := utils.FormatDay(trip.Day); got != "2024-03-25" {
			t.Fatalf("day = %s", got)
		}
	}
}

func TestParseTripBadDate(t *testing.T) {
	_, err := ParseTrip("Driver: Pak Ahmad\nDate: 2024-03-25\n- Santri Ali")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "DD-MM-YYYY") {
		t.Fatalf("diagnostic missing expected format: %v", err)
	}
}

func TestParseTripCaseInsensitiveKeywords(t *testing.T) {
	trip, err := ParseTrip("driver: pak ahmad\ndate: 01-01-2025\n- Ali")
	if err != nil {
		t.Fatalf("ParseTrip returned error: %v", err)
	}
	if trip.DriverName != "pak ahmad" {
		t.Fatalf("driver name case changed: %q", trip.DriverName)
	}
	if !trip.HasDay {
		t.Fatalf("lowercase date line not parsed")
	}
}
