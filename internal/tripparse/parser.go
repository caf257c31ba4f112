// Package tripparse converts free-text chat submissions into structured
// trip records. It never panics on malformed input; every rejection is a
// domain.ValidationError whose message can be replied to the user as-is.
package tripparse

import (
	"regexp"
	"strings"
	"time"

	"angkot/internal/domain"
	"angkot/internal/utils"
)

// Trip is one parsed departure or return submission.
type Trip struct {
	DriverName string
	Passengers []string
	Day        time.Time
	HasDay     bool
}

var numberedLine = regexp.MustCompile(`^\d+\.\s*(.*)$`)

const (
	driverPrefix = "driver:"
	datePrefix   = "date:"
)

// ParseTrip parses the line form:
//
//	Driver: Pak Ahmad
//	Date: 25-03-2024        (opsional)
//	- Santri Ali
//	1. Santri Umar
//
// Passenger order equals input order, duplicates preserved. Names are
// matched literally after trimming; no normalization.
func ParseTrip(raw string) (Trip, error) {
	var trip Trip
	lines := strings.Split(raw, "\n")

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) {
		return trip, domain.ValidationError{Msg: "Format tidak valid. Baris pertama harus 'Driver: <nama_driver>'."}
	}

	first := strings.TrimSpace(lines[i])
	if !strings.HasPrefix(strings.ToLower(first), driverPrefix) {
		return trip, domain.ValidationError{Msg: "Format tidak valid. Baris pertama harus 'Driver: <nama_driver>'."}
	}
	trip.DriverName = strings.TrimSpace(first[len(driverPrefix):])
	if trip.DriverName == "" {
		return trip, domain.ValidationError{Msg: "Nama driver tidak ditemukan. Gunakan 'Driver: <nama_driver>'."}
	}
	i++

	if i < len(lines) {
		next := strings.TrimSpace(lines[i])
		if strings.HasPrefix(strings.ToLower(next), datePrefix) {
			day, err := parseDay(strings.TrimSpace(next[len(datePrefix):]))
			if err != nil {
				return trip, domain.ValidationError{Msg: "Format tanggal tidak valid. Gunakan format DD-MM-YYYY."}
			}
			trip.Day = day
			trip.HasDay = true
			i++
		}
	}

	for ; i < len(lines); i++ {
		name, ok := passengerLine(lines[i])
		if !ok || name == "" {
			continue
		}
		trip.Passengers = append(trip.Passengers, name)
	}

	if len(trip.Passengers) == 0 {
		return trip, domain.ValidationError{Msg: "Tidak ada penumpang yang valid. Tulis penumpang dengan '- <nama>' atau '1. <nama>'."}
	}
	return trip, nil
}

// passengerLine extracts a name from "- nama" or "3. nama" lines.
// Anything else is not a passenger line.
func passengerLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	if strings.HasPrefix(line, "-") {
		return strings.TrimSpace(strings.TrimPrefix(line, "-")), true
	}
	if m := numberedLine.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

func parseDay(s string) (time.Time, error) {
	if t, err := utils.ParseReportDay(s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("02/01/2006", s, utils.Location())
}
