package tripparse

import (
	"fmt"
	"strings"

	"angkot/internal/domain"
)

// Note is a full-day structured submission: the sender classifies each
// passenger directly instead of sending separate antar/jemput messages.
type Note struct {
	DriverName    string
	RoundTrip     []string
	DepartureOnly []string
	ReturnOnly    []string
}

type noteSection int

const (
	sectionNone noteSection = iota
	sectionRoundTrip
	sectionDepartureOnly
	sectionReturnOnly
)

// ParseNote parses the three-section note form:
//
//	Driver: Pak Ahmad
//	antar & jemput
//	1. Santri Ali
//	antar aja
//	1. Santri Umar
//	jemput aja
//	1. Santri Hasan
//
// Sections may appear in any order and may be omitted; at least one
// passenger is required overall.
func ParseNote(raw string) (Note, error) {
	var note Note
	lines := strings.Split(raw, "\n")

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) {
		return note, domain.ValidationError{Msg: "Format catatan tidak valid. Baris pertama harus 'Driver: <nama_driver>'."}
	}
	first := strings.TrimSpace(lines[i])
	if !strings.HasPrefix(strings.ToLower(first), driverPrefix) {
		return note, domain.ValidationError{Msg: "Format catatan tidak valid. Baris pertama harus 'Driver: <nama_driver>'."}
	}
	note.DriverName = strings.TrimSpace(first[len(driverPrefix):])
	if note.DriverName == "" {
		return note, domain.ValidationError{Msg: "Nama driver tidak ditemukan. Gunakan 'Driver: <nama_driver>'."}
	}
	i++

	current := sectionNone
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if sec, ok := sectionHeader(line); ok {
			current = sec
			continue
		}
		name, ok := passengerLine(line)
		if !ok {
			return note, domain.ValidationError{Msg: fmt.Sprintf("Baris tidak dikenali: %q. Gunakan judul bagian 'antar & jemput', 'antar aja', 'jemput aja' diikuti daftar bernomor.", line)}
		}
		if name == "" {
			continue
		}
		switch current {
		case sectionRoundTrip:
			note.RoundTrip = append(note.RoundTrip, name)
		case sectionDepartureOnly:
			note.DepartureOnly = append(note.DepartureOnly, name)
		case sectionReturnOnly:
			note.ReturnOnly = append(note.ReturnOnly, name)
		default:
			return note, domain.ValidationError{Msg: fmt.Sprintf("Penumpang %q ditulis sebelum judul bagian. Mulai dengan 'antar & jemput', 'antar aja', atau 'jemput aja'.", name)}
		}
	}

	if len(note.RoundTrip)+len(note.DepartureOnly)+len(note.ReturnOnly) == 0 {
		return note, domain.ValidationError{Msg: "Tidak ada penumpang yang valid di catatan."}
	}
	return note, nil
}

func sectionHeader(line string) (noteSection, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "antar & jemput", "antar dan jemput":
		return sectionRoundTrip, true
	case "antar aja", "antar saja":
		return sectionDepartureOnly, true
	case "jemput aja", "jemput saja":
		return sectionReturnOnly, true
	}
	return sectionNone, false
}
