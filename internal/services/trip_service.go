package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"angkot/internal/domain"
	"angkot/internal/repositories"
	"angkot/internal/tripparse"
	"angkot/internal/utils"
)

// TripService is the trip recorder: it validates the driver, replaces the
// driver's leg for the day, and prices the submission.
type TripService struct {
	Store repositories.Storage
	Now   func() time.Time

	locks keyedMutex
}

func NewTripService(store repositories.Storage) *TripService {
	return &TripService{Store: store, Now: time.Now}
}

// FareLine is one priced passenger on a submission confirmation.
type FareLine struct {
	Passenger string
	Price     int
	RoundTrip bool
}

// LegOutcome is a recorded departure or return, ready for rendering.
type LegOutcome struct {
	Driver  string
	Day     time.Time
	Leg     domain.LegType
	Lines   []FareLine
	NoShows []string
	Total   int
}

func (s *TripService) RecordDeparture(ctx context.Context, chatID int64, trip tripparse.Trip) (LegOutcome, error) {
	day := s.tripDay(trip)
	out := LegOutcome{Driver: trip.DriverName, Day: day, Leg: domain.LegDeparture}

	if err := s.requireDriver(ctx, trip.DriverName, chatID); err != nil {
		return out, err
	}

	unlock := s.locks.lock(legKey(chatID, trip.DriverName, day))
	defer unlock()

	if err := s.Store.ReplaceDeparture(ctx, trip.DriverName, trip.Passengers, chatID, day); err != nil {
		utils.LogEvent("", "trip", "record_departure_error", err.Error())
		return out, domain.InternalError{Msg: "gagal menyimpan data keberangkatan", Err: err}
	}

	for _, p := range uniqueNames(trip.Passengers) {
		out.Lines = append(out.Lines, FareLine{Passenger: p, Price: domain.SingleTripPrice})
		out.Total += domain.SingleTripPrice
	}
	utils.LogEvent("", "trip", "record_departure", fmt.Sprintf("driver=%s passengers=%d", trip.DriverName, len(out.Lines)))
	return out, nil
}

func (s *TripService) RecordReturn(ctx context.Context, chatID int64, trip tripparse.Trip) (LegOutcome, error) {
	day := s.tripDay(trip)
	out := LegOutcome{Driver: trip.DriverName, Day: day, Leg: domain.LegReturn}

	if err := s.requireDriver(ctx, trip.DriverName, chatID); err != nil {
		return out, err
	}

	unlock := s.locks.lock(legKey(chatID, trip.DriverName, day))
	defer unlock()

	if err := s.Store.ReplaceReturn(ctx, trip.DriverName, trip.Passengers, chatID, day); err != nil {
		utils.LogEvent("", "trip", "record_return_error", err.Error())
		return out, domain.InternalError{Msg: "gagal menyimpan data kepulangan", Err: err}
	}

	departed, err := s.Store.GetDeparturePassengers(ctx, trip.DriverName, chatID, day)
	if err != nil {
		utils.LogEvent("", "trip", "record_return_error", err.Error())
		return out, domain.InternalError{Msg: "gagal membaca data keberangkatan", Err: err}
	}

	inDeparture := make(map[string]bool, len(departed))
	for _, p := range departed {
		inDeparture[p] = true
	}
	returned := uniqueNames(trip.Passengers)
	inReturn := make(map[string]bool, len(returned))
	for _, p := range returned {
		inReturn[p] = true
		line := FareLine{Passenger: p, Price: domain.SingleTripPrice}
		if inDeparture[p] {
			line.Price = domain.RoundTripPrice - domain.SingleTripPrice
			line.RoundTrip = true
		}
		out.Lines = append(out.Lines, line)
		out.Total += line.Price
	}
	for _, p := range departed {
		if !inReturn[p] {
			out.NoShows = append(out.NoShows, p)
		}
	}

	utils.LogEvent("", "trip", "record_return", fmt.Sprintf("driver=%s passengers=%d no_show=%d", trip.DriverName, len(out.Lines), len(out.NoShows)))
	return out, nil
}

// NoteOutcome is a recorded structured note, one full day per driver.
type NoteOutcome struct {
	Driver        string
	Day           time.Time
	RoundTrip     []string
	DepartureOnly []string
	ReturnOnly    []string
	Total         int
}

// RecordNote records a structured note: the round-trip section lands in
// both legs, the single sections in one leg each. Exactly one replace per
// leg type, so submitting the same note twice leaves identical sets.
func (s *TripService) RecordNote(ctx context.Context, chatID int64, note tripparse.Note) (NoteOutcome, error) {
	day := utils.DayOf(s.Now())
	out := NoteOutcome{
		Driver:        note.DriverName,
		Day:           day,
		RoundTrip:     uniqueNames(note.RoundTrip),
		DepartureOnly: uniqueNames(note.DepartureOnly),
		ReturnOnly:    uniqueNames(note.ReturnOnly),
	}

	if err := s.requireDriver(ctx, note.DriverName, chatID); err != nil {
		return out, err
	}

	unlock := s.locks.lock(legKey(chatID, note.DriverName, day))
	defer unlock()

	departures := append(append([]string{}, out.RoundTrip...), out.DepartureOnly...)
	returns := append(append([]string{}, out.RoundTrip...), out.ReturnOnly...)

	if err := s.Store.ReplaceDeparture(ctx, note.DriverName, departures, chatID, day); err != nil {
		utils.LogEvent("", "trip", "record_note_error", err.Error())
		return out, domain.InternalError{Msg: "gagal menyimpan catatan perjalanan", Err: err}
	}
	if err := s.Store.ReplaceReturn(ctx, note.DriverName, returns, chatID, day); err != nil {
		utils.LogEvent("", "trip", "record_note_error", err.Error())
		return out, domain.InternalError{Msg: "gagal menyimpan catatan perjalanan", Err: err}
	}

	out.Total = len(out.RoundTrip)*domain.RoundTripPrice +
		(len(out.DepartureOnly)+len(out.ReturnOnly))*domain.SingleTripPrice
	utils.LogEvent("", "trip", "record_note", fmt.Sprintf("driver=%s pp=%d antar=%d jemput=%d", note.DriverName, len(out.RoundTrip), len(out.DepartureOnly), len(out.ReturnOnly)))
	return out, nil
}

// DeleteLeg clears a driver's recorded leg of one type for the day.
func (s *TripService) DeleteLeg(ctx context.Context, chatID int64, driver string, leg domain.LegType, day time.Time) error {
	driver = strings.TrimSpace(driver)
	day = utils.DayOf(day)

	if err := s.requireDriver(ctx, driver, chatID); err != nil {
		return err
	}

	unlock := s.locks.lock(legKey(chatID, driver, day))
	defer unlock()

	var err error
	if leg == domain.LegDeparture {
		err = s.Store.DeleteDeparture(ctx, driver, chatID, day)
	} else {
		err = s.Store.DeleteReturn(ctx, driver, chatID, day)
	}
	if err != nil {
		utils.LogEvent("", "trip", "delete_leg_error", err.Error())
		return domain.InternalError{Msg: "gagal menghapus data perjalanan", Err: err}
	}

	utils.LogEvent("", "trip", "delete_leg", fmt.Sprintf("driver=%s leg=%s day=%s", driver, leg, utils.FormatDay(day)))
	return nil
}

func (s *TripService) requireDriver(ctx context.Context, driver string, chatID int64) error {
	exists, err := s.Store.DriverExists(ctx, driver, chatID)
	if err != nil {
		utils.LogEvent("", "trip", "driver_check_error", err.Error())
		return domain.InternalError{Msg: "gagal memeriksa data driver", Err: err}
	}
	if !exists {
		return domain.ValidationError{Msg: fmt.Sprintf("Driver %s tidak terdaftar. Daftarkan dulu dengan /driver.", driver)}
	}
	return nil
}

func (s *TripService) tripDay(trip tripparse.Trip) time.Time {
	if trip.HasDay {
		return utils.DayOf(trip.Day)
	}
	return utils.DayOf(s.Now())
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func legKey(chatID int64, driver string, day time.Time) string {
	return fmt.Sprintf("%d|%s|%s", chatID, driver, utils.FormatDay(day))
}

// keyedMutex serializes concurrent replaces for the same chat+driver+day.
// Entries stay allocated per key; the key space is drivers per active day,
// which is small.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
