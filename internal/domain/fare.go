package domain

import "time"

// Tarif flat untuk semua periode: sekali jalan dan pulang-pergi.
// RoundTripPrice must stay below 2x SingleTripPrice (diskon pulang-pergi).
const (
	SingleTripPrice = 10000
	RoundTripPrice  = 15000
)

type LegType string

const (
	LegDeparture LegType = "departure"
	LegReturn    LegType = "return"
)

// TripLeg is the atomic ledger fact: one passenger riding one direction
// with one driver on one calendar day, scoped to a chat.
type TripLeg struct {
	DriverName    string
	PassengerName string
	ChatID        int64
	Leg           LegType
	Day           time.Time
}

// Category is a passenger's leg-participation pattern for a driver+day.
// Derived at report time, never stored.
type Category string

const (
	CategoryRoundTrip     Category = "pulang-pergi"
	CategoryDepartureOnly Category = "antar saja"
	CategoryReturnOnly    Category = "jemput saja"
)

// PriceFor returns the full-day fare for a classification.
func PriceFor(cat Category) int {
	if cat == CategoryRoundTrip {
		return RoundTripPrice
	}
	return SingleTripPrice
}

// PassengerFare is one classified, priced passenger line.
type PassengerFare struct {
	Passenger string
	Category  Category
	Price     int
}

// Classify pairs a driver's departure and return passenger sets for a day.
// Departure passengers come first in departure order, then return-only
// passengers in return order.
func Classify(departed, returned []string) []PassengerFare {
	inReturn := make(map[string]bool, len(returned))
	for _, p := range returned {
		inReturn[p] = true
	}
	inDeparture := make(map[string]bool, len(departed))

	fares := make([]PassengerFare, 0, len(departed)+len(returned))
	for _, p := range departed {
		if inDeparture[p] {
			continue
		}
		inDeparture[p] = true
		cat := CategoryDepartureOnly
		if inReturn[p] {
			cat = CategoryRoundTrip
		}
		fares = append(fares, PassengerFare{Passenger: p, Category: cat, Price: PriceFor(cat)})
	}
	seenReturn := make(map[string]bool, len(returned))
	for _, p := range returned {
		if inDeparture[p] || seenReturn[p] {
			continue
		}
		seenReturn[p] = true
		fares = append(fares, PassengerFare{Passenger: p, Category: CategoryReturnOnly, Price: SingleTripPrice})
	}
	return fares
}
