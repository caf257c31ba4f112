package domain

import "testing"

func TestClassify(t *testing.T) {
	fares := Classify([]string{"Ali", "Umar"}, []string{"Ali", "Budi"})

	if len(fares) != 3 {
		t.Fatalf("fares = %+v", fares)
	}
	checks := []struct {
		passenger string
		category  Category
		price     int
	}{
		{"Ali", CategoryRoundTrip, RoundTripPrice},
		{"Umar", CategoryDepartureOnly, SingleTripPrice},
		{"Budi", CategoryReturnOnly, SingleTripPrice},
	}
	for i, want := range checks {
		got := fares[i]
		if got.Passenger != want.passenger || got.Category != want.category || got.Price != want.price {
			t.Fatalf("fares[%d] = %+v, want %+v", i, got, want)
		}
	}
}

func TestClassifyDeduplicates(t *testing.T) {
	fares := Classify([]string{"Ali", "Ali"}, []string{"Budi", "Budi"})
	if len(fares) != 2 {
		t.Fatalf("duplicates not collapsed: %+v", fares)
	}
}

func TestClassifyEmptySets(t *testing.T) {
	if fares := Classify(nil, nil); len(fares) != 0 {
		t.Fatalf("expected no fares, got %+v", fares)
	}
}
