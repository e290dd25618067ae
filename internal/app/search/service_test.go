package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"innkeeper/internal/domain/availability"
	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
	"innkeeper/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seed(t *testing.T) (*Service, *availability.Ledger) {
	t.Helper()
	inv := memory.NewInventoryRepository()

	inv.SeedHotel(&inventory.Hotel{ID: "h-miami", Name: "Palma", Location: "Miami Beach, FL", Rating: 4.5, NightlyRateCents: 20000})
	inv.SeedRoom(&inventory.Room{ID: "m1", HotelID: "h-miami", Number: "101", Capacity: 2, Status: inventory.RoomAvailable, Floor: 1})
	inv.SeedRoom(&inventory.Room{ID: "m2", HotelID: "h-miami", Number: "102", Capacity: 2, Status: inventory.RoomAvailable, Floor: 1})

	inv.SeedHotel(&inventory.Hotel{ID: "h-denver", Name: "Summit", Location: "Denver, CO", Rating: 4.5, NightlyRateCents: 15000})
	inv.SeedRoom(&inventory.Room{ID: "d1", HotelID: "h-denver", Number: "201", Capacity: 3, Status: inventory.RoomAvailable, Floor: 2})

	inv.SeedHotel(&inventory.Hotel{ID: "h-nyc", Name: "Midtown", Location: "New York, NY", Rating: 4.9, NightlyRateCents: 30000})
	inv.SeedRoom(&inventory.Room{ID: "n1", HotelID: "h-nyc", Number: "901", Capacity: 2, Status: inventory.RoomAvailable, Floor: 9})

	ledger := availability.NewLedger(inv, nil)
	return NewService(inv, ledger), ledger
}

func criteria(dest string, guests, rooms int) Criteria {
	return Criteria{
		Destination: dest,
		CheckIn:     date(2024, 7, 1),
		CheckOut:    date(2024, 7, 3),
		Guests:      guests,
		Rooms:       rooms,
	}
}

func TestSearchInvalidCriteria(t *testing.T) {
	svc, _ := seed(t)
	ctx := context.Background()

	cases := []Criteria{
		{Destination: "", CheckIn: date(2024, 7, 3), CheckOut: date(2024, 7, 1), Guests: 1, Rooms: 1},
		{Destination: "", CheckIn: date(2024, 7, 1), CheckOut: date(2024, 7, 1), Guests: 1, Rooms: 1},
		criteria("", 0, 1),
		criteria("", 1, 0),
	}
	for _, c := range cases {
		if _, err := svc.Search(ctx, c); !errors.Is(err, ErrInvalidCriteria) {
			t.Errorf("criteria %+v: got %v, want ErrInvalidCriteria", c, err)
		}
	}
}

func TestSearchDestinationMatching(t *testing.T) {
	svc, _ := seed(t)
	ctx := context.Background()

	results, err := svc.Search(ctx, criteria("miami", 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Hotel.ID != "h-miami" {
		t.Fatalf("destination miami: got %d results", len(results))
	}

	results, err = svc.Search(ctx, criteria("atlantis", 2, 1))
	if err != nil {
		t.Fatalf("no-match destination must not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
}

func TestSearchEmptyDestinationMatchesAll(t *testing.T) {
	svc, _ := seed(t)
	results, err := svc.Search(context.Background(), criteria("", 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d hotels, want 3", len(results))
	}
}

func TestSearchRanking(t *testing.T) {
	svc, _ := seed(t)
	results, err := svc.Search(context.Background(), criteria("", 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	// Rating desc, nightly rate asc on ties: nyc (4.9), denver (4.5 @ 150),
	// miami (4.5 @ 200).
	want := []inventory.HotelID{"h-nyc", "h-denver", "h-miami"}
	for i, id := range want {
		if results[i].Hotel.ID != id {
			t.Fatalf("rank %d = %s, want %s", i, results[i].Hotel.ID, id)
		}
	}
}

func TestSearchPerRoomCapacityShare(t *testing.T) {
	svc, _ := seed(t)
	ctx := context.Background()

	// 4 guests over 2 rooms: each room must sleep 2. Only Miami has two such
	// rooms free.
	results, err := svc.Search(ctx, Criteria{Destination: "Miami", CheckIn: date(2024, 7, 1), CheckOut: date(2024, 7, 3), Guests: 4, Rooms: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if got := len(results[0].Rooms); got != 2 {
		t.Fatalf("got %d rooms, want 2", got)
	}

	// 5 guests over 2 rooms rounds up to capacity 3 per room; no Miami room
	// qualifies.
	results, err = svc.Search(ctx, Criteria{Destination: "Miami", CheckIn: date(2024, 7, 1), CheckOut: date(2024, 7, 3), Guests: 5, Rooms: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestSearchDropsHotelWhenRoomsRunOut(t *testing.T) {
	svc, ledger := seed(t)
	ctx := context.Background()

	stay, err := daterange.New(date(2024, 7, 1), date(2024, 7, 3))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Reserve(ctx, "m1", stay, "b1"); err != nil {
		t.Fatal(err)
	}

	results, err := svc.Search(ctx, Criteria{Destination: "Miami", CheckIn: date(2024, 7, 1), CheckOut: date(2024, 7, 3), Guests: 4, Rooms: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("hotel with one free room should not satisfy a two-room search, got %d results", len(results))
	}
}
