package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"innkeeper/internal/domain/availability"
	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
)

var ErrInvalidCriteria = errors.New("search: invalid criteria")

// Criteria is a guest's availability query. Destination is a case-insensitive
// substring match against hotel locations; empty matches every hotel.
type Criteria struct {
	Destination string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	Rooms       int
}

// HotelResult pairs a hotel with its free rooms for the requested range.
type HotelResult struct {
	Hotel *inventory.Hotel
	Rooms []*inventory.Room
}

// Service matches criteria against the inventory and the availability ledger.
// Results are a snapshot: they can go stale the moment a concurrent booking
// lands, which is why creating a booking always re-validates.
type Service struct {
	inventory inventory.Repository
	ledger    *availability.Ledger
}

func NewService(inv inventory.Repository, ledger *availability.Ledger) *Service {
	return &Service{inventory: inv, ledger: ledger}
}

// Search returns hotels that have at least criteria.Rooms free rooms, each
// large enough for the guests' per-room share, ordered by rating descending
// with nightly rate as the tie break. No matches is an empty slice, not an
// error.
func (s *Service) Search(ctx context.Context, c Criteria) ([]HotelResult, error) {
	rng, err := validate(c)
	if err != nil {
		return nil, err
	}

	// Each requested room must individually fit its share of the party.
	minCapacity := (c.Guests + c.Rooms - 1) / c.Rooms
	needle := strings.ToLower(strings.TrimSpace(c.Destination))

	hotels, err := s.inventory.ListHotels(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]HotelResult, 0, len(hotels))
	for _, hotel := range hotels {
		if needle != "" && !strings.Contains(strings.ToLower(hotel.Location), needle) {
			continue
		}
		free, err := s.ledger.FreeRoomsForHotel(ctx, hotel.ID, rng, minCapacity)
		if err != nil {
			return nil, err
		}
		if len(free) < c.Rooms {
			continue
		}
		results = append(results, HotelResult{Hotel: hotel, Rooms: free})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Hotel.Rating == results[j].Hotel.Rating {
			return results[i].Hotel.NightlyRateCents < results[j].Hotel.NightlyRateCents
		}
		return results[i].Hotel.Rating > results[j].Hotel.Rating
	})
	return results, nil
}

func validate(c Criteria) (daterange.DateRange, error) {
	if c.Guests < 1 {
		return daterange.DateRange{}, fmt.Errorf("%w: guests must be at least 1", ErrInvalidCriteria)
	}
	if c.Rooms < 1 {
		return daterange.DateRange{}, fmt.Errorf("%w: rooms must be at least 1", ErrInvalidCriteria)
	}
	rng, err := daterange.New(c.CheckIn, c.CheckOut)
	if err != nil {
		return daterange.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	return rng, nil
}
