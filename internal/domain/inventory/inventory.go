package inventory

import (
	"context"
	"errors"
)

var (
	ErrHotelNotFound = errors.New("inventory: hotel not found")
	ErrRoomNotFound  = errors.New("inventory: room not found")
)

type HotelID string
type RoomID string

// RoomStatus is the operational state set by housekeeping/administration.
// Only maintenance removes a room from availability; occupied and cleaning
// describe the physical room today, not the booking calendar.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomCleaning    RoomStatus = "CLEANING"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// Hotel is a property record. The core never writes hotels; inventory
// administration owns them and the rating aggregate is recomputed there.
type Hotel struct {
	ID               HotelID
	Name             string
	Location         string
	Rating           float64
	ReviewCount      int
	NightlyRateCents int64
	Amenities        []string
	Lat              float64
	Lon              float64
}

// Room belongs to exactly one hotel for its lifetime.
type Room struct {
	ID               RoomID
	HotelID          HotelID
	Number           string
	Type             string
	NightlyRateCents int64
	Capacity         int
	Amenities        []string
	Status           RoomStatus
	Floor            int
}

// Repository is the read-only inventory contract. Mutations happen through an
// administrative interface outside this core; reads have no side effects.
type Repository interface {
	HotelByID(ctx context.Context, id HotelID) (*Hotel, error)
	ListHotels(ctx context.Context) ([]*Hotel, error)
	RoomByID(ctx context.Context, id RoomID) (*Room, error)
	// RoomsForHotel returns the hotel's rooms ordered by floor ascending,
	// then room number ascending.
	RoomsForHotel(ctx context.Context, hotelID HotelID) ([]*Room, error)
}
