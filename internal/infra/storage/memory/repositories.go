package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainbooking "innkeeper/internal/domain/booking"
	domaininventory "innkeeper/internal/domain/inventory"
)

// InventoryRepository holds the hotel and room catalogue in memory. The core
// only reads it; Seed methods are the administrative write path used at boot.
type InventoryRepository struct {
	mu      sync.RWMutex
	hotels  map[domaininventory.HotelID]*domaininventory.Hotel
	rooms   map[domaininventory.RoomID]*domaininventory.Room
	byHotel map[domaininventory.HotelID][]domaininventory.RoomID
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		hotels:  make(map[domaininventory.HotelID]*domaininventory.Hotel),
		rooms:   make(map[domaininventory.RoomID]*domaininventory.Room),
		byHotel: make(map[domaininventory.HotelID][]domaininventory.RoomID),
	}
}

// SeedHotel registers a hotel. Last write wins; rooms are tracked separately.
func (r *InventoryRepository) SeedHotel(hotel *domaininventory.Hotel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hotels[hotel.ID] = hotel
}

// SeedRoom registers a room under its owning hotel.
func (r *InventoryRepository) SeedRoom(room *domaininventory.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, known := r.rooms[room.ID]; !known {
		r.byHotel[room.HotelID] = append(r.byHotel[room.HotelID], room.ID)
	}
	r.rooms[room.ID] = room
}

func (r *InventoryRepository) HotelByID(ctx context.Context, id domaininventory.HotelID) (*domaininventory.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hotel, ok := r.hotels[id]
	if !ok {
		return nil, domaininventory.ErrHotelNotFound
	}
	return hotel, nil
}

func (r *InventoryRepository) ListHotels(ctx context.Context) ([]*domaininventory.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hotels := make([]*domaininventory.Hotel, 0, len(r.hotels))
	for _, hotel := range r.hotels {
		hotels = append(hotels, hotel)
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].ID < hotels[j].ID })
	return hotels, nil
}

func (r *InventoryRepository) RoomByID(ctx context.Context, id domaininventory.RoomID) (*domaininventory.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, domaininventory.ErrRoomNotFound
	}
	return room, nil
}

// RoomsForHotel returns rooms ordered by floor ascending, then room number.
func (r *InventoryRepository) RoomsForHotel(ctx context.Context, hotelID domaininventory.HotelID) ([]*domaininventory.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.hotels[hotelID]; !ok {
		return nil, domaininventory.ErrHotelNotFound
	}
	ids := r.byHotel[hotelID]
	rooms := make([]*domaininventory.Room, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, r.rooms[id])
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Floor != rooms[j].Floor {
			return rooms[i].Floor < rooms[j].Floor
		}
		return rooms[i].Number < rooms[j].Number
	})
	return rooms, nil
}

// BookingRepository stores bookings in memory. Bookings are never removed;
// terminal statuses keep the history around for reporting.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	return b, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = b
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := strings.TrimSpace(guestID)
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.GuestID == id {
			matches = append(matches, b)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}
