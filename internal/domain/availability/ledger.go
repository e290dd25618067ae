package availability

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
	"innkeeper/internal/domain/shared/events"
)

var ErrConflict = errors.New("availability: room is not free for the requested range")

// RoomReader is the slice of the inventory contract the ledger needs.
type RoomReader interface {
	RoomByID(ctx context.Context, id inventory.RoomID) (*inventory.Room, error)
	RoomsForHotel(ctx context.Context, hotelID inventory.HotelID) ([]*inventory.Room, error)
}

// Hold is the handle returned by a successful reservation. Releasing it is
// idempotent; a released hold stays released.
type Hold struct {
	ID        string
	RoomID    inventory.RoomID
	Range     daterange.DateRange
	Ref       string
	CreatedAt time.Time

	released bool // guarded by the room's stripe lock
}

const stripeCount = 64

type stripe struct {
	mu    sync.RWMutex
	holds map[inventory.RoomID][]*Hold
}

// Ledger records which room-date intervals are held by active bookings.
// Reservations for the same room serialize on a striped per-room lock;
// distinct rooms proceed in parallel. There is no global lock.
type Ledger struct {
	rooms     RoomReader
	publisher events.Publisher
	now       func() time.Time
	stripes   [stripeCount]stripe
}

func NewLedger(rooms RoomReader, publisher events.Publisher) *Ledger {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Ledger{rooms: rooms, publisher: publisher, now: time.Now}
}

func (l *Ledger) stripeFor(roomID inventory.RoomID) *stripe {
	h := fnv.New32a()
	h.Write([]byte(roomID))
	return &l.stripes[h.Sum32()%stripeCount]
}

// IsRoomFree reports whether no active hold overlaps the range and the room is
// not under maintenance. Advisory only: a later Reserve re-checks under lock.
func (l *Ledger) IsRoomFree(ctx context.Context, roomID inventory.RoomID, rng daterange.DateRange) (bool, error) {
	if err := rng.Validate(); err != nil {
		return false, err
	}
	room, err := l.rooms.RoomByID(ctx, roomID)
	if err != nil {
		return false, err
	}
	if room.Status == inventory.RoomMaintenance {
		return false, nil
	}
	s := l.stripeFor(roomID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !overlapsAny(s.holds[roomID], rng), nil
}

// FreeRoomsForHotel returns the hotel's rooms that are free for the range and
// hold at least minCapacity guests, in the repository's floor/number order.
func (l *Ledger) FreeRoomsForHotel(ctx context.Context, hotelID inventory.HotelID, rng daterange.DateRange, minCapacity int) ([]*inventory.Room, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	rooms, err := l.rooms.RoomsForHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	free := make([]*inventory.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Capacity < minCapacity || room.Status == inventory.RoomMaintenance {
			continue
		}
		s := l.stripeFor(room.ID)
		s.mu.RLock()
		taken := overlapsAny(s.holds[room.ID], rng)
		s.mu.RUnlock()
		if !taken {
			free = append(free, room)
		}
	}
	return free, nil
}

// Reserve atomically re-checks freedom and records the interval, returning
// ErrConflict when another writer holds an overlapping range.
func (l *Ledger) Reserve(ctx context.Context, roomID inventory.RoomID, rng daterange.DateRange, ref string) (*Hold, error) {
	return l.ReserveWith(ctx, roomID, rng, ref, nil)
}

// ReserveWith runs commit inside the room's critical section so that the
// interval and whatever commit persists become visible together. A failing
// commit rolls the interval back before the lock is dropped.
func (l *Ledger) ReserveWith(ctx context.Context, roomID inventory.RoomID, rng daterange.DateRange, ref string, commit func(*Hold) error) (*Hold, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	room, err := l.rooms.RoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == inventory.RoomMaintenance {
		return nil, ErrConflict
	}

	hold, event, err := l.reserveLocked(roomID, rng, ref, commit)
	if event != nil {
		// Events are observability, not state; delivery failures do not
		// unwind a reservation.
		_ = l.publisher.Publish(ctx, []events.DomainEvent{event})
	}
	if err != nil {
		return nil, err
	}
	return hold, nil
}

func (l *Ledger) reserveLocked(roomID inventory.RoomID, rng daterange.DateRange, ref string, commit func(*Hold) error) (*Hold, events.DomainEvent, error) {
	s := l.stripeFor(roomID)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := l.now().UTC()
	if overlapsAny(s.holds[roomID], rng) {
		return nil, OverbookingPrevented{RoomID: string(roomID), Range: rng, At: now}, ErrConflict
	}
	hold := &Hold{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Range:     rng,
		Ref:       ref,
		CreatedAt: now,
	}
	if s.holds == nil {
		s.holds = make(map[inventory.RoomID][]*Hold)
	}
	s.holds[roomID] = append(s.holds[roomID], hold)

	if commit != nil {
		if err := commit(hold); err != nil {
			s.holds[roomID] = removeHold(s.holds[roomID], hold)
			return nil, nil, err
		}
	}
	return hold, RoomHeld{RoomID: string(roomID), Range: rng, Ref: ref, At: now}, nil
}

// Release removes a previously reserved interval. Releasing an already
// released hold is a no-op.
func (l *Ledger) Release(ctx context.Context, hold *Hold) error {
	if hold == nil {
		return nil
	}
	s := l.stripeFor(hold.RoomID)
	s.mu.Lock()
	if hold.released {
		s.mu.Unlock()
		return nil
	}
	hold.released = true
	s.holds[hold.RoomID] = removeHold(s.holds[hold.RoomID], hold)
	rng, ref := hold.Range, hold.Ref
	s.mu.Unlock()

	_ = l.publisher.Publish(ctx, []events.DomainEvent{
		RoomReleased{RoomID: string(hold.RoomID), Range: rng, Ref: ref, At: l.now().UTC()},
	})
	return nil
}

// ReleaseRef releases the hold carrying the given reference, if any. Used when
// only the booking record is at hand, e.g. on cancellation after a restart.
func (l *Ledger) ReleaseRef(ctx context.Context, roomID inventory.RoomID, ref string) error {
	s := l.stripeFor(roomID)
	s.mu.Lock()
	var found *Hold
	for _, h := range s.holds[roomID] {
		if h.Ref == ref {
			found = h
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return nil
	}
	found.released = true
	s.holds[roomID] = removeHold(s.holds[roomID], found)
	rng := found.Range
	s.mu.Unlock()

	_ = l.publisher.Publish(ctx, []events.DomainEvent{
		RoomReleased{RoomID: string(roomID), Range: rng, Ref: ref, At: l.now().UTC()},
	})
	return nil
}

// overlapsAny applies the half-open overlap predicate across a room's holds.
func overlapsAny(holds []*Hold, rng daterange.DateRange) bool {
	for _, h := range holds {
		if h.Range.Overlaps(rng) {
			return true
		}
	}
	return false
}

func removeHold(holds []*Hold, target *Hold) []*Hold {
	for i, h := range holds {
		if h == target {
			return append(holds[:i], holds[i+1:]...)
		}
	}
	return holds
}
