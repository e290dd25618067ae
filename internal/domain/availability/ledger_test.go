package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
)

type stubRooms struct {
	rooms map[inventory.RoomID]*inventory.Room
}

func (s stubRooms) RoomByID(ctx context.Context, id inventory.RoomID) (*inventory.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, inventory.ErrRoomNotFound
	}
	return room, nil
}

func (s stubRooms) RoomsForHotel(ctx context.Context, hotelID inventory.HotelID) ([]*inventory.Room, error) {
	var out []*inventory.Room
	for _, room := range s.rooms {
		if room.HotelID == hotelID {
			out = append(out, room)
		}
	}
	return out, nil
}

func testLedger(rooms ...*inventory.Room) *Ledger {
	index := make(map[inventory.RoomID]*inventory.Room, len(rooms))
	for _, room := range rooms {
		index[room.ID] = room
	}
	return NewLedger(stubRooms{rooms: index}, nil)
}

func room(id string, capacity int, status inventory.RoomStatus) *inventory.Room {
	return &inventory.Room{
		ID:       inventory.RoomID(id),
		HotelID:  "h1",
		Number:   id,
		Capacity: capacity,
		Status:   status,
	}
}

func rng(t *testing.T, checkIn, checkOut string) daterange.DateRange {
	t.Helper()
	ci, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		t.Fatal(err)
	}
	co, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		t.Fatal(err)
	}
	dr, err := daterange.New(ci, co)
	if err != nil {
		t.Fatal(err)
	}
	return dr
}

func TestReserveConflictsOnOverlap(t *testing.T) {
	ledger := testLedger(room("r1", 2, inventory.RoomAvailable))
	ctx := context.Background()

	if _, err := ledger.Reserve(ctx, "r1", rng(t, "2024-06-01", "2024-06-03"), "b1"); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	_, err := ledger.Reserve(ctx, "r1", rng(t, "2024-06-02", "2024-06-04"), "b2")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestReserveBackToBackIsNotConflict(t *testing.T) {
	ledger := testLedger(room("r1", 2, inventory.RoomAvailable))
	ctx := context.Background()

	if _, err := ledger.Reserve(ctx, "r1", rng(t, "2024-06-01", "2024-06-03"), "b1"); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	// Checkout on the 3rd, check-in on the 3rd: the changeover day is shared.
	if _, err := ledger.Reserve(ctx, "r1", rng(t, "2024-06-03", "2024-06-05"), "b2"); err != nil {
		t.Fatalf("back-to-back reserve: %v", err)
	}
}

func TestReleaseIsTrueInverse(t *testing.T) {
	ledger := testLedger(room("r1", 2, inventory.RoomAvailable))
	ctx := context.Background()
	stay := rng(t, "2024-06-01", "2024-06-03")

	hold, err := ledger.Reserve(ctx, "r1", stay, "b1")
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := ledger.Release(ctx, hold); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := ledger.Reserve(ctx, "r1", stay, "b2"); err != nil {
		t.Fatalf("re-reserve after release: %v", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	ledger := testLedger(room("r1", 2, inventory.RoomAvailable))
	ctx := context.Background()
	stay := rng(t, "2024-06-01", "2024-06-03")

	hold, err := ledger.Reserve(ctx, "r1", stay, "b1")
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	other, err := ledger.Reserve(ctx, "r1", rng(t, "2024-06-03", "2024-06-05"), "b2")
	if err != nil {
		t.Fatalf("second reserve: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := ledger.Release(ctx, hold); err != nil {
			t.Fatalf("release #%d: %v", i+1, err)
		}
	}
	// The double release must not have evicted the other hold.
	free, err := ledger.IsRoomFree(ctx, "r1", rng(t, "2024-06-03", "2024-06-05"))
	if err != nil {
		t.Fatal(err)
	}
	if free {
		t.Fatalf("hold %s was lost by an idempotent release", other.ID)
	}
}

func TestReleaseRefUnknownIsNoOp(t *testing.T) {
	ledger := testLedger(room("r1", 2, inventory.RoomAvailable))
	if err := ledger.ReleaseRef(context.Background(), "r1", "missing"); err != nil {
		t.Fatalf("ReleaseRef on unknown ref: %v", err)
	}
}

func TestMaintenanceRoomIsNeverFree(t *testing.T) {
	ledger := testLedger(room("r1", 2, inventory.RoomMaintenance))
	ctx := context.Background()
	stay := rng(t, "2024-06-01", "2024-06-03")

	free, err := ledger.IsRoomFree(ctx, "r1", stay)
	if err != nil {
		t.Fatal(err)
	}
	if free {
		t.Error("maintenance room reported free")
	}
	if _, err := ledger.Reserve(ctx, "r1", stay, "b1"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict reserving maintenance room, got %v", err)
	}
}

func TestFreeRoomsForHotelFilters(t *testing.T) {
	ledger := testLedger(
		room("r1", 2, inventory.RoomAvailable),
		room("r2", 4, inventory.RoomAvailable),
		room("r3", 4, inventory.RoomMaintenance),
	)
	ctx := context.Background()
	stay := rng(t, "2024-06-01", "2024-06-03")

	if _, err := ledger.Reserve(ctx, "r2", stay, "b1"); err != nil {
		t.Fatal(err)
	}

	free, err := ledger.FreeRoomsForHotel(ctx, "h1", stay, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(free) != 1 || free[0].ID != "r1" {
		t.Fatalf("free rooms = %v, want just r1", free)
	}
}

func TestConcurrentReservesSingleWinner(t *testing.T) {
	ledger := testLedger(room("r1", 2, inventory.RoomAvailable))
	ctx := context.Background()
	stay := rng(t, "2024-06-01", "2024-06-03")

	const attempts = 64
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Reserve(ctx, "r1", stay, "b")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("%d concurrent reserves succeeded, want exactly 1", wins)
	}
}

func TestCommitFailureRollsBackInterval(t *testing.T) {
	ledger := testLedger(room("r1", 2, inventory.RoomAvailable))
	ctx := context.Background()
	stay := rng(t, "2024-06-01", "2024-06-03")

	boom := errors.New("persist failed")
	_, err := ledger.ReserveWith(ctx, "r1", stay, "b1", func(*Hold) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected commit error, got %v", err)
	}
	free, err := ledger.IsRoomFree(ctx, "r1", stay)
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Error("interval leaked after failed commit")
	}
}

func TestUnknownRoom(t *testing.T) {
	ledger := testLedger()
	_, err := ledger.IsRoomFree(context.Background(), "ghost", rng(t, "2024-06-01", "2024-06-03"))
	if !errors.Is(err, inventory.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
