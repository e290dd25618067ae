package reservation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"innkeeper/internal/domain/availability"
	"innkeeper/internal/domain/booking"
	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
	"innkeeper/internal/domain/shared/events"
)

var ErrGuestsExceedCapacity = errors.New("reservation: guests exceed room capacity")

// Service owns the booking lifecycle: creation with overlap-safe allocation,
// status transitions, and the interval release on cancellation or no-show.
type Service struct {
	inventory inventory.Repository
	ledger    *availability.Ledger
	bookings  booking.Repository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(inv inventory.Repository, ledger *availability.Ledger, bookings booking.Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		inventory: inv,
		ledger:    ledger,
		bookings:  bookings,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

type CreateParams struct {
	HotelID  inventory.HotelID
	RoomID   inventory.RoomID
	GuestID  string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// Create validates, reserves the interval, prices, and persists — in that
// order. The reserve and the booking write happen inside the room's critical
// section, so no reader ever sees an interval without its booking or a pending
// booking without its interval. availability.ErrConflict means the room was
// taken between search and commit; the caller should re-search.
func (s *Service) Create(ctx context.Context, params CreateParams) (*booking.Booking, error) {
	rng, err := daterange.New(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}
	room, err := s.inventory.RoomByID(ctx, params.RoomID)
	if err != nil {
		return nil, err
	}
	if room.HotelID != params.HotelID {
		return nil, inventory.ErrRoomNotFound
	}
	if params.Guests > room.Capacity {
		return nil, ErrGuestsExceedCapacity
	}

	b, err := booking.New(booking.CreateParams{
		ID:               booking.BookingID(uuid.NewString()),
		HotelID:          params.HotelID,
		RoomID:           params.RoomID,
		GuestID:          params.GuestID,
		Range:            rng,
		Guests:           params.Guests,
		NightlyRateCents: room.NightlyRateCents,
		CreatedAt:        s.now(),
	})
	if err != nil {
		return nil, err
	}

	_, err = s.ledger.ReserveWith(ctx, params.RoomID, rng, string(b.ID), func(*availability.Hold) error {
		return s.bookings.Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, b)
	return b, nil
}

func (s *Service) Confirm(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.mutate(ctx, id, func(b *booking.Booking) error {
		return b.Confirm(s.now())
	})
}

func (s *Service) CheckIn(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.mutate(ctx, id, func(b *booking.Booking) error {
		return b.CheckIn(s.now())
	})
}

func (s *Service) CheckOut(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.mutate(ctx, id, func(b *booking.Booking) error {
		return b.CheckOut(s.now())
	})
}

// Cancel moves a pending or confirmed booking to cancelled and gives its
// interval back to the ledger. The transition guard runs first, so a second
// cancel fails with ErrInvalidTransition and never double-releases.
func (s *Service) Cancel(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.terminate(ctx, id, func(b *booking.Booking) error {
		return b.Cancel(s.now())
	})
}

func (s *Service) MarkNoShow(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.terminate(ctx, id, func(b *booking.Booking) error {
		return b.MarkNoShow(s.now())
	})
}

func (s *Service) ByID(ctx context.Context, id booking.BookingID) (*booking.Booking, error) {
	return s.bookings.ByID(ctx, id)
}

// ListByGuest returns a guest's bookings, newest first.
func (s *Service) ListByGuest(ctx context.Context, guestID string) ([]*booking.Booking, error) {
	return s.bookings.ListByGuest(ctx, guestID)
}

// terminate persists a terminal transition and only then releases the held
// interval. The ordering matters: releasing first would free the room while
// the store still lists the booking as active, and a failed save would then
// let a second guest take the same nights. A crash between the save and the
// release merely strands the hold until the next warmup.
func (s *Service) terminate(ctx context.Context, id booking.BookingID, op func(*booking.Booking) error) (*booking.Booking, error) {
	b, err := s.mutate(ctx, id, op)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.ReleaseRef(ctx, b.RoomID, string(b.ID)); err != nil {
		s.logger.Warn("interval release failed", "booking_id", b.ID, "error", err)
	}
	return b, nil
}

func (s *Service) mutate(ctx context.Context, id booking.BookingID, op func(*booking.Booking) error) (*booking.Booking, error) {
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(b); err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	s.publish(ctx, b)
	return b, nil
}

func (s *Service) publish(ctx context.Context, b *booking.Booking) {
	pending := b.Drain()
	if len(pending) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, pending); err != nil {
		s.logger.Warn("event publish failed", "booking_id", b.ID, "error", err)
	}
}
