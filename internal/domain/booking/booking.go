package booking

import (
	"context"
	"errors"
	"time"

	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
	"innkeeper/internal/domain/shared/events"
)

var (
	ErrNotFound          = errors.New("booking: not found")
	ErrInvalidTransition = errors.New("booking: invalid state transition")
	ErrInvalidGuests     = errors.New("booking: guests count must be positive")
	ErrGuestRequired     = errors.New("booking: guest id required")
)

type BookingID string

// Status is a closed enumeration; transitions happen only through the methods
// below. Cancelled and no-show are absorbing.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// Booking owns one room interval for its active lifetime. The total price is
// computed once at creation and frozen; later room price changes do not touch
// existing bookings. A booking is never deleted, cancellation is a status.
type Booking struct {
	ID         BookingID
	HotelID    inventory.HotelID
	RoomID     inventory.RoomID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	TotalCents int64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
	events.Recorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
}

type CreateParams struct {
	ID               BookingID
	HotelID          inventory.HotelID
	RoomID           inventory.RoomID
	GuestID          string
	Range            daterange.DateRange
	Guests           int
	NightlyRateCents int64
	CreatedAt        time.Time
}

// New creates a pending booking and freezes its total at nights x nightly rate.
func New(params CreateParams) (*Booking, error) {
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:         params.ID,
		HotelID:    params.HotelID,
		RoomID:     params.RoomID,
		GuestID:    params.GuestID,
		Range:      params.Range,
		Guests:     params.Guests,
		TotalCents: int64(params.Range.Nights()) * params.NightlyRateCents,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.Record(Requested{BookingID: b.ID, HotelID: b.HotelID, RoomID: b.RoomID, GuestID: b.GuestID, Range: b.Range, Guests: b.Guests, TotalCents: b.TotalCents, At: now})
	return b, nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidTransition
	}
	b.transition(StatusConfirmed, now)
	b.Record(Confirmed{BookingID: b.ID, RoomID: b.RoomID, Range: b.Range, At: b.UpdatedAt})
	return nil
}

func (b *Booking) CheckIn(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	b.transition(StatusCheckedIn, now)
	b.Record(CheckedIn{BookingID: b.ID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if b.Status != StatusCheckedIn {
		return ErrInvalidTransition
	}
	b.transition(StatusCheckedOut, now)
	b.Record(CheckedOut{BookingID: b.ID, At: b.UpdatedAt})
	return nil
}

// Cancel is allowed from pending or confirmed. The caller releases the held
// interval; the aggregate only guards the transition.
func (b *Booking) Cancel(now time.Time) error {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	b.transition(StatusCancelled, now)
	b.Record(Cancelled{BookingID: b.ID, RoomID: b.RoomID, Range: b.Range, At: b.UpdatedAt})
	return nil
}

// MarkNoShow records a confirmed guest who never arrived. A pending booking
// that was never confirmed is cancelled instead.
func (b *Booking) MarkNoShow(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	b.transition(StatusNoShow, now)
	b.Record(NoShowRecorded{BookingID: b.ID, RoomID: b.RoomID, At: b.UpdatedAt})
	return nil
}

// Active reports whether the booking still holds its room interval.
func (b *Booking) Active() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

func (b *Booking) transition(to Status, now time.Time) {
	b.Status = to
	b.UpdatedAt = now.UTC()
}
