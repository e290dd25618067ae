package booking

import (
	"time"

	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
)

type Requested struct {
	BookingID  BookingID
	HotelID    inventory.HotelID
	RoomID     inventory.RoomID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	TotalCents int64
	At         time.Time
}

func (e Requested) EventName() string     { return "booking.requested" }
func (e Requested) AggregateID() string   { return string(e.BookingID) }
func (e Requested) OccurredAt() time.Time { return e.At }

type Confirmed struct {
	BookingID BookingID
	RoomID    inventory.RoomID
	Range     daterange.DateRange
	At        time.Time
}

func (e Confirmed) EventName() string     { return "booking.confirmed" }
func (e Confirmed) AggregateID() string   { return string(e.BookingID) }
func (e Confirmed) OccurredAt() time.Time { return e.At }

type CheckedIn struct {
	BookingID BookingID
	At        time.Time
}

func (e CheckedIn) EventName() string     { return "booking.checked_in" }
func (e CheckedIn) AggregateID() string   { return string(e.BookingID) }
func (e CheckedIn) OccurredAt() time.Time { return e.At }

type CheckedOut struct {
	BookingID BookingID
	At        time.Time
}

func (e CheckedOut) EventName() string     { return "booking.checked_out" }
func (e CheckedOut) AggregateID() string   { return string(e.BookingID) }
func (e CheckedOut) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	BookingID BookingID
	RoomID    inventory.RoomID
	Range     daterange.DateRange
	At        time.Time
}

func (e Cancelled) EventName() string     { return "booking.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.BookingID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }

type NoShowRecorded struct {
	BookingID BookingID
	RoomID    inventory.RoomID
	At        time.Time
}

func (e NoShowRecorded) EventName() string     { return "booking.no_show" }
func (e NoShowRecorded) AggregateID() string   { return string(e.BookingID) }
func (e NoShowRecorded) OccurredAt() time.Time { return e.At }
