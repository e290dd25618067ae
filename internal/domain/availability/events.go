package availability

import (
	"time"

	"innkeeper/internal/domain/shared/daterange"
)

type RoomHeld struct {
	RoomID string
	Range  daterange.DateRange
	Ref    string
	At     time.Time
}

func (e RoomHeld) EventName() string     { return "room.held" }
func (e RoomHeld) AggregateID() string   { return e.RoomID }
func (e RoomHeld) OccurredAt() time.Time { return e.At }

type RoomReleased struct {
	RoomID string
	Range  daterange.DateRange
	Ref    string
	At     time.Time
}

func (e RoomReleased) EventName() string     { return "room.released" }
func (e RoomReleased) AggregateID() string   { return e.RoomID }
func (e RoomReleased) OccurredAt() time.Time { return e.At }

// OverbookingPrevented fires when a reserve attempt lost the race for a room.
type OverbookingPrevented struct {
	RoomID string
	Range  daterange.DateRange
	At     time.Time
}

func (e OverbookingPrevented) EventName() string     { return "room.overbooking_prevented" }
func (e OverbookingPrevented) AggregateID() string   { return e.RoomID }
func (e OverbookingPrevented) OccurredAt() time.Time { return e.At }
