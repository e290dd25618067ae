package ginserver

import (
	"fmt"
	"time"

	"innkeeper/internal/domain/booking"
	"innkeeper/internal/domain/inventory"
)

const dateLayout = "2006-01-02"

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}

type hotelResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"review_count"`
	NightlyRateCents int64    `json:"nightly_rate_cents"`
	Amenities        []string `json:"amenities,omitempty"`
	Lat              float64  `json:"lat"`
	Lon              float64  `json:"lon"`
}

func mapHotel(h *inventory.Hotel) hotelResponse {
	return hotelResponse{
		ID:               string(h.ID),
		Name:             h.Name,
		Location:         h.Location,
		Rating:           h.Rating,
		ReviewCount:      h.ReviewCount,
		NightlyRateCents: h.NightlyRateCents,
		Amenities:        h.Amenities,
		Lat:              h.Lat,
		Lon:              h.Lon,
	}
}

type roomResponse struct {
	ID               string   `json:"id"`
	HotelID          string   `json:"hotel_id"`
	Number           string   `json:"number"`
	Type             string   `json:"type"`
	NightlyRateCents int64    `json:"nightly_rate_cents"`
	Capacity         int      `json:"capacity"`
	Amenities        []string `json:"amenities,omitempty"`
	Status           string   `json:"status"`
	Floor            int      `json:"floor"`
}

func mapRoom(r *inventory.Room) roomResponse {
	return roomResponse{
		ID:               string(r.ID),
		HotelID:          string(r.HotelID),
		Number:           r.Number,
		Type:             r.Type,
		NightlyRateCents: r.NightlyRateCents,
		Capacity:         r.Capacity,
		Amenities:        r.Amenities,
		Status:           string(r.Status),
		Floor:            r.Floor,
	}
}

func mapRooms(rooms []*inventory.Room) []roomResponse {
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, mapRoom(r))
	}
	return out
}

type bookingResponse struct {
	ID         string    `json:"id"`
	HotelID    string    `json:"hotel_id"`
	RoomID     string    `json:"room_id"`
	GuestID    string    `json:"guest_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Guests     int       `json:"guests"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func mapBooking(b *booking.Booking) bookingResponse {
	return bookingResponse{
		ID:         string(b.ID),
		HotelID:    string(b.HotelID),
		RoomID:     string(b.RoomID),
		GuestID:    b.GuestID,
		CheckIn:    b.Range.CheckIn.Format(dateLayout),
		CheckOut:   b.Range.CheckOut.Format(dateLayout),
		Guests:     b.Guests,
		TotalCents: b.TotalCents,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
}
