package ginserver

import (
	"context"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"innkeeper/internal/app/reservation"
	"innkeeper/internal/domain/booking"
	"innkeeper/internal/domain/inventory"
)

type BookingHandler struct {
	Reservations *reservation.Service
}

type createBookingRequest struct {
	HotelID  string `json:"hotel_id"`
	RoomID   string `json:"room_id"`
	GuestID  string `json:"guest_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
}

func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Reservations.Create(c.Request.Context(), reservation.CreateParams{
		HotelID:  inventory.HotelID(req.HotelID),
		RoomID:   inventory.RoomID(req.RoomID),
		GuestID:  req.GuestID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapBooking(b))
}

func (h BookingHandler) Get(c *gin.Context) {
	b, err := h.Reservations.ByID(c.Request.Context(), booking.BookingID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapBooking(b))
}

func (h BookingHandler) ListForGuest(c *gin.Context) {
	bookings, err := h.Reservations.ListByGuest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, mapBooking(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

func (h BookingHandler) Confirm(c *gin.Context)  { h.transition(c, h.Reservations.Confirm) }
func (h BookingHandler) Cancel(c *gin.Context)   { h.transition(c, h.Reservations.Cancel) }
func (h BookingHandler) CheckIn(c *gin.Context)  { h.transition(c, h.Reservations.CheckIn) }
func (h BookingHandler) CheckOut(c *gin.Context) { h.transition(c, h.Reservations.CheckOut) }
func (h BookingHandler) NoShow(c *gin.Context)   { h.transition(c, h.Reservations.MarkNoShow) }

func (h BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id booking.BookingID) (*booking.Booking, error)) {
	b, err := op(c.Request.Context(), booking.BookingID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapBooking(b))
}

var _ BookingHTTP = BookingHandler{}
