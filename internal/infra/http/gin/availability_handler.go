package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"innkeeper/internal/domain/availability"
	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
)

type AvailabilityHandler struct {
	Ledger *availability.Ledger
}

// RoomFree answers an advisory availability probe; the answer can be stale by
// the time the caller books, which is why booking re-validates.
func (h AvailabilityHandler) RoomFree(c *gin.Context) {
	rng, ok := rangeFromQuery(c)
	if !ok {
		return
	}
	free, err := h.Ledger.IsRoomFree(c.Request.Context(), inventory.RoomID(c.Param("id")), rng)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": c.Param("id"), "free": free})
}

func (h AvailabilityHandler) FreeRooms(c *gin.Context) {
	rng, ok := rangeFromQuery(c)
	if !ok {
		return
	}
	minCapacity, err := intQuery(c, "capacity", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rooms, err := h.Ledger.FreeRoomsForHotel(c.Request.Context(), inventory.HotelID(c.Param("id")), rng, minCapacity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": mapRooms(rooms)})
}

func rangeFromQuery(c *gin.Context) (daterange.DateRange, bool) {
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return daterange.DateRange{}, false
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return daterange.DateRange{}, false
	}
	rng, err := daterange.New(checkIn, checkOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return daterange.DateRange{}, false
	}
	return rng, true
}

var _ AvailabilityHTTP = AvailabilityHandler{}
