package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"innkeeper/internal/app/reservation"
	"innkeeper/internal/app/search"
	"innkeeper/internal/domain/availability"
	"innkeeper/internal/domain/booking"
	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/daterange"
)

// writeError maps domain errors onto HTTP statuses. Conflicts (409) must stay
// distinguishable from validation failures (400) so the UI can tell "pick
// another room" apart from "fix your dates"; anything unmapped is an
// infrastructure failure and surfaces as 500 unchanged.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrHotelNotFound),
		errors.Is(err, inventory.ErrRoomNotFound),
		errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, availability.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, search.ErrInvalidCriteria),
		errors.Is(err, booking.ErrInvalidGuests),
		errors.Is(err, booking.ErrGuestRequired),
		errors.Is(err, reservation.ErrGuestsExceedCapacity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
