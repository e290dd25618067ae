package ginserver

import (
	"fmt"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"innkeeper/internal/app/search"
)

type SearchHandler struct {
	Service *search.Service
}

type searchResultResponse struct {
	Hotel hotelResponse  `json:"hotel"`
	Rooms []roomResponse `json:"rooms"`
}

func (h SearchHandler) Search(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	guests, err := intQuery(c, "guests", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rooms, err := intQuery(c, "rooms", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.Service.Search(c.Request.Context(), search.Criteria{
		Destination: c.Query("destination"),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      guests,
		Rooms:       rooms,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]searchResultResponse, 0, len(results))
	for _, result := range results {
		out = append(out, searchResultResponse{
			Hotel: mapHotel(result.Hotel),
			Rooms: mapRooms(result.Rooms),
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": out, "total": len(out)})
}

// intQuery parses an integer query parameter; an absent parameter means the
// default, a malformed one is the caller's mistake.
func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q, want an integer", key, raw)
	}
	return v, nil
}

var _ SearchHTTP = SearchHandler{}
