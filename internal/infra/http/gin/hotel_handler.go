package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"innkeeper/internal/domain/inventory"
)

type HotelHandler struct {
	Inventory inventory.Repository
}

func (h HotelHandler) List(c *gin.Context) {
	hotels, err := h.Inventory.ListHotels(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]hotelResponse, 0, len(hotels))
	for _, hotel := range hotels {
		out = append(out, mapHotel(hotel))
	}
	c.JSON(http.StatusOK, gin.H{"hotels": out})
}

func (h HotelHandler) Get(c *gin.Context) {
	hotel, err := h.Inventory.HotelByID(c.Request.Context(), inventory.HotelID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapHotel(hotel))
}

func (h HotelHandler) Rooms(c *gin.Context) {
	rooms, err := h.Inventory.RoomsForHotel(c.Request.Context(), inventory.HotelID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": mapRooms(rooms)})
}

var _ HotelHTTP = HotelHandler{}
