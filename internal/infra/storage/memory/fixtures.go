package memory

import (
	"encoding/json"
	"fmt"
	"os"

	domaininventory "innkeeper/internal/domain/inventory"
)

type fixtureFile struct {
	Hotels []hotelFixture `json:"hotels"`
}

type hotelFixture struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Location         string        `json:"location"`
	Rating           float64       `json:"rating"`
	ReviewCount      int           `json:"review_count"`
	NightlyRateCents int64         `json:"nightly_rate_cents"`
	Amenities        []string      `json:"amenities"`
	Lat              float64       `json:"lat"`
	Lon              float64       `json:"lon"`
	Rooms            []roomFixture `json:"rooms"`
}

type roomFixture struct {
	ID               string   `json:"id"`
	Number           string   `json:"number"`
	Type             string   `json:"type"`
	NightlyRateCents int64    `json:"nightly_rate_cents"`
	Capacity         int      `json:"capacity"`
	Amenities        []string `json:"amenities"`
	Status           string   `json:"status"`
	Floor            int      `json:"floor"`
}

// LoadFixtures seeds the repository from a JSON inventory file so the service
// is usable out of the box against the in-memory store.
func LoadFixtures(path string, repo *InventoryRepository) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var file fixtureFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parse inventory fixtures: %w", err)
	}
	for _, h := range file.Hotels {
		repo.SeedHotel(&domaininventory.Hotel{
			ID:               domaininventory.HotelID(h.ID),
			Name:             h.Name,
			Location:         h.Location,
			Rating:           h.Rating,
			ReviewCount:      h.ReviewCount,
			NightlyRateCents: h.NightlyRateCents,
			Amenities:        h.Amenities,
			Lat:              h.Lat,
			Lon:              h.Lon,
		})
		for _, room := range h.Rooms {
			status := domaininventory.RoomStatus(room.Status)
			if status == "" {
				status = domaininventory.RoomAvailable
			}
			repo.SeedRoom(&domaininventory.Room{
				ID:               domaininventory.RoomID(room.ID),
				HotelID:          domaininventory.HotelID(h.ID),
				Number:           room.Number,
				Type:             room.Type,
				NightlyRateCents: room.NightlyRateCents,
				Capacity:         room.Capacity,
				Amenities:        room.Amenities,
				Status:           status,
				Floor:            room.Floor,
			})
		}
	}
	return len(file.Hotels), nil
}
