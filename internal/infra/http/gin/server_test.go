package ginserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"innkeeper/internal/app/reservation"
	"innkeeper/internal/app/search"
	"innkeeper/internal/domain/availability"
	"innkeeper/internal/domain/inventory"
	"innkeeper/internal/infra/config"
	"innkeeper/internal/infra/obs"
	"innkeeper/internal/infra/storage/memory"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	inv := memory.NewInventoryRepository()
	inv.SeedHotel(&inventory.Hotel{ID: "H", Name: "Test Hotel", Location: "Miami, FL", Rating: 4.0, NightlyRateCents: 10000})
	inv.SeedRoom(&inventory.Room{ID: "R101", HotelID: "H", Number: "101", Capacity: 2, NightlyRateCents: 10000, Status: inventory.RoomAvailable, Floor: 1})

	ledger := availability.NewLedger(inv, nil)
	bookings := memory.NewBookingRepository()

	server := NewServer(
		config.Config{Env: "test", HTTPAddr: ":0"},
		obs.Middleware{},
		obs.HealthHandlers{},
		Handlers{
			Search:       SearchHandler{Service: search.NewService(inv, ledger)},
			Hotel:        HotelHandler{Inventory: inv},
			Availability: AvailabilityHandler{Ledger: ledger},
			Booking:      BookingHandler{Reservations: reservation.NewService(inv, ledger, bookings, nil, nil)},
		},
	)
	return server.Handler
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createBody(checkIn, checkOut string, guests int) map[string]any {
	return map[string]any{
		"hotel_id":  "H",
		"room_id":   "R101",
		"guest_id":  "g1",
		"check_in":  checkIn,
		"check_out": checkOut,
		"guests":    guests,
	}
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/bookings", createBody("2024-06-01", "2024-06-03", 2))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID         string `json:"id"`
		TotalCents int64  `json:"total_cents"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.TotalCents != 20000 || created.Status != "PENDING" {
		t.Fatalf("unexpected booking payload: %+v", created)
	}

	// Overlapping request conflicts, 409 so the UI can say "pick another room".
	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings", createBody("2024-06-02", "2024-06-04", 1))
	if rec.Code != http.StatusConflict {
		t.Fatalf("overlap: status %d, want 409", rec.Code)
	}

	// Back-to-back is fine.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings", createBody("2024-06-03", "2024-06-05", 1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("back-to-back: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%s/cancel", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: status %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%s/cancel", created.ID), nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("second cancel: status %d, want 422", rec.Code)
	}

	// The cancelled interval is free again.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings", createBody("2024-06-01", "2024-06-03", 2))
	if rec.Code != http.StatusCreated {
		t.Fatalf("rebook after cancel: status %d", rec.Code)
	}
}

func TestBookingValidationOverHTTP(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/bookings", createBody("2024-06-03", "2024-06-01", 2))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted dates: status %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings", createBody("2024-06-01", "2024-06-03", 5))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("over capacity: status %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings/ghost/confirm", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown booking: status %d, want 404", rec.Code)
	}
}

func TestSearchAndAvailabilityOverHTTP(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/search?destination=miami&check_in=2024-07-01&check_out=2024-07-03&guests=2&rooms=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: status %d, body %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Total != 1 {
		t.Fatalf("search total = %d, want 1", result.Total)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/rooms/R101/availability?check_in=2024-07-01&check_out=2024-07-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("availability: status %d", rec.Code)
	}
	var probe struct {
		Free bool `json:"free"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &probe); err != nil {
		t.Fatal(err)
	}
	if !probe.Free {
		t.Fatal("expected room to be free")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/search?check_in=bogus&check_out=2024-07-03", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/search?check_in=2024-07-01&check_out=2024-07-03&guests=two", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric guests: status %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/hotels/H/free-rooms?check_in=2024-07-01&check_out=2024-07-03&capacity=lots", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric capacity: status %d, want 400", rec.Code)
	}
}
