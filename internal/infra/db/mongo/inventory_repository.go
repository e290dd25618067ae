package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaininventory "innkeeper/internal/domain/inventory"
)

// InventoryRepository reads the hotel/room catalogue written by the inventory
// administration service. The core never writes these collections.
type InventoryRepository struct {
	hotels *mongo.Collection
	rooms  *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{
		hotels: db.Collection("hotels"),
		rooms:  db.Collection("rooms"),
	}
}

func (r *InventoryRepository) HotelByID(ctx context.Context, id domaininventory.HotelID) (*domaininventory.Hotel, error) {
	var doc hotelDocument
	if err := r.hotels.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaininventory.ErrHotelNotFound
		}
		return nil, err
	}
	return doc.toRecord(), nil
}

func (r *InventoryRepository) ListHotels(ctx context.Context) ([]*domaininventory.Hotel, error) {
	cursor, err := r.hotels.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var hotels []*domaininventory.Hotel
	for cursor.Next(ctx) {
		var doc hotelDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		hotels = append(hotels, doc.toRecord())
	}
	return hotels, cursor.Err()
}

func (r *InventoryRepository) RoomByID(ctx context.Context, id domaininventory.RoomID) (*domaininventory.Room, error) {
	var doc roomDocument
	if err := r.rooms.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domaininventory.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toRecord(), nil
}

func (r *InventoryRepository) RoomsForHotel(ctx context.Context, hotelID domaininventory.HotelID) ([]*domaininventory.Room, error) {
	if _, err := r.HotelByID(ctx, hotelID); err != nil {
		return nil, err
	}
	sort := options.Find().SetSort(bson.D{{Key: "floor", Value: 1}, {Key: "number", Value: 1}})
	cursor, err := r.rooms.Find(ctx, bson.M{"hotel_id": string(hotelID)}, sort)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var rooms []*domaininventory.Room
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rooms = append(rooms, doc.toRecord())
	}
	return rooms, cursor.Err()
}

type hotelDocument struct {
	ID               string   `bson:"_id"`
	Name             string   `bson:"name"`
	Location         string   `bson:"location"`
	Rating           float64  `bson:"rating"`
	ReviewCount      int      `bson:"review_count"`
	NightlyRateCents int64    `bson:"nightly_rate_cents"`
	Amenities        []string `bson:"amenities"`
	Lat              float64  `bson:"lat"`
	Lon              float64  `bson:"lon"`
}

func (d hotelDocument) toRecord() *domaininventory.Hotel {
	return &domaininventory.Hotel{
		ID:               domaininventory.HotelID(d.ID),
		Name:             d.Name,
		Location:         d.Location,
		Rating:           d.Rating,
		ReviewCount:      d.ReviewCount,
		NightlyRateCents: d.NightlyRateCents,
		Amenities:        d.Amenities,
		Lat:              d.Lat,
		Lon:              d.Lon,
	}
}

type roomDocument struct {
	ID               string   `bson:"_id"`
	HotelID          string   `bson:"hotel_id"`
	Number           string   `bson:"number"`
	Type             string   `bson:"type"`
	NightlyRateCents int64    `bson:"nightly_rate_cents"`
	Capacity         int      `bson:"capacity"`
	Amenities        []string `bson:"amenities"`
	Status           string   `bson:"status"`
	Floor            int      `bson:"floor"`
}

func (d roomDocument) toRecord() *domaininventory.Room {
	return &domaininventory.Room{
		ID:               domaininventory.RoomID(d.ID),
		HotelID:          domaininventory.HotelID(d.HotelID),
		Number:           d.Number,
		Type:             d.Type,
		NightlyRateCents: d.NightlyRateCents,
		Capacity:         d.Capacity,
		Amenities:        d.Amenities,
		Status:           domaininventory.RoomStatus(d.Status),
		Floor:            d.Floor,
	}
}
