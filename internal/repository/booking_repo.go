package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"eventdesk/internal/models"
	"eventdesk/pkg/database"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	FindByEventID(ctx context.Context, eventID primitive.ObjectID) ([]models.Booking, error)
}

type bookingRepository struct {
	db *database.Mongo
}

func NewBookingRepository(db *database.Mongo) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("bookings"), nil
}

func (r *bookingRepository) Insert(ctx context.Context, booking *models.Booking) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	res, err := coll.InsertOne(ctx, booking)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = id
	}
	return nil
}

func (r *bookingRepository) FindByEventID(ctx context.Context, eventID primitive.ObjectID) ([]models.Booking, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
