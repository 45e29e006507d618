package bookingRepo

import (
	"context"
	"errors"
	"time"

	"calbot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking record and returns its ID.
func (r *mongoBookingRepo) Create(ctx context.Context, record models.BookingRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetByID returns a booking record by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetBySessionID fetches all bookings made within a given chat session.
func (r *mongoBookingRepo) GetBySessionID(ctx context.Context, sessionID string) ([]models.BookingRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// List returns the most recent bookings, newest first.
func (r *mongoBookingRepo) List(ctx context.Context, limit int64) ([]models.BookingRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteByID removes a booking record by ID.
func (r *mongoBookingRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("booking record not found")
	}
	return nil
}
