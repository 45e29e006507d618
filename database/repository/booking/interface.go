package bookingRepo

import (
	"context"

	"calbot/database"
	"calbot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository stores the history of successfully booked appointments.
type Repository interface {
	Create(ctx context.Context, record models.BookingRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]models.BookingRecord, error)
	List(ctx context.Context, limit int64) ([]models.BookingRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a Repository backed by MongoDB.
func NewMongoBookingRepo() Repository {
	db := database.MongoClient.Database("calbot")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
