package models

import "time"

// BookingRecord is the persisted trace of a successfully created event.
type BookingRecord struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	Summary   string    `bson:"summary" json:"summary"`
	Date      string    `bson:"date" json:"date"`           // as entered, DD-MM-YYYY
	StartTime string    `bson:"startTime" json:"startTime"` // as entered, HH:MM AM/PM
	EndTime   string    `bson:"endTime" json:"endTime"`
	TimeZone  string    `bson:"timeZone" json:"timeZone"`
	EventID   string    `bson:"eventId" json:"eventId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
