package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventStatus string

const (
	EventIncomplete EventStatus = "Incomplete"
	EventCompleted  EventStatus = "Completed"
)

func ValidEventStatus(s EventStatus) bool {
	return s == EventIncomplete || s == EventCompleted
}

type Event struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title           string               `bson:"title" json:"title"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	Date            string               `bson:"date" json:"date"`
	Time            string               `bson:"time,omitempty" json:"time,omitempty"`
	Location        string               `bson:"location,omitempty" json:"location,omitempty"`
	RequiredAmount  float64              `bson:"required_amount,omitempty" json:"required_amount,omitempty"`
	CollectedAmount float64              `bson:"collected_amount" json:"collected_amount"`
	Image           string               `bson:"image,omitempty" json:"image,omitempty"`
	Status          EventStatus          `bson:"status" json:"status"`
	Participants    []primitive.ObjectID `bson:"participants" json:"participants"`
	CreatedAt       time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether the user already joined the event.
func (e *Event) HasParticipant(uid primitive.ObjectID) bool {
	for _, p := range e.Participants {
		if p == uid {
			return true
		}
	}
	return false
}
