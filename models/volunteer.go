package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VolunteerStatus string

const (
	VolunteerPending  VolunteerStatus = "Pending"
	VolunteerApproved VolunteerStatus = "Approved"
	VolunteerRejected VolunteerStatus = "Rejected"
)

func ValidVolunteerStatus(s VolunteerStatus) bool {
	switch s {
	case VolunteerPending, VolunteerApproved, VolunteerRejected:
		return true
	}
	return false
}

type Volunteer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName      string             `bson:"full_name" json:"full_name"`
	Email         string             `bson:"email" json:"email"`
	ContactNumber string             `bson:"contact_number" json:"contact_number"`
	City          string             `bson:"city,omitempty" json:"city,omitempty"`
	Interest      string             `bson:"interest,omitempty" json:"interest,omitempty"`
	Status        VolunteerStatus    `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
