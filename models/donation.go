package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DonationStatus string

const (
	DonationPending  DonationStatus = "Pending"
	DonationVerified DonationStatus = "Verified"
	DonationRejected DonationStatus = "Rejected"
)

// Donation purposes accepted by the public form.
const (
	PurposeSadqah         = "Sadqah"
	PurposeZakat          = "Zakat"
	PurposeSimpleDonation = "Simple Donation"
)

var donationPurposes = map[string]bool{
	PurposeSadqah:         true,
	PurposeZakat:          true,
	PurposeSimpleDonation: true,
}

func ValidDonationPurpose(p string) bool {
	return donationPurposes[p]
}

type CauseType string

const (
	CauseCase    CauseType = "case"
	CauseEvent   CauseType = "event"
	CauseGeneral CauseType = "general"
)

// CauseRef is the resolved target of a donation's free-text cause. It is
// captured once at submission time so approval never re-derives the match
// from the title, which would break on renames or duplicate titles.
type CauseRef struct {
	Type CauseType          `bson:"type" json:"type"`
	ID   primitive.ObjectID `bson:"id,omitempty" json:"id,omitempty"`
}

type Donation struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	FullName      string              `bson:"full_name" json:"full_name"`
	Email         string              `bson:"email" json:"email"`
	ContactNumber string              `bson:"contact_number" json:"contact_number"`
	Cause         string              `bson:"cause" json:"cause"`
	CauseRef      CauseRef            `bson:"cause_ref" json:"cause_ref"`
	Purpose       string              `bson:"purpose" json:"purpose"`
	PaymentMethod string              `bson:"payment_method" json:"payment_method"`
	Amount        float64             `bson:"amount" json:"amount"`
	PaymentProof  string              `bson:"payment_proof,omitempty" json:"payment_proof,omitempty"`
	Status        DonationStatus      `bson:"status" json:"status"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}
