package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CaseStatus string

const (
	CaseActive    CaseStatus = "active"
	CaseCompleted CaseStatus = "completed"
	CaseDropped   CaseStatus = "dropped"
)

// Case categories accepted by the admin form.
const (
	CategoryFinancialHelp     = "Financial Help"
	CategoryFeeAssistance     = "Fee Assistance"
	CategoryMedicalAssistance = "Medical Assistance"
	CategoryOther             = "Other"
)

var caseCategories = map[string]bool{
	CategoryFinancialHelp:     true,
	CategoryFeeAssistance:     true,
	CategoryMedicalAssistance: true,
	CategoryOther:             true,
}

func ValidCaseCategory(c string) bool {
	return caseCategories[c]
}

// caseTransitions is the allowed-from -> allowed-to table. Reactivation from
// either terminal state is deliberate: the admin UI exposes "mark incomplete".
var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseActive:    {CaseCompleted, CaseDropped},
	CaseCompleted: {CaseActive},
	CaseDropped:   {CaseActive},
}

func (s CaseStatus) CanTransitionTo(to CaseStatus) bool {
	for _, allowed := range caseTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ValidCaseStatus(s CaseStatus) bool {
	switch s {
	case CaseActive, CaseCompleted, CaseDropped:
		return true
	}
	return false
}

type Case struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CaseNo          string             `bson:"case_no" json:"case_no"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Category        string             `bson:"category" json:"category"`
	AmountRequired  float64            `bson:"amount_required" json:"amount_required"`
	AmountCollected float64            `bson:"amount_collected" json:"amount_collected"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Status          CaseStatus         `bson:"status" json:"status"`
	FinalAmount     *float64           `bson:"final_amount,omitempty" json:"final_amount,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
