package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseTransitions(t *testing.T) {
	allowed := []struct{ from, to CaseStatus }{
		{CaseActive, CaseCompleted},
		{CaseActive, CaseDropped},
		{CaseCompleted, CaseActive},
		{CaseDropped, CaseActive},
	}
	for _, tr := range allowed {
		assert.True(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	forbidden := []struct{ from, to CaseStatus }{
		{CaseDropped, CaseCompleted},
		{CaseCompleted, CaseDropped},
		{CaseActive, CaseActive},
		{CaseDropped, CaseDropped},
	}
	for _, tr := range forbidden {
		assert.False(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be rejected", tr.from, tr.to)
	}
}

func TestValidCaseCategory(t *testing.T) {
	assert.True(t, ValidCaseCategory(CategoryFinancialHelp))
	assert.True(t, ValidCaseCategory(CategoryFeeAssistance))
	assert.True(t, ValidCaseCategory(CategoryMedicalAssistance))
	assert.True(t, ValidCaseCategory(CategoryOther))
	assert.False(t, ValidCaseCategory("Housing"))
	assert.False(t, ValidCaseCategory(""))
}

func TestValidDonationPurpose(t *testing.T) {
	assert.True(t, ValidDonationPurpose(PurposeSadqah))
	assert.True(t, ValidDonationPurpose(PurposeZakat))
	assert.True(t, ValidDonationPurpose(PurposeSimpleDonation))
	assert.False(t, ValidDonationPurpose("Charity"))
}
