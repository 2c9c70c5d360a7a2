package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/hopebridge/ngo-backend-go/models"
)

func newCase(caseNo, title string, required float64) *models.Case {
	return &models.Case{
		CaseNo:         caseNo,
		Title:          title,
		Category:       models.CategoryFinancialHelp,
		AmountRequired: required,
	}
}

func TestCreateCase(t *testing.T) {
	cases := newFakeCaseStore()
	svc := NewCaseService(cases)

	c := newCase("C-001", "School Fees for Ali", 1000)
	require.NoError(t, svc.Create(context.Background(), c))

	assert.Equal(t, models.CaseActive, c.Status)
	assert.Zero(t, c.AmountCollected)
	assert.Nil(t, c.FinalAmount)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCreateCaseDuplicateCaseNo(t *testing.T) {
	cases := newFakeCaseStore()
	svc := NewCaseService(cases)

	require.NoError(t, svc.Create(context.Background(), newCase("C-001", "First", 500)))

	err := svc.Create(context.Background(), newCase("C-001", "Second", 800))
	assert.ErrorIs(t, err, ErrDuplicateCaseNo)
}

func TestCreateCaseUnknownCategory(t *testing.T) {
	svc := NewCaseService(newFakeCaseStore())

	c := newCase("C-002", "Something", 100)
	c.Category = "Housing"
	err := svc.Create(context.Background(), c)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCompleteRecordsFinalAmount(t *testing.T) {
	cases := newFakeCaseStore()
	svc := NewCaseService(cases)

	c := newCase("C-010", "Heart Surgery Support", 1000)
	require.NoError(t, svc.Create(context.Background(), c))

	final := 750.0
	got, err := svc.Transition(context.Background(), c.ID, models.CaseCompleted, &final)
	require.NoError(t, err)

	assert.Equal(t, models.CaseCompleted, got.Status)
	assert.Equal(t, 750.0, got.AmountCollected)
	require.NotNil(t, got.FinalAmount)
	assert.Equal(t, 750.0, *got.FinalAmount)

	stored := cases.cases[c.ID]
	assert.Equal(t, models.CaseCompleted, stored.Status)
	assert.Equal(t, 750.0, stored.AmountCollected)
}

func TestCompleteWithoutFinalAmountKeepsCollected(t *testing.T) {
	cases := newFakeCaseStore()
	svc := NewCaseService(cases)

	c := newCase("C-011", "Medicine Fund", 500)
	require.NoError(t, svc.Create(context.Background(), c))
	cases.cases[c.ID].AmountCollected = 320

	got, err := svc.Transition(context.Background(), c.ID, models.CaseCompleted, nil)
	require.NoError(t, err)

	require.NotNil(t, got.FinalAmount)
	assert.Equal(t, 320.0, *got.FinalAmount)
	assert.Equal(t, 320.0, got.AmountCollected)
}

func TestDroppedCannotComplete(t *testing.T) {
	cases := newFakeCaseStore()
	svc := NewCaseService(cases)

	c := newCase("C-012", "Abandoned Case", 500)
	require.NoError(t, svc.Create(context.Background(), c))

	_, err := svc.Transition(context.Background(), c.ID, models.CaseDropped, nil)
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), c.ID, models.CaseCompleted, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReactivationKeepsFinalAmount(t *testing.T) {
	cases := newFakeCaseStore()
	svc := NewCaseService(cases)

	c := newCase("C-013", "Reopened Case", 500)
	require.NoError(t, svc.Create(context.Background(), c))

	final := 400.0
	_, err := svc.Transition(context.Background(), c.ID, models.CaseCompleted, &final)
	require.NoError(t, err)

	got, err := svc.Transition(context.Background(), c.ID, models.CaseActive, nil)
	require.NoError(t, err)

	assert.Equal(t, models.CaseActive, got.Status)
	require.NotNil(t, cases.cases[c.ID].FinalAmount)
	assert.Equal(t, 400.0, *cases.cases[c.ID].FinalAmount)
}

func TestTransitionUnknownCase(t *testing.T) {
	svc := NewCaseService(newFakeCaseStore())

	_, err := svc.Transition(context.Background(), primitive.NewObjectID(), models.CaseDropped, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionUnknownStatus(t *testing.T) {
	cases := newFakeCaseStore()
	svc := NewCaseService(cases)

	c := newCase("C-014", "Whatever", 100)
	require.NoError(t, svc.Create(context.Background(), c))

	_, err := svc.Transition(context.Background(), c.ID, "archived", nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
