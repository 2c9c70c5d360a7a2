package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/hopebridge/ngo-backend-go/models"
)

// --------------------- Fakes ---------------------

type fakeDonationStore struct {
	donations map[primitive.ObjectID]*models.Donation
}

func newFakeDonationStore() *fakeDonationStore {
	return &fakeDonationStore{donations: map[primitive.ObjectID]*models.Donation{}}
}

func (s *fakeDonationStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	d, ok := s.donations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copy := *d
	return &copy, nil
}

func (s *fakeDonationStore) Insert(ctx context.Context, d *models.Donation) error {
	copy := *d
	s.donations[d.ID] = &copy
	return nil
}

func (s *fakeDonationStore) SetReviewed(ctx context.Context, id primitive.ObjectID, status models.DonationStatus) (bool, error) {
	d, ok := s.donations[id]
	if !ok || d.Status != models.DonationPending {
		return false, nil
	}
	d.Status = status
	return true, nil
}

type fakeCaseStore struct {
	cases map[primitive.ObjectID]*models.Case
}

func newFakeCaseStore() *fakeCaseStore {
	return &fakeCaseStore{cases: map[primitive.ObjectID]*models.Case{}}
}

func (s *fakeCaseStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Case, error) {
	c, ok := s.cases[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copy := *c
	return &copy, nil
}

func (s *fakeCaseStore) FindByTitle(ctx context.Context, title string) (*models.Case, error) {
	for _, c := range s.cases {
		if c.Title == title {
			copy := *c
			return &copy, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeCaseStore) FindByCaseNo(ctx context.Context, caseNo string) (*models.Case, error) {
	for _, c := range s.cases {
		if c.CaseNo == caseNo {
			copy := *c
			return &copy, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeCaseStore) Insert(ctx context.Context, c *models.Case) error {
	copy := *c
	s.cases[c.ID] = &copy
	return nil
}

func (s *fakeCaseStore) IncrementCollected(ctx context.Context, id primitive.ObjectID, amount float64) error {
	if c, ok := s.cases[id]; ok {
		c.AmountCollected += amount
	}
	return nil
}

func (s *fakeCaseStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CaseStatus, amountCollected, finalAmount *float64) error {
	c, ok := s.cases[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.Status = status
	if amountCollected != nil {
		c.AmountCollected = *amountCollected
	}
	if finalAmount != nil {
		f := *finalAmount
		c.FinalAmount = &f
	}
	return nil
}

type fakeEventStore struct {
	events map[primitive.ObjectID]*models.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[primitive.ObjectID]*models.Event{}}
}

func (s *fakeEventStore) FindByTitle(ctx context.Context, title string) (*models.Event, error) {
	for _, ev := range s.events {
		if ev.Title == title {
			copy := *ev
			return &copy, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeEventStore) IncrementCollected(ctx context.Context, id primitive.ObjectID, amount float64) error {
	if ev, ok := s.events[id]; ok {
		ev.CollectedAmount += amount
	}
	return nil
}

// --------------------- Setup ---------------------

func setupDonationService() (*DonationService, *fakeDonationStore, *fakeCaseStore, *fakeEventStore) {
	donations := newFakeDonationStore()
	cases := newFakeCaseStore()
	events := newFakeEventStore()
	return NewDonationService(donations, cases, events), donations, cases, events
}

func addCase(cases *fakeCaseStore, title string, collected float64) primitive.ObjectID {
	id := primitive.NewObjectID()
	cases.cases[id] = &models.Case{
		ID:              id,
		CaseNo:          "C-" + id.Hex()[:6],
		Title:           title,
		Category:        models.CategoryMedicalAssistance,
		AmountCollected: collected,
		Status:          models.CaseActive,
	}
	return id
}

func addEvent(events *fakeEventStore, title string, collected float64) primitive.ObjectID {
	id := primitive.NewObjectID()
	events.events[id] = &models.Event{
		ID:              id,
		Title:           title,
		CollectedAmount: collected,
		Status:          models.EventIncomplete,
	}
	return id
}

func submitDonation(t *testing.T, svc *DonationService, cause string, amount float64) *models.Donation {
	t.Helper()
	d := &models.Donation{
		FullName:      "Asad Khan",
		Email:         "asad@example.com",
		ContactNumber: "0300-1234567",
		Cause:         cause,
		Purpose:       models.PurposeSadqah,
		PaymentMethod: "Bank Transfer",
		Amount:        amount,
	}
	require.NoError(t, svc.Submit(context.Background(), d))
	return d
}

// --------------------- Approve ---------------------

func TestApproveCreditsMatchingCase(t *testing.T) {
	svc, _, cases, events := setupDonationService()
	caseID := addCase(cases, "Heart Surgery Support", 200)
	eventID := addEvent(events, "Winter Drive", 50)

	d := submitDonation(t, svc, "Heart Surgery Support", 500)

	got, err := svc.Approve(context.Background(), d.ID)
	require.NoError(t, err)

	assert.Equal(t, models.DonationVerified, got.Status)
	assert.Equal(t, float64(700), cases.cases[caseID].AmountCollected)
	assert.Equal(t, float64(50), events.events[eventID].CollectedAmount)
}

func TestApproveFallsBackToEvent(t *testing.T) {
	svc, _, cases, events := setupDonationService()
	eventID := addEvent(events, "Winter Drive", 100)

	d := submitDonation(t, svc, "Winter Drive", 250)

	_, err := svc.Approve(context.Background(), d.ID)
	require.NoError(t, err)

	assert.Equal(t, float64(350), events.events[eventID].CollectedAmount)
	assert.Empty(t, cases.cases)
}

func TestApproveUnmatchedCauseVerifiesWithoutAllocation(t *testing.T) {
	svc, _, cases, events := setupDonationService()
	caseID := addCase(cases, "Heart Surgery Support", 200)
	eventID := addEvent(events, "Winter Drive", 50)

	d := submitDonation(t, svc, "Nonexistent Fund", 300)
	assert.Equal(t, models.CauseGeneral, d.CauseRef.Type)

	got, err := svc.Approve(context.Background(), d.ID)
	require.NoError(t, err)

	assert.Equal(t, models.DonationVerified, got.Status)
	assert.Equal(t, float64(200), cases.cases[caseID].AmountCollected)
	assert.Equal(t, float64(50), events.events[eventID].CollectedAmount)
}

func TestApproveTwiceCreditsOnce(t *testing.T) {
	svc, _, cases, _ := setupDonationService()
	caseID := addCase(cases, "Heart Surgery Support", 0)

	d := submitDonation(t, svc, "Heart Surgery Support", 500)

	_, err := svc.Approve(context.Background(), d.ID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), d.ID)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Equal(t, float64(500), cases.cases[caseID].AmountCollected)
}

func TestApproveUnknownDonation(t *testing.T) {
	svc, _, _, _ := setupDonationService()

	_, err := svc.Approve(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproveLegacyDonationResolvesByTitle(t *testing.T) {
	svc, donations, cases, _ := setupDonationService()
	caseID := addCase(cases, "Flood Relief", 10)

	// Row written before cause references were stored at submission time.
	d := &models.Donation{
		ID:     primitive.NewObjectID(),
		Cause:  "Flood Relief",
		Amount: 90,
		Status: models.DonationPending,
	}
	require.NoError(t, donations.Insert(context.Background(), d))

	_, err := svc.Approve(context.Background(), d.ID)
	require.NoError(t, err)

	assert.Equal(t, float64(100), cases.cases[caseID].AmountCollected)
}

// --------------------- Reject ---------------------

func TestRejectHasNoSideEffect(t *testing.T) {
	svc, _, cases, events := setupDonationService()
	caseID := addCase(cases, "Heart Surgery Support", 200)
	eventID := addEvent(events, "Winter Drive", 50)

	d := submitDonation(t, svc, "Heart Surgery Support", 500)

	got, err := svc.Reject(context.Background(), d.ID)
	require.NoError(t, err)

	assert.Equal(t, models.DonationRejected, got.Status)
	assert.Equal(t, float64(200), cases.cases[caseID].AmountCollected)
	assert.Equal(t, float64(50), events.events[eventID].CollectedAmount)
}

func TestRejectAfterApprove(t *testing.T) {
	svc, _, cases, _ := setupDonationService()
	addCase(cases, "Heart Surgery Support", 0)

	d := submitDonation(t, svc, "Heart Surgery Support", 500)

	_, err := svc.Approve(context.Background(), d.ID)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), d.ID)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

// --------------------- Submit / ResolveCause ---------------------

func TestSubmitResolvesCaseBeforeEvent(t *testing.T) {
	svc, _, cases, events := setupDonationService()
	caseID := addCase(cases, "Shared Title", 0)
	addEvent(events, "Shared Title", 0)

	d := submitDonation(t, svc, "Shared Title", 100)

	assert.Equal(t, models.CauseCase, d.CauseRef.Type)
	assert.Equal(t, caseID, d.CauseRef.ID)
	assert.Equal(t, models.DonationPending, d.Status)
}

func TestSubmitStoresPendingDonation(t *testing.T) {
	svc, donations, _, _ := setupDonationService()

	d := submitDonation(t, svc, "Anything", 42)

	stored, err := donations.Get(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DonationPending, stored.Status)
	assert.Equal(t, models.CauseGeneral, stored.CauseRef.Type)
	assert.False(t, stored.CreatedAt.IsZero())
}
