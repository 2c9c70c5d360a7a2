package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/hopebridge/ngo-backend-go/models"
)

// DonationStore is the persistence surface the donation workflow needs.
type DonationStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Donation, error)
	Insert(ctx context.Context, d *models.Donation) error
	// SetReviewed flips status only when the donation is still Pending and
	// reports whether the flip happened.
	SetReviewed(ctx context.Context, id primitive.ObjectID, status models.DonationStatus) (bool, error)
}

type CaseStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Case, error)
	FindByTitle(ctx context.Context, title string) (*models.Case, error)
	FindByCaseNo(ctx context.Context, caseNo string) (*models.Case, error)
	Insert(ctx context.Context, c *models.Case) error
	IncrementCollected(ctx context.Context, id primitive.ObjectID, amount float64) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CaseStatus, amountCollected, finalAmount *float64) error
}

type EventStore interface {
	FindByTitle(ctx context.Context, title string) (*models.Event, error)
	IncrementCollected(ctx context.Context, id primitive.ObjectID, amount float64) error
}

type DonationService struct {
	donations DonationStore
	cases     CaseStore
	events    EventStore
}

func NewDonationService(donations DonationStore, cases CaseStore, events EventStore) *DonationService {
	return &DonationService{donations: donations, cases: cases, events: events}
}

// ResolveCause maps a donor's free-text cause onto a stored reference, cases
// first, events as fallback, general when neither title matches.
func (s *DonationService) ResolveCause(ctx context.Context, cause string) (models.CauseRef, error) {
	if cs, err := s.cases.FindByTitle(ctx, cause); err == nil {
		return models.CauseRef{Type: models.CauseCase, ID: cs.ID}, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.CauseRef{}, err
	}

	if ev, err := s.events.FindByTitle(ctx, cause); err == nil {
		return models.CauseRef{Type: models.CauseEvent, ID: ev.ID}, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.CauseRef{}, err
	}

	return models.CauseRef{Type: models.CauseGeneral}, nil
}

// Submit stores a new Pending donation, resolving its cause reference once.
func (s *DonationService) Submit(ctx context.Context, d *models.Donation) error {
	ref, err := s.ResolveCause(ctx, d.Cause)
	if err != nil {
		return err
	}

	now := time.Now()
	d.ID = primitive.NewObjectID()
	d.CauseRef = ref
	d.Status = models.DonationPending
	d.CreatedAt = now
	d.UpdatedAt = now

	return s.donations.Insert(ctx, d)
}

// Approve verifies a pending donation and credits its amount onto the stored
// cause target. The status flip is conditional on the donation still being
// Pending, so a second approval returns ErrAlreadyReviewed instead of
// crediting twice. General-cause donations are verified with no allocation.
func (s *DonationService) Approve(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	d, err := s.donations.Get(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	flipped, err := s.donations.SetReviewed(ctx, id, models.DonationVerified)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, ErrAlreadyReviewed
	}
	d.Status = models.DonationVerified

	ref := d.CauseRef
	if ref.Type == "" {
		// Rows written before cause references existed; resolve by title now.
		ref, err = s.ResolveCause(ctx, d.Cause)
		if err != nil {
			return nil, err
		}
	}

	switch ref.Type {
	case models.CauseCase:
		if err := s.cases.IncrementCollected(ctx, ref.ID, d.Amount); err != nil {
			return nil, err
		}
	case models.CauseEvent:
		if err := s.events.IncrementCollected(ctx, ref.ID, d.Amount); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Reject flips a pending donation to Rejected. No amounts are touched.
func (s *DonationService) Reject(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	d, err := s.donations.Get(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	flipped, err := s.donations.SetReviewed(ctx, id, models.DonationRejected)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, ErrAlreadyReviewed
	}
	d.Status = models.DonationRejected

	return d, nil
}
