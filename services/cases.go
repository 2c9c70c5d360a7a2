package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/hopebridge/ngo-backend-go/models"
)

type CaseService struct {
	cases CaseStore
}

func NewCaseService(cases CaseStore) *CaseService {
	return &CaseService{cases: cases}
}

// Create inserts a new active case. The caseNo is checked here and backed by
// a unique index, so a duplicate insert fails either way.
func (s *CaseService) Create(ctx context.Context, c *models.Case) error {
	if !models.ValidCaseCategory(c.Category) {
		return ErrInvalidCategory
	}

	_, err := s.cases.FindByCaseNo(ctx, c.CaseNo)
	if err == nil {
		return ErrDuplicateCaseNo
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now()
	c.ID = primitive.NewObjectID()
	c.Status = models.CaseActive
	c.FinalAmount = nil
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.cases.Insert(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCaseNo
		}
		return err
	}
	return nil
}

// Transition moves a case along the allowed status table. Completing a case
// records a final amount: the supplied one when given, otherwise whatever has
// been collected so far. Reactivation keeps finalAmount as a historical trace.
func (s *CaseService) Transition(ctx context.Context, id primitive.ObjectID, to models.CaseStatus, finalAmount *float64) (*models.Case, error) {
	if !models.ValidCaseStatus(to) {
		return nil, ErrInvalidTransition
	}

	c, err := s.cases.Get(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !c.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}

	if to == models.CaseCompleted {
		final := c.AmountCollected
		if finalAmount != nil {
			final = *finalAmount
		}
		if err := s.cases.UpdateStatus(ctx, id, to, &final, &final); err != nil {
			return nil, err
		}
		c.AmountCollected = final
		c.FinalAmount = &final
	} else {
		if err := s.cases.UpdateStatus(ctx, id, to, nil, nil); err != nil {
			return nil, err
		}
	}
	c.Status = to

	return c, nil
}
