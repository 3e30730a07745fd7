package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SH20RAJ/wrkflow-backend/errs"
	"github.com/SH20RAJ/wrkflow-backend/models"
)

// RatingStore is the slice of the relational store the rating aggregator needs.
type RatingStore interface {
	// RatingByWorkflowAndUser returns the user's rating for a workflow, or
	// nil when absent.
	RatingByWorkflowAndUser(ctx context.Context, workflowID uuid.UUID, userID string) (*models.Rating, error)
	// UpsertRating inserts the rating or, on a (workflow_id, user_id)
	// conflict, updates rating, review, and updated_at in place.
	UpsertRating(ctx context.Context, rating *models.Rating) error
	// RatingStats returns the store-side AVG/COUNT aggregate; zero ratings
	// yields zeros.
	RatingStats(ctx context.Context, workflowID uuid.UUID) (*models.RatingStats, error)
}

// RatingService maintains a single current rating per (workflow, user) and
// exposes the mean/count summary.
type RatingService struct {
	store  RatingStore
	logger zerolog.Logger
}

func NewRatingService(store RatingStore) *RatingService {
	return &RatingService{
		store:  store,
		logger: log.With().Str("service", "ratings").Logger(),
	}
}

// SubmitRating records or replaces the user's rating for a workflow. The
// rating value is validated before any store access. The lookup-then-branch
// preserves created_at on updates; the conflict-handling upsert underneath
// makes concurrent submissions from the same user safe, with one retry if
// the unique index still reports a race.
func (s *RatingService) SubmitRating(ctx context.Context, workflowID uuid.UUID, userID string, rating int, review *string) (*models.Rating, error) {
	if rating < 1 || rating > 5 {
		return nil, errs.NewValidationError("rating", "must be an integer between 1 and 5")
	}

	result, err := s.submitOnce(ctx, workflowID, userID, rating, review)
	if err != nil && errs.IsUniqueConstraintViolationError(err) {
		s.logger.Warn().
			Str("workflowId", workflowID.String()).
			Str("userId", userID).
			Msg("rating upsert lost a race, retrying once")
		return s.submitOnce(ctx, workflowID, userID, rating, review)
	}
	return result, err
}

func (s *RatingService) submitOnce(ctx context.Context, workflowID uuid.UUID, userID string, rating int, review *string) (*models.Rating, error) {
	existing, err := s.store.RatingByWorkflowAndUser(ctx, workflowID, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "rating", err)
	}

	var row *models.Rating
	if existing != nil {
		existing.Rating = rating
		existing.Review = review
		existing.UpdatedAt = time.Now()
		row = existing
	} else {
		row = &models.Rating{
			ID:         uuid.New(),
			WorkflowID: workflowID,
			UserID:     userID,
			Rating:     rating,
			Review:     review,
		}
	}

	if err := s.store.UpsertRating(ctx, row); err != nil {
		return nil, errs.NewDatabaseError("upsert", "rating", err)
	}
	return row, nil
}

// Stats returns the mean rating and rating count for a workflow.
func (s *RatingService) Stats(ctx context.Context, workflowID uuid.UUID) (*models.RatingStats, error) {
	stats, err := s.store.RatingStats(ctx, workflowID)
	if err != nil {
		return nil, errs.NewDatabaseError("aggregate ratings for", "workflow", err)
	}
	return stats, nil
}
