package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SH20RAJ/wrkflow-backend/models"
)

type RatingRepo struct {
	db *gorm.DB
}

func NewRatingRepo(db *gorm.DB) *RatingRepo {
	return &RatingRepo{db}
}

// RatingByWorkflowAndUser returns the user's rating for a workflow, or nil
// when absent. Satisfies services.RatingStore.
func (r *RatingRepo) RatingByWorkflowAndUser(ctx context.Context, workflowID uuid.UUID, userID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		First(&rating, "workflow_id = ? AND user_id = ?", workflowID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// UpsertRating inserts the rating or, on a (workflow_id, user_id) conflict,
// updates rating, review, and updated_at in place. The conflict clause is
// what makes concurrent submissions from the same user safe.
func (r *RatingRepo) UpsertRating(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workflow_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "updated_at"}),
	}).Create(rating).Error
}

// RatingStats returns the store-side mean and count for a workflow's
// ratings. Zero ratings yields zeros rather than NULL.
func (r *RatingRepo) RatingStats(ctx context.Context, workflowID uuid.UUID) (*models.RatingStats, error) {
	var stats models.RatingStats
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("workflow_id = ?", workflowID).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_ratings").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListByWorkflow returns a workflow's ratings newest first, for the
// review list on the workflow page.
func (r *RatingRepo) ListByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("updated_at DESC").
		Find(&ratings).Error
	return ratings, err
}
