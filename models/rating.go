package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating represents a single user's rating of a workflow. The composite
// unique index on (workflow_id, user_id) is the correctness backstop for
// concurrent submissions from the same user.
type Rating struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4();not null"`
	WorkflowID uuid.UUID `json:"workflowId" db:"workflow_id" gorm:"type:uuid;not null;uniqueIndex:idx_rating_workflow_user;index:idx_rating_workflow_id"`
	UserID     string    `json:"userId" db:"user_id" gorm:"type:text;not null;uniqueIndex:idx_rating_workflow_user"`
	Rating     int       `json:"rating" db:"rating" gorm:"type:integer;not null"`
	Review     *string   `json:"review,omitempty" db:"review" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Workflow Workflow `json:"workflow,omitempty" gorm:"foreignKey:WorkflowID;references:ID;constraint:OnDelete:CASCADE"`
}

// RatingStats is the aggregate summary exposed for display.
type RatingStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}
