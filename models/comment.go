package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a workflow. A nil ParentID marks a
// top-level comment; replies reference a top-level comment on the same
// workflow (enforced at write time).
type Comment struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4();not null"`
	WorkflowID uuid.UUID  `json:"workflowId" db:"workflow_id" gorm:"type:uuid;not null;index:idx_comment_workflow_id"`
	UserID     string     `json:"userId" db:"user_id" gorm:"type:text;not null"`
	Content    string     `json:"content" db:"content" gorm:"type:text;not null"`
	ParentID   *uuid.UUID `json:"parentId,omitempty" db:"parent_id" gorm:"type:uuid"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Workflow Workflow `json:"workflow,omitempty" gorm:"foreignKey:WorkflowID;references:ID;constraint:OnDelete:CASCADE"`
}

// ThreadedComment is the two-level display shape consumed by the
// presentation layer: a top-level comment plus its replies.
type ThreadedComment struct {
	Comment
	Replies []Comment `json:"replies"`
}
