package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Workflow represents a published automation workflow in the marketplace
type Workflow struct {
	ID            uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4();not null"`
	Title         string         `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string         `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_workflow_slug"`
	UserID        string         `json:"userId" db:"user_id" gorm:"type:text;not null;index:idx_workflow_user_id"`
	Description   *string        `json:"description,omitempty" db:"description" gorm:"type:text"`
	Content       datatypes.JSON `json:"content,omitempty" db:"content" gorm:"type:jsonb"`
	Price         *float64       `json:"price,omitempty" db:"price" gorm:"type:numeric"`
	ImageURL      *string        `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`
	ViewCount     int64          `json:"viewCount" db:"view_count" gorm:"type:bigint;not null;default:0"`
	DownloadCount int64          `json:"downloadCount" db:"download_count" gorm:"type:bigint;not null;default:0"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Tags []Tag `json:"tags,omitempty" gorm:"many2many:workflow_tags;joinForeignKey:WorkflowID;joinReferences:TagID"`
}
