package models

import "github.com/google/uuid"

// Tag represents a canonical tag entity, created lazily on first use.
// Tags are never deleted, even when no workflow links to them anymore.
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4();not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_tag_name"`
}
