package models

import "github.com/google/uuid"

// WorkflowTag links a workflow to a tag. The link set for a workflow always
// mirrors the most recently submitted tag list.
type WorkflowTag struct {
	WorkflowID uuid.UUID `json:"workflow_id" db:"workflow_id" gorm:"type:uuid;not null;primaryKey;uniqueIndex:idx_workflow_tag_unique"`
	TagID      uuid.UUID `json:"tag_id" db:"tag_id" gorm:"type:uuid;not null;primaryKey;uniqueIndex:idx_workflow_tag_unique"`

	Workflow Workflow `json:"workflow,omitempty" gorm:"foreignKey:WorkflowID;references:ID;constraint:OnDelete:CASCADE"`
	Tag      Tag      `json:"tag,omitempty" gorm:"foreignKey:TagID;references:ID"`
}
