package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SH20RAJ/wrkflow-backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags from the database
func (r *TagRepo) FindAll(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}

// TagByName returns the tag with the exact given name, or nil when absent.
// Satisfies services.TagStore.
func (r *TagRepo) TagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag inserts a new tag into the database
func (r *TagRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// ReplaceWorkflowTags swaps the workflow's link rows for the given tag ids
// inside a single transaction, so a mid-sequence failure can never leave
// the workflow with a partially written link set.
func (r *TagRepo) ReplaceWorkflowTags(ctx context.Context, workflowID uuid.UUID, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.WorkflowTag{}, "workflow_id = ?", workflowID).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}

		// Link rows are a set; repeated ids would trip the composite
		// unique index.
		seen := make(map[uuid.UUID]bool, len(tagIDs))
		links := make([]models.WorkflowTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			if seen[tagID] {
				continue
			}
			seen[tagID] = true
			links = append(links, models.WorkflowTag{WorkflowID: workflowID, TagID: tagID})
		}
		return tx.Create(&links).Error
	})
}
