package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SH20RAJ/wrkflow-backend/models"
)

type WorkflowRepo struct {
	db *gorm.DB
}

func NewWorkflowRepo(db *gorm.DB) *WorkflowRepo {
	return &WorkflowRepo{db}
}

// FindAll returns workflows newest first, optionally filtered with plain
// substring matching on title/description and by tag name.
func (r *WorkflowRepo) FindAll(ctx context.Context, search, tagName string) ([]*models.Workflow, error) {
	query := r.db.WithContext(ctx).Preload("Tags").Order("created_at DESC")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if tagName != "" {
		query = query.
			Joins("JOIN workflow_tags ON workflow_tags.workflow_id = workflows.id").
			Joins("JOIN tags ON tags.id = workflow_tags.tag_id").
			Where("tags.name = ?", tagName)
	}

	var workflows []*models.Workflow
	err := query.Find(&workflows).Error
	return workflows, err
}

// FindByID returns a workflow by its ID, or nil when absent
func (r *WorkflowRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Workflow, error) {
	var workflow models.Workflow
	err := r.db.WithContext(ctx).Preload("Tags").First(&workflow, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

// FindBySlug returns a workflow by its slug, or nil when absent
func (r *WorkflowRepo) FindBySlug(ctx context.Context, slug string) (*models.Workflow, error) {
	var workflow models.Workflow
	err := r.db.WithContext(ctx).Preload("Tags").First(&workflow, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

// WorkflowIDBySlug reports the id of the workflow holding slug, if any.
// Satisfies services.SlugStore.
func (r *WorkflowRepo) WorkflowIDBySlug(ctx context.Context, slug string) (uuid.UUID, bool, error) {
	var workflow models.Workflow
	err := r.db.WithContext(ctx).Select("id").First(&workflow, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return workflow.ID, true, nil
}

// Add inserts a new workflow into the database
func (r *WorkflowRepo) Add(ctx context.Context, workflow *models.Workflow) error {
	return r.db.WithContext(ctx).Omit("Tags").Create(workflow).Error
}

// Update updates an existing workflow in the database
func (r *WorkflowRepo) Update(ctx context.Context, workflow *models.Workflow) error {
	return r.db.WithContext(ctx).Omit("Tags").Save(workflow).Error
}

// Delete removes a workflow from the database by id
func (r *WorkflowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Workflow{}, "id = ?", id).Error
}

// IncrementViewCount bumps the view counter without touching other columns
func (r *WorkflowRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Workflow{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// IncrementDownloadCount bumps the download counter without touching other columns
func (r *WorkflowRepo) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Workflow{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).Error
}
