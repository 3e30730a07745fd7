package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SH20RAJ/wrkflow-backend/errs"
	"github.com/SH20RAJ/wrkflow-backend/models"
)

// TagStore is the slice of the relational store the tag associator needs.
type TagStore interface {
	// TagByName returns the tag with the exact given name, or nil when absent.
	TagByName(ctx context.Context, name string) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	// ReplaceWorkflowTags deletes every link row for the workflow and
	// inserts one per tag id, inside a single transaction.
	ReplaceWorkflowTags(ctx context.Context, workflowID uuid.UUID, tagIDs []uuid.UUID) error
}

// TagService turns submitted tag name lists into durable tag entities and
// maintains the many-to-many link to workflows.
type TagService struct {
	store  TagStore
	logger zerolog.Logger
}

func NewTagService(store TagStore) *TagService {
	return &TagService{
		store:  store,
		logger: log.With().Str("service", "tags").Logger(),
	}
}

// CreateOrGetTags resolves each trimmed name to a tag id, creating tags
// lazily on first use. The returned ids match the input order; duplicate
// names resolve to the same id repeated. An empty input yields an empty
// output without touching the store.
func (s *TagService) CreateOrGetTags(ctx context.Context, names []string) ([]uuid.UUID, error) {
	if len(names) == 0 {
		return []uuid.UUID{}, nil
	}

	resolved := make(map[string]uuid.UUID, len(names))
	ids := make([]uuid.UUID, 0, len(names))

	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, errs.NewValidationError("tags", "tag name must not be empty")
		}

		if id, ok := resolved[trimmed]; ok {
			ids = append(ids, id)
			continue
		}

		id, err := s.createOrGet(ctx, trimmed)
		if err != nil {
			return nil, err
		}
		resolved[trimmed] = id
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *TagService) createOrGet(ctx context.Context, name string) (uuid.UUID, error) {
	existing, err := s.store.TagByName(ctx, name)
	if err != nil {
		return uuid.Nil, errs.NewDatabaseError("find", "tag", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	tag := &models.Tag{ID: uuid.New(), Name: name}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		dbErr := errs.NewDatabaseError("create", "tag", err)
		if !errs.IsUniqueConstraintViolationError(dbErr) {
			return uuid.Nil, dbErr
		}

		// A concurrent request created the same tag between our lookup
		// and insert; the unique index on name won the race for us.
		existing, err := s.store.TagByName(ctx, name)
		if err != nil {
			return uuid.Nil, errs.NewDatabaseError("find", "tag", err)
		}
		if existing == nil {
			return uuid.Nil, dbErr
		}
		return existing.ID, nil
	}

	return tag.ID, nil
}

// AssociateTagsWithWorkflow replaces the workflow's link set with tagIDs.
// The replace is unconditional: an empty list clears all links. Callers
// that want "leave tags untouched" must not call this at all.
func (s *TagService) AssociateTagsWithWorkflow(ctx context.Context, workflowID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := s.store.ReplaceWorkflowTags(ctx, workflowID, tagIDs); err != nil {
		return errs.NewDatabaseError("replace tags for", "workflow", err)
	}
	return nil
}
