package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SH20RAJ/wrkflow-backend/errs"
	"github.com/SH20RAJ/wrkflow-backend/models"
)

// CommentStore is the slice of the relational store the comment service needs.
type CommentStore interface {
	// CommentByID returns the comment with the given id, or nil when absent.
	CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	// CommentsByWorkflow returns all comments for a workflow ordered by
	// created_at descending (newest first).
	CommentsByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]models.Comment, error)
}

// CommentService validates comment submissions and shapes flat comment rows
// into two-level display trees.
type CommentService struct {
	store  CommentStore
	logger zerolog.Logger
}

func NewCommentService(store CommentStore) *CommentService {
	return &CommentService{
		store:  store,
		logger: log.With().Str("service", "comments").Logger(),
	}
}

// AddComment persists a comment or reply. A reply's parent must exist and
// belong to the same workflow; a reply to a reply is re-parented to the
// top-level ancestor at write time, so persisted rows never exceed one
// reply level.
func (s *CommentService) AddComment(ctx context.Context, workflowID uuid.UUID, userID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, errs.NewValidationError("content", "comment content must not be empty")
	}

	if parentID != nil {
		parent, err := s.store.CommentByID(ctx, *parentID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "parent comment", err)
		}
		if parent == nil {
			return nil, errs.NewNotFoundError("parent comment not found")
		}
		if parent.WorkflowID != workflowID {
			return nil, errs.NewValidationError("parentId", "parent comment belongs to a different workflow")
		}
		if parent.ParentID != nil {
			// Reply to a reply: flatten under the top-level ancestor.
			s.logger.Debug().
				Str("parentId", parentID.String()).
				Str("ancestorId", parent.ParentID.String()).
				Msg("re-parenting nested reply to top-level ancestor")
			parentID = parent.ParentID
		}
	}

	comment := &models.Comment{
		ID:         uuid.New(),
		WorkflowID: workflowID,
		UserID:     userID,
		Content:    trimmed,
		ParentID:   parentID,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, errs.NewDatabaseError("create", "comment", err)
	}
	return comment, nil
}

// ThreadedForWorkflow fetches a workflow's comments and returns the display
// tree along with the total comment count. The count is derived from the
// same fetched set as the tree, so the two cannot drift under concurrent
// writes.
func (s *CommentService) ThreadedForWorkflow(ctx context.Context, workflowID uuid.UUID) ([]models.ThreadedComment, int, error) {
	flat, err := s.store.CommentsByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("find comments for", "workflow", err)
	}
	return ThreadComments(flat), len(flat), nil
}

// ThreadComments reshapes a flat comment collection into two-level
// parent/reply trees. Parents keep their arrival order (newest first from
// the store); each parent's replies are sorted oldest first. A reply whose
// parent is not a top-level comment in the set is dropped, which flattens
// any deeper nesting present in old data to exactly two display levels.
func ThreadComments(flat []models.Comment) []models.ThreadedComment {
	parents := make([]models.ThreadedComment, 0, len(flat))
	replies := make(map[uuid.UUID][]models.Comment)

	for _, c := range flat {
		if c.ParentID == nil {
			parents = append(parents, models.ThreadedComment{Comment: c, Replies: []models.Comment{}})
		} else {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}

	for i := range parents {
		group := replies[parents[i].ID]
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].CreatedAt.Before(group[b].CreatedAt)
		})
		parents[i].Replies = append(parents[i].Replies, group...)
	}

	return parents
}
