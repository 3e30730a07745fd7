package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SH20RAJ/wrkflow-backend/models"
)

// fakeCommentStore keeps comments in memory, returning them newest first
// like the real repo does.
type fakeCommentStore struct {
	comments []models.Comment
}

func (s *fakeCommentStore) CommentByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	for i := range s.comments {
		if s.comments[i].ID == id {
			c := s.comments[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeCommentStore) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.CreatedAt = time.Now()
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *fakeCommentStore) CommentsByWorkflow(_ context.Context, workflowID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	for i := len(s.comments) - 1; i >= 0; i-- {
		if s.comments[i].WorkflowID == workflowID {
			out = append(out, s.comments[i])
		}
	}
	return out, nil
}

func newComment(workflowID uuid.UUID, parentID *uuid.UUID, createdAt time.Time) models.Comment {
	return models.Comment{
		ID:         uuid.New(),
		WorkflowID: workflowID,
		UserID:     "user_1",
		Content:    "some content",
		ParentID:   parentID,
		CreatedAt:  createdAt,
	}
}

func TestThreadCommentsShape(t *testing.T) {
	workflowID := uuid.New()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	p1 := newComment(workflowID, nil, base)
	p2 := newComment(workflowID, nil, base.Add(3*time.Minute))
	r1 := newComment(workflowID, &p1.ID, base.Add(1*time.Minute))
	r2 := newComment(workflowID, &p1.ID, base.Add(2*time.Minute))
	nonexistent := uuid.New()
	r3 := newComment(workflowID, &nonexistent, base.Add(4*time.Minute))

	// Arrival order mirrors the store: newest top-level comment first
	flat := []models.Comment{p2, p1, r1, r2, r3}

	threaded := ThreadComments(flat)

	require.Len(t, threaded, 2, "two top-level entries")
	assert.Equal(t, p2.ID, threaded[0].ID, "parents keep arrival order")
	assert.Equal(t, p1.ID, threaded[1].ID)

	require.Len(t, threaded[1].Replies, 2)
	assert.Equal(t, r1.ID, threaded[1].Replies[0].ID, "replies oldest first")
	assert.Equal(t, r2.ID, threaded[1].Replies[1].ID)

	assert.Empty(t, threaded[0].Replies)

	// The orphan reply appears nowhere in the output
	for _, parent := range threaded {
		assert.NotEqual(t, r3.ID, parent.ID)
		for _, reply := range parent.Replies {
			assert.NotEqual(t, r3.ID, reply.ID)
		}
	}
}

func TestThreadCommentsEmpty(t *testing.T) {
	assert.Empty(t, ThreadComments(nil))
	assert.Empty(t, ThreadComments([]models.Comment{}))
}

func TestThreadCommentsRepliesNeverNil(t *testing.T) {
	workflowID := uuid.New()
	p := newComment(workflowID, nil, time.Now())

	threaded := ThreadComments([]models.Comment{p})

	require.Len(t, threaded, 1)
	assert.NotNil(t, threaded[0].Replies, "presentation layer expects an empty array, not null")
}

func TestAddCommentRejectsEmptyContent(t *testing.T) {
	store := &fakeCommentStore{}
	svc := NewCommentService(store)

	_, err := svc.AddComment(context.Background(), uuid.New(), "user_1", "   \n\t ", nil)

	assert.Error(t, err)
	assert.Empty(t, store.comments, "validation failures happen before any store access")
}

func TestAddCommentTrimsContent(t *testing.T) {
	store := &fakeCommentStore{}
	svc := NewCommentService(store)

	comment, err := svc.AddComment(context.Background(), uuid.New(), "user_1", "  nice workflow  ", nil)

	require.NoError(t, err)
	assert.Equal(t, "nice workflow", comment.Content)
}

func TestAddCommentParentMustExist(t *testing.T) {
	store := &fakeCommentStore{}
	svc := NewCommentService(store)
	missing := uuid.New()

	_, err := svc.AddComment(context.Background(), uuid.New(), "user_1", "a reply", &missing)

	assert.Error(t, err)
}

func TestAddCommentParentMustShareWorkflow(t *testing.T) {
	store := &fakeCommentStore{}
	svc := NewCommentService(store)

	otherWorkflow := uuid.New()
	parent, err := svc.AddComment(context.Background(), otherWorkflow, "user_1", "top level", nil)
	require.NoError(t, err)

	_, err = svc.AddComment(context.Background(), uuid.New(), "user_2", "a reply", &parent.ID)

	assert.Error(t, err)
}

func TestAddCommentReparentsNestedReply(t *testing.T) {
	store := &fakeCommentStore{}
	svc := NewCommentService(store)
	workflowID := uuid.New()

	top, err := svc.AddComment(context.Background(), workflowID, "user_1", "top level", nil)
	require.NoError(t, err)

	reply, err := svc.AddComment(context.Background(), workflowID, "user_2", "first reply", &top.ID)
	require.NoError(t, err)

	// Replying to a reply lands under the top-level ancestor
	nested, err := svc.AddComment(context.Background(), workflowID, "user_3", "reply to reply", &reply.ID)
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	assert.Equal(t, top.ID, *nested.ParentID)
}

func TestThreadedForWorkflowCountMatchesFetchedSet(t *testing.T) {
	store := &fakeCommentStore{}
	svc := NewCommentService(store)
	workflowID := uuid.New()

	top, err := svc.AddComment(context.Background(), workflowID, "user_1", "top level", nil)
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), workflowID, "user_2", "a reply", &top.ID)
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), uuid.New(), "user_3", "other workflow", nil)
	require.NoError(t, err)

	threaded, total, err := svc.ThreadedForWorkflow(context.Background(), workflowID)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, threaded, 1)
	assert.Len(t, threaded[0].Replies, 1)
}
