package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SH20RAJ/wrkflow-backend/models"
)

// fakeTagStore keeps tags and link rows in memory and counts store accesses.
type fakeTagStore struct {
	tags     map[string]*models.Tag
	links    map[uuid.UUID][]uuid.UUID
	lookups  int
	creates  int
	replaces int
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{
		tags:  make(map[string]*models.Tag),
		links: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *fakeTagStore) TagByName(_ context.Context, name string) (*models.Tag, error) {
	s.lookups++
	return s.tags[name], nil
}

func (s *fakeTagStore) CreateTag(_ context.Context, tag *models.Tag) error {
	s.creates++
	if _, exists := s.tags[tag.Name]; exists {
		return errors.New("duplicate key value violates unique constraint \"idx_tag_name\"")
	}
	s.tags[tag.Name] = tag
	return nil
}

func (s *fakeTagStore) ReplaceWorkflowTags(_ context.Context, workflowID uuid.UUID, tagIDs []uuid.UUID) error {
	s.replaces++
	s.links[workflowID] = append([]uuid.UUID{}, tagIDs...)
	return nil
}

func TestCreateOrGetTagsLazyCreation(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)

	ids, err := svc.CreateOrGetTags(context.Background(), []string{"Automation", "Email"})

	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	assert.Len(t, store.tags, 2)
}

func TestCreateOrGetTagsIdempotent(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)

	first, err := svc.CreateOrGetTags(context.Background(), []string{"Automation", "Automation"})
	require.NoError(t, err)

	second, err := svc.CreateOrGetTags(context.Background(), []string{"Automation", "Automation"})
	require.NoError(t, err)

	// Duplicate input names resolve to the same id repeated, across calls too
	assert.Equal(t, first[0], first[1])
	assert.Equal(t, first[0], second[0])
	assert.Equal(t, second[0], second[1])
	assert.Len(t, store.tags, 1, "exactly one tag row named Automation")
}

func TestCreateOrGetTagsPreservesInputOrder(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)

	// Seed one existing tag so the result mixes reused and created ids
	existing := &models.Tag{ID: uuid.New(), Name: "Email"}
	store.tags["Email"] = existing

	ids, err := svc.CreateOrGetTags(context.Background(), []string{"Zapier", "Email", "Automation"})

	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, store.tags["Zapier"].ID, ids[0])
	assert.Equal(t, existing.ID, ids[1])
	assert.Equal(t, store.tags["Automation"].ID, ids[2])
}

func TestCreateOrGetTagsTrimsNames(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)

	ids, err := svc.CreateOrGetTags(context.Background(), []string{"  Automation  ", "Automation"})

	require.NoError(t, err)
	assert.Equal(t, ids[0], ids[1])
	assert.Len(t, store.tags, 1)
	assert.NotNil(t, store.tags["Automation"])
}

func TestCreateOrGetTagsEmptyInputSkipsStore(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)

	ids, err := svc.CreateOrGetTags(context.Background(), []string{})

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Zero(t, store.lookups)
	assert.Zero(t, store.creates)
}

func TestCreateOrGetTagsRejectsBlankName(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)

	_, err := svc.CreateOrGetTags(context.Background(), []string{"   "})

	assert.Error(t, err)
}

func TestCreateOrGetTagsRecoversFromCreateRace(t *testing.T) {
	// A concurrent request inserts the tag between our lookup and insert:
	// the first lookup misses, the create hits the unique index, and the
	// retry lookup finds the winner.
	winner := &models.Tag{ID: uuid.New(), Name: "Automation"}
	store := &racingTagStore{winner: winner, missFirst: true}
	svc := NewTagService(store)

	ids, err := svc.CreateOrGetTags(context.Background(), []string{"Automation"})

	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, winner.ID, ids[0])
}

// racingTagStore misses the first lookup, fails the create with a
// duplicate-key error, then serves the winner on the retry lookup.
type racingTagStore struct {
	winner    *models.Tag
	missFirst bool
}

func (s *racingTagStore) TagByName(_ context.Context, name string) (*models.Tag, error) {
	if s.missFirst {
		s.missFirst = false
		return nil, nil
	}
	return s.winner, nil
}

func (s *racingTagStore) CreateTag(_ context.Context, tag *models.Tag) error {
	return errors.New("duplicate key value violates unique constraint \"idx_tag_name\"")
}

func (s *racingTagStore) ReplaceWorkflowTags(_ context.Context, workflowID uuid.UUID, tagIDs []uuid.UUID) error {
	return nil
}

func TestAssociateTagsReplacesLinkSet(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)
	workflowID := uuid.New()

	tagA, tagB, tagC := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, svc.AssociateTagsWithWorkflow(context.Background(), workflowID, []uuid.UUID{tagA, tagB}))
	require.NoError(t, svc.AssociateTagsWithWorkflow(context.Background(), workflowID, []uuid.UUID{tagC}))

	assert.Equal(t, []uuid.UUID{tagC}, store.links[workflowID], "prior links fully replaced")
}

func TestAssociateTagsEmptyListClearsLinks(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)
	workflowID := uuid.New()

	require.NoError(t, svc.AssociateTagsWithWorkflow(context.Background(), workflowID, []uuid.UUID{uuid.New()}))
	require.NoError(t, svc.AssociateTagsWithWorkflow(context.Background(), workflowID, []uuid.UUID{}))

	assert.Empty(t, store.links[workflowID], "replace is unconditional: empty set clears links")
	assert.Equal(t, 2, store.replaces)
}
