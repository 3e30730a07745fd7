package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSlugStore is an in-memory stand-in for the workflow table's slug column.
type fakeSlugStore struct {
	slugs map[string]uuid.UUID
	err   error
}

func newFakeSlugStore() *fakeSlugStore {
	return &fakeSlugStore{slugs: make(map[string]uuid.UUID)}
}

func (s *fakeSlugStore) WorkflowIDBySlug(_ context.Context, slug string) (uuid.UUID, bool, error) {
	if s.err != nil {
		return uuid.Nil, false, s.err
	}
	id, ok := s.slugs[slug]
	return id, ok, nil
}

func (s *fakeSlugStore) insert(slug string) uuid.UUID {
	id := uuid.New()
	s.slugs[slug] = id
	return id
}

// fakeNameGenerator returns a fixed sequence of names, cycling at the end.
type fakeNameGenerator struct {
	names []string
	next  int
}

func (g *fakeNameGenerator) Generate() string {
	name := g.names[g.next%len(g.names)]
	g.next++
	return name
}

func newSlugServiceForTest(store SlugStore, names NameGenerator) *SlugService {
	svc := NewSlugService(store, names)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My Awesome Test Workflow", "my-awesome-test-workflow"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"Already-Hyphenated--Title", "already-hyphenated-title"},
		{"Ünïcödé & Émojis 🚀", "ncd-mojis"},
		{"---", ""},
		{"CAPS AND 123", "caps-and-123"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestGenerateUniqueReturnsBaseCandidate(t *testing.T) {
	store := newFakeSlugStore()
	svc := newSlugServiceForTest(store, &fakeNameGenerator{names: []string{"brave-red-fox"}})

	slug, err := svc.GenerateUnique(context.Background(), "My Awesome Test Workflow", nil)

	require.NoError(t, err)
	assert.Equal(t, "my-awesome-test-workflow", slug)
}

func TestGenerateUniqueNumericFallback(t *testing.T) {
	store := newFakeSlugStore()
	store.insert("my-title")
	store.insert("my-title-1")
	store.insert("my-title-2")
	svc := newSlugServiceForTest(store, &fakeNameGenerator{names: []string{"brave-red-fox"}})

	slug, err := svc.GenerateUnique(context.Background(), "My Title", nil)

	require.NoError(t, err)
	assert.Equal(t, "my-title-3", slug)
}

func TestGenerateUniqueRandomFallback(t *testing.T) {
	store := newFakeSlugStore()
	store.insert("my-title")
	for i := 1; i <= 10; i++ {
		store.insert(fmt.Sprintf("my-title-%d", i))
	}
	svc := newSlugServiceForTest(store, &fakeNameGenerator{names: []string{"brave-red-fox"}})

	slug, err := svc.GenerateUnique(context.Background(), "My Title", nil)

	require.NoError(t, err)
	assert.NotRegexp(t, regexp.MustCompile(`^my-title(-\d+)?$`), slug)
	assert.Equal(t, "brave-red-fox", slug)
}

func TestGenerateUniqueTerminalFallback(t *testing.T) {
	store := newFakeSlugStore()
	store.insert("my-title")
	for i := 1; i <= 10; i++ {
		store.insert(fmt.Sprintf("my-title-%d", i))
	}
	// All random candidates taken too
	names := &fakeNameGenerator{names: []string{"brave-red-fox", "calm-blue-owl"}}
	store.insert("brave-red-fox")
	store.insert("calm-blue-owl")
	svc := newSlugServiceForTest(store, names)

	slug, err := svc.GenerateUnique(context.Background(), "My Title", nil)

	require.NoError(t, err)
	assert.Equal(t, "my-title-1700000000000", slug)
}

func TestGenerateUniqueSequentialCallsDistinct(t *testing.T) {
	store := newFakeSlugStore()
	svc := newSlugServiceForTest(store, &fakeNameGenerator{names: []string{"brave-red-fox"}})
	slugPattern := regexp.MustCompile(`^[a-z0-9-]{3,}$`)

	seen := make(map[string]bool)
	for i := 0; i < 15; i++ {
		slug, err := svc.GenerateUnique(context.Background(), "My Title", nil)
		require.NoError(t, err)
		assert.False(t, seen[slug], "slug %q returned twice", slug)
		assert.Regexp(t, slugPattern, slug)
		seen[slug] = true
		store.insert(slug)
	}
}

func TestIsAvailable(t *testing.T) {
	store := newFakeSlugStore()
	takenID := store.insert("taken-slug")
	svc := newSlugServiceForTest(store, &fakeNameGenerator{names: []string{"brave-red-fox"}})

	t.Run("free slug is available", func(t *testing.T) {
		available, err := svc.IsAvailable(context.Background(), "free-slug", nil)
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("taken slug is unavailable", func(t *testing.T) {
		available, err := svc.IsAvailable(context.Background(), "taken-slug", nil)
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("too-short slug is never available", func(t *testing.T) {
		available, err := svc.IsAvailable(context.Background(), "ab", nil)
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("empty slug is never available", func(t *testing.T) {
		available, err := svc.IsAvailable(context.Background(), "", nil)
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("self-match exemption for re-slugging", func(t *testing.T) {
		available, err := svc.IsAvailable(context.Background(), "taken-slug", &takenID)
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("exemption does not cover other workflows", func(t *testing.T) {
		otherID := uuid.New()
		available, err := svc.IsAvailable(context.Background(), "taken-slug", &otherID)
		require.NoError(t, err)
		assert.False(t, available)
	})
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"valid slug", "my-workflow", false},
		{"valid minimal length", "abc", false},
		{"valid with digits", "workflow-v2", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("x", 101), true},
		{"uppercase", "My-Workflow", true},
		{"spaces", "my workflow", true},
		{"leading hyphen", "-workflow", true},
		{"trailing hyphen", "workflow-", true},
		{"consecutive hyphens", "my--workflow", true},
		{"reserved word api", "api", true},
		{"reserved word admin", "admin", true},
		{"reserved word new", "new", true},
		{"reserved word as prefix is fine", "api-tools", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
