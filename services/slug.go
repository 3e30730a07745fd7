package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SH20RAJ/wrkflow-backend/errs"
)

const (
	minSlugLength = 3
	maxSlugLength = 100

	// fallback tier sizes
	numericSuffixAttempts = 10
	randomNameAttempts    = 10
)

// reservedSlugs are path segments that would shadow application routes and
// are rejected for user-supplied slugs.
var reservedSlugs = map[string]bool{
	"api":    true,
	"admin":  true,
	"www":    true,
	"mail":   true,
	"ftp":    true,
	"new":    true,
	"edit":   true,
	"delete": true,
	"create": true,
	"update": true,
}

var (
	slugStripPattern      = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespacePattern = regexp.MustCompile(`\s+`)
	slugHyphenRunPattern  = regexp.MustCompile(`-+`)
	slugCharsetPattern    = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// SlugStore is the slice of the relational store the slug generator needs.
type SlugStore interface {
	// WorkflowIDBySlug reports the id of the workflow holding slug, if any.
	WorkflowIDBySlug(ctx context.Context, slug string) (uuid.UUID, bool, error)
}

// NameGenerator produces random three-word hyphenated names for the slug
// generator's random fallback tier. It is treated as a black box.
type NameGenerator interface {
	Generate() string
}

// SlugService derives unique, URL-safe, human-readable identifiers for
// workflows.
type SlugService struct {
	store  SlugStore
	names  NameGenerator
	logger zerolog.Logger
	now    func() time.Time
}

func NewSlugService(store SlugStore, names NameGenerator) *SlugService {
	return &SlugService{
		store:  store,
		names:  names,
		logger: log.With().Str("service", "slug").Logger(),
		now:    time.Now,
	}
}

// Slugify derives a base slug candidate from a title: lowercase, strip
// everything outside [a-z0-9 -], collapse whitespace runs and repeated
// hyphens to single hyphens, trim leading/trailing hyphens.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripPattern.ReplaceAllString(s, "")
	s = slugWhitespacePattern.ReplaceAllString(s, "-")
	s = slugHyphenRunPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateUnique returns a unique slug for title, walking the fallback
// tiers in order: base candidate, numeric suffixes, random three-word
// names, and finally an unchecked timestamp suffix. It never fails except
// on store errors. excludeID exempts the workflow being re-slugged from
// the availability check.
//
// Note that fallback-tier candidates deliberately skip ValidateSlug's
// reserved-word check; that check applies only to user-supplied slugs.
func (s *SlugService) GenerateUnique(ctx context.Context, title string, excludeID *uuid.UUID) (string, error) {
	base := Slugify(title)

	available, err := s.IsAvailable(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if available {
		return base, nil
	}

	for i := 1; i <= numericSuffixAttempts; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		available, err := s.IsAvailable(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
	}

	for i := 0; i < randomNameAttempts; i++ {
		candidate := strings.ToLower(s.names.Generate())
		available, err := s.IsAvailable(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
	}

	// Terminal fallback: millisecond timestamps make collisions unlikely
	// enough that no availability check is performed; the unique index on
	// the slug column remains the backstop.
	slug := fmt.Sprintf("%s-%d", base, s.now().UnixMilli())
	s.logger.Warn().Str("title", title).Str("slug", slug).Msg("slug generation exhausted all fallback tiers, using timestamp suffix")
	return slug, nil
}

// IsAvailable reports whether slug can be assigned. Slugs shorter than the
// minimum length are never available. A workflow matching excludeID holding
// the slug does not count as a conflict.
func (s *SlugService) IsAvailable(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	if len(slug) < minSlugLength {
		return false, nil
	}

	id, found, err := s.store.WorkflowIDBySlug(ctx, slug)
	if err != nil {
		return false, errs.NewDatabaseError("check availability of", "slug", err)
	}
	if !found {
		return true, nil
	}
	if excludeID != nil && *excludeID == id {
		return true, nil
	}
	return false, nil
}

// ValidateSlug enforces the format rules for a slug supplied directly
// rather than derived from a title: length in [3,100], charset [a-z0-9-],
// no leading/trailing or consecutive hyphens, not a reserved word.
func ValidateSlug(slug string) error {
	if slug == "" {
		return errs.NewMissingRequiredFieldError("slug")
	}
	if len(slug) < minSlugLength {
		return errs.NewValidationError("slug", fmt.Sprintf("must be at least %d characters", minSlugLength))
	}
	if len(slug) > maxSlugLength {
		return errs.NewValidationError("slug", fmt.Sprintf("must be at most %d characters", maxSlugLength))
	}
	if !slugCharsetPattern.MatchString(slug) {
		return errs.NewValidationError("slug", "may only contain lowercase letters, digits, and hyphens")
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return errs.NewValidationError("slug", "must not start or end with a hyphen")
	}
	if strings.Contains(slug, "--") {
		return errs.NewValidationError("slug", "must not contain consecutive hyphens")
	}
	if reservedSlugs[slug] {
		return errs.NewValidationError("slug", fmt.Sprintf("%q is a reserved word", slug))
	}
	return nil
}
