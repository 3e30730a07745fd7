package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/SH20RAJ/wrkflow-backend/database"
	"github.com/SH20RAJ/wrkflow-backend/errs"
	"github.com/SH20RAJ/wrkflow-backend/models"
	"github.com/SH20RAJ/wrkflow-backend/services"
)

type workflowHandler struct {
	responder    Responder
	logger       zerolog.Logger
	workflowRepo *database.WorkflowRepo
	slugService  *services.SlugService
	tagService   *services.TagService
}

func newWorkflowHandler(workflowRepo *database.WorkflowRepo, slugService *services.SlugService, tagService *services.TagService) workflowHandler {
	logger := log.With().Str("handlerName", "workflowHandler").Logger()

	return workflowHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		workflowRepo: workflowRepo,
		slugService:  slugService,
		tagService:   tagService,
	}
}

// workflowRequest is the create/update payload. Tags uses a pointer so that
// "field absent" (leave tags untouched) and "field present but empty"
// (clear all tags) stay distinguishable.
type workflowRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Content     datatypes.JSON `json:"content,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	ImageURL    *string        `json:"imageUrl,omitempty"`
	Slug        *string        `json:"slug,omitempty"`
	Tags        *[]string      `json:"tags,omitempty"`
}

// WorkflowCollection represents multiple workflows with a total count
type WorkflowCollection struct {
	Workflows []*models.Workflow `json:"workflows"`
	Total     int                `json:"total"`
}

// getAllWorkflows lists workflows, optionally filtered by a substring match
// on title/description (?q=) and by tag name (?tag=)
func (h workflowHandler) getAllWorkflows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("q")
		tagName := r.URL.Query().Get("tag")

		workflows, err := h.workflowRepo.FindAll(r.Context(), search, tagName)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "workflows", err))
			return
		}

		h.responder.WriteJSON(w, WorkflowCollection{
			Workflows: workflows,
			Total:     len(workflows),
		})
	}
}

// getWorkflow fetches a workflow by its canonical slug and bumps the view counter
func (h workflowHandler) getWorkflow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		workflow, err := h.workflowRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "workflow", err))
			return
		}
		if workflow == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("workflow not found"))
			return
		}

		if err := h.workflowRepo.IncrementViewCount(r.Context(), workflow.ID); err != nil {
			// A missed view count is not worth failing the page for.
			h.logger.Error().Err(err).Str("workflowId", workflow.ID.String()).Msg("Failed to increment view count")
		}

		h.responder.WriteJSON(w, workflow)
	}
}

// createWorkflow publishes a new workflow. The slug is either validated
// from the payload or derived from the title via the generator's fallback
// tiers; the unique index on slug backstops concurrent creations.
func (h workflowHandler) createWorkflow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing user identity"))
			return
		}

		var req workflowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode workflow request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("workflow", err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		var slug string
		if req.Slug != nil {
			// User-supplied slugs go through the full validator; generated
			// ones do not.
			if err := services.ValidateSlug(*req.Slug); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			available, err := h.slugService.IsAvailable(r.Context(), *req.Slug, nil)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if !available {
				h.responder.WriteError(w, errs.NewConflictError("slug is already taken"))
				return
			}
			slug = *req.Slug
		} else {
			slug, err = h.slugService.GenerateUnique(r.Context(), req.Title, nil)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		workflow := models.Workflow{
			ID:          uuid.New(),
			Title:       req.Title,
			Slug:        slug,
			UserID:      userID,
			Description: req.Description,
			Content:     req.Content,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
		}

		if err := h.insertWithSlugRetry(r, &workflow, req.Slug == nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Tags != nil {
			if err := h.replaceTags(r, workflow.ID, *req.Tags); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		created, err := h.workflowRepo.FindByID(r.Context(), workflow.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "workflow", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

// insertWithSlugRetry inserts the workflow and, when a concurrent creation
// stole a generated slug between the availability check and the insert,
// regenerates the slug once and retries. User-supplied slugs are not
// regenerated; the conflict surfaces to the caller instead.
func (h workflowHandler) insertWithSlugRetry(r *http.Request, workflow *models.Workflow, generated bool) error {
	err := h.workflowRepo.Add(r.Context(), workflow)
	if err == nil {
		return nil
	}

	dbErr := wrapDatabaseError("create", "workflow", err)
	if !generated || !errs.IsUniqueConstraintViolationError(dbErr) {
		return dbErr
	}

	h.logger.Warn().Str("slug", workflow.Slug).Msg("Slug taken by concurrent creation, regenerating")

	slug, err := h.slugService.GenerateUnique(r.Context(), workflow.Title, nil)
	if err != nil {
		return err
	}
	workflow.Slug = slug

	if err := h.workflowRepo.Add(r.Context(), workflow); err != nil {
		return wrapDatabaseError("create", "workflow", err)
	}
	return nil
}

func (h workflowHandler) replaceTags(r *http.Request, workflowID uuid.UUID, names []string) error {
	tagIDs, err := h.tagService.CreateOrGetTags(r.Context(), names)
	if err != nil {
		return err
	}
	return h.tagService.AssociateTagsWithWorkflow(r.Context(), workflowID, tagIDs)
}

// updateWorkflow edits an existing workflow. An explicit slug in the
// payload is validated and checked with the self-match exemption; a changed
// title without an explicit slug triggers regeneration. An absent tag field
// leaves prior links untouched, a present-but-empty list clears them.
func (h workflowHandler) updateWorkflow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing user identity"))
			return
		}

		workflowID, apiErr := parseWorkflowID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.workflowRepo.FindByID(r.Context(), workflowID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "workflow", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("workflow not found"))
			return
		}
		if existing.UserID != userID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the owner may edit a workflow"))
			return
		}

		var req workflowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode workflow request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("workflow", err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		switch {
		case req.Slug != nil:
			if err := services.ValidateSlug(*req.Slug); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			available, err := h.slugService.IsAvailable(r.Context(), *req.Slug, &workflowID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if !available {
				h.responder.WriteError(w, errs.NewConflictError("slug is already taken"))
				return
			}
			existing.Slug = *req.Slug
		case req.Title != existing.Title:
			slug, err := h.slugService.GenerateUnique(r.Context(), req.Title, &workflowID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			existing.Slug = slug
		}

		existing.Title = req.Title
		existing.Description = req.Description
		if req.Content != nil {
			existing.Content = req.Content
		}
		existing.Price = req.Price
		existing.ImageURL = req.ImageURL

		if err := h.workflowRepo.Update(r.Context(), existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "workflow", err))
			return
		}

		if req.Tags != nil {
			if err := h.replaceTags(r, workflowID, *req.Tags); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		updated, err := h.workflowRepo.FindByID(r.Context(), workflowID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "workflow", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteWorkflow removes a workflow; only its owner may do so
func (h workflowHandler) deleteWorkflow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing user identity"))
			return
		}

		workflowID, apiErr := parseWorkflowID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.workflowRepo.FindByID(r.Context(), workflowID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "workflow", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("workflow not found"))
			return
		}
		if existing.UserID != userID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the owner may delete a workflow"))
			return
		}

		if err := h.workflowRepo.Delete(r.Context(), workflowID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "workflow", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "workflow deleted successfully",
		})
	}
}

// downloadWorkflow bumps the download counter and returns the workflow's
// JSON payload
func (h workflowHandler) downloadWorkflow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workflowID, apiErr := parseWorkflowID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		workflow, err := h.workflowRepo.FindByID(r.Context(), workflowID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "workflow", err))
			return
		}
		if workflow == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("workflow not found"))
			return
		}

		if err := h.workflowRepo.IncrementDownloadCount(r.Context(), workflowID); err != nil {
			h.logger.Error().Err(err).Str("workflowId", workflowID.String()).Msg("Failed to increment download count")
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"id":      workflow.ID,
			"title":   workflow.Title,
			"content": workflow.Content,
		})
	}
}

// parseWorkflowID extracts and parses the workflowID URL parameter
func parseWorkflowID(r *http.Request) (uuid.UUID, *errs.ApiErr) {
	workflowIDStr := chi.URLParam(r, "workflowID")
	if workflowIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing workflowID")
	}

	workflowID, err := uuid.Parse(workflowIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid workflowID")
	}
	return workflowID, nil
}
