package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SH20RAJ/wrkflow-backend/errs"
	"github.com/SH20RAJ/wrkflow-backend/models"
	"github.com/SH20RAJ/wrkflow-backend/services"
)

type commentHandler struct {
	responder      Responder
	logger         zerolog.Logger
	commentService *services.CommentService
}

func newCommentHandler(commentService *services.CommentService) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		commentService: commentService,
	}
}

type commentRequest struct {
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}

// ThreadedCommentCollection is the two-level display tree plus the total
// comment count, both derived from the same fetched set
type ThreadedCommentCollection struct {
	Comments []models.ThreadedComment `json:"comments"`
	Total    int                      `json:"total"`
}

// getComments returns a workflow's comments as a two-level display tree
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workflowID, apiErr := parseWorkflowID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		threaded, total, err := h.commentService.ThreadedForWorkflow(r.Context(), workflowID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ThreadedCommentCollection{
			Comments: threaded,
			Total:    total,
		})
	}
}

// addComment posts a comment or reply on a workflow
func (h commentHandler) addComment() http.HandlerFunc {
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

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		comment, err := h.commentService.AddComment(r.Context(), workflowID, userID, req.Content, req.ParentID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, comment)
	}
}
