package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SH20RAJ/wrkflow-backend/database"
	"github.com/SH20RAJ/wrkflow-backend/errs"
	"github.com/SH20RAJ/wrkflow-backend/models"
	"github.com/SH20RAJ/wrkflow-backend/services"
)

type ratingHandler struct {
	responder     Responder
	logger        zerolog.Logger
	ratingService *services.RatingService
	ratingRepo    *database.RatingRepo
}

func newRatingHandler(ratingService *services.RatingService, ratingRepo *database.RatingRepo) ratingHandler {
	logger := log.With().Str("handlerName", "ratingHandler").Logger()

	return ratingHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		ratingService: ratingService,
		ratingRepo:    ratingRepo,
	}
}

type ratingRequest struct {
	Rating int     `json:"rating"`
	Review *string `json:"review,omitempty"`
}

// RatingSummary combines the aggregate stats with the individual reviews
type RatingSummary struct {
	Stats   models.RatingStats `json:"stats"`
	Ratings []models.Rating    `json:"ratings"`
}

// submitRating records or replaces the caller's rating for a workflow
func (h ratingHandler) submitRating() http.HandlerFunc {
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

		var req ratingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode rating request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("rating", err))
			return
		}

		rating, err := h.ratingService.SubmitRating(r.Context(), workflowID, userID, req.Rating, req.Review)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, rating)
	}
}

// getRatings returns the mean/count summary and the review list for a workflow
func (h ratingHandler) getRatings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workflowID, apiErr := parseWorkflowID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		stats, err := h.ratingService.Stats(r.Context(), workflowID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ratings, err := h.ratingRepo.ListByWorkflow(r.Context(), workflowID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find ratings for", "workflow", err))
			return
		}

		h.responder.WriteJSON(w, RatingSummary{
			Stats:   *stats,
			Ratings: ratings,
		})
	}
}
