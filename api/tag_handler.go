package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SH20RAJ/wrkflow-backend/database"
	"github.com/SH20RAJ/wrkflow-backend/models"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// TagCollection represents all known tags
type TagCollection struct {
	Tags  []*models.Tag `json:"tags"`
	Total int           `json:"total"`
}

// getAllTags lists every tag ever used, for the browse-by-tag UI
func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}

		h.responder.WriteJSON(w, TagCollection{
			Tags:  tags,
			Total: len(tags),
		})
	}
}
