package api

import (
	"github.com/SH20RAJ/wrkflow-backend/database"
	"github.com/SH20RAJ/wrkflow-backend/namegen"
	"github.com/SH20RAJ/wrkflow-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database) *routeHandlers {
	slugService := services.NewSlugService(database.WorkflowRepo(), namegen.New())
	tagService := services.NewTagService(database.TagRepo())
	commentService := services.NewCommentService(database.CommentRepo())
	ratingService := services.NewRatingService(database.RatingRepo())

	return &routeHandlers{
		workflowHandler: newWorkflowHandler(database.WorkflowRepo(), slugService, tagService),
		commentHandler:  newCommentHandler(commentService),
		ratingHandler:   newRatingHandler(ratingService, database.RatingRepo()),
		tagHandler:      newTagHandler(database.TagRepo()),
	}
}
