package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public browse surface and the authenticated
// publish/interact surface
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/workflows", handlers.workflowHandler.getAllWorkflows())
		r.Get("/workflow/{slug}", handlers.workflowHandler.getWorkflow())
		r.Get("/tags", handlers.tagHandler.getAllTags())
		r.Get("/workflows/{workflowID}/comments", handlers.commentHandler.getComments())
		r.Get("/workflows/{workflowID}/rating", handlers.ratingHandler.getRatings())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/workflow", handlers.workflowHandler.createWorkflow())
		r.Put("/workflows/{workflowID}", handlers.workflowHandler.updateWorkflow())
		r.Delete("/workflows/{workflowID}", handlers.workflowHandler.deleteWorkflow())
		r.Post("/workflows/{workflowID}/download", handlers.workflowHandler.downloadWorkflow())

		r.Post("/workflows/{workflowID}/comments", handlers.commentHandler.addComment())
		r.Post("/workflows/{workflowID}/rating", handlers.ratingHandler.submitRating())
	})
}
