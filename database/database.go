package database

import (
	"gorm.io/gorm"
)

type Database struct {
	workflowRepo *WorkflowRepo
	tagRepo      *TagRepo
	commentRepo  *CommentRepo
	ratingRepo   *RatingRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		workflowRepo: NewWorkflowRepo(db),
		tagRepo:      NewTagRepo(db),
		commentRepo:  NewCommentRepo(db),
		ratingRepo:   NewRatingRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) WorkflowRepo() *WorkflowRepo {
	return d.workflowRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) RatingRepo() *RatingRepo {
	return d.ratingRepo
}
