package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/repository"
)

type CommentService struct {
	comments *repository.CommentRepository
	posts    *repository.PostRepository
}

func NewCommentService(database *db.Database) *CommentService {
	return &CommentService{
		comments: repository.NewCommentRepository(database.Gorm),
		posts:    repository.NewPostRepository(database.Gorm),
	}
}

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: comment text is required", ErrInvalidInput)
	}
	return nil
}

// Add attaches a comment to a post. The post only has to exist, visibility is
// not checked.
func (s *CommentService) Add(ctx context.Context, actorID, postID uint, text string) error {
	if _, err := s.posts.ByID(ctx, postID); err != nil {
		return mapNotFound(err)
	}
	if err := validateCommentText(text); err != nil {
		return err
	}
	return s.comments.Create(ctx, &models.Comment{
		Text:     text,
		AuthorID: actorID,
		PostID:   postID,
	})
}

func (s *CommentService) ByID(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.comments.ByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return comment, nil
}

// Edit replaces a comment's text. Unlike post mutations the authorship check
// here always short-circuits, there is no legacy bypass.
func (s *CommentService) Edit(ctx context.Context, actorID, id uint, text string) error {
	comment, err := s.comments.ByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if comment.AuthorID != actorID {
		return ErrNotAuthor
	}
	if err := validateCommentText(text); err != nil {
		return err
	}
	comment.Text = text
	return s.comments.Update(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, actorID, id uint) error {
	comment, err := s.comments.ByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if comment.AuthorID != actorID {
		return ErrNotAuthor
	}
	return s.comments.Delete(ctx, comment.ID)
}
