package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/pagination"
	"github.com/example/blog-platform/internal/repository"
)

type ProfileService struct {
	users *repository.UserRepository
	posts *repository.PostRepository
}

func NewProfileService(database *db.Database) *ProfileService {
	return &ProfileService{
		users: repository.NewUserRepository(database.Gorm),
		posts: repository.NewPostRepository(database.Gorm),
	}
}

func (s *ProfileService) ByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

type ProfilePage struct {
	Owner *models.User
	Posts []models.Post
	Page  pagination.Page
}

// Posts lists a profile's posts. The owner sees every post including drafts and
// scheduled ones; any other viewer (viewerID 0 for anonymous) gets the
// public-visibility filter.
func (s *ProfileService) Posts(ctx context.Context, owner *models.User, viewerID uint, page int) (*ProfilePage, error) {
	publicOnly := viewerID != owner.ID
	now := time.Now()
	total, err := s.posts.CountByAuthor(ctx, now, owner.ID, publicOnly)
	if err != nil {
		return nil, err
	}
	p := pagination.New(int(total), page)
	posts, err := s.posts.PageByAuthor(ctx, now, owner.ID, publicOnly, p.Offset, p.Size)
	if err != nil {
		return nil, err
	}
	return &ProfilePage{Owner: owner, Posts: posts, Page: p}, nil
}

type ProfileInput struct {
	Email     string
	FirstName string
	LastName  string
}

func (in *ProfileInput) validate() error {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return nil
}

// UpdateSelf edits the authenticated user's own profile. Whatever identifier
// arrived with the request, only the actor is ever mutated.
func (s *ProfileService) UpdateSelf(ctx context.Context, actor *models.User, in ProfileInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	actor.Email = in.Email
	actor.FirstName = in.FirstName
	actor.LastName = in.LastName
	return s.users.Update(ctx, actor)
}
