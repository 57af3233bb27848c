package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/example/blog-platform/internal/models"
)

// commentCountSelect annotates each row with the live number of comments.
const commentCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

// visible scopes a query to publicly visible posts: published, not scheduled in
// the future, and not parked under an unpublished category.
func (r *PostRepository) visible(ctx context.Context, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("LEFT JOIN categories ON categories.id = posts.category_id").
		Where("posts.is_published = ?", true).
		Where("posts.pub_date <= ?", now).
		Where("posts.category_id IS NULL OR categories.is_published = ?", true)
}

func (r *PostRepository) CountVisible(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.visible(ctx, now).Count(&count).Error
	return count, err
}

func (r *PostRepository) VisiblePage(ctx context.Context, now time.Time, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.visible(ctx, now).
		Select(commentCountSelect).
		Preload("Author").Preload("Category").Preload("Location").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// VisibleByID fetches a single post under the public predicate. Authors get the
// same NotFound as everyone else for their own drafts here.
func (r *PostRepository) VisibleByID(ctx context.Context, now time.Time, id uint) (*models.Post, error) {
	var post models.Post
	err := r.visible(ctx, now).
		Preload("Author").Preload("Category").Preload("Location").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) CountByAuthor(ctx context.Context, now time.Time, authorID uint, publicOnly bool) (int64, error) {
	var count int64
	err := r.authorScope(ctx, now, authorID, publicOnly).Count(&count).Error
	return count, err
}

// PageByAuthor lists a profile's posts. Owners see drafts and scheduled posts,
// everyone else gets the public-visibility filter.
func (r *PostRepository) PageByAuthor(ctx context.Context, now time.Time, authorID uint, publicOnly bool, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.authorScope(ctx, now, authorID, publicOnly).
		Select(commentCountSelect).
		Preload("Author").Preload("Category").Preload("Location").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) authorScope(ctx context.Context, now time.Time, authorID uint, publicOnly bool) *gorm.DB {
	if publicOnly {
		return r.visible(ctx, now).Where("posts.author_id = ?", authorID)
	}
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("posts.author_id = ?", authorID)
}

func (r *PostRepository) CountInCategory(ctx context.Context, now time.Time, categoryID uint) (int64, error) {
	var count int64
	err := r.categoryScope(ctx, now, categoryID).Count(&count).Error
	return count, err
}

// PageInCategory lists published posts of an already-resolved published
// category. This path carries no comment-count annotation.
func (r *PostRepository) PageInCategory(ctx context.Context, now time.Time, categoryID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.categoryScope(ctx, now, categoryID).
		Preload("Author").Preload("Location").
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) categoryScope(ctx context.Context, now time.Time, categoryID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("posts.category_id = ?", categoryID).
		Where("posts.is_published = ?", true).
		Where("posts.pub_date <= ?", now)
}

func (r *PostRepository) ByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Create(ctx context.Context, tx *gorm.DB, p *models.Post) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":        p.Title,
		"text":         p.Text,
		"is_published": p.IsPublished,
		"pub_date":     p.PubDate,
		"category_id":  p.CategoryID,
		"location_id":  p.LocationID,
	}).Error
}

func (r *PostRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := tx.WithContext(ctx).Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *PostRepository) LogActivity(ctx context.Context, tx *gorm.DB, action string, postID, actorID uint) error {
	entry := models.ActivityLog{Action: action, PostID: postID, ActorID: actorID}
	return tx.WithContext(ctx).Create(&entry).Error
}
