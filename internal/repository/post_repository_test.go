package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/blog-platform/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
		&models.ActivityLog{},
	))
	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func createCategory(t *testing.T, gdb *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	c := &models.Category{Title: slug, Slug: slug, IsPublished: published}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

type postOpts struct {
	published  bool
	pubDate    time.Time
	categoryID *uint
	createdAt  time.Time
}

func createPost(t *testing.T, gdb *gorm.DB, author *models.User, title string, opts postOpts) *models.Post {
	t.Helper()
	if opts.pubDate.IsZero() {
		opts.pubDate = time.Now().Add(-time.Hour)
	}
	p := &models.Post{
		Title:       title,
		Text:        "text of " + title,
		IsPublished: opts.published,
		PubDate:     opts.pubDate,
		AuthorID:    author.ID,
		CategoryID:  opts.categoryID,
	}
	require.NoError(t, gdb.Create(p).Error)
	if !opts.createdAt.IsZero() {
		require.NoError(t, gdb.Model(p).Update("created_at", opts.createdAt).Error)
	}
	return p
}

func createComment(t *testing.T, gdb *gorm.DB, author *models.User, postID uint, text string) *models.Comment {
	t.Helper()
	c := &models.Comment{Text: text, AuthorID: author.ID, PostID: postID}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

func TestVisiblePage(t *testing.T) {
	gdb := setupDB(t)
	repo := NewPostRepository(gdb)
	ctx := context.Background()
	now := time.Now()

	alice := createUser(t, gdb, "alice")
	pubCat := createCategory(t, gdb, "go", true)
	hiddenCat := createCategory(t, gdb, "drafts", false)

	visible := createPost(t, gdb, alice, "visible", postOpts{published: true, categoryID: &pubCat.ID})
	uncategorized := createPost(t, gdb, alice, "no category", postOpts{published: true})
	createPost(t, gdb, alice, "draft", postOpts{published: false})
	createPost(t, gdb, alice, "scheduled", postOpts{published: true, pubDate: now.Add(time.Hour)})
	createPost(t, gdb, alice, "hidden category", postOpts{published: true, categoryID: &hiddenCat.ID})

	total, err := repo.CountVisible(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	posts, err := repo.VisiblePage(ctx, now, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	titles := []string{posts[0].Title, posts[1].Title}
	assert.Contains(t, titles, visible.Title)
	assert.Contains(t, titles, uncategorized.Title)
}

func TestVisiblePageOrderAndAnnotation(t *testing.T) {
	gdb := setupDB(t)
	repo := NewPostRepository(gdb)
	ctx := context.Background()
	now := time.Now()

	alice := createUser(t, gdb, "alice")
	bob := createUser(t, gdb, "bob")

	older := createPost(t, gdb, alice, "older", postOpts{published: true, createdAt: now.Add(-2 * time.Hour)})
	newer := createPost(t, gdb, alice, "newer", postOpts{published: true, createdAt: now.Add(-time.Hour)})
	createComment(t, gdb, bob, older.ID, "first")
	createComment(t, gdb, bob, older.ID, "second")

	posts, err := repo.VisiblePage(ctx, now, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, newer.Title, posts[0].Title)
	assert.Equal(t, older.Title, posts[1].Title)
	assert.Equal(t, int64(0), posts[0].CommentCount)
	assert.Equal(t, int64(2), posts[1].CommentCount)
	assert.Equal(t, "alice", posts[0].Author.Username)
}

func TestVisibleByID(t *testing.T) {
	gdb := setupDB(t)
	repo := NewPostRepository(gdb)
	ctx := context.Background()
	now := time.Now()

	alice := createUser(t, gdb, "alice")
	visible := createPost(t, gdb, alice, "visible", postOpts{published: true})
	draft := createPost(t, gdb, alice, "draft", postOpts{published: false})

	got, err := repo.VisibleByID(ctx, now, visible.ID)
	require.NoError(t, err)
	assert.Equal(t, visible.ID, got.ID)

	_, err = repo.VisibleByID(ctx, now, draft.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPageByAuthor(t *testing.T) {
	gdb := setupDB(t)
	repo := NewPostRepository(gdb)
	ctx := context.Background()
	now := time.Now()

	alice := createUser(t, gdb, "alice")
	createPost(t, gdb, alice, "public", postOpts{published: true})
	createPost(t, gdb, alice, "draft", postOpts{published: false})

	ownerView, err := repo.PageByAuthor(ctx, now, alice.ID, false, 0, 10)
	require.NoError(t, err)
	assert.Len(t, ownerView, 2)

	strangerView, err := repo.PageByAuthor(ctx, now, alice.ID, true, 0, 10)
	require.NoError(t, err)
	require.Len(t, strangerView, 1)
	assert.Equal(t, "public", strangerView[0].Title)
}

func TestPageInCategoryHasNoCommentCount(t *testing.T) {
	gdb := setupDB(t)
	repo := NewPostRepository(gdb)
	ctx := context.Background()
	now := time.Now()

	alice := createUser(t, gdb, "alice")
	cat := createCategory(t, gdb, "go", true)
	post := createPost(t, gdb, alice, "in category", postOpts{published: true, categoryID: &cat.ID})
	createComment(t, gdb, alice, post.ID, "hi")

	posts, err := repo.PageInCategory(ctx, now, cat.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	// this listing deliberately skips the annotation
	assert.Equal(t, int64(0), posts[0].CommentCount)
}

func TestDeletingCategoryKeepsPosts(t *testing.T) {
	gdb := setupDB(t)
	ctx := context.Background()

	alice := createUser(t, gdb, "alice")
	cat := createCategory(t, gdb, "go", true)
	post := createPost(t, gdb, alice, "kept", postOpts{published: true, categoryID: &cat.ID})

	require.NoError(t, gdb.Delete(&models.Category{}, cat.ID).Error)

	got, err := NewPostRepository(gdb).ByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestPublishedCategoryBySlug(t *testing.T) {
	gdb := setupDB(t)
	repo := NewCategoryRepository(gdb)
	ctx := context.Background()

	createCategory(t, gdb, "go", true)
	createCategory(t, gdb, "hidden", false)

	cat, err := repo.PublishedBySlug(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "go", cat.Slug)

	_, err = repo.PublishedBySlug(ctx, "hidden")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.PublishedBySlug(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentsForPostOrdering(t *testing.T) {
	gdb := setupDB(t)
	repo := NewCommentRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, gdb, "alice")
	post := createPost(t, gdb, alice, "post", postOpts{published: true})
	first := createComment(t, gdb, alice, post.ID, "first")
	second := createComment(t, gdb, alice, post.ID, "second")

	comments, err := repo.ForPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
	assert.Equal(t, "alice", comments[0].Author.Username)
}

func TestUnpublishedFlagSurvivesCreate(t *testing.T) {
	gdb := setupDB(t)
	alice := createUser(t, gdb, "alice")

	draft := createPost(t, gdb, alice, "draft", postOpts{published: false})
	hidden := createCategory(t, gdb, "hidden", false)

	var gotPost models.Post
	require.NoError(t, gdb.First(&gotPost, draft.ID).Error)
	assert.False(t, gotPost.IsPublished)

	var gotCat models.Category
	require.NoError(t, gdb.First(&gotCat, hidden.ID).Error)
	assert.False(t, gotCat.IsPublished)

	loc := &models.Location{Name: "nowhere", IsPublished: false}
	require.NoError(t, gdb.Create(loc).Error)
	var gotLoc models.Location
	require.NoError(t, gdb.First(&gotLoc, loc.ID).Error)
	assert.False(t, gotLoc.IsPublished)
}
