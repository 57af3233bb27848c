package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/blog-platform/internal/config"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/models"
)

func setupDatabase(t *testing.T) *db.Database {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
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
	return &db.Database{Gorm: gdb, SQL: sqlDB}
}

func seedUser(t *testing.T, database *db.Database, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, database.Gorm.Create(u).Error)
	return u
}

func seedPost(t *testing.T, database *db.Database, author *models.User, title string, published bool) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:       title,
		Text:        "text",
		IsPublished: published,
		PubDate:     time.Now().Add(-time.Hour),
		AuthorID:    author.ID,
	}
	require.NoError(t, database.Gorm.Create(p).Error)
	return p
}

func TestCreateSetsAuthorAndLogsActivity(t *testing.T) {
	database := setupDatabase(t)
	svc := NewPostService(database, &config.Config{}, nil)
	alice := seedUser(t, database, "alice")

	post, err := svc.Create(context.Background(), alice, PostInput{
		Title:       "hello",
		Text:        "world",
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, post.AuthorID)
	assert.False(t, post.PubDate.IsZero())

	var entry models.ActivityLog
	require.NoError(t, database.Gorm.Where("post_id = ?", post.ID).First(&entry).Error)
	assert.Equal(t, "new_post", entry.Action)
	assert.Equal(t, alice.ID, entry.ActorID)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	database := setupDatabase(t)
	svc := NewPostService(database, &config.Config{}, nil)
	alice := seedUser(t, database, "alice")

	_, err := svc.Create(context.Background(), alice, PostInput{Text: "body"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDetailHidesDraftsFromEveryone(t *testing.T) {
	database := setupDatabase(t)
	svc := NewPostService(database, &config.Config{}, nil)
	alice := seedUser(t, database, "alice")
	draft := seedPost(t, database, alice, "draft", false)

	_, err := svc.Detail(context.Background(), draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Detail(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateByNonAuthor(t *testing.T) {
	t.Run("strict mode rejects", func(t *testing.T) {
		database := setupDatabase(t)
		svc := NewPostService(database, &config.Config{}, nil)
		alice := seedUser(t, database, "alice")
		bob := seedUser(t, database, "bob")
		post := seedPost(t, database, alice, "original", true)

		_, err := svc.Update(context.Background(), bob.ID, post.ID, PostInput{Title: "hijacked", Text: "x", IsPublished: true})
		assert.ErrorIs(t, err, ErrNotAuthor)

		var got models.Post
		require.NoError(t, database.Gorm.First(&got, post.ID).Error)
		assert.Equal(t, "original", got.Title)
	})

	t.Run("legacy bypass lets the write through", func(t *testing.T) {
		database := setupDatabase(t)
		svc := NewPostService(database, &config.Config{LegacyAuthorBypass: true}, nil)
		alice := seedUser(t, database, "alice")
		bob := seedUser(t, database, "bob")
		post := seedPost(t, database, alice, "original", true)

		_, err := svc.Update(context.Background(), bob.ID, post.ID, PostInput{Title: "hijacked", Text: "x", IsPublished: true})
		require.NoError(t, err)

		var got models.Post
		require.NoError(t, database.Gorm.First(&got, post.ID).Error)
		assert.Equal(t, "hijacked", got.Title)
	})
}

func TestDeleteByNonAuthor(t *testing.T) {
	t.Run("strict mode rejects", func(t *testing.T) {
		database := setupDatabase(t)
		svc := NewPostService(database, &config.Config{}, nil)
		alice := seedUser(t, database, "alice")
		bob := seedUser(t, database, "bob")
		post := seedPost(t, database, alice, "keep me", true)

		err := svc.Delete(context.Background(), bob.ID, post.ID)
		assert.ErrorIs(t, err, ErrNotAuthor)

		var count int64
		database.Gorm.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("author deletes own post and its comments", func(t *testing.T) {
		database := setupDatabase(t)
		svc := NewPostService(database, &config.Config{}, nil)
		alice := seedUser(t, database, "alice")
		post := seedPost(t, database, alice, "bye", true)
		require.NoError(t, database.Gorm.Create(&models.Comment{Text: "hi", AuthorID: alice.ID, PostID: post.ID}).Error)

		require.NoError(t, svc.Delete(context.Background(), alice.ID, post.ID))

		var posts, comments int64
		database.Gorm.Model(&models.Post{}).Where("id = ?", post.ID).Count(&posts)
		database.Gorm.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
		assert.Equal(t, int64(0), posts)
		assert.Equal(t, int64(0), comments)
	})
}

func TestCategoryFeedNotFoundForUnpublished(t *testing.T) {
	database := setupDatabase(t)
	svc := NewPostService(database, &config.Config{}, nil)
	require.NoError(t, database.Gorm.Create(&models.Category{Title: "Hidden", Slug: "hidden", IsPublished: false}).Error)

	_, err := svc.CategoryFeed(context.Background(), "hidden", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
