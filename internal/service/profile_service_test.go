package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/blog-platform/internal/models"
)

func TestProfilePostsViewerBranching(t *testing.T) {
	database := setupDatabase(t)
	svc := NewProfileService(database)
	alice := seedUser(t, database, "alice")
	bob := seedUser(t, database, "bob")
	seedPost(t, database, alice, "public", true)
	seedPost(t, database, alice, "draft", false)

	ownerPage, err := svc.Posts(context.Background(), alice, alice.ID, 1)
	require.NoError(t, err)
	assert.Len(t, ownerPage.Posts, 2)

	strangerPage, err := svc.Posts(context.Background(), alice, bob.ID, 1)
	require.NoError(t, err)
	require.Len(t, strangerPage.Posts, 1)
	assert.Equal(t, "public", strangerPage.Posts[0].Title)

	anonPage, err := svc.Posts(context.Background(), alice, 0, 1)
	require.NoError(t, err)
	assert.Len(t, anonPage.Posts, 1)
}

func TestByUsername(t *testing.T) {
	database := setupDatabase(t)
	svc := NewProfileService(database)
	seedUser(t, database, "alice")

	user, err := svc.ByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.ByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSelf(t *testing.T) {
	database := setupDatabase(t)
	svc := NewProfileService(database)
	alice := seedUser(t, database, "alice")

	err := svc.UpdateSelf(context.Background(), alice, ProfileInput{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	var got models.User
	require.NoError(t, database.Gorm.First(&got, alice.ID).Error)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "Alice", got.FirstName)
}

func TestUpdateSelfRejectsBadEmail(t *testing.T) {
	database := setupDatabase(t)
	svc := NewProfileService(database)
	alice := seedUser(t, database, "alice")
	require.NoError(t, database.Gorm.Model(alice).Update("email", "alice@example.com").Error)

	err := svc.UpdateSelf(context.Background(), alice, ProfileInput{Email: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.UpdateSelf(context.Background(), alice, ProfileInput{Email: "not-an-address"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var got models.User
	require.NoError(t, database.Gorm.First(&got, alice.ID).Error)
	assert.Equal(t, "alice@example.com", got.Email)
}
