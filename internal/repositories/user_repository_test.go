package repositories

import (
	"testing"

	"psyhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, NewUserRepository().Create(db, user))
	return user
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository()
	seedUser(t, db, "user@example.com", models.UserRoleClient)

	err := repo.Create(db, &models.User{
		Email:        "user@example.com",
		PasswordHash: "hash",
		Name:         "Another",
		Role:         models.UserRoleClient,
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserFindByEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository()
	created := seedUser(t, db, "user@example.com", models.UserRolePsychologist)

	found, err := repo.FindByEmail(db, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByEmail(db, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdateActive(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository()
	user := seedUser(t, db, "user@example.com", models.UserRoleClient)

	require.NoError(t, repo.UpdateActive(db, user.ID, false))

	stored, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, repo.UpdateActive(db, "missing", true), ErrUserNotFound)
}

func TestUserDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository()
	user := seedUser(t, db, "user@example.com", models.UserRoleClient)

	require.NoError(t, repo.Delete(db, user.ID))
	_, err := repo.FindByID(db, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(db, user.ID), ErrUserNotFound)
}

func TestUserFindWithFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository()

	seedUser(t, db, "psy@example.com", models.UserRolePsychologist)
	seedUser(t, db, "client@example.com", models.UserRoleClient)

	users, total, err := repo.FindWithFilter(db, UserFilter{Role: models.UserRolePsychologist})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "psy@example.com", users[0].Email)

	users, total, err = repo.FindWithFilter(db, UserFilter{Search: "client"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "client@example.com", users[0].Email)
}
