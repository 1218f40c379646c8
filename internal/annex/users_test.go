package annex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmaren/bookannex/internal/auth"
	"github.com/pmaren/bookannex/internal/entities"
)

func TestSeedAdmin(t *testing.T) {
	store := setupTestStore(t)

	admin, err := store.User(entities.AdminUserID)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin", admin.Username)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, auth.CheckPassword("admin", admin.Password))
}

func TestAddUser(t *testing.T) {
	store := setupTestStore(t)

	user, err := store.AddUser("bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, entities.RoleUser, user.Role)
	assert.NotEqual(t, "pw", user.Password)
	assert.NoError(t, auth.CheckPassword("pw", user.Password))
}

func TestAddUser_EmptyFields(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.AddUser("", "x")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	_, err = store.AddUser("alice", "")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	// Nothing was stored: only the seeded admin exists.
	users, err := store.Users()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAddUser_Duplicate(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.AddUser("bob", "pw")
	require.NoError(t, err)

	_, err = store.AddUser("bob", "other")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestDeleteUser(t *testing.T) {
	store := setupTestStore(t)

	user, err := store.AddUser("temp", "pw")
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser(user.ID))

	gone, err := store.User(user.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, store.DeleteUser(user.ID), ErrUserNotFound)
}

func TestDeleteUser_AdminIsProtected(t *testing.T) {
	store := setupTestStore(t)

	// The admin account can never be deleted, regardless of state.
	assert.ErrorIs(t, store.DeleteUser(entities.AdminUserID), ErrAdminUser)

	admin, err := store.User(entities.AdminUserID)
	require.NoError(t, err)
	assert.NotNil(t, admin)
}

func TestChangePassword(t *testing.T) {
	store := setupTestStore(t)

	user, err := store.AddUser("bob", "old")
	require.NoError(t, err)

	require.NoError(t, store.ChangePassword(user.ID, "new"))

	updated, err := store.User(user.ID)
	require.NoError(t, err)
	assert.NoError(t, auth.CheckPassword("new", updated.Password))
	assert.Error(t, auth.CheckPassword("old", updated.Password))
}

func TestChangePassword_Failures(t *testing.T) {
	store := setupTestStore(t)

	user, err := store.AddUser("bob", "pw")
	require.NoError(t, err)

	assert.ErrorIs(t, store.ChangePassword(user.ID, ""), ErrEmptyCredentials)
	assert.ErrorIs(t, store.ChangePassword(9999, "pw"), ErrUserNotFound)
}

func TestChangeProfile(t *testing.T) {
	store := setupTestStore(t)

	user, err := store.AddUser("bob", "pw")
	require.NoError(t, err)

	require.NoError(t, store.ChangeProfile(user.ID, entities.RoleAdmin, "en,de", "Fantasy"))

	updated, err := store.User(user.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
	assert.Equal(t, "en,de", updated.Languages)
	assert.Equal(t, "Fantasy", updated.Tags)

	assert.ErrorIs(t, store.ChangeProfile(9999, 0, "", ""), ErrUserNotFound)
}

func TestUserByName(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.AddUser("bob", "pw")
	require.NoError(t, err)

	user, err := store.UserByName("bob")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "bob", user.Username)

	missing, err := store.UserByName("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
