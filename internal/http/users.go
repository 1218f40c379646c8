package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmaren/bookannex/internal/annex"
)

// UsersController manages the user accounts stored in the annex.
type UsersController struct {
	store *annex.Store
}

func NewUsersController(store *annex.Store) *UsersController {
	return &UsersController{store: store}
}

// GetUsers returns all users
// GET /admin/users
func (uc *UsersController) GetUsers(c *gin.Context) {
	users, err := uc.store.Users()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one user by ID
// GET /admin/users/:id
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := uc.store.User(uint(id))
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	if user == nil {
		respondNotFound(c, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser adds a new user account
// POST /admin/users
func (uc *UsersController) CreateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username and password are required")
		return
	}

	user, err := uc.store.AddUser(req.Username, req.Password)
	switch {
	case errors.Is(err, annex.ErrEmptyCredentials):
		respondBadRequest(c, "username and password must not be empty")
	case errors.Is(err, annex.ErrUserExists):
		respondConflict(c, "username already taken")
	case err != nil:
		respondInternalError(c, err, "create user")
	default:
		respondCreated(c, user)
	}
}

// DeleteUser removes a user account. The admin account cannot be deleted.
// DELETE /admin/users/:id
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := uc.store.DeleteUser(uint(id))
	switch {
	case errors.Is(err, annex.ErrAdminUser):
		respondBadRequest(c, "the admin user cannot be deleted")
	case errors.Is(err, annex.ErrUserNotFound):
		respondNotFound(c, "user")
	case err != nil:
		respondInternalError(c, err, "delete user")
	default:
		respondSuccess(c, "user deleted")
	}
}

// ChangePassword sets a new password for a user
// PUT /admin/users/:id/password
func (uc *UsersController) ChangePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "password is required")
		return
	}

	err := uc.store.ChangePassword(uint(id), req.Password)
	switch {
	case errors.Is(err, annex.ErrEmptyCredentials):
		respondBadRequest(c, "password must not be empty")
	case errors.Is(err, annex.ErrUserNotFound):
		respondNotFound(c, "user")
	case err != nil:
		respondInternalError(c, err, "change password")
	default:
		respondSuccess(c, "password changed")
	}
}

// ChangeProfile updates a user's role and the language/tag restrictions
// applied to their catalog views
// PUT /admin/users/:id/profile
func (uc *UsersController) ChangeProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Role      int    `json:"role"`
		Languages string `json:"languages"`
		Tags      string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid profile payload")
		return
	}

	err := uc.store.ChangeProfile(uint(id), req.Role, req.Languages, req.Tags)
	switch {
	case errors.Is(err, annex.ErrUserNotFound):
		respondNotFound(c, "user")
	case err != nil:
		respondInternalError(c, err, "change profile")
	default:
		respondSuccess(c, "profile updated")
	}
}
