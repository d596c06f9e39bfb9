package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/store"
)

// UserResponse wraps the signed-in user.
type UserResponse struct {
	models.Response
	User *store.User `json:"user,omitempty"`
}

// Login returns a handler for POST /api/v1/auth/login. No credentials are
// checked; the posted profile becomes the current user.
func Login(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		user, err := users.Login(store.User{
			ID:           req.ID,
			Username:     req.Username,
			Email:        req.Email,
			ProfileImage: req.ProfileImage,
		})
		if err != nil {
			respondError(c, models.NewGenieError(models.ErrCodeInternal, "failed to save user", err))
			return
		}

		c.JSON(http.StatusOK, UserResponse{
			Response: models.Response{Success: true},
			User:     &user,
		})
	}
}

// Logout returns a handler for POST /api/v1/auth/logout.
func Logout(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := users.Logout(); err != nil {
			respondError(c, models.NewGenieError(models.ErrCodeInternal, "failed to sign out", err))
			return
		}
		c.JSON(http.StatusOK, models.Response{Success: true})
	}
}

// Me returns a handler for GET /api/v1/auth/me.
func Me(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := users.Current()
		if !ok {
			respondError(c, models.NewGenieError(models.ErrCodeUnauthorized, "not signed in", nil))
			return
		}
		c.JSON(http.StatusOK, UserResponse{
			Response: models.Response{Success: true},
			User:     &user,
		})
	}
}
