package api

import (
	"context"
	"errors"
	"net/http"

	"container_loading/internal/app/ds"
	"container_loading/internal/app/repository"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Repository interface {
		RegisterUser(ctx context.Context, user ds.User) (ds.User, error)
		LoginUser(ctx context.Context, login, password string) (string, error)
		LogoutUser(ctx context.Context, userID int) error
	}
	// CookieMaxAge is the lifetime of the "jwt" cookie in seconds.
	CookieMaxAge int
}

// @Summary Register a new user
// @Description Register a new viewer with login and password
// @Tags users
// @Accept json
// @Produce json
// @Param user body ds.User true "User info"
// @Success 201 {object} object "data: registered user"
// @Failure 400 {object} object "error: string, description: string"
// @Failure 500 {object} object "error: string, description: string"
// @Router /api/users/register [post]
func (h *UserHandler) RegisterUserAPI(c *gin.Context) {
	var user ds.User
	if err := c.ShouldBindJSON(&user); err != nil {
		badRequest(c, err.Error())
		return
	}
	// admins are created by the migrate command only
	user.Role = ""
	registeredUser, err := h.Repository.RegisterUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"data": registeredUser,
	})
}

// @Summary Login user
// @Description Authenticate user, set session cookie and return JWT
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body object{login=string,password=string} true "Credentials"
// @Success 200 {object} object "message: string, data: {token: string}"
// @Failure 400 {object} object "error: string, description: string"
// @Failure 401 {object} object "error: string, description: string"
// @Router /api/users/login [post]
func (h *UserHandler) LoginUserAPI(c *gin.Context) {
	var credentials struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		badRequest(c, err.Error())
		return
	}
	token, err := h.Repository.LoginUser(c.Request.Context(), credentials.Login, credentials.Password)
	if errors.Is(err, repository.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":       "unauthorized",
			"description": err.Error(),
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie("jwt", token, h.CookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    gin.H{"token": token},
	})
}

// @Summary Logout user
// @Description Clear session cookie and drop the stored session
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object "message: string"
// @Failure 401 {object} object "error: string"
// @Router /api/users/logout [post]
func (h *UserHandler) LogoutUserAPI(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.Repository.LogoutUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}
