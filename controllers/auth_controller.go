package controllers

import (
	"net/http"

	"github.com/fredneedsausername/FreDiet/config"
	"github.com/fredneedsausername/FreDiet/middlewares"
	"github.com/fredneedsausername/FreDiet/models"
	"github.com/fredneedsausername/FreDiet/services"
	"github.com/fredneedsausername/FreDiet/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
	Cfg  *config.Config
}

func NewAuthController(auth *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{Auth: auth, Cfg: cfg}
}

type CredentialsInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates the account and logs it in right away, as the original
// app did.
func (h *AuthController) Register(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.startSession(c, user, http.StatusCreated)
}

func (h *AuthController) Login(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	user, err := h.Auth.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.startSession(c, user, http.StatusOK)
}

func (h *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middlewares.SessionCookieName); err == nil && token != "" {
		_ = h.Auth.DeleteSession(c.Request.Context(), token)
	}
	c.SetCookie(middlewares.SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// startSession sets the HTTP-only session cookie and returns a JWT for
// non-browser clients.
func (h *AuthController) startSession(c *gin.Context, user *models.User, status int) {
	token, err := h.Auth.CreateSession(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	jwtToken, err := utils.GenerateJWT(user.ID, []byte(h.Cfg.JWTSecret), h.Cfg.SessionTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middlewares.SessionCookieName, token, int(h.Cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(status, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"token":    jwtToken,
	})
}
