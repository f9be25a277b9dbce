package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlukasik/auth-service/internal/domain"
)

// Controller exposes the authentication workflows over HTTP.
type Controller struct {
	service *Service
}

// NewController creates the authentication controller.
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// RegisterRoutes registers the authentication endpoints on the router.
func (ac *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/signup", ac.Signup)
	router.POST("/login", ac.Login)
	router.POST("/verify-2fa", ac.Verify2FA)
	router.POST("/logout", ac.Logout)
	router.POST("/verify-token", ac.VerifyToken)
	router.DELETE("/account", ac.DeleteAccount)
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Requires2FA bool   `json:"requires2FA"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verify2FARequest struct {
	Email          string `json:"email"`
	LoginAttemptID string `json:"loginAttemptId"`
	Code           string `json:"2FACode"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

type deleteAccountRequest struct {
	Email string `json:"email"`
}

// Signup handles POST /signup.
func (ac *Controller) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrInvalidCredentials)
		return
	}

	message, err := ac.service.Signup(c.Request.Context(), req.Email, req.Password, req.Requires2FA)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// Login handles POST /login. A 2FA-enabled account gets a 206 with the
// login attempt id and no token; otherwise the session cookie is set.
func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrInvalidCredentials)
		return
	}

	result, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.TwoFARequired {
		c.JSON(http.StatusPartialContent, gin.H{
			"message":        "2FA required",
			"loginAttemptId": result.LoginAttemptID,
		})
		return
	}

	http.SetCookie(c.Writer, result.Cookie)
	c.JSON(http.StatusOK, gin.H{})
}

// Verify2FA handles POST /verify-2fa.
func (ac *Controller) Verify2FA(c *gin.Context) {
	var req verify2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrIncorrectCredentials)
		return
	}

	cookie, err := ac.service.Verify2FA(c.Request.Context(), req.Email, req.LoginAttemptID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.JSON(http.StatusOK, gin.H{})
}

// Logout handles POST /logout. The session cookie is required, its
// token is revoked and the cookie cleared.
func (ac *Controller) Logout(c *gin.Context) {
	token, err := c.Cookie(CookieName)
	if err != nil {
		respondError(c, ErrMissingToken)
		return
	}

	if err := ac.service.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	http.SetCookie(c.Writer, ClearCookie())
	c.JSON(http.StatusOK, gin.H{})
}

// VerifyToken handles POST /verify-token.
func (ac *Controller) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrInvalidToken)
		return
	}

	if err := ac.service.VerifyToken(c.Request.Context(), req.Token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// DeleteAccount handles DELETE /account.
func (ac *Controller) DeleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrInvalidCredentials)
		return
	}

	if err := ac.service.DeleteAccount(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps service errors onto the HTTP error taxonomy.
// Unexpected errors are logged with their full chain and surfaced as a
// generic message only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, ErrIncorrectCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect credentials"})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, ErrMissingToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
	case errors.Is(err, ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	default:
		log.Printf("unexpected error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
	}
}
