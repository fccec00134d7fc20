package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Pratik-0309/thumbnail-generator/internal/auth"
	"github.com/Pratik-0309/thumbnail-generator/internal/models"
	"github.com/Pratik-0309/thumbnail-generator/internal/storage"
)

func currentUser(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Please provide required fields.")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.WithError(err).Error("hash password")
		fail(c, http.StatusInternalServerError, "server error")
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	}
	if err := s.db.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			fail(c, http.StatusConflict, "User with this email already exist.")
			return
		}
		s.log.WithError(err).Error("create user")
		fail(c, http.StatusInternalServerError, "server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User register Successfully.",
		"user":    user,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Please provide required fields.")
		return
	}

	user, err := s.db.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		s.log.WithError(err).Error("get user")
		fail(c, http.StatusInternalServerError, "server error")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	s.issueTokens(c, user)
}

func (s *Server) handleLogout(c *gin.Context) {
	userID := currentUser(c)
	if err := s.db.SetRefreshToken(c.Request.Context(), userID, ""); err != nil {
		s.log.WithError(err).Error("clear refresh token")
		fail(c, http.StatusInternalServerError, "server error")
		return
	}

	s.clearCookie(c, "accessToken")
	s.clearCookie(c, "refreshToken")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out."})
}

func (s *Server) handleRefreshToken(c *gin.Context) {
	token, err := c.Cookie("refreshToken")
	if err != nil || token == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&body)
		token = body.RefreshToken
	}
	if token == "" {
		fail(c, http.StatusUnauthorized, "No refresh token.")
		return
	}

	userID, err := s.tokens.ParseRefreshToken(token)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Token is not valid.")
		return
	}

	user, err := s.db.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Token is not valid.")
		return
	}
	if user.RefreshToken != token {
		fail(c, http.StatusUnauthorized, "Token is not valid.")
		return
	}

	s.issueTokens(c, user)
}

// issueTokens creates a fresh access/refresh pair, rotating the stored
// refresh token, and returns both as cookies and in the body.
func (s *Server) issueTokens(c *gin.Context, user *models.User) {
	accessToken, err := s.tokens.NewAccessToken(user.ID, user.Email)
	if err != nil {
		s.log.WithError(err).Error("sign access token")
		fail(c, http.StatusInternalServerError, "server error")
		return
	}
	refreshToken, err := s.tokens.NewRefreshToken(user.ID)
	if err != nil {
		s.log.WithError(err).Error("sign refresh token")
		fail(c, http.StatusInternalServerError, "server error")
		return
	}
	if err := s.db.SetRefreshToken(c.Request.Context(), user.ID, refreshToken); err != nil {
		s.log.WithError(err).Error("store refresh token")
		fail(c, http.StatusInternalServerError, "server error")
		return
	}

	s.setCookie(c, "accessToken", accessToken, int(auth.AccessTokenTTL.Seconds()))
	s.setCookie(c, "refreshToken", refreshToken, int(auth.RefreshTokenTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Logged in Successfully.",
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func (s *Server) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}

func (s *Server) clearCookie(c *gin.Context, name string) {
	s.setCookie(c, name, "", -1)
}
