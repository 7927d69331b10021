package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/store"
)

// UserHandler registers users and records their daily mood.
type UserHandler struct {
	store     store.SessionStore
	languages *language.Manager
	logger    *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(st store.SessionStore, languages *language.Manager, logger *zap.Logger) *UserHandler {
	return &UserHandler{store: st, languages: languages, logger: logger}
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Language string `json:"language"`
}

// MoodRequest records today's mood for a user.
type MoodRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Mood     string `json:"mood" binding:"required,max=32"`
}

// UserInfo represents basic user information
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Language string `json:"language"`
}

func userToUserInfo(u *store.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Role: u.Role, Language: u.Language}
}

// Register handles user registration
// POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lang := language.DefaultLanguage
	if req.Language != "" {
		if !h.languages.IsSupported(req.Language) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
			return
		}
		lang = language.Normalize(req.Language)
	}

	user, err := h.store.CreateUser(c.Request.Context(), req.Username, lang)
	if errors.Is(err, store.ErrAlreadyExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already registered"})
		return
	}
	if err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, userToUserInfo(user))
}

// Get returns a user's profile
// GET /api/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, ok := h.lookup(c, c.Param("username"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, userToUserInfo(user))
}

// LogMood stores today's mood, replacing an earlier entry for the day
// POST /api/mood
func (h *UserHandler) LogMood(c *gin.Context) {
	var req MoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := h.lookup(c, req.Username)
	if !ok {
		return
	}

	if err := h.store.SaveMood(c.Request.Context(), user.ID, req.Mood); err != nil {
		h.logger.Error("failed to save mood", zap.Int64("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save mood"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username, "mood": req.Mood})
}

// lookup writes the error response itself when it returns false.
func (h *UserHandler) lookup(c *gin.Context, username string) (*store.User, bool) {
	user, err := h.store.GetUser(c.Request.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to get user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return nil, false
	}
	return user, true
}
