package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/chat"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/store"
)

const (
	defaultHistoryPage = 20
	maxHistoryPage     = 200
	maxMessageLen      = 4000
)

// ChatHandler answers chat messages over plain HTTP.
type ChatHandler struct {
	engine *chat.Engine
	store  store.SessionStore
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(engine *chat.Engine, st store.SessionStore, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{engine: engine, store: st, logger: logger}
}

// ChatRequest is one user message. Language "auto" guesses the reply
// language from the message itself.
type ChatRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
}

// ChatResponse carries the reply and the stage that produced it.
type ChatResponse struct {
	Reply string `json:"reply"`
	Stage string `json:"stage"`
}

// HistoryEntry is one stored exchange.
type HistoryEntry struct {
	UserMessage string `json:"user_message"`
	BotResponse string `json:"bot_response"`
	Timestamp   int64  `json:"timestamp"`
}

// Chat answers a message
// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is empty"})
		return
	}
	if len(req.Message) > maxMessageLen {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Message is too long"})
		return
	}

	lang := req.Language
	if strings.EqualFold(lang, "auto") {
		lang = language.Detect(req.Message)
	}

	res := h.engine.Process(c.Request.Context(), req.Username, req.Message, lang)
	c.JSON(http.StatusOK, ChatResponse{Reply: res.Reply, Stage: string(res.Stage)})
}

// History returns the most recent exchanges, oldest first
// GET /api/history/:username?limit=20
func (h *ChatHandler) History(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryPage)))
	if err != nil || limit <= 0 || limit > maxHistoryPage {
		limit = defaultHistoryPage
	}

	ctx := c.Request.Context()
	user, err := h.store.GetUser(ctx, c.Param("username"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to get user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	entries, err := h.store.RecentHistory(ctx, user.ID, limit)
	if err != nil {
		h.logger.Error("failed to get chat history", zap.Int64("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{
			UserMessage: e.UserMessage,
			BotResponse: e.BotResponse,
			Timestamp:   e.Timestamp.Unix(),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"history": out,
		"count":   len(out),
	})
}
