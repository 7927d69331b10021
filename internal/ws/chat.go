// Package ws serves the chat engine over a WebSocket.
package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/chat"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
)

// Message types sent to the client.
const (
	TypeMessage = "message"
	TypeError   = "error"
	TypeDone    = "done"
)

// Processor answers one message.
type Processor interface {
	Process(ctx context.Context, username, text, targetLang string) chat.Result
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// OutgoingMessage represents a message to the client
type OutgoingMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Stage   string `json:"stage,omitempty"`
}

// ChatHandler handles WebSocket chat connections
type ChatHandler struct {
	engine         Processor
	upgrader       websocket.Upgrader
	messagesPerMin int
	logger         *zap.Logger
}

// NewChatHandler creates a handler. checkOrigin may be nil to accept any
// origin; messagesPerMin bounds each connection's message rate.
func NewChatHandler(engine Processor, checkOrigin func(*http.Request) bool, messagesPerMin int, logger *zap.Logger) *ChatHandler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	if messagesPerMin <= 0 {
		messagesPerMin = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		messagesPerMin: messagesPerMin,
		logger:         logger,
	}
}

// HandleChat upgrades the request and answers messages until the client
// goes away.
// GET /ws/chat?username=...&language=...
func (h *ChatHandler) HandleChat(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username"})
		return
	}
	defaultLang := c.Query("language")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	s := &session{conn: conn}
	go s.keepAlive(ctx)

	h.logger.Info("websocket connected", zap.String("username", username))
	limiter := rate.NewLimiter(rate.Limit(float64(h.messagesPerMin)/60.0), h.messagesPerMin)

	for {
		var msg IncomingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.String("username", username), zap.Error(err))
			}
			break
		}

		if !limiter.Allow() {
			if err := s.send(OutgoingMessage{Type: TypeError, Content: "Rate limit exceeded. Please slow down."}); err != nil {
				break
			}
			continue
		}
		if strings.TrimSpace(msg.Content) == "" {
			if err := s.send(OutgoingMessage{Type: TypeError, Content: "Message is empty"}); err != nil {
				break
			}
			continue
		}

		lang := msg.Language
		if lang == "" {
			lang = defaultLang
		}
		if strings.EqualFold(lang, "auto") {
			lang = language.Detect(msg.Content)
		}
		res := h.engine.Process(ctx, username, msg.Content, lang)

		if err := s.send(OutgoingMessage{Type: TypeMessage, Content: res.Reply, Stage: string(res.Stage)}); err != nil {
			break
		}
		if err := s.send(OutgoingMessage{Type: TypeDone}); err != nil {
			break
		}
	}
	h.logger.Info("websocket disconnected", zap.String("username", username))
}
