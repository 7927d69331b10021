package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/chat"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/classifier"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type call struct {
	username, text, lang string
}

type fakeProcessor struct {
	mu    sync.Mutex
	calls []call
}

func (f *fakeProcessor) Process(_ context.Context, username, text, lang string) chat.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{username, text, lang})
	return chat.Result{Reply: "echo: " + text, Stage: classifier.StageGreeting}
}

func startServer(t *testing.T, h *ChatHandler) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.GET("/ws/chat", h.HandleChat)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandleChat_RoundTrip(t *testing.T) {
	p := &fakeProcessor{}
	srv := startServer(t, NewChatHandler(p, nil, 60, nil))
	conn := dial(t, srv, "username=asha&language=es")

	require.NoError(t, conn.WriteJSON(IncomingMessage{Content: "hello"}))

	var reply, done OutgoingMessage
	require.NoError(t, conn.ReadJSON(&reply))
	require.NoError(t, conn.ReadJSON(&done))

	assert.Equal(t, OutgoingMessage{Type: TypeMessage, Content: "echo: hello", Stage: "greeting"}, reply)
	assert.Equal(t, TypeDone, done.Type)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Content: "bonjour", Language: "fr"}))
	require.NoError(t, conn.ReadJSON(&reply))
	require.NoError(t, conn.ReadJSON(&done))

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, []call{
		{"asha", "hello", "es"},
		{"asha", "bonjour", "fr"},
	}, p.calls)
}

func TestHandleChat_AutoLanguage(t *testing.T) {
	p := &fakeProcessor{}
	srv := startServer(t, NewChatHandler(p, nil, 60, nil))
	conn := dial(t, srv, "username=asha&language=auto")

	var msg OutgoingMessage
	for _, in := range []IncomingMessage{
		{Content: "hola, necesito ayuda"},
		{Content: "bonjour", Language: "AUTO"},
		{Content: "hello there"},
	} {
		require.NoError(t, conn.WriteJSON(in))
		require.NoError(t, conn.ReadJSON(&msg))
		require.NoError(t, conn.ReadJSON(&msg))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	require.Len(t, p.calls, 3)
	assert.Equal(t, "es", p.calls[0].lang)
	assert.Equal(t, "fr", p.calls[1].lang)
	assert.Equal(t, "en", p.calls[2].lang)
}

func TestHandleChat_EmptyMessage(t *testing.T) {
	srv := startServer(t, NewChatHandler(&fakeProcessor{}, nil, 60, nil))
	conn := dial(t, srv, "username=asha")

	require.NoError(t, conn.WriteJSON(IncomingMessage{Content: "   "}))

	var msg OutgoingMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, TypeError, msg.Type)
}

func TestHandleChat_RateLimited(t *testing.T) {
	p := &fakeProcessor{}
	srv := startServer(t, NewChatHandler(p, nil, 1, nil))
	conn := dial(t, srv, "username=asha")

	require.NoError(t, conn.WriteJSON(IncomingMessage{Content: "one"}))
	var msg OutgoingMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, TypeDone, msg.Type)

	require.NoError(t, conn.WriteJSON(IncomingMessage{Content: "two"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Content, "Rate limit")
}

func TestHandleChat_RequiresUsername(t *testing.T) {
	srv := startServer(t, NewChatHandler(&fakeProcessor{}, nil, 60, nil))

	resp, err := http.Get(srv.URL + "/ws/chat")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
