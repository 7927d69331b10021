package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/chat"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/classifier"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/exercises"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/generative"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/knowledge"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/lexicon"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/metrics"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/store"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	store  *store.Memory
	model  *llm.MockGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := store.NewMemory()
	model := llm.NewMockGenerator("That sounds like a lovely plan.")
	cls := classifier.NewRouter(lexicon.MustDefault(), knowledge.MustDefault(), exercises.MustDefault())
	m := metrics.New()
	adapter := generative.NewAdapter(model, nil, generative.Config{}, nil, m)
	engine := chat.NewEngine(st, cls, adapter, chat.WithMetrics(m))

	return &testServer{
		router: NewRouter(Deps{
			Engine:  engine,
			Store:   st,
			Metrics: m,
		}),
		store: st,
		model: model,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRegisterAndGetUser(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/users", RegisterRequest{Username: "asha", Language: "ES"})
	require.Equal(t, http.StatusCreated, w.Code)
	info := decode[UserInfo](t, w)
	assert.Equal(t, "asha", info.Username)
	assert.Equal(t, "es", info.Language)

	w = s.do(t, http.MethodPost, "/api/users", RegisterRequest{Username: "asha"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/users/asha", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, info, decode[UserInfo](t, w))

	w = s.do(t, http.MethodGet, "/api/users/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/users", RegisterRequest{Username: "asha", Language: "xx"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/users", map[string]string{"language": "en"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogMood(t *testing.T) {
	s := newTestServer(t)
	u, err := s.store.CreateUser(context.Background(), "asha", "en")
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/api/mood", MoodRequest{Username: "asha", Mood: "Anxious"})
	require.Equal(t, http.StatusOK, w.Code)

	mood, err := s.store.GetTodayMood(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anxious", mood)

	w = s.do(t, http.MethodPost, "/api/mood", MoodRequest{Username: "ghost", Mood: "Happy"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChat_RoutesAndPersists(t *testing.T) {
	s := newTestServer(t)
	u, err := s.store.CreateUser(context.Background(), "asha", "en")
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/api/chat", ChatRequest{Username: "asha", Message: "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[ChatResponse](t, w)
	assert.Equal(t, "greeting", res.Stage)
	assert.Equal(t, "Hello! It's great to hear from you. What's new?", res.Reply)
	assert.Zero(t, s.model.CallCount())

	w = s.do(t, http.MethodPost, "/api/chat", ChatRequest{Username: "asha", Message: "I was thinking about dinner plans"})
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[ChatResponse](t, w)
	assert.Equal(t, "generative", res.Stage)
	assert.Equal(t, "That sounds like a lovely plan.", res.Reply)
	assert.Equal(t, 1, s.model.CallCount())

	assert.Equal(t, 2, s.store.ChatCount(u.ID))
}

func TestChat_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing username", map[string]string{"message": "hi"}, http.StatusBadRequest},
		{"blank message", ChatRequest{Username: "asha", Message: "   "}, http.StatusBadRequest},
		{"too long", ChatRequest{Username: "asha", Message: strings.Repeat("a", maxMessageLen+1)}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/chat", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestChat_UnknownUserIsAnsweredButNotStored(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/chat", ChatRequest{Username: "ghost", Message: "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "greeting", decode[ChatResponse](t, w).Stage)

	w = s.do(t, http.MethodGet, "/api/history/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistory(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	u, err := s.store.CreateUser(ctx, "asha", "en")
	require.NoError(t, err)
	for _, m := range []string{"first", "second", "third"} {
		require.NoError(t, s.store.AppendChat(ctx, u.ID, m, "reply to "+m))
	}

	w := s.do(t, http.MethodGet, "/api/history/asha?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		History []HistoryEntry `json:"history"`
		Count   int            `json:"count"`
	}](t, w)
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "second", body.History[0].UserMessage)
	assert.Equal(t, "reply to third", body.History[1].BotResponse)
}

func TestLanguages(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/languages", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"en"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/chat", ChatRequest{Username: "ghost", Message: "hello"})

	w := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wellbeing_route_stage_total")
}
