package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/classifier"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/crisis"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/exercises"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/fallback"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/generative"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/knowledge"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/lexicon"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/store"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRouter() *classifier.Router {
	return classifier.NewRouter(lexicon.MustDefault(), knowledge.MustDefault(), exercises.MustDefault())
}

// recordingResponder captures generative requests.
type recordingResponder struct {
	mu       sync.Mutex
	requests []generative.Request
	reply    string
}

func (r *recordingResponder) Respond(_ context.Context, req generative.Request) generative.Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return generative.Reply{Text: r.reply, Status: llm.StatusOK}
}

// failingStore fails every lookup with a non-NotFound error.
type failingStore struct {
	store.SessionStore
	appends int
}

func (f *failingStore) GetUser(context.Context, string) (*store.User, error) {
	return nil, errors.New("connection refused")
}

func (f *failingStore) AppendChat(context.Context, int64, string, string) error {
	f.appends++
	return nil
}

func seedUser(t *testing.T, st *store.Memory, username, lang string) *store.User {
	t.Helper()
	u, err := st.CreateUser(context.Background(), username, lang)
	require.NoError(t, err)
	return u
}

func TestEngine_GreetingTwicePersistsTwice(t *testing.T) {
	st := store.NewMemory()
	u := seedUser(t, st, "asha", "en")
	e := NewEngine(st, newRouter(), &recordingResponder{})
	ctx := context.Background()

	first := e.Process(ctx, "asha", "hello", "")
	second := e.Process(ctx, "asha", "hello", "")

	assert.Equal(t, classifier.StageGreeting, first.Stage)
	assert.Equal(t, "Hello! It's great to hear from you. What's new?", first.Reply)
	assert.Equal(t, first.Reply, second.Reply)
	assert.True(t, first.Persisted)
	assert.True(t, second.Persisted)

	history, err := st.RecentHistory(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, h := range history {
		assert.Equal(t, "hello", h.UserMessage)
		assert.Equal(t, first.Reply, h.BotResponse)
	}
}

func TestEngine_UnknownUser(t *testing.T) {
	st := store.NewMemory()
	resp := &recordingResponder{reply: "model reply"}
	e := NewEngine(st, newRouter(), resp)
	ctx := context.Background()

	res := e.Process(ctx, "ghost", "I'm so stressed I want to kill myself", "")
	assert.Equal(t, classifier.StageCrisis, res.Stage)
	assert.Equal(t, crisis.Suicide, res.Decision.Crisis)
	assert.Contains(t, res.Reply, crisis.EmergencyBlockHeader)
	assert.False(t, res.Persisted)

	res = e.Process(ctx, "ghost", "I was thinking about dinner plans", "")
	assert.Equal(t, classifier.StageGenerative, res.Stage)
	assert.Equal(t, "model reply", res.Reply)
	require.Len(t, resp.requests, 1)
	assert.Equal(t, "", resp.requests[0].Mood)
	assert.Equal(t, "en", resp.requests[0].TargetLang)
	assert.Empty(t, resp.requests[0].History)
}

func TestEngine_StoreErrorDegradesToUnknownUser(t *testing.T) {
	st := &failingStore{}
	e := NewEngine(st, newRouter(), &recordingResponder{})

	reply := e.GenerateResponse(context.Background(), "asha", "hi", "")

	assert.Equal(t, "Hey! How are you feeling today?", reply)
	assert.Zero(t, st.appends)
}

func TestEngine_GenerativeSeesSession(t *testing.T) {
	st := store.NewMemory()
	u := seedUser(t, st, "asha", "es")
	ctx := context.Background()
	require.NoError(t, st.SaveMood(ctx, u.ID, "Stressed"))
	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, st.AppendChat(ctx, u.ID, msg, "reply to "+msg))
	}

	resp := &recordingResponder{reply: "Hola"}
	e := NewEngine(st, newRouter(), resp, WithHistoryLimit(2))

	res := e.Process(ctx, "asha", "I was thinking about dinner plans", "")
	require.Len(t, resp.requests, 1)
	req := resp.requests[0]
	assert.Equal(t, "asha", req.Username)
	assert.Equal(t, "Stressed", req.Mood)
	assert.Equal(t, "es", req.TargetLang)
	assert.Equal(t, []classifier.Exchange{
		{UserMessage: "second", BotResponse: "reply to second"},
		{UserMessage: "third", BotResponse: "reply to third"},
	}, req.History)
	assert.Equal(t, "Hola", res.Reply)
	assert.True(t, res.Persisted)
	assert.Equal(t, 4, st.ChatCount(u.ID))

	e.Process(ctx, "asha", "I was thinking about dinner plans", "fr")
	assert.Equal(t, "fr", resp.requests[1].TargetLang)
}

func TestEngine_ModelFailureFallsBack(t *testing.T) {
	st := store.NewMemory()
	u := seedUser(t, st, "sam", "en")
	gen := llm.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("upstream unavailable")
	})
	adapter := generative.NewAdapter(gen, nil, generative.Config{}, nil, nil)
	e := NewEngine(st, newRouter(), adapter)

	res := e.Process(context.Background(), "sam", "tell me something nice about the weekend", "")

	require.NotNil(t, res.Generative)
	assert.True(t, res.Generative.FromFallback())
	assert.Equal(t, fallback.Generate("tell me something nice about the weekend", ""), res.Reply)
	assert.NotEmpty(t, res.Reply)
	assert.Equal(t, 1, st.ChatCount(u.ID))
}

func TestEngine_PreventionVersusBareMention(t *testing.T) {
	e := NewEngine(store.NewMemory(), newRouter(), &recordingResponder{})
	ctx := context.Background()

	bare := e.GenerateResponse(ctx, "x", "I have a headache", "")
	prevention := e.GenerateResponse(ctx, "x", "prevention tips for headaches", "")

	assert.NotContains(t, bare, "Prevention Tips")
	assert.Contains(t, prevention, "Prevention Tips")
	assert.NotEqual(t, bare, prevention)
}

func TestEngine_ConcurrentMessages(t *testing.T) {
	st := store.NewMemory()
	u := seedUser(t, st, "asha", "en")
	e := NewEngine(st, newRouter(), &recordingResponder{reply: "ok"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.GenerateResponse(context.Background(), "asha", "hello", "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, st.ChatCount(u.ID))
}
