package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process SessionStore used when no database is
// configured and in tests. History per user is capped at maxHistory.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]*User
	moods      map[int64]map[string]string // user id -> date -> mood
	history    map[int64][]ChatEntry
	nextUserID int64
	nextChatID int64
	maxHistory int
	now        func() time.Time
}

var _ SessionStore = (*Memory)(nil)

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock overrides the time source used for dates and timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithMaxHistory caps stored exchanges per user.
func WithMaxHistory(n int) MemoryOption {
	return func(m *Memory) { m.maxHistory = n }
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		users:      make(map[string]*User),
		moods:      make(map[int64]map[string]string),
		history:    make(map[int64][]ChatEntry),
		maxHistory: 200,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) today() string {
	return m.now().Format(time.DateOnly)
}

// GetUser implements SessionStore.
func (m *Memory) GetUser(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// CreateUser implements SessionStore.
func (m *Memory) CreateUser(_ context.Context, username, language string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[username]; exists {
		return nil, ErrAlreadyExists
	}
	if language == "" {
		language = "en"
	}
	m.nextUserID++
	u := &User{
		ID:        m.nextUserID,
		Username:  username,
		Role:      "user",
		Language:  language,
		CreatedAt: m.now(),
	}
	m.users[username] = u
	cp := *u
	return &cp, nil
}

// GetTodayMood implements SessionStore.
func (m *Memory) GetTodayMood(_ context.Context, userID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mood, ok := m.moods[userID][m.today()]
	if !ok {
		return "", ErrNotFound
	}
	return mood, nil
}

// SaveMood implements SessionStore.
func (m *Memory) SaveMood(_ context.Context, userID int64, mood string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byDate, ok := m.moods[userID]
	if !ok {
		byDate = make(map[string]string)
		m.moods[userID] = byDate
	}
	byDate[m.today()] = mood
	return nil
}

// RecentHistory implements SessionStore.
func (m *Memory) RecentHistory(_ context.Context, userID int64, limit int) ([]ChatEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.history[userID]
	if limit >= 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	// Return a copy to avoid external mutation
	out := make([]ChatEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// AppendChat implements SessionStore.
func (m *Memory) AppendChat(_ context.Context, userID int64, userMessage, botResponse string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextChatID++
	entries := append(m.history[userID], ChatEntry{
		ID:          m.nextChatID,
		UserID:      userID,
		UserMessage: userMessage,
		BotResponse: botResponse,
		Timestamp:   m.now(),
	})
	if m.maxHistory > 0 && len(entries) > m.maxHistory {
		entries = entries[len(entries)-m.maxHistory:]
	}
	m.history[userID] = entries
	return nil
}

// ChatCount returns the number of stored exchanges for a user.
func (m *Memory) ChatCount(userID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history[userID])
}
