// Package store persists users, daily moods and chat history.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// User is a chat user. Language is the preferred reply language.
type User struct {
	ID        int64
	Username  string
	Role      string
	Language  string
	CreatedAt time.Time
}

// ChatEntry is one stored exchange.
type ChatEntry struct {
	ID          int64
	UserID      int64
	UserMessage string
	BotResponse string
	Timestamp   time.Time
}

// SessionStore is the persistence the chat engine depends on.
type SessionStore interface {
	// GetUser returns ErrNotFound for unknown usernames.
	GetUser(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, username, language string) (*User, error)
	// GetTodayMood returns ErrNotFound when no mood was logged today.
	GetTodayMood(ctx context.Context, userID int64) (string, error)
	// SaveMood records today's mood, replacing an earlier entry for today.
	SaveMood(ctx context.Context, userID int64, mood string) error
	// RecentHistory returns up to limit most recent entries, oldest first.
	RecentHistory(ctx context.Context, userID int64, limit int) ([]ChatEntry, error)
	AppendChat(ctx context.Context, userID int64, userMessage, botResponse string) error
}
