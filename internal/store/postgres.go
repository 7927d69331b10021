package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/store/migrations"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// Config holds database configuration
type Config struct {
	URL             string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Postgres is the SessionStore backed by PostgreSQL.
type Postgres struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ SessionStore = (*Postgres)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Postgres, error) {
	sqlDB, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConnections > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgres(sqlDB, logger), nil
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(db *sql.DB, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{db: db, logger: logger}
}

// Migrate applies all embedded migrations to the database at url.
func Migrate(url string) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Close closes the database connection
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Ping checks connectivity for health probes.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// GetUser retrieves a user by username
func (p *Postgres) GetUser(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, role, language, created_at
		FROM users
		WHERE username = $1
	`

	u := &User{}
	err := p.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Role, &u.Language, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// CreateUser inserts a user with the default role.
func (p *Postgres) CreateUser(ctx context.Context, username, language string) (*User, error) {
	query := `
		INSERT INTO users (username, language)
		VALUES ($1, $2)
		RETURNING id, username, role, language, created_at
	`

	if language == "" {
		language = "en"
	}
	u := &User{}
	err := p.db.QueryRowContext(ctx, query, username, language).Scan(
		&u.ID, &u.Username, &u.Role, &u.Language, &u.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetTodayMood returns the mood logged for the current date.
func (p *Postgres) GetTodayMood(ctx context.Context, userID int64) (string, error) {
	query := `
		SELECT mood
		FROM mood_logs
		WHERE user_id = $1 AND log_date = CURRENT_DATE
	`

	var mood string
	err := p.db.QueryRowContext(ctx, query, userID).Scan(&mood)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get mood: %w", err)
	}
	return mood, nil
}

// SaveMood upserts today's mood.
func (p *Postgres) SaveMood(ctx context.Context, userID int64, mood string) error {
	query := `
		INSERT INTO mood_logs (user_id, mood, log_date)
		VALUES ($1, $2, CURRENT_DATE)
		ON CONFLICT (user_id, log_date) DO UPDATE SET mood = EXCLUDED.mood
	`

	if _, err := p.db.ExecContext(ctx, query, userID, mood); err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	return nil
}

// RecentHistory retrieves the N most recent exchanges in chronological order.
func (p *Postgres) RecentHistory(ctx context.Context, userID int64, limit int) ([]ChatEntry, error) {
	query := `
		SELECT id, user_id, user_message, bot_response, created_at
		FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := p.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	defer rows.Close()

	entries := make([]ChatEntry, 0, limit)
	for rows.Next() {
		var e ChatEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserMessage, &e.BotResponse, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat history: %w", err)
	}

	// Reverse to get chronological order
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// AppendChat stores one exchange.
func (p *Postgres) AppendChat(ctx context.Context, userID int64, userMessage, botResponse string) error {
	query := `
		INSERT INTO chat_history (user_id, user_message, bot_response)
		VALUES ($1, $2, $3)
	`

	if _, err := p.db.ExecContext(ctx, query, userID, userMessage, botResponse); err != nil {
		p.logger.Error("failed to append chat", zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("failed to append chat: %w", err)
	}
	return nil
}
