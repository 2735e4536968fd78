package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/shop-assistant/internal/domain/entity"
	"github.com/yourusername/shop-assistant/internal/domain/repository"
)

type sqliteSessionRepository struct {
	db *sql.DB
}

// NewSQLiteSessionRepository SQLite asosidagi sessiya store. Sessiya JSON ko'rinishida saqlanadi.
func NewSQLiteSessionRepository(dbPath string) (repository.SessionRepository, func() error, error) {
	if dbPath == "" {
		return nil, nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if err := createSessionSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return &sqliteSessionRepository{db: db}, db.Close, nil
}

func createSessionSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	user_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Get sessiyani olish
func (s *sqliteSessionRepository) Get(ctx context.Context, userID string) (*entity.Session, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM sessions WHERE user_id = ?`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, entity.ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", userID, err)
	}
	if session.Cart.Items == nil {
		session.Cart.Items = []entity.CartItem{}
	}
	return &session, nil
}

// Set sessiyani saqlash (upsert)
func (s *sqliteSessionRepository) Set(ctx context.Context, session *entity.Session) error {
	if session == nil || session.UserID == "" {
		return fmt.Errorf("session without user id: %w", entity.ErrInvalidArgument)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (user_id, payload, updated_at) VALUES (?, ?, ?)`,
		session.UserID, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete sessiyani o'chirish
func (s *sqliteSessionRepository) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}
