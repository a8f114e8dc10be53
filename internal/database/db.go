package database

import (
	"database/sql"
	"fmt"
	"time"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Subscription is one Telegram chat subscribed to scan reports.
type Subscription struct {
	ChatID       int64
	Username     string
	SubscribedAt time.Time
	Active       bool
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	// Create PostgreSQL connection string
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS chat_subscriptions (
			chat_id BIGINT PRIMARY KEY,
			username TEXT,
			subscribed_at TIMESTAMP NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)
	`)
	return err
}

// Subscribe registers a chat for scan reports, reactivating it if it was
// previously unsubscribed.
func (db *DB) Subscribe(chatID int64, username string) error {
	_, err := db.Exec(`
		INSERT INTO chat_subscriptions (chat_id, username, subscribed_at, active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (chat_id)
		DO UPDATE SET
			username = EXCLUDED.username,
			active = TRUE
	`, chatID, username, time.Now())

	return err
}

// Unsubscribe deactivates a chat without deleting its row.
func (db *DB) Unsubscribe(chatID int64) error {
	_, err := db.Exec(`
		UPDATE chat_subscriptions
		SET active = FALSE
		WHERE chat_id = $1
	`, chatID)

	return err
}

// IsSubscribed reports whether a chat is currently active.
func (db *DB) IsSubscribed(chatID int64) (bool, error) {
	var active bool
	err := db.QueryRow(`
		SELECT active FROM chat_subscriptions WHERE chat_id = $1
	`, chatID).Scan(&active)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

// ActiveChatIDs returns every chat currently subscribed to reports.
func (db *DB) ActiveChatIDs() ([]int64, error) {
	rows, err := db.Query(`
		SELECT chat_id FROM chat_subscriptions WHERE active = TRUE ORDER BY chat_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chatIDs []int64
	for rows.Next() {
		var chatID int64
		if err := rows.Scan(&chatID); err != nil {
			return nil, err
		}
		chatIDs = append(chatIDs, chatID)
	}
	return chatIDs, rows.Err()
}
