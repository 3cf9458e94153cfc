package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"studycal/internal/model"
)

const userSchema = `
CREATE TABLE IF NOT EXISTS users (
	google_id  TEXT PRIMARY KEY,
	email      TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name  TEXT NOT NULL DEFAULT '',
	picture    TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);`

// Users persists Google-authenticated accounts in SQLite.
type Users struct {
	db *sqlx.DB
}

// OpenUsers opens (or creates) the user database at path and ensures the
// schema exists.
func OpenUsers(path string) (*Users, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open user db: %w", err)
	}
	if _, err := db.Exec(userSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create users table: %w", err)
	}
	return &Users{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Users) Close() error {
	return s.db.Close()
}

// Upsert inserts the user on first login and refreshes the mutable profile
// fields on every login after that. The stored user is returned, with
// CreatedAt reflecting the first login.
func (s *Users) Upsert(u model.User) (*model.User, error) {
	if u.GoogleID == "" {
		return nil, fmt.Errorf("upsert user: empty google id")
	}
	if u.CreatedAt == 0 {
		u.CreatedAt = time.Now().Unix()
	}

	const query = `
INSERT INTO users (google_id, email, first_name, last_name, picture, created_at)
VALUES (:google_id, :email, :first_name, :last_name, :picture, :created_at)
ON CONFLICT(google_id) DO UPDATE SET
	email      = excluded.email,
	first_name = excluded.first_name,
	last_name  = excluded.last_name,
	picture    = excluded.picture`

	if _, err := s.db.NamedExec(query, u); err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", u.GoogleID, err)
	}
	return s.ByGoogleID(u.GoogleID)
}

// ByGoogleID returns the stored user, or nil when no account exists.
func (s *Users) ByGoogleID(googleID string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT google_id, email, first_name, last_name, picture, created_at
		FROM users WHERE google_id = ?`, googleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", googleID, err)
	}
	return &u, nil
}
