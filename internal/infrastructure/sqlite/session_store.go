// Package sqlite persistencia local de las sesiones del bot.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/staffops-api/internal/application/botflow"
)

var _ botflow.SessionStore = (*SessionStore)(nil)

// SessionStore una fila por usuario de Telegram.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore abre (o crea) la base en path y aplica el esquema.
// ":memory:" sirve para tests.
func NewSessionStore(path string) (*SessionStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("crear directorio de sesiones: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Una sola conexión: ":memory:" es por conexión y el bot escribe en serie.
	db.SetMaxOpenConns(1)

	s := &SessionStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrar sesiones: %w", err)
	}
	return s, nil
}

// Close cierra la base.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

func (s *SessionStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS sessions (
		user_id        INTEGER PRIMARY KEY,
		role           TEXT,
		step           TEXT,
		data           TEXT,
		last_update_id INTEGER
	)`)
	return err
}

// Load sesión vacía si el usuario no tiene fila.
func (s *SessionStore) Load(ctx context.Context, userID int64) (*botflow.Session, error) {
	var (
		role, step, data sql.NullString
		lastUpdate       sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT role, step, data, last_update_id FROM sessions WHERE user_id = ?`, userID,
	).Scan(&role, &step, &data, &lastUpdate)
	if err == sql.ErrNoRows {
		return botflow.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión %d: %w", userID, err)
	}

	sess := botflow.NewSession()
	sess.Role = botflow.Role(role.String)
	sess.Step = botflow.ParseStep(step.String)
	if data.Valid && data.String != "" {
		if err := json.Unmarshal([]byte(data.String), &sess.Data); err != nil {
			return nil, fmt.Errorf("decodificar sesión %d: %w", userID, err)
		}
		if sess.Data == nil {
			sess.Data = make(map[string]string)
		}
	}
	if lastUpdate.Valid {
		sess.MarkSeen(lastUpdate.Int64)
	}
	return sess, nil
}

// Save upsert por user_id.
func (s *SessionStore) Save(ctx context.Context, userID int64, sess *botflow.Session) error {
	data, err := json.Marshal(sess.Data)
	if err != nil {
		return fmt.Errorf("codificar sesión %d: %w", userID, err)
	}
	var lastUpdate sql.NullInt64
	if sess.LastUpdateID != nil {
		lastUpdate = sql.NullInt64{Int64: *sess.LastUpdateID, Valid: true}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, role, step, data, last_update_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			role           = excluded.role,
			step           = excluded.step,
			data           = excluded.data,
			last_update_id = excluded.last_update_id`,
		userID, string(sess.Role), sess.Step.String(), string(data), lastUpdate)
	if err != nil {
		return fmt.Errorf("guardar sesión %d: %w", userID, err)
	}
	return nil
}
