// Package journal provides an append-only event history for
// intellilight: boots, issued bulb commands and sleep transitions.
// It exists for auditing only and is never read back to restore
// controller state - every wake starts cold.
package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// EventType represents the type of event in the journal
type EventType string

const (
	EventBoot          EventType = "boot"
	EventCommandSent   EventType = "command_sent"
	EventCommandFailed EventType = "command_failed"
	EventSleep         EventType = "sleep"
)

// Entry represents a single event in the journal
type Entry struct {
	ID        int64
	Session   string
	EventType EventType
	Timestamp time.Time
	Payload   string
}

// Journal provides append-only event logging scoped to a boot session
type Journal struct {
	db      *sql.DB
	session string
}

// New creates a Journal bound to the given boot session id
func New(db *sql.DB, session string) *Journal {
	return &Journal{db: db, session: session}
}

// Session returns the boot session id this journal writes under
func (j *Journal) Session() string {
	return j.session
}

// Append adds a new event to the journal
func (j *Journal) Append(eventType EventType, payload string) error {
	now := time.Now().UTC().Unix()

	_, err := j.db.Exec(`
		INSERT INTO event_journal (session, event_type, timestamp, payload)
		VALUES (?, ?, ?, ?)
	`, j.session, string(eventType), now, payload)
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}

	return nil
}

// Recent returns the most recent entries across all sessions
func (j *Journal) Recent(limit int) ([]*Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, session, event_type, timestamp, payload
		FROM event_journal
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// BySession returns entries for one boot session, oldest first
func (j *Journal) BySession(session string, limit int) ([]*Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, session, event_type, timestamp, payload
		FROM event_journal
		WHERE session = ?
		ORDER BY id ASC
		LIMIT ?
	`, session, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// DeleteOlderThan removes entries older than the specified duration (retention policy)
func (j *Journal) DeleteOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	result, err := j.db.Exec(`
		DELETE FROM event_journal WHERE timestamp < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var payload sql.NullString
		var timestamp int64

		if err := rows.Scan(&entry.ID, &entry.Session, &entry.EventType, &timestamp, &payload); err != nil {
			return nil, err
		}

		entry.Timestamp = time.Unix(timestamp, 0).UTC()
		if payload.Valid {
			entry.Payload = payload.String
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
