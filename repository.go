package main

import (
	"database/sql"
	"fmt"
)

// Repository defines the interface for database operations
type Repository interface {
	CreateTables() error

	CreateEvent(draft EventDraft) (int64, error)
	GetEvent(eventID int64) (*Event, error)
	LastEvent() (*Event, error)
	FutureEvents(fromDate string) ([]Event, error)
	UserFutureEvents(userID int64, fromDate string) ([]Event, error)
	UpdateEventField(eventID int64, field EditableField, value any) error
	MarkEventDeleted(eventID int64) error

	CountRegistrations(eventID int64) (int, error)
	IsRegistered(eventID, userID int64) (bool, error)
	AddRegistration(reg Registration) error
	DeleteRegistration(eventID, userID int64) error
	EventParticipants(eventID int64) ([]Registration, error)

	UpsertUser(user User) error
	SetNotification(userID int64, enabled bool) error
	NotificationEnabled(userID int64) (bool, error)

	AddLog(entry LogEntry) error
	TodayReminderTargets(day string) ([]ReminderTarget, error)
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateTables creates the schema if it does not exist yet. There is
// deliberately no unique constraint on registrations(event_id, user_id);
// idempotency is enforced by the registration flow.
func (r *SQLiteRepository) CreateTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			event_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price REAL,
			address TEXT,
			max_participants INTEGER,
			event_date TEXT NOT NULL,
			event_time TEXT NOT NULL,
			is_deleted INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS registrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			event_name TEXT,
			user_name TEXT,
			user_nickname TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			username TEXT,
			nickname TEXT,
			active INTEGER NOT NULL DEFAULT 1,
			notification_on INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			user_name TEXT,
			user_nickname TEXT,
			description TEXT,
			log_date TEXT,
			log_time TEXT
		);`,
	}
	for _, stmt := range statements {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

const eventColumns = `event_id, name, description, price, address, max_participants, event_date, event_time, is_deleted`

func scanEvent(row interface{ Scan(...any) error }) (*Event, error) {
	var ev Event
	var deleted int
	err := row.Scan(&ev.ID, &ev.Name, &ev.Description, &ev.Price, &ev.Address,
		&ev.MaxParticipants, &ev.EventDate, &ev.EventTime, &deleted)
	if err != nil {
		return nil, err
	}
	ev.IsDeleted = deleted != 0
	return &ev, nil
}

// CreateEvent inserts a fully collected draft and returns the assigned id.
// An empty address and a zero participant limit are stored as NULL.
func (r *SQLiteRepository) CreateEvent(draft EventDraft) (int64, error) {
	address := sql.NullString{String: draft.Address, Valid: draft.Address != ""}
	max := sql.NullInt64{Int64: int64(draft.MaxParticipants), Valid: draft.MaxParticipants > 0}
	res, err := r.db.Exec(
		`INSERT INTO events (name, description, price, address, max_participants, event_date, event_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		draft.Name, draft.Description, draft.Price, address,
		max, draft.Date, draft.Time,
	)
	if err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return res.LastInsertId()
}

// GetEvent returns a non-deleted event by id, or nil when it does not
// exist or has been soft-deleted.
func (r *SQLiteRepository) GetEvent(eventID int64) (*Event, error) {
	row := r.db.QueryRow(
		`SELECT `+eventColumns+` FROM events WHERE event_id = ? AND is_deleted = 0`, eventID)
	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ev, err
}

// LastEvent returns the most recently inserted event for autofill
// lookups. Soft-deleted rows are intentionally not excluded; see
// DESIGN.md.
func (r *SQLiteRepository) LastEvent() (*Event, error) {
	row := r.db.QueryRow(
		`SELECT ` + eventColumns + ` FROM events ORDER BY event_id DESC LIMIT 1`)
	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ev, err
}

// FutureEvents returns non-deleted events on or after fromDate
// (YYYY-MM-DD), soonest first.
func (r *SQLiteRepository) FutureEvents(fromDate string) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM events
		 WHERE is_deleted = 0 AND date(event_date) >= date(?)
		 ORDER BY event_date, event_time`, fromDate)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// UserFutureEvents returns the upcoming events the user is registered for.
func (r *SQLiteRepository) UserFutureEvents(userID int64, fromDate string) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT DISTINCT e.event_id, e.name, e.description, e.price, e.address,
		        e.max_participants, e.event_date, e.event_time, e.is_deleted
		 FROM events e
		 JOIN registrations r ON r.event_id = e.event_id
		 WHERE r.user_id = ? AND e.is_deleted = 0 AND date(e.event_date) >= date(?)
		 ORDER BY e.event_date, e.event_time`, userID, fromDate)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]Event, error) {
	defer rows.Close()
	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// UpdateEventField updates exactly one column of an existing event. The
// column is selected through the closed EditableField set, never from a
// raw string.
func (r *SQLiteRepository) UpdateEventField(eventID int64, field EditableField, value any) error {
	var query string
	switch field {
	case EditName:
		query = `UPDATE events SET name = ? WHERE event_id = ?`
	case EditDescription:
		query = `UPDATE events SET description = ? WHERE event_id = ?`
	case EditPrice:
		query = `UPDATE events SET price = ? WHERE event_id = ?`
	case EditAddress:
		query = `UPDATE events SET address = ? WHERE event_id = ?`
	case EditMaxParticipants:
		query = `UPDATE events SET max_participants = ? WHERE event_id = ?`
	case EditDate:
		query = `UPDATE events SET event_date = ? WHERE event_id = ?`
	case EditTime:
		query = `UPDATE events SET event_time = ? WHERE event_id = ?`
	default:
		return fmt.Errorf("unknown editable field %d", field)
	}
	_, err := r.db.Exec(query, value, eventID)
	return err
}

// MarkEventDeleted soft-deletes an event. Rows are never removed.
func (r *SQLiteRepository) MarkEventDeleted(eventID int64) error {
	_, err := r.db.Exec(`UPDATE events SET is_deleted = 1 WHERE event_id = ?`, eventID)
	return err
}

// CountRegistrations returns the live registration count for an event.
func (r *SQLiteRepository) CountRegistrations(eventID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM registrations WHERE event_id = ?`, eventID).Scan(&count)
	return count, err
}

// IsRegistered checks whether the user holds a registration for the event.
func (r *SQLiteRepository) IsRegistered(eventID, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRow(
		`SELECT 1 FROM registrations WHERE event_id = ? AND user_id = ? LIMIT 1`,
		eventID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// AddRegistration inserts a registration snapshot.
func (r *SQLiteRepository) AddRegistration(reg Registration) error {
	_, err := r.db.Exec(
		`INSERT INTO registrations (event_id, user_id, event_name, user_name, user_nickname)
		 VALUES (?, ?, ?, ?, ?)`,
		reg.EventID, reg.UserID, reg.EventName, reg.UserName, reg.UserNickname)
	return err
}

// DeleteRegistration removes any registration for (event, user). Removing
// a registration that does not exist is not an error.
func (r *SQLiteRepository) DeleteRegistration(eventID, userID int64) error {
	_, err := r.db.Exec(
		`DELETE FROM registrations WHERE event_id = ? AND user_id = ?`, eventID, userID)
	return err
}

// EventParticipants lists the registration snapshots for an event.
func (r *SQLiteRepository) EventParticipants(eventID int64) ([]Registration, error) {
	rows, err := r.db.Query(
		`SELECT event_id, user_id, event_name, user_name, user_nickname
		 FROM registrations WHERE event_id = ?`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var regs []Registration
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.EventID, &reg.UserID, &reg.EventName,
			&reg.UserName, &reg.UserNickname); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// UpsertUser inserts or refreshes a user row. The notification flag of an
// existing row is left untouched.
func (r *SQLiteRepository) UpsertUser(user User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (user_id, username, nickname, active, notification_on)
		 VALUES (?, ?, ?, 1, 1)
		 ON CONFLICT(user_id) DO UPDATE SET
		   username = excluded.username,
		   nickname = excluded.nickname,
		   active = 1`,
		user.ID, user.Username, user.Nickname)
	return err
}

// SetNotification toggles the user's reminder flag.
func (r *SQLiteRepository) SetNotification(userID int64, enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	_, err := r.db.Exec(
		`UPDATE users SET notification_on = ? WHERE user_id = ?`, value, userID)
	return err
}

// NotificationEnabled reports the user's reminder flag. Unknown users
// default to enabled.
func (r *SQLiteRepository) NotificationEnabled(userID int64) (bool, error) {
	var on int
	err := r.db.QueryRow(
		`SELECT notification_on FROM users WHERE user_id = ?`, userID).Scan(&on)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return on != 0, nil
}

// AddLog appends an audit entry. Log rows are never updated or deleted.
func (r *SQLiteRepository) AddLog(entry LogEntry) error {
	_, err := r.db.Exec(
		`INSERT INTO logs (user_id, user_name, user_nickname, description, log_date, log_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.UserName, entry.UserNickname,
		entry.Description, entry.LogDate, entry.LogTime)
	return err
}

// TodayReminderTargets joins the day's non-deleted events against their
// registrants with notifications enabled.
func (r *SQLiteRepository) TodayReminderTargets(day string) ([]ReminderTarget, error) {
	rows, err := r.db.Query(
		`SELECT e.event_id, e.name, e.description, e.price, e.address,
		        e.max_participants, e.event_date, e.event_time, e.is_deleted,
		        r.user_id
		 FROM events e
		 JOIN registrations r ON r.event_id = e.event_id
		 JOIN users u ON u.user_id = r.user_id
		 WHERE e.is_deleted = 0
		   AND date(e.event_date) = date(?)
		   AND u.notification_on = 1
		 ORDER BY e.event_date, e.event_time`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var targets []ReminderTarget
	for rows.Next() {
		var t ReminderTarget
		var deleted int
		if err := rows.Scan(&t.Event.ID, &t.Event.Name, &t.Event.Description,
			&t.Event.Price, &t.Event.Address, &t.Event.MaxParticipants,
			&t.Event.EventDate, &t.Event.EventTime, &deleted, &t.UserID); err != nil {
			return nil, err
		}
		t.Event.IsDeleted = deleted != 0
		targets = append(targets, t)
	}
	return targets, rows.Err()
}
