package main

import "database/sql"

// Event represents an event record. Date and time are kept in the
// normalized text forms produced by the validators (YYYY-MM-DD, HH:MM).
type Event struct {
	ID              int64
	Name            string
	Description     string
	Price           sql.NullFloat64
	Address         sql.NullString
	MaxParticipants sql.NullInt64 // NULL means unlimited
	EventDate       string
	EventTime       string
	IsDeleted       bool
}

// IsFull reports whether the event has no free seats left given the
// current registration count. Events without a participant limit are
// never full.
func (e *Event) IsFull(registered int) bool {
	return e.MaxParticipants.Valid && int64(registered) >= e.MaxParticipants.Int64
}

// EventDraft accumulates the fields collected by the creation dialogue
// before the row is persisted.
type EventDraft struct {
	Name            string
	Description     string
	Price           float64
	Address         string
	MaxParticipants int
	Date            string
	Time            string
}

// Registration is a participant's claim on one seat of an event. The
// event name and user display strings are snapshots taken at
// registration time.
type Registration struct {
	EventID      int64
	UserID       int64
	EventName    string
	UserName     string // display name
	UserNickname string // telegram handle
}

// User is a chat participant known to the bot.
type User struct {
	ID             int64
	Username       string // telegram handle
	Nickname       string // display name
	Active         bool
	NotificationOn bool
}

// LogEntry is one row of the append-only audit trail.
type LogEntry struct {
	UserID       int64
	UserName     string
	UserNickname string
	Description  string
	LogDate      string
	LogTime      string
}

// ReminderTarget pairs a same-day event with one of its registrants who
// has notifications enabled.
type ReminderTarget struct {
	Event  Event
	UserID int64
}
