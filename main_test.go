package main

import (
	"database/sql"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// fakeBot records outgoing traffic instead of talking to Telegram.
type fakeBot struct {
	sent      []tgbotapi.Chattable
	callbacks []tgbotapi.CallbackConfig
	sendErr   error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error) {
	f.callbacks = append(f.callbacks, config)
	return tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) GetFileDirectURL(fileID string) (string, error) {
	return "http://invalid.localhost/" + fileID, nil
}

// lastText returns the text of the most recently sent message.
func (f *fakeBot) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	for i := len(f.sent) - 1; i >= 0; i-- {
		switch m := f.sent[i].(type) {
		case tgbotapi.MessageConfig:
			return m.Text
		case tgbotapi.EditMessageTextConfig:
			return m.Text
		}
	}
	t.Fatal("no text message sent")
	return ""
}

func (f *fakeBot) lastCallbackText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.callbacks)
	return f.callbacks[len(f.callbacks)-1].Text
}

// newTestDB opens an isolated in-memory database with the schema applied.
func newTestDB(t *testing.T) (*sql.DB, *SQLiteRepository) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// The pool must not open a second connection: each sqlite :memory:
	// connection is its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.CreateTables())
	return db, repo
}

func testMessage(chatID, userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		From: &tgbotapi.User{ID: int(userID), FirstName: "Test", UserName: "tester"},
		Chat: &tgbotapi.Chat{ID: chatID},
	}
}

// commandMessage builds a "/cmd args" message with the bot command
// entity Telegram attaches to real commands.
func commandMessage(chatID, userID int64, cmd, args string) *tgbotapi.Message {
	text := "/" + cmd
	if args != "" {
		text += " " + args
	}
	msg := testMessage(chatID, userID, text)
	msg.Entities = &[]tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(cmd) + 1},
	}
	return msg
}

func testCallback(chatID, userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		Data: data,
		From: &tgbotapi.User{ID: int(userID), FirstName: "Test", UserName: "tester"},
		Message: &tgbotapi.Message{
			MessageID: 77,
			Chat:      &tgbotapi.Chat{ID: chatID},
		},
	}
}
