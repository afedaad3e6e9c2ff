package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminChat = int64(100)
	adminID   = int64(10)
)

func adminConfig() *Config {
	return &Config{AdminIDs: []int64{adminID}}
}

func sendText(bot *fakeBot, repo Repository, cfg *Config, sessions *SessionStore, text string) {
	handleMessage(bot, repo, cfg, sessions, testMessage(adminChat, adminID, text))
}

// Full walk of the creation dialogue, matching the end-to-end scenario:
// all fields typed, poster skipped with a dash.
func TestCreateEventFullDialog(t *testing.T) {
	picsDir = t.TempDir()
	_, repo := newTestDB(t)
	cfg := adminConfig()
	sessions := NewSessionStore()
	bot := &fakeBot{}

	sendText(bot, repo, cfg, sessions, menuNewEvent)
	require.Equal(t, StepName, sessions.Get(adminChat, adminID).Step)

	sendText(bot, repo, cfg, sessions, "Movie Night")
	sendText(bot, repo, cfg, sessions, "Fun")
	sendText(bot, repo, cfg, sessions, "10")
	sendText(bot, repo, cfg, sessions, "Main Hall")
	sendText(bot, repo, cfg, sessions, "5")
	sendText(bot, repo, cfg, sessions, "25.12")
	require.Equal(t, StepTime, sessions.Get(adminChat, adminID).Step)

	sendText(bot, repo, cfg, sessions, "18:30")
	sess := sessions.Get(adminChat, adminID)
	require.Equal(t, StepPoster, sess.Step)
	eventID := sess.EventID
	require.Greater(t, eventID, int64(0))

	sendText(bot, repo, cfg, sessions, "-")
	assert.Nil(t, sessions.Get(adminChat, adminID), "session cleared on completion")
	assert.Contains(t, bot.lastText(t), "✅ Ивент создан!")

	ev, err := repo.GetEvent(eventID)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "Movie Night", ev.Name)
	assert.Equal(t, "Fun", ev.Description)
	assert.Equal(t, 10.0, ev.Price.Float64)
	assert.Equal(t, "Main Hall", ev.Address.String)
	assert.Equal(t, int64(5), ev.MaxParticipants.Int64)
	assert.Equal(t, "18:30", ev.EventTime)
	assert.False(t, ev.IsDeleted)

	wantDate, err := ParseDate("25.12", time.Now())
	require.NoError(t, err)
	assert.Equal(t, wantDate, ev.EventDate)

	assert.NoFileExists(t, posterPath(eventID))
}

func TestCreateEventInvalidInputsDoNotAdvance(t *testing.T) {
	_, repo := newTestDB(t)
	cfg := adminConfig()
	sessions := NewSessionStore()
	bot := &fakeBot{}

	sendText(bot, repo, cfg, sessions, menuNewEvent)
	sendText(bot, repo, cfg, sessions, "Movie Night")
	sendText(bot, repo, cfg, sessions, "Fun")

	sendText(bot, repo, cfg, sessions, "-5")
	assert.Equal(t, StepPrice, sessions.Get(adminChat, adminID).Step)
	assert.Contains(t, bot.lastText(t), "⚠️")

	sendText(bot, repo, cfg, sessions, "10")
	sendText(bot, repo, cfg, sessions, "Main Hall")

	sendText(bot, repo, cfg, sessions, "0")
	assert.Equal(t, StepMaxParticipants, sessions.Get(adminChat, adminID).Step)

	sendText(bot, repo, cfg, sessions, "5")
	sendText(bot, repo, cfg, sessions, "31.02")
	assert.Equal(t, StepDate, sessions.Get(adminChat, adminID).Step)

	sendText(bot, repo, cfg, sessions, "25.12")
	sendText(bot, repo, cfg, sessions, "25:70")
	assert.Equal(t, StepTime, sessions.Get(adminChat, adminID).Step)
}

func TestCreateEventPosterRejectsOtherText(t *testing.T) {
	picsDir = t.TempDir()
	_, repo := newTestDB(t)
	cfg := adminConfig()
	sessions := NewSessionStore()
	bot := &fakeBot{}

	sendText(bot, repo, cfg, sessions, menuNewEvent)
	for _, text := range []string{"Movie Night", "Fun", "10", "Main Hall", "5", "25.12", "18:30"} {
		sendText(bot, repo, cfg, sessions, text)
	}
	require.Equal(t, StepPoster, sessions.Get(adminChat, adminID).Step)

	sendText(bot, repo, cfg, sessions, "это не картинка")
	require.NotNil(t, sessions.Get(adminChat, adminID))
	assert.Equal(t, StepPoster, sessions.Get(adminChat, adminID).Step)

	sendText(bot, repo, cfg, sessions, "—")
	assert.Nil(t, sessions.Get(adminChat, adminID))
}

func TestCreateEventDashRemovesStalePoster(t *testing.T) {
	picsDir = t.TempDir()
	_, repo := newTestDB(t)
	cfg := adminConfig()
	sessions := NewSessionStore()
	bot := &fakeBot{}

	sendText(bot, repo, cfg, sessions, menuNewEvent)
	for _, text := range []string{"Movie Night", "Fun", "10", "Main Hall", "5", "25.12", "18:30"} {
		sendText(bot, repo, cfg, sessions, text)
	}
	eventID := sessions.Get(adminChat, adminID).EventID
	require.NoError(t, os.WriteFile(posterPath(eventID), []byte("stale"), 0o644))

	sendText(bot, repo, cfg, sessions, "-")
	assert.NoFileExists(t, posterPath(eventID))
}

func TestCreateEventCancelFromAnyState(t *testing.T) {
	_, repo := newTestDB(t)
	cfg := adminConfig()
	sessions := NewSessionStore()
	bot := &fakeBot{}

	sendText(bot, repo, cfg, sessions, menuNewEvent)
	sendText(bot, repo, cfg, sessions, "Movie Night")

	handleCallbackQuery(bot, repo, cfg, sessions, testCallback(adminChat, adminID, actionCancelEvent), "testbot")
	assert.Nil(t, sessions.Get(adminChat, adminID))
	assert.Contains(t, bot.lastText(t), "отменено")
}

// Autofill: a second dialogue offers the previous event's values and a
// tap jumps straight to the next step.
func TestCreateEventAutofillJumps(t *testing.T) {
	picsDir = t.TempDir()
	_, repo := newTestDB(t)
	cfg := adminConfig()
	sessions := NewSessionStore()
	bot := &fakeBot{}

	_, err := repo.CreateEvent(EventDraft{
		Name: "Prev", Description: "d", Price: 15.5, Address: "Old Hall",
		MaxParticipants: 7, Date: "2099-01-01", Time: "19:00",
	})
	require.NoError(t, err)

	sendText(bot, repo, cfg, sessions, menuNewEvent)
	sendText(bot, repo, cfg, sessions, "Next Event")
	sendText(bot, repo, cfg, sessions, "desc")
	require.Equal(t, StepPrice, sessions.Get(adminChat, adminID).Step)

	handleCallbackQuery(bot, repo, cfg, sessions, testCallback(adminChat, adminID, actionPriceFill), "testbot")
	sess := sessions.Get(adminChat, adminID)
	assert.Equal(t, StepAddress, sess.Step)
	assert.Equal(t, 15.5, sess.Draft.Price)

	handleCallbackQuery(bot, repo, cfg, sessions, testCallback(adminChat, adminID, actionAddressFill), "testbot")
	assert.Equal(t, StepMaxParticipants, sess.Step)
	assert.Equal(t, "Old Hall", sess.Draft.Address)

	handleCallbackQuery(bot, repo, cfg, sessions, testCallback(adminChat, adminID, actionMaxFill), "testbot")
	assert.Equal(t, StepDate, sess.Step)
	assert.Equal(t, 7, sess.Draft.MaxParticipants)

	sendText(bot, repo, cfg, sessions, "25.12")
	require.Equal(t, StepTime, sess.Step)

	// Accepting the time suggestion persists the draft immediately.
	handleCallbackQuery(bot, repo, cfg, sessions, testCallback(adminChat, adminID, actionTimeFill), "testbot")
	assert.Equal(t, StepPoster, sess.Step)
	require.Greater(t, sess.EventID, int64(0))

	ev, err := repo.GetEvent(sess.EventID)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "Next Event", ev.Name)
	assert.Equal(t, 15.5, ev.Price.Float64)
	assert.Equal(t, "Old Hall", ev.Address.String)
	assert.Equal(t, int64(7), ev.MaxParticipants.Int64)
	assert.Equal(t, "19:00", ev.EventTime)
}

// A stale autofill tap outside the matching step must not mutate state.
func TestAutofillRejectedOutsideStep(t *testing.T) {
	_, repo := newTestDB(t)
	cfg := adminConfig()
	sessions := NewSessionStore()
	bot := &fakeBot{}

	_, err := repo.CreateEvent(EventDraft{Name: "Prev", Date: "2099-01-01", Time: "19:00", Price: 5})
	require.NoError(t, err)

	sendText(bot, repo, cfg, sessions, menuNewEvent)
	sendText(bot, repo, cfg, sessions, "Next")
	// Still at description; a price tap is stale.
	handleCallbackQuery(bot, repo, cfg, sessions, testCallback(adminChat, adminID, actionPriceFill), "testbot")

	sess := sessions.Get(adminChat, adminID)
	assert.Equal(t, StepDescription, sess.Step)
	assert.Zero(t, sess.Draft.Price)
	assert.Equal(t, "Недоступно", bot.lastCallbackText(t))
}

func TestStartNewEventReplacesActiveDialog(t *testing.T) {
	_, repo := newTestDB(t)
	cfg := adminConfig()
	sessions := NewSessionStore()
	bot := &fakeBot{}

	sendText(bot, repo, cfg, sessions, menuNewEvent)
	sendText(bot, repo, cfg, sessions, "Half-done")
	require.Equal(t, StepDescription, sessions.Get(adminChat, adminID).Step)

	startNewEvent(bot, sessions, adminChat, adminID)
	sess := sessions.Get(adminChat, adminID)
	assert.Equal(t, StepName, sess.Step)
	assert.Empty(t, sess.Draft.Name)
}
