package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdminIDs(t *testing.T) {
	ids, err := parseAdminIDs("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = parseAdminIDs("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = parseAdminIDs("1,x")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("ADMIN_IDS", "10,20")
	t.Setenv("DB_PATH", "")
	t.Setenv("PICS_DIR", "")
	t.Setenv("REMINDER_TIME", "09:15")
	t.Setenv("BOT_DEBUG", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "token-123", cfg.BotToken)
	assert.Equal(t, []int64{10, 20}, cfg.AdminIDs)
	assert.Equal(t, "./data.db", cfg.DBPath)
	assert.Equal(t, "./pics", cfg.PicsDir)
	assert.Equal(t, "09:15", cfg.ReminderTime)
	assert.True(t, cfg.Debug)

	assert.True(t, cfg.IsAdmin(10))
	assert.False(t, cfg.IsAdmin(11))
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadReminderTime(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("ADMIN_IDS", "")
	t.Setenv("REMINDER_TIME", "9am")

	_, err := LoadConfig()
	assert.Error(t, err)
}
