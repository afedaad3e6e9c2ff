package main

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

// requireAdminCallback verifies the callback sender against the static
// allow-list and rejects outsiders with a visible alert.
func requireAdminCallback(bot botAPI, cfg *Config, cq *tgbotapi.CallbackQuery, userID int64) bool {
	if cfg.IsAdmin(userID) {
		return true
	}
	answerAlert(bot, cq.ID, "У вас нет прав для выполнения этого действия.")
	return false
}
