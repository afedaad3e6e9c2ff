package main

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// parseCallback splits the colon-delimited payload into an action name
// and an optional event id argument.
func parseCallback(data string) (action string, eventID int64, hasID bool) {
	parts := strings.SplitN(data, ":", 2)
	action = parts[0]
	if len(parts) == 2 {
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err == nil {
			return action, id, true
		}
	}
	return action, 0, false
}

// handleCallbackQuery dispatches inline button callbacks. Admin-facing
// actions are re-checked against the allow-list; unknown or stale
// payloads are rejected visibly without mutation.
func handleCallbackQuery(bot botAPI, repo Repository, cfg *Config, sessions *SessionStore,
	cq *tgbotapi.CallbackQuery, botName string) {
	if cq.From == nil || cq.Message == nil {
		return
	}
	action, eventID, hasID := parseCallback(cq.Data)
	userID := int64(cq.From.ID)

	// Actions usable from any dialogue prompt.
	switch action {
	case actionCancelEvent:
		handleCancelDialog(bot, sessions, cq)
		return
	case actionPriceFill:
		handleFillPrice(bot, repo, sessions, cq)
		return
	case actionAddressFill:
		handleFillAddress(bot, repo, sessions, cq)
		return
	case actionMaxFill:
		handleFillMax(bot, repo, sessions, cq)
		return
	case actionTimeFill:
		handleFillTime(bot, repo, sessions, cq)
		return
	}

	// Participant actions.
	switch action {
	case actionUserRegister, actionUserCancel, actionUserICS, actionReminderUnsubscribe:
		if !hasID {
			answerAlert(bot, cq.ID, "Неизвестное действие")
			return
		}
		upsertUserFrom(repo, cq.From)
		switch action {
		case actionUserRegister:
			handleUserRegister(bot, repo, cq, eventID)
		case actionUserCancel:
			handleUserCancel(bot, repo, cq, eventID)
		case actionUserICS:
			handleUserICS(bot, repo, cq, eventID)
		case actionReminderUnsubscribe:
			handleReminderUnsubscribe(bot, repo, cq, eventID)
		}
		return
	case actionReminderDisable:
		upsertUserFrom(repo, cq.From)
		handleReminderDisable(bot, repo, cq)
		return
	}

	// Admin actions.
	if field, ok := editActionFields[action]; ok {
		if !requireAdminCallback(bot, cfg, cq, userID) || !hasID {
			return
		}
		startFieldEdit(bot, repo, sessions, cq, field, eventID)
		return
	}

	switch action {
	case actionEventEdit, actionEventBack, actionEventUsers,
		actionEventDelete, actionEventDeleteYes, actionEventQR:
		if !requireAdminCallback(bot, cfg, cq, userID) || !hasID {
			return
		}
	case actionEventDeleteNo:
		if !requireAdminCallback(bot, cfg, cq, userID) {
			return
		}
	default:
		answerAlert(bot, cq.ID, "Неизвестное действие")
		return
	}

	switch action {
	case actionEventEdit:
		handleEventEditMenu(bot, cq, eventID)
	case actionEventBack:
		handleEventBack(bot, cq, eventID)
	case actionEventUsers:
		handleEventUsers(bot, repo, cq, eventID)
	case actionEventDelete:
		handleEventDelete(bot, cq, eventID)
	case actionEventDeleteYes:
		handleEventDeleteYes(bot, repo, cq, eventID)
	case actionEventDeleteNo:
		handleEventDeleteNo(bot, cq)
	case actionEventQR:
		handleEventQR(bot, repo, cq, botName, eventID)
	}
}
