package main

import (
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// botAPI is the slice of the Telegram client the handlers use. It is
// satisfied by *tgbotapi.BotAPI and by test fakes.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	AnswerCallbackQuery(config tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// sendMessage sends a plain text message to the given chat.
func sendMessage(bot botAPI, chatID int64, text string) {
	message := tgbotapi.NewMessage(chatID, text)
	bot.Send(message)
}

func sendMessageWithKeyboard(bot botAPI, chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	message := tgbotapi.NewMessage(chatID, text)
	message.ReplyMarkup = kb
	bot.Send(message)
}

func sendMenu(bot botAPI, chatID int64, text string, kb tgbotapi.ReplyKeyboardMarkup) {
	message := tgbotapi.NewMessage(chatID, text)
	message.ReplyMarkup = kb
	bot.Send(message)
}

func sendHTML(bot botAPI, chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	message := tgbotapi.NewMessage(chatID, text)
	message.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		message.ReplyMarkup = *kb
	}
	bot.Send(message)
}

// editMessage replaces the text and keyboard of an existing message.
func editMessage(bot botAPI, chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = &kb
	bot.Send(edit)
}

func editMessageHTML(bot botAPI, chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = &kb
	bot.Send(edit)
}

func answerCallback(bot botAPI, callbackID, text string) {
	bot.AnswerCallbackQuery(tgbotapi.NewCallback(callbackID, text))
}

// answerAlert answers a callback with a one-shot alert popup, used for
// lookup failures.
func answerAlert(bot botAPI, callbackID, text string) {
	bot.AnswerCallbackQuery(tgbotapi.CallbackConfig{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

func displayName(from *tgbotapi.User) string {
	return strings.TrimSpace(strings.TrimSpace(from.FirstName) + " " + strings.TrimSpace(from.LastName))
}

// upsertUserFrom refreshes the sender's user row.
func upsertUserFrom(repo Repository, from *tgbotapi.User) {
	repo.UpsertUser(User{
		ID:       int64(from.ID),
		Username: from.UserName,
		Nickname: displayName(from),
	})
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// handleMessage classifies an inbound message: active dialogue steps
// first, then commands and menu buttons.
func handleMessage(bot botAPI, repo Repository, cfg *Config, sessions *SessionStore, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	userID := int64(msg.From.ID)

	if msg.IsCommand() {
		handleCommand(bot, repo, cfg, sessions, msg)
		return
	}

	if sess := sessions.Get(chatID, userID); sess != nil && sess.Step != StepNone {
		handleDialogMessage(bot, repo, sessions, msg, sess)
		return
	}

	if cfg.IsAdmin(userID) {
		switch msg.Text {
		case menuNewEvent:
			startNewEvent(bot, sessions, chatID, userID)
		case menuFutureEvents:
			showFutureEventsAdmin(bot, repo, chatID)
		default:
			sendMenu(bot, chatID, "Меню админа:", adminMenuKeyboard())
		}
		return
	}

	upsertUserFrom(repo, msg.From)
	switch msg.Text {
	case menuAllEvents:
		showAllEvents(bot, repo, chatID, userID)
	case menuMyEvents:
		showUserEvents(bot, repo, chatID, userID)
	case menuEnableReminds, menuDisableReminds:
		toggleNotifications(bot, repo, chatID, userID, msg.Text == menuEnableReminds)
	default:
		sendNearestEvent(bot, repo, chatID, userID)
	}
}

// handleCommand routes bot commands.
func handleCommand(bot botAPI, repo Repository, cfg *Config, sessions *SessionStore, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := int64(msg.From.ID)

	switch msg.Command() {
	case "start":
		args := strings.TrimSpace(msg.CommandArguments())
		if eventID, ok := parseEventDeepLink(args); ok {
			upsertUserFrom(repo, msg.From)
			showEventCard(bot, repo, chatID, userID, eventID)
			return
		}
		if cfg.IsAdmin(userID) {
			sendMenu(bot, chatID, "Привет, админ 👋 Выбери действие:", adminMenuKeyboard())
			return
		}
		upsertUserFrom(repo, msg.From)
		sendMessage(bot, chatID, "Привет! Это Фильмовочная 🎬")
		sendNearestEvent(bot, repo, chatID, userID)
	default:
		sendMessage(bot, chatID, "Неизвестная команда")
	}
}

// parseEventDeepLink recognizes the "event_<id>" start payload encoded in
// the QR deep link.
func parseEventDeepLink(args string) (int64, bool) {
	const prefix = "event_"
	if !strings.HasPrefix(args, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(args[len(prefix):], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleDialogMessage routes a message into the active dialogue step.
func handleDialogMessage(bot botAPI, repo Repository, sessions *SessionStore, msg *tgbotapi.Message, sess *Session) {
	switch sess.Step {
	case StepName:
		handleNameStep(bot, msg, sess)
	case StepDescription:
		handleDescriptionStep(bot, repo, msg, sess)
	case StepPrice:
		handlePriceStep(bot, repo, msg, sess)
	case StepAddress:
		handleAddressStep(bot, repo, msg, sess)
	case StepMaxParticipants:
		handleMaxStep(bot, msg, sess)
	case StepDate:
		handleDateStep(bot, repo, msg, sess)
	case StepTime:
		handleTimeStep(bot, repo, msg, sess)
	case StepPoster:
		handlePosterStep(bot, repo, sessions, msg, sess)
	case StepEditValue:
		handleEditValue(bot, repo, sessions, msg, sess)
	}
}
