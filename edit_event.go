package main

import (
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// EditableField is the closed set of event columns the edit dialogue may
// target. Field identifiers from callbacks are mapped onto this set and
// never reach the storage layer as raw strings.
type EditableField int

const (
	EditName EditableField = iota
	EditDescription
	EditPrice
	EditAddress
	EditMaxParticipants
	EditDate
	EditTime
)

var errEmptyText = errors.New("text must not be empty")

// editActionFields maps edit-start callback actions to fields.
var editActionFields = map[string]EditableField{
	actionEditName:        EditName,
	actionEditDescription: EditDescription,
	actionEditPrice:       EditPrice,
	actionEditAddress:     EditAddress,
	actionEditMax:         EditMaxParticipants,
	actionEditDate:        EditDate,
	actionEditTime:        EditTime,
}

// Prompt is the question shown when the field is selected for editing.
func (f EditableField) Prompt() string {
	switch f {
	case EditName:
		return "🎬 Введите новое название:"
	case EditDescription:
		return "📝 Введите новое описание:"
	case EditPrice:
		return "💰 Введите новую цену:"
	case EditAddress:
		return "🏠 Введите новый адрес:"
	case EditMaxParticipants:
		return "👥 Введите новое максимальное количество участников:"
	case EditDate:
		return "📅 Введите новую дату в формате DD.MM:"
	case EditTime:
		return "⏰ Введите новое время в формате HH:MM:"
	}
	return ""
}

// warning is the re-prompt shown on invalid input.
func (f EditableField) warning() string {
	switch f {
	case EditPrice:
		return "⚠️ Введите корректную цену (число ≥ 0). Попробуйте снова:"
	case EditMaxParticipants:
		return "⚠️ Введите целое положительное число:"
	case EditDate:
		return "⚠️ Неверный формат даты. Используйте DD.MM:"
	case EditTime:
		return "⚠️ Неверный формат времени. Используйте HH:MM:"
	default:
		return "⚠️ Текст не должен быть пустым. Попробуйте снова:"
	}
}

// Validate applies the field-specific rule to raw text and returns the
// value to store.
func (f EditableField) Validate(text string, now time.Time) (any, error) {
	switch f {
	case EditPrice:
		return ParsePrice(text)
	case EditMaxParticipants:
		return ParseCount(text)
	case EditDate:
		return ParseDate(text, now)
	case EditTime:
		return ParseTime(text)
	default:
		if strings.TrimSpace(text) == "" {
			return nil, errEmptyText
		}
		return text, nil
	}
}

// startFieldEdit begins the single-field edit dialogue from an edit-menu
// callback. Any prior session of the actor is discarded.
func startFieldEdit(bot botAPI, repo Repository, sessions *SessionStore,
	cq *tgbotapi.CallbackQuery, field EditableField, eventID int64) {
	event, err := repo.GetEvent(eventID)
	if err != nil || event == nil {
		answerAlert(bot, cq.ID, "Ивент не найден")
		return
	}

	chatID := cq.Message.Chat.ID
	sess := sessions.Start(chatID, int64(cq.From.ID))
	sess.Step = StepEditValue
	sess.EditEventID = eventID
	sess.EditField = field

	sendMessageWithKeyboard(bot, chatID, field.Prompt(), cancelKeyboard())
	answerCallback(bot, cq.ID, "")
}

// handleEditValue consumes the next message of an edit session: validate,
// update exactly one column, clear the session. On failure the session is
// kept and the same prompt is repeated.
func handleEditValue(bot botAPI, repo Repository, sessions *SessionStore,
	msg *tgbotapi.Message, sess *Session) {
	chatID := msg.Chat.ID
	value, err := sess.EditField.Validate(msg.Text, time.Now())
	if err != nil {
		sendMessageWithKeyboard(bot, chatID, sess.EditField.warning(), cancelKeyboard())
		return
	}

	event, err := repo.GetEvent(sess.EditEventID)
	if err != nil || event == nil {
		sendMessage(bot, chatID, "Ивент не найден")
		sessions.Clear(chatID, int64(msg.From.ID))
		return
	}

	if err := repo.UpdateEventField(sess.EditEventID, sess.EditField, value); err != nil {
		sendMessage(bot, chatID, "Не удалось сохранить изменение, попробуйте ещё раз")
		return
	}
	sessions.Clear(chatID, int64(msg.From.ID))
	sendMessage(bot, chatID, "✅ Поле обновлено.")
}
