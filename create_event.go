package main

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Event creation dialogue: name → description → price → address →
// max_participants → date → time → poster. Each step stores its
// validated value in the session draft and issues the next prompt; on
// invalid input the step re-prompts without advancing. The row is
// persisted when the time step completes, so the poster step already
// knows the event id.

const (
	promptNameText    = "🎬 Создаём новый ивент!\nВведите название:"
	promptDescText    = "📝 Введите описание ивента:"
	promptPriceText   = "💰 Введите цену билета:"
	promptAddressText = "🏠 Введите адрес проведения:"
	promptMaxText     = "👥 Введите максимальное количество участников:"
	promptDateText    = "📅 Введите дату в формате DD.MM (например, 25.12):"
	promptTimeText    = "⏰ Введите время в формате HH:MM (например, 18:30):"
	promptPosterText  = "🖼️ Отправьте афишу для ивента или пропустите шаг.\n" +
		"Если афиша не нужна — отправьте «-» (подойдут разные тире)."
)

// startNewEvent clears any prior session of the actor and enters the
// name step.
func startNewEvent(bot botAPI, sessions *SessionStore, chatID, userID int64) {
	sess := sessions.Start(chatID, userID)
	sess.Step = StepName
	sendMessageWithKeyboard(bot, chatID, promptNameText, cancelKeyboard())
}

func handleNameStep(bot botAPI, msg *tgbotapi.Message, sess *Session) {
	sess.Draft.Name = msg.Text
	sess.Step = StepDescription
	sendMessageWithKeyboard(bot, msg.Chat.ID, promptDescText, cancelKeyboard())
}

func handleDescriptionStep(bot botAPI, repo Repository, msg *tgbotapi.Message, sess *Session) {
	sess.Draft.Description = msg.Text
	sess.Step = StepPrice
	promptPrice(bot, repo, msg.Chat.ID)
}

func handlePriceStep(bot botAPI, repo Repository, msg *tgbotapi.Message, sess *Session) {
	price, err := ParsePrice(msg.Text)
	if err != nil {
		sendMessageWithKeyboard(bot, msg.Chat.ID,
			"⚠️ Введите корректную цену (число ≥ 0). Попробуйте снова:", cancelKeyboard())
		return
	}
	sess.Draft.Price = price
	sess.Step = StepAddress
	promptAddress(bot, repo, msg.Chat.ID)
}

func handleAddressStep(bot botAPI, repo Repository, msg *tgbotapi.Message, sess *Session) {
	sess.Draft.Address = msg.Text
	sess.Step = StepMaxParticipants
	promptMax(bot, repo, msg.Chat.ID)
}

func handleMaxStep(bot botAPI, msg *tgbotapi.Message, sess *Session) {
	count, err := ParseCount(msg.Text)
	if err != nil {
		sendMessageWithKeyboard(bot, msg.Chat.ID,
			"⚠️ Введите целое положительное число:", cancelKeyboard())
		return
	}
	sess.Draft.MaxParticipants = count
	sess.Step = StepDate
	sendMessageWithKeyboard(bot, msg.Chat.ID, promptDateText, cancelKeyboard())
}

func handleDateStep(bot botAPI, repo Repository, msg *tgbotapi.Message, sess *Session) {
	date, err := ParseDate(msg.Text, time.Now())
	if err != nil {
		sendMessageWithKeyboard(bot, msg.Chat.ID,
			"⚠️ Неверный формат даты. Используйте DD.MM:", cancelKeyboard())
		return
	}
	sess.Draft.Date = date
	sess.Step = StepTime
	promptTime(bot, repo, msg.Chat.ID)
}

func handleTimeStep(bot botAPI, repo Repository, msg *tgbotapi.Message, sess *Session) {
	timeStr, err := ParseTime(msg.Text)
	if err != nil {
		sendMessageWithKeyboard(bot, msg.Chat.ID,
			"⚠️ Неверный формат времени. Используйте HH:MM:", cancelKeyboard())
		return
	}
	sess.Draft.Time = timeStr
	persistDraftAndAskPoster(bot, repo, msg.Chat.ID, sess)
}

// persistDraftAndAskPoster commits the collected draft and enters the
// optional poster step.
func persistDraftAndAskPoster(bot botAPI, repo Repository, chatID int64, sess *Session) {
	eventID, err := repo.CreateEvent(sess.Draft)
	if err != nil {
		sendMessageWithKeyboard(bot, chatID,
			"⚠️ Не удалось сохранить ивент. Попробуйте ещё раз:", cancelKeyboard())
		return
	}
	sess.EventID = eventID
	sess.Step = StepPoster
	sendMessageWithKeyboard(bot, chatID, promptPosterText, cancelKeyboard())
}

// Prompts with autofill controls. Each consults the most recent event
// for a one-tap default.

func promptPrice(bot botAPI, repo Repository, chatID int64) {
	last, _ := repo.LastEvent()
	sendMessageWithKeyboard(bot, chatID, promptPriceText, promptKeyboard(autofillPriceButton(last)))
}

func promptAddress(bot botAPI, repo Repository, chatID int64) {
	last, _ := repo.LastEvent()
	sendMessageWithKeyboard(bot, chatID, promptAddressText, promptKeyboard(autofillAddressButton(last)))
}

func promptMax(bot botAPI, repo Repository, chatID int64) {
	last, _ := repo.LastEvent()
	sendMessageWithKeyboard(bot, chatID, promptMaxText, promptKeyboard(autofillMaxButton(last)))
}

func promptTime(bot botAPI, repo Repository, chatID int64) {
	last, _ := repo.LastEvent()
	sendMessageWithKeyboard(bot, chatID, promptTimeText, promptKeyboard(autofillTimeButton(last)))
}

// creationSummary renders the success message shown when the dialogue
// completes.
func creationSummary(draft EventDraft) string {
	return fmt.Sprintf(
		"✅ Ивент создан!\n\n"+
			"🎬 Название: %s\n"+
			"📝 Описание: %s\n"+
			"💰 Цена: %s\n"+
			"🏠 Адрес: %s\n"+
			"👥 Макс. участников: %d\n"+
			"📅 Дата: %s\n"+
			"⏰ Время: %s",
		draft.Name, draft.Description, formatPrice(draft.Price),
		draft.Address, draft.MaxParticipants, draft.Date, draft.Time)
}

// Autofill accept callbacks. Each requires an active creation session at
// the matching step, stores the previous event's value as if it had been
// typed and validated, and jumps to the next prompt by editing the
// prompt message in place.

func handleFillPrice(bot botAPI, repo Repository, sessions *SessionStore, cq *tgbotapi.CallbackQuery) {
	sess, last, ok := fillContext(bot, repo, sessions, cq, StepPrice)
	if !ok || !last.Price.Valid {
		return
	}
	sess.Draft.Price = last.Price.Float64
	sess.Step = StepAddress
	editMessage(bot, cq.Message.Chat.ID, cq.Message.MessageID,
		promptAddressText, promptKeyboard(autofillAddressButton(last)))
	answerCallback(bot, cq.ID, "")
}

func handleFillAddress(bot botAPI, repo Repository, sessions *SessionStore, cq *tgbotapi.CallbackQuery) {
	sess, last, ok := fillContext(bot, repo, sessions, cq, StepAddress)
	if !ok || !last.Address.Valid {
		return
	}
	sess.Draft.Address = last.Address.String
	sess.Step = StepMaxParticipants
	editMessage(bot, cq.Message.Chat.ID, cq.Message.MessageID,
		promptMaxText, promptKeyboard(autofillMaxButton(last)))
	answerCallback(bot, cq.ID, "")
}

func handleFillMax(bot botAPI, repo Repository, sessions *SessionStore, cq *tgbotapi.CallbackQuery) {
	sess, last, ok := fillContext(bot, repo, sessions, cq, StepMaxParticipants)
	if !ok || !last.MaxParticipants.Valid {
		return
	}
	sess.Draft.MaxParticipants = int(last.MaxParticipants.Int64)
	sess.Step = StepDate
	editMessage(bot, cq.Message.Chat.ID, cq.Message.MessageID,
		promptDateText, cancelKeyboard())
	answerCallback(bot, cq.ID, "")
}

func handleFillTime(bot botAPI, repo Repository, sessions *SessionStore, cq *tgbotapi.CallbackQuery) {
	sess, last, ok := fillContext(bot, repo, sessions, cq, StepTime)
	if !ok || last.EventTime == "" {
		return
	}
	sess.Draft.Time = last.EventTime
	eventID, err := repo.CreateEvent(sess.Draft)
	if err != nil {
		answerAlert(bot, cq.ID, "Не удалось сохранить ивент")
		return
	}
	sess.EventID = eventID
	sess.Step = StepPoster
	editMessage(bot, cq.Message.Chat.ID, cq.Message.MessageID,
		promptPosterText, cancelKeyboard())
	answerCallback(bot, cq.ID, "")
}

// fillContext validates that an autofill callback arrived for an active
// session at the expected step and that a previous event exists. Stale
// taps are rejected with a visible signal and no state change.
func fillContext(bot botAPI, repo Repository, sessions *SessionStore,
	cq *tgbotapi.CallbackQuery, step DialogStep) (*Session, *Event, bool) {
	sess := sessions.Get(cq.Message.Chat.ID, int64(cq.From.ID))
	if sess == nil || sess.Step != step {
		answerCallback(bot, cq.ID, "Недоступно")
		return nil, nil, false
	}
	last, err := repo.LastEvent()
	if err != nil || last == nil {
		answerCallback(bot, cq.ID, "Недоступно")
		return nil, nil, false
	}
	return sess, last, true
}

// handleCancelDialog terminates any dialogue from any state.
func handleCancelDialog(bot botAPI, sessions *SessionStore, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	userID := int64(cq.From.ID)
	text := "❌ Создание ивента отменено."
	if sess := sessions.Get(chatID, userID); sess != nil && sess.Step == StepEditValue {
		text = "❌ Редактирование отменено."
	}
	sessions.Clear(chatID, userID)
	sendMessage(bot, chatID, text)
	answerCallback(bot, cq.ID, "")
}
