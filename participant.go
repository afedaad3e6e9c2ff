package main

import (
	"fmt"
	"html"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// formatEventText renders the participant-facing card body.
func formatEventText(ev *Event, isFull bool) string {
	price := "-"
	if ev.Price.Valid {
		price = formatPrice(ev.Price.Float64)
	}
	address := "-"
	if ev.Address.Valid && ev.Address.String != "" {
		address = html.EscapeString(ev.Address.String)
	}
	warning := ""
	if isFull {
		warning = "\n⚠️ Мест нет"
	}
	return fmt.Sprintf(
		"🎬 <b>%s</b>\n📝 %s\n\n💰 Цена: %s\n🏠 Адрес: %s\n📅 %s ⏰ %s%s",
		html.EscapeString(ev.Name), html.EscapeString(ev.Description),
		price, address, ev.EventDate, ev.EventTime, warning)
}

// buildEventCard composes the card for one viewer from the event row,
// the viewer id and the live registration count.
func buildEventCard(repo Repository, ev *Event, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	count, err := repo.CountRegistrations(ev.ID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	registered, err := repo.IsRegistered(ev.ID, userID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	isFull := ev.IsFull(count)
	return formatEventText(ev, isFull), participantCardKeyboard(ev.ID, registered, isFull), nil
}

// sendEventCard sends the card, attaching the poster when one exists.
func sendEventCard(bot botAPI, repo Repository, chatID, userID int64, ev *Event) {
	text, kb, err := buildEventCard(repo, ev, userID)
	if err != nil {
		sendMessage(bot, chatID, "Ошибка получения информации о событии")
		return
	}
	if posterExists(ev.ID) {
		photo := tgbotapi.NewPhotoUpload(chatID, posterPath(ev.ID))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = kb
		bot.Send(photo)
		return
	}
	sendHTML(bot, chatID, text, &kb)
}

// showEventCard resolves an event id (deep-link path) and shows its card.
func showEventCard(bot botAPI, repo Repository, chatID, userID int64, eventID int64) {
	ev, err := repo.GetEvent(eventID)
	if err != nil || ev == nil {
		sendMessage(bot, chatID, "Ивент не найден")
		return
	}
	sendEventCard(bot, repo, chatID, userID, ev)
}

// sendNearestEvent shows the soonest upcoming event plus the reply menu.
func sendNearestEvent(bot botAPI, repo Repository, chatID, userID int64) {
	events, err := repo.FutureEvents(today())
	menu := participantMenu(repo, userID)
	if err != nil || len(events) == 0 {
		sendMenu(bot, chatID, "📭 Будущих ивентов пока нет.", menu)
		return
	}
	sendEventCard(bot, repo, chatID, userID, &events[0])
	sendMenu(bot, chatID, "Выберите, что хотите посмотреть:", menu)
}

func participantMenu(repo Repository, userID int64) tgbotapi.ReplyKeyboardMarkup {
	on, err := repo.NotificationEnabled(userID)
	if err != nil {
		on = true
	}
	return participantMenuKeyboard(on)
}

func showAllEvents(bot botAPI, repo Repository, chatID, userID int64) {
	events, err := repo.FutureEvents(today())
	if err != nil {
		sendMessage(bot, chatID, "Ошибка получения списка ивентов")
		return
	}
	if len(events) == 0 {
		sendMessage(bot, chatID, "📭 Будущих ивентов пока нет.")
		return
	}
	for i := range events {
		sendEventCard(bot, repo, chatID, userID, &events[i])
	}
}

func showUserEvents(bot botAPI, repo Repository, chatID, userID int64) {
	events, err := repo.UserFutureEvents(userID, today())
	if err != nil {
		sendMessage(bot, chatID, "Ошибка получения списка ивентов")
		return
	}
	if len(events) == 0 {
		sendMessage(bot, chatID, "📭 Пока нет ивентов, в которых вы участвуете.")
		return
	}
	for i := range events {
		sendEventCard(bot, repo, chatID, userID, &events[i])
	}
}

func toggleNotifications(bot botAPI, repo Repository, chatID, userID int64, enable bool) {
	if err := repo.SetNotification(userID, enable); err != nil {
		sendMessage(bot, chatID, "Не удалось обновить настройку напоминаний")
		return
	}
	status := "Напоминания выключены ✅"
	if enable {
		status = "Напоминания включены ✅"
	}
	sendMenu(bot, chatID, status, participantMenuKeyboard(enable))
}

// addAuditLog appends an audit entry stamped with the current date/time.
func addAuditLog(repo Repository, userID int64, userName, userNickname, description string) {
	now := time.Now()
	repo.AddLog(LogEntry{
		UserID:       userID,
		UserName:     userName,
		UserNickname: userNickname,
		Description:  description,
		LogDate:      now.Format("2006-01-02"),
		LogTime:      now.Format("15:04:05"),
	})
}

// renderCardEdit refreshes the card message a callback originated from.
func renderCardEdit(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery, ev *Event) {
	text, kb, err := buildEventCard(repo, ev, int64(cq.From.ID))
	if err != nil {
		return
	}
	editMessageHTML(bot, cq.Message.Chat.ID, cq.Message.MessageID, text, kb)
}

// handleUserRegister performs the idempotent sign-up. A full event is
// re-rendered without mutation; a duplicate tap is a no-op beyond the
// re-render.
func handleUserRegister(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery, eventID int64) {
	ev, err := repo.GetEvent(eventID)
	if err != nil || ev == nil {
		answerAlert(bot, cq.ID, "Ивент не найден")
		return
	}

	count, err := repo.CountRegistrations(eventID)
	if err != nil {
		answerAlert(bot, cq.ID, "Ошибка проверки регистрации")
		return
	}
	if ev.IsFull(count) {
		renderCardEdit(bot, repo, cq, ev)
		answerCallback(bot, cq.ID, "Мест нет")
		return
	}

	userID := int64(cq.From.ID)
	registered, err := repo.IsRegistered(eventID, userID)
	if err != nil {
		answerAlert(bot, cq.ID, "Ошибка проверки регистрации")
		return
	}
	if !registered {
		name := displayName(cq.From)
		nickname := cq.From.UserName
		if err := repo.AddRegistration(Registration{
			EventID:      eventID,
			UserID:       userID,
			EventName:    ev.Name,
			UserName:     name,
			UserNickname: nickname,
		}); err != nil {
			answerAlert(bot, cq.ID, "Ошибка при регистрации")
			return
		}
		addAuditLog(repo, userID, name, nickname,
			fmt.Sprintf("Регистрация на ивент «%s»", ev.Name))
	}

	renderCardEdit(bot, repo, cq, ev)
	answerCallback(bot, cq.ID, "Записано")
}

// handleUserCancel removes any registration for the pair. Cancelling a
// registration that does not exist succeeds silently.
func handleUserCancel(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery, eventID int64) {
	userID := int64(cq.From.ID)
	if err := repo.DeleteRegistration(eventID, userID); err != nil {
		answerAlert(bot, cq.ID, "Ошибка при отмене регистрации")
		return
	}

	ev, err := repo.GetEvent(eventID)
	if err != nil || ev == nil {
		answerAlert(bot, cq.ID, "Ивент не найден")
		return
	}

	addAuditLog(repo, userID, displayName(cq.From), cq.From.UserName,
		fmt.Sprintf("Отмена регистрации на ивент «%s»", ev.Name))

	renderCardEdit(bot, repo, cq, ev)
	answerCallback(bot, cq.ID, "Регистрация отменена")
}

// handleUserICS sends the single-event calendar file.
func handleUserICS(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery, eventID int64) {
	ev, err := repo.GetEvent(eventID)
	if err != nil || ev == nil {
		answerAlert(bot, cq.ID, "Ивент не найден")
		return
	}

	filename, content, err := BuildEventICS(ev, time.Now())
	if err != nil {
		answerAlert(bot, cq.ID, "Не удалось сформировать файл календаря")
		return
	}

	doc := tgbotapi.NewDocumentUpload(cq.Message.Chat.ID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: content,
	})
	doc.Caption = "📅 Файл календаря"
	bot.Send(doc)
	answerCallback(bot, cq.ID, "")
}
