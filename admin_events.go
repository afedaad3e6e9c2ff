package main

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	qrcode "github.com/skip2/go-qrcode"
)

// formatAdminEventText renders the admin card body, which also shows the
// participant limit.
func formatAdminEventText(ev *Event) string {
	price := "-"
	if ev.Price.Valid {
		price = formatPrice(ev.Price.Float64)
	}
	address := "-"
	if ev.Address.Valid && ev.Address.String != "" {
		address = html.EscapeString(ev.Address.String)
	}
	max := "без ограничений"
	if ev.MaxParticipants.Valid {
		max = fmt.Sprintf("%d", ev.MaxParticipants.Int64)
	}
	return fmt.Sprintf(
		"🎬 <b>%s</b>\n📝 %s\n\n💰 Цена: %s\n🏠 Адрес: %s\n👥 Макс: %s\n📅 %s ⏰ %s",
		html.EscapeString(ev.Name), html.EscapeString(ev.Description),
		price, address, max, ev.EventDate, ev.EventTime)
}

// showFutureEventsAdmin lists upcoming events, one admin card each.
func showFutureEventsAdmin(bot botAPI, repo Repository, chatID int64) {
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
		ev := &events[i]
		kb := adminEventKeyboard(ev.ID)
		sendHTML(bot, chatID, formatAdminEventText(ev), &kb)
	}
}

// handleEventEditMenu swaps the card keyboard for the per-field edit menu.
func handleEventEditMenu(bot botAPI, cq *tgbotapi.CallbackQuery, eventID int64) {
	bot.Send(tgbotapi.NewEditMessageReplyMarkup(
		cq.Message.Chat.ID, cq.Message.MessageID, editFieldsKeyboard(eventID)))
	answerCallback(bot, cq.ID, "")
}

// handleEventBack restores the main admin card keyboard.
func handleEventBack(bot botAPI, cq *tgbotapi.CallbackQuery, eventID int64) {
	bot.Send(tgbotapi.NewEditMessageReplyMarkup(
		cq.Message.Chat.ID, cq.Message.MessageID, adminEventKeyboard(eventID)))
	answerCallback(bot, cq.ID, "")
}

// handleEventUsers lists the registration snapshots for the event.
func handleEventUsers(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery, eventID int64) {
	regs, err := repo.EventParticipants(eventID)
	if err != nil {
		answerAlert(bot, cq.ID, "Ошибка получения участников")
		return
	}
	if len(regs) == 0 {
		sendMessage(bot, cq.Message.Chat.ID, "👥 Участников пока нет.")
		answerCallback(bot, cq.ID, "")
		return
	}
	var b strings.Builder
	b.WriteString("👥 Участники:")
	for _, reg := range regs {
		nick := reg.UserNickname
		if nick == "" {
			nick = "без ника"
		}
		fmt.Fprintf(&b, "\n• %s (%s)", reg.UserName, nick)
	}
	sendMessage(bot, cq.Message.Chat.ID, b.String())
	answerCallback(bot, cq.ID, "")
}

// handleEventDelete asks for confirmation before the soft delete.
func handleEventDelete(bot botAPI, cq *tgbotapi.CallbackQuery, eventID int64) {
	sendMessageWithKeyboard(bot, cq.Message.Chat.ID,
		"⚠️ Ты уверен, что хочешь удалить этот ивент?", deleteConfirmKeyboard(eventID))
	answerCallback(bot, cq.ID, "")
}

func handleEventDeleteYes(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery, eventID int64) {
	if err := repo.MarkEventDeleted(eventID); err != nil {
		answerAlert(bot, cq.ID, "Не удалось удалить ивент")
		return
	}
	sendMessage(bot, cq.Message.Chat.ID, "🗑 Ивент удалён.")
	answerCallback(bot, cq.ID, "")
}

func handleEventDeleteNo(bot botAPI, cq *tgbotapi.CallbackQuery) {
	sendMessage(bot, cq.Message.Chat.ID, "❎ Удаление отменено.")
	answerCallback(bot, cq.ID, "")
}

// handleEventQR sends a QR code of the deep link t.me/<bot>?start=event_<id>
// so a printed poster can point straight at the event card.
func handleEventQR(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery, botName string, eventID int64) {
	ev, err := repo.GetEvent(eventID)
	if err != nil || ev == nil {
		answerAlert(bot, cq.ID, "Ивент не найден")
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=event_%d", botName, eventID)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		answerAlert(bot, cq.ID, "Ошибка генерации QR-кода")
		return
	}

	photo := tgbotapi.NewPhotoUpload(cq.Message.Chat.ID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("event_%d_qr.png", eventID),
		Bytes: png,
	})
	photo.Caption = fmt.Sprintf("QR-код ивента «%s»", ev.Name)
	bot.Send(photo)
	answerCallback(bot, cq.ID, "")
}
