package main

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Callback actions. Payloads are colon-delimited: the action name,
// then positional arguments (commonly an event id).
const (
	actionCancelEvent = "cancel_event"

	actionPriceFill   = "price_fill"
	actionAddressFill = "address_fill"
	actionMaxFill     = "max_fill"
	actionTimeFill    = "time_fill"

	actionEventEdit      = "event_edit"
	actionEventBack      = "event_back"
	actionEventUsers     = "event_users"
	actionEventDelete    = "event_delete"
	actionEventDeleteYes = "event_delete_yes"
	actionEventDeleteNo  = "event_delete_no"
	actionEventQR        = "event_qr"

	actionEditName        = "event_edit_name"
	actionEditDescription = "event_edit_description"
	actionEditPrice       = "event_edit_price"
	actionEditAddress     = "event_edit_address"
	actionEditMax         = "event_edit_max"
	actionEditDate        = "event_edit_date"
	actionEditTime        = "event_edit_time"

	actionUserRegister = "user_register"
	actionUserCancel   = "user_cancel"
	actionUserICS      = "user_ics"

	actionReminderUnsubscribe = "reminder_unsubscribe"
	actionReminderDisable     = "reminder_disable_notifications"
)

// Participant reply-menu labels.
const (
	menuMyEvents       = "Ивенты, в которых я участвую"
	menuAllEvents      = "Все ивенты"
	menuEnableReminds  = "Включить напоминания"
	menuDisableReminds = "Выключить напоминания"
)

// Admin reply-menu labels.
const (
	menuNewEvent     = "Новый ивент"
	menuFutureEvents = "Посмотреть все будущие ивенты"
)

func callbackData(action string, eventID int64) string {
	return fmt.Sprintf("%s:%d", action, eventID)
}

func cancelButton() tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", actionCancelEvent)
}

// cancelKeyboard is the bare prompt keyboard: cancellation only.
func cancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(cancelButton()))
}

// promptKeyboard builds a dialogue prompt keyboard, optionally with an
// autofill quick-choice row above the cancel row.
func promptKeyboard(fill *tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	if fill == nil {
		return cancelKeyboard()
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(*fill),
		tgbotapi.NewInlineKeyboardRow(cancelButton()),
	)
}

func adminMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(menuNewEvent)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(menuFutureEvents)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func participantMenuKeyboard(notificationOn bool) tgbotapi.ReplyKeyboardMarkup {
	toggle := menuEnableReminds
	if notificationOn {
		toggle = menuDisableReminds
	}
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(menuMyEvents)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(menuAllEvents)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(toggle)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// participantCardKeyboard selects the single primary control from the
// viewer's registration state: cancel if registered, register if open,
// nothing if full. The calendar export control is always present.
func participantCardKeyboard(eventID int64, registered, isFull bool) tgbotapi.InlineKeyboardMarkup {
	calendar := tgbotapi.NewInlineKeyboardButtonData(
		"📅 Добавить в календарь (.ics)", callbackData(actionUserICS, eventID))
	switch {
	case registered:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
				"❌ Отменить регистрацию", callbackData(actionUserCancel, eventID))),
			tgbotapi.NewInlineKeyboardRow(calendar),
		)
	case isFull:
		return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(calendar))
	default:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
				"✅ Записаться", callbackData(actionUserRegister, eventID))),
			tgbotapi.NewInlineKeyboardRow(calendar),
		)
	}
}

func adminEventKeyboard(eventID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"✏️ Редактировать", callbackData(actionEventEdit, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"👥 Просмотреть участников", callbackData(actionEventUsers, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"🔗 QR-код", callbackData(actionEventQR, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"🗑 Удалить", callbackData(actionEventDelete, eventID))),
	)
}

func editFieldsKeyboard(eventID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"← Назад", callbackData(actionEventBack, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"🎬 Название", callbackData(actionEditName, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"📝 Описание", callbackData(actionEditDescription, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"💰 Цена", callbackData(actionEditPrice, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"🏠 Адрес", callbackData(actionEditAddress, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"👥 Макс. участников", callbackData(actionEditMax, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"📅 Дата", callbackData(actionEditDate, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"⏰ Время", callbackData(actionEditTime, eventID))),
	)
}

func deleteConfirmKeyboard(eventID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"✅ Да", callbackData(actionEventDeleteYes, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"❌ Нет", callbackData(actionEventDeleteNo, eventID))),
	)
}

func reminderKeyboard(eventID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"Отписаться", callbackData(actionReminderUnsubscribe, eventID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			"Выключить уведомления", actionReminderDisable)),
	)
}
