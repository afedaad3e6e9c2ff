package main

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Autofill: after an event is persisted, its price, address, capacity
// and time become one-tap defaults for the next creation dialogue.
// Name, description and date are always entered fresh.
//
// Acceptance is signalled by a dedicated callback action per field, not
// by comparing typed text against the button label.

// autofillPriceButton returns the quick-choice control for the price
// prompt, or nil when no previous event exists or the field is empty.
func autofillPriceButton(last *Event) *tgbotapi.InlineKeyboardButton {
	if last == nil || !last.Price.Valid {
		return nil
	}
	b := tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("💰 %s", formatPrice(last.Price.Float64)), actionPriceFill)
	return &b
}

func autofillAddressButton(last *Event) *tgbotapi.InlineKeyboardButton {
	if last == nil || !last.Address.Valid || last.Address.String == "" {
		return nil
	}
	b := tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("🏠 %s", last.Address.String), actionAddressFill)
	return &b
}

func autofillMaxButton(last *Event) *tgbotapi.InlineKeyboardButton {
	if last == nil || !last.MaxParticipants.Valid || last.MaxParticipants.Int64 <= 0 {
		return nil
	}
	b := tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("👥 %d", last.MaxParticipants.Int64), actionMaxFill)
	return &b
}

func autofillTimeButton(last *Event) *tgbotapi.InlineKeyboardButton {
	if last == nil || last.EventTime == "" {
		return nil
	}
	b := tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("⏰ %s", last.EventTime), actionTimeFill)
	return &b
}
