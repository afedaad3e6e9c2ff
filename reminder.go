package main

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

const (
	reminderWindowMinutes = 2
	reminderInterval      = 60 * time.Second
)

type reminderKey struct {
	EventID int64
	UserID  int64
}

// reminderLedger tracks which (event, recipient) pairs have already been
// reminded today. The day rollover is an explicit transition: the set is
// reset the first time a tick observes a new calendar day. The ledger is
// in-memory only, so a restart inside the window may repeat a reminder —
// an accepted limitation.
type reminderLedger struct {
	day  string
	sent map[reminderKey]struct{}
}

func newReminderLedger() *reminderLedger {
	return &reminderLedger{sent: make(map[reminderKey]struct{})}
}

// rollover resets the sent-set when the observed day changes and reports
// whether a reset happened.
func (l *reminderLedger) rollover(day string) bool {
	if l.day == day {
		return false
	}
	l.day = day
	l.sent = make(map[reminderKey]struct{})
	return true
}

func (l *reminderLedger) alreadySent(k reminderKey) bool {
	_, ok := l.sent[k]
	return ok
}

func (l *reminderLedger) markSent(k reminderKey) {
	l.sent[k] = struct{}{}
}

// inReminderWindow reports whether now falls within ±window minutes of
// the daily reminder time (HH:MM).
func inReminderWindow(now time.Time, reminderAt string, windowMinutes int) bool {
	at, err := time.Parse("15:04", reminderAt)
	if err != nil {
		return false
	}
	target := at.Hour()*60 + at.Minute()
	current := now.Hour()*60 + now.Minute()
	diff := current - target
	if diff < 0 {
		diff = -diff
	}
	return diff <= windowMinutes
}

// Reminder is the background scheduler sending same-day event reminders
// at most once per (event, recipient) per day.
type Reminder struct {
	bot    botAPI
	repo   Repository
	logger *zap.Logger
	at     string // HH:MM
	ledger *reminderLedger
	now    func() time.Time
}

func NewReminder(bot botAPI, repo Repository, logger *zap.Logger, at string) *Reminder {
	return &Reminder{
		bot:    bot,
		repo:   repo,
		logger: logger.Named("reminder"),
		at:     at,
		ledger: newReminderLedger(),
		now:    time.Now,
	}
}

// Run polls until the context is cancelled. Tick errors never stop the
// loop.
func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(reminderInterval)
	defer ticker.Stop()

	r.logger.Info("reminder loop started", zap.String("at", r.at))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reminder loop stopped")
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

// tick performs one scan. Delivery failures are swallowed per recipient
// and the recipient is still marked, keeping the policy at-most-once.
func (r *Reminder) tick() {
	now := r.now()
	day := now.Format("2006-01-02")
	if r.ledger.rollover(day) {
		r.logger.Debug("reminder ledger reset", zap.String("day", day))
	}
	if !inReminderWindow(now, r.at, reminderWindowMinutes) {
		return
	}

	targets, err := r.repo.TodayReminderTargets(day)
	if err != nil {
		r.logger.Error("reminder scan failed", zap.Error(err))
		return
	}

	for _, target := range targets {
		key := reminderKey{EventID: target.Event.ID, UserID: target.UserID}
		if r.ledger.alreadySent(key) {
			continue
		}
		if err := r.send(target); err != nil {
			r.logger.Warn("reminder delivery failed",
				zap.Int64("event_id", target.Event.ID),
				zap.Int64("user_id", target.UserID),
				zap.Error(err))
		}
		r.ledger.markSent(key)
	}
}

func (r *Reminder) send(target ReminderTarget) error {
	text := fmt.Sprintf("Напоминаем о событии сегодня!\n\n%s",
		formatEventText(&target.Event, false))
	message := tgbotapi.NewMessage(target.UserID, text)
	message.ParseMode = tgbotapi.ModeHTML
	message.ReplyMarkup = reminderKeyboard(target.Event.ID)
	_, err := r.bot.Send(message)
	return err
}

// handleReminderUnsubscribe removes the registration behind a reminder,
// same operation as the card cancel control.
func handleReminderUnsubscribe(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery, eventID int64) {
	userID := int64(cq.From.ID)
	if err := repo.DeleteRegistration(eventID, userID); err != nil {
		answerAlert(bot, cq.ID, "Ошибка при отписке")
		return
	}

	ev, err := repo.GetEvent(eventID)
	if err != nil || ev == nil {
		answerAlert(bot, cq.ID, "Ивент не найден")
		return
	}

	addAuditLog(repo, userID, displayName(cq.From), cq.From.UserName,
		fmt.Sprintf("Отписка от напоминания на ивент «%s»", ev.Name))

	renderCardEdit(bot, repo, cq, ev)
	answerCallback(bot, cq.ID, "Вы отписались")
}

// handleReminderDisable turns off all reminders for the user.
func handleReminderDisable(bot botAPI, repo Repository, cq *tgbotapi.CallbackQuery) {
	userID := int64(cq.From.ID)
	if err := repo.SetNotification(userID, false); err != nil {
		answerAlert(bot, cq.ID, "Не удалось выключить уведомления")
		return
	}
	addAuditLog(repo, userID, displayName(cq.From), cq.From.UserName,
		"Отключение уведомлений")
	answerCallback(bot, cq.ID, "Уведомления выключены")
}
