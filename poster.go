package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// picsDir holds event posters, one file per event id. Set from config at
// startup.
var picsDir = "./pics"

func posterPath(eventID int64) string {
	return filepath.Join(picsDir, fmt.Sprintf("%d.png", eventID))
}

func posterExists(eventID int64) bool {
	_, err := os.Stat(posterPath(eventID))
	return err == nil
}

// handlePosterStep finishes the creation dialogue: a photo is stored
// under the event id, a dash-only text skips (removing any stale poster
// file), anything else re-prompts. Both accepted branches end the
// dialogue with the success summary.
func handlePosterStep(bot botAPI, repo Repository, sessions *SessionStore, msg *tgbotapi.Message, sess *Session) {
	chatID := msg.Chat.ID

	switch {
	case msg.Photo != nil && len(*msg.Photo) > 0:
		if err := savePoster(bot, msg, sess.EventID); err != nil {
			sendMessageWithKeyboard(bot, chatID,
				"⚠️ Не удалось сохранить афишу. Попробуйте ещё раз или отправьте «-»:",
				cancelKeyboard())
			return
		}
	case msg.Text != "" && IsSkipMarker(msg.Text):
		os.Remove(posterPath(sess.EventID))
	default:
		sendMessageWithKeyboard(bot, chatID,
			"⚠️ Отправьте картинку или «-», если хотите пропустить.", cancelKeyboard())
		return
	}

	sendMessage(bot, chatID, creationSummary(sess.Draft))
	sessions.Clear(chatID, int64(msg.From.ID))
}

// savePoster downloads the largest size of the attached photo into the
// per-event poster path.
func savePoster(bot botAPI, msg *tgbotapi.Message, eventID int64) error {
	photos := *msg.Photo
	fileID := photos[len(photos)-1].FileID

	url, err := bot.GetFileDirectURL(fileID)
	if err != nil {
		return fmt.Errorf("resolve file url: %w", err)
	}
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("download poster: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download poster: status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(picsDir, 0o755); err != nil {
		return err
	}
	out, err := os.Create(posterPath(eventID))
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(posterPath(eventID))
		return err
	}
	return nil
}
