package main

import (
	"fmt"
	"strings"
	"time"
)

const icsEventDuration = 120 * time.Minute

// escapeICSText applies the iCalendar textual escaping rule to a value.
func escapeICSText(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return replacer.Replace(value)
}

func icsDescription(ev *Event) string {
	var parts []string
	if ev.Description != "" {
		parts = append(parts, ev.Description)
	}
	if ev.Price.Valid {
		parts = append(parts, fmt.Sprintf("Цена: %s", formatPrice(ev.Price.Float64)))
	}
	return escapeICSText(strings.Join(parts, "\n"))
}

// BuildEventICS renders a single-event calendar payload. The UID is
// stable: it derives from the event id and start timestamp, so a
// re-export of an unchanged event produces the same identifier.
func BuildEventICS(ev *Event, now time.Time) (string, []byte, error) {
	start, err := time.Parse("2006-01-02 15:04", ev.EventDate+" "+ev.EventTime)
	if err != nil {
		return "", nil, fmt.Errorf("event %d has malformed date/time: %w", ev.ID, err)
	}
	end := start.Add(icsEventDuration)

	dtStamp := now.UTC().Format("20060102T150405Z")
	dtStart := start.Format("20060102T150405")
	dtEnd := end.Format("20060102T150405")
	uid := fmt.Sprintf("%d-%s@fm_bot", ev.ID, dtStart)

	location := ""
	if ev.Address.Valid {
		location = ev.Address.String
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//fm_bot//event calendar//RU",
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + dtStamp,
		"DTSTART:" + dtStart,
		"DTEND:" + dtEnd,
		"SUMMARY:" + escapeICSText(ev.Name),
		"DESCRIPTION:" + icsDescription(ev),
		"LOCATION:" + escapeICSText(location),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	content := strings.Join(lines, "\r\n") + "\r\n"
	filename := fmt.Sprintf("event_%d.ics", ev.ID)
	return filename, []byte(content), nil
}
