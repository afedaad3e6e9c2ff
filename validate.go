package main

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Validators for the typed dialogue fields. Each returns a normalized
// value or an error; on error the dialogue re-prompts without advancing.

var (
	errBadPrice = errors.New("price must be a number >= 0")
	errBadCount = errors.New("count must be a positive integer")
	errBadDate  = errors.New("date must be a valid DD.MM")
	errBadTime  = errors.New("time must be HH:MM")
)

// ParsePrice parses a non-negative ticket price.
func ParsePrice(text string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || price < 0 {
		return 0, errBadPrice
	}
	return price, nil
}

// ParseCount parses a positive participant limit.
func ParseCount(text string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || count <= 0 {
		return 0, errBadCount
	}
	return count, nil
}

// ParseDate parses "DD.MM" (day first) and combines it with the current
// year. A date strictly before today rolls over to next year. The result
// is a normalized YYYY-MM-DD string.
func ParseDate(text string, now time.Time) (string, error) {
	parts := strings.Split(strings.TrimSpace(text), ".")
	if len(parts) != 2 {
		return "", errBadDate
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", errBadDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", errBadDate
	}

	dt, err := exactDate(now.Year(), month, day, now.Location())
	if err != nil {
		return "", err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dt.Before(today) {
		dt, err = exactDate(now.Year()+1, month, day, now.Location())
		if err != nil {
			return "", err
		}
	}
	return dt.Format("2006-01-02"), nil
}

// exactDate builds a date and rejects impossible day/month combinations,
// which time.Date would otherwise silently normalize.
func exactDate(year, month, day int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, errBadDate
	}
	dt := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if dt.Day() != day || dt.Month() != time.Month(month) {
		return time.Time{}, errBadDate
	}
	return dt, nil
}

// ParseTime parses a strict 24-hour HH:MM time of day and returns it
// zero-padded.
func ParseTime(text string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(text))
	if err != nil {
		return "", errBadTime
	}
	return t.Format("15:04"), nil
}

// dashRunes are the dash variants accepted as the poster skip marker.
var dashRunes = map[rune]bool{
	'-':      true,
	'—': true, // em dash
	'–': true, // en dash
	'−': true, // minus sign
	'‑': true, // non-breaking hyphen
}

// IsSkipMarker reports whether the text consists solely of dash-like
// characters, which the poster step treats as an explicit skip.
func IsSkipMarker(text string) bool {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !dashRunes[r] {
			return false
		}
	}
	return true
}

// formatPrice renders a price without trailing zeros, the way it is
// echoed back in prompts and cards.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
