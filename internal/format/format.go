// Package format renders rupiah amounts and concert dates the way the
// Indonesian storefront displays them.  Values are presentational only.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is the layout of catalog dates.
const DateLayout = "2006-01-02"

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats an amount in whole rupiah, e.g. 350000 → "Rp 350.000".
func Rupiah(amount int64) string {
	if amount < 0 {
		return "-Rp " + printer.Sprintf("%d", -amount)
	}
	return "Rp " + printer.Sprintf("%d", amount)
}

var weekdays = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// LongDate renders a YYYY-MM-DD date as "Jumat, 14 Februari 2025".
func LongDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}
	return fmt.Sprintf("%s, %d %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year()), nil
}

// LongDateOr is LongDate falling back to the raw value when it cannot be
// parsed.
func LongDateOr(date string) string {
	s, err := LongDate(date)
	if err != nil {
		return date
	}
	return s
}
