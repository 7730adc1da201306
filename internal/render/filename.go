package render

import (
	"fmt"
	"regexp"
	"time"

	"github.com/carefoundry/intake-server/internal/extract"
)

var nonDigits = regexp.MustCompile(`\D`)

// PlanFileName builds the delivery name for a care plan document, e.g.
// "Support Plan - Jordan Lee 1990 - 430123.docx". The year comes from the
// date of birth when one can be found, otherwise the current year; the
// client id is the first six digits of the NDIS number (right-padded with
// zeros when shorter), or a time-of-day stamp when the number is absent.
func PlanFileName(prefix string, f extract.Fields, ext string, now time.Time) string {
	name := extract.DisplayName(f[extract.KeyFirstName], f[extract.KeySurname])
	if name == "" {
		name = "test test"
	}

	year := extract.BirthYear(f[extract.KeyDateOfBirth])
	if year == "" {
		year = now.Format("2006")
	}

	id := nonDigits.ReplaceAllString(f[extract.KeyNDISNumber], "")
	switch {
	case len(id) >= 6:
		id = id[:6]
	case len(id) > 0:
		for len(id) < 6 {
			id += "0"
		}
	default:
		id = now.Format("150405")
	}

	return fmt.Sprintf("%s - %s %s - %s%s", prefix, name, year, id, ext)
}
