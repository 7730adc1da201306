package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/carefoundry/intake-server/internal/refdata"
)

// glyphs are the checkbox/bullet artifacts PDF-to-text conversion leaves in
// front of answers; they are stripped before any comparison or display.
var glyphs = []string{"", "•", "●", "○", "☐", "☑", "✓"}

// StripGlyphs removes checkbox and bullet artifacts and trims the result
func StripGlyphs(s string) string {
	for _, g := range glyphs {
		s = strings.ReplaceAll(s, g, "")
	}
	return strings.TrimSpace(s)
}

// IsYes reports whether a flag value reads as an affirmative answer after
// glyph stripping. Exact "Yes" is the form's own convention; other casings
// are accepted as a fallback.
func IsYes(s string) bool {
	return strings.EqualFold(StripGlyphs(s), "yes")
}

// DisplayName joins the non-empty parts of a first name and surname
func DisplayName(first, surname string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{first, surname} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// EmergencyContactName selects the person to list as emergency contact: the
// primary carer when the "carer is also emergency contact" flag reads yes,
// otherwise the dedicated emergency contact fields.
func EmergencyContactName(f Fields) (first, surname string) {
	flag := strings.ToLower(StripGlyphs(f[KeyCarerIsEmergency]))
	if strings.Contains(flag, "yes") {
		return f[KeyCarerFirstName], f[KeyCarerSurname]
	}
	return f[KeyEmergencyFirstName], f[KeyEmergencySurname]
}

// ContactFields holds the stored contact channels of one person
type ContactFields struct {
	HomePhone   string
	MobilePhone string
	WorkPhone   string
	Email       string
}

// ClientContact collects the client's contact channels from the field map
func ClientContact(f Fields) ContactFields {
	return ContactFields{
		HomePhone:   f[KeyHomePhone],
		MobilePhone: f[KeyMobilePhone],
		WorkPhone:   f[KeyWorkPhone],
		Email:       f[KeyEmail],
	}
}

// CarerContact collects the primary carer's contact channels
func CarerContact(f Fields) ContactFields {
	return ContactFields{
		HomePhone:   f[KeyCarerHomePhone],
		MobilePhone: f[KeyCarerMobilePhone],
		Email:       f[KeyCarerEmail],
	}
}

// SignerContact collects the signatory's contact channels
func SignerContact(f Fields) ContactFields {
	return ContactFields{
		HomePhone:   f[KeySignerHomePhone],
		MobilePhone: f[KeySignerMobilePhone],
		Email:       f[KeySignerEmail],
	}
}

// PreferredContact dereferences a free-text "preferred method of contact"
// answer against a person's stored channels. Method substrings are matched
// in priority order; home phone is the default when nothing matches.
func PreferredContact(method string, c ContactFields) string {
	lower := strings.ToLower(StripGlyphs(method))
	switch {
	case strings.Contains(lower, "home phone"):
		return c.HomePhone
	case strings.Contains(lower, "mobile"):
		return c.MobilePhone
	case strings.Contains(lower, "work phone"):
		return c.WorkPhone
	case strings.Contains(lower, "email"):
		return c.Email
	default:
		return c.HomePhone
	}
}

// EstablishmentFeeEligible reports whether the one-off establishment fee
// applies: the client must be new and receiving 20+ hours of support, both
// flags reading yes after glyph stripping.
func EstablishmentFeeEligible(f Fields) bool {
	return IsYes(f[KeyIsNewClient]) && IsYes(f[KeyIs20HoursClient])
}

// EstablishmentFee prices the establishment fee from the support-item table,
// keyed by the state the representative team maps to, formatted as "$X.XX".
// Ineligible clients are charged nothing.
func EstablishmentFee(f Fields, items *refdata.SupportItemTable) string {
	if !EstablishmentFeeEligible(f) {
		return "$0.00"
	}

	state := refdata.TeamState(StripGlyphs(f[KeyRepresentativeTeam]))
	item := items.Lookup(refdata.EstablishmentFeeItem)
	return FormatPrice(item.Price(state))
}

// FormatPrice normalizes a price cell ("574.91", "$574.91 ", "") into a
// two-decimal dollar amount.
func FormatPrice(raw string) string {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	clean = strings.ReplaceAll(clean, ",", "")
	amount, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return "$0.00"
	}
	return fmt.Sprintf("$%.2f", amount)
}

// SignatoryName resolves the signing person's full name from the answer to
// the person-signing question: the client (with middle name) when the
// participant signs, the carer when the carer signs, the dedicated signer
// fields otherwise.
func SignatoryName(f Fields) string {
	switch strings.ToLower(StripGlyphs(f[KeyPersonSigning])) {
	case "participant":
		parts := make([]string, 0, 3)
		for _, p := range []string{f[KeyFirstName], f[KeyMiddleName], f[KeySurname]} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, " ")
	case "primary carer":
		return DisplayName(f[KeyCarerFirstName], f[KeyCarerSurname])
	default:
		return DisplayName(f[KeySignerFirstName], f[KeySignerSurname])
	}
}

// SignatoryRelationship resolves the signing person's relationship to the
// client.
func SignatoryRelationship(f Fields) string {
	switch strings.ToLower(StripGlyphs(f[KeyPersonSigning])) {
	case "participant":
		return "Participant"
	case "primary carer":
		return f[KeyCarerRelationship]
	default:
		return f[KeySignerRelationship]
	}
}

// SignatoryAddress resolves the signing person's home address
func SignatoryAddress(f Fields) string {
	switch strings.ToLower(StripGlyphs(f[KeyPersonSigning])) {
	case "participant":
		return f[KeyHomeAddress]
	case "primary carer":
		return f[KeyCarerHomeAddress]
	default:
		return f[KeySignerHomeAddress]
	}
}

// SignatoryContact resolves the signing person's preferred contact channel
// value. The client's stated preference drives the choice for every signer;
// the channel is read from whoever is signing.
func SignatoryContact(f Fields) string {
	var c ContactFields
	switch strings.ToLower(StripGlyphs(f[KeyPersonSigning])) {
	case "participant":
		c = ClientContact(f)
	case "primary carer":
		c = CarerContact(f)
	default:
		c = SignerContact(f)
	}
	if v := PreferredContact(f[KeyPreferredContact], c); v != "" {
		return v
	}
	return StripGlyphs(f[KeyPreferredContact])
}

// agencyManagedTypes are the plan management answers under which no external
// plan manager exists; the plan manager fields render blank for these.
var agencyManagedTypes = []string{"NDIA Agency Managed", "Insurance Commission of WA"}

// PlanManagerDetail gates a plan manager field on the plan management type
func PlanManagerDetail(f Fields, key string) string {
	planType := StripGlyphs(f[KeyPlanManagementType])
	for _, t := range agencyManagedTypes {
		if strings.EqualFold(planType, t) {
			return ""
		}
	}
	return f[key]
}

// dateLayouts are the input formats accepted before falling back to digit
// extraction.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"02 01 2006",
}

var digitRun = regexp.MustCompile(`\d+`)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// BirthYear pulls a plausible four-digit year out of a date string of any
// format, or "" when none is present.
func BirthYear(dateStr string) string {
	return yearPattern.FindString(dateStr)
}

// FormatDateDDMMYYYY converts a date string of uncertain format into
// DD/MM/YYYY. Unparseable input is returned unchanged.
func FormatDateDDMMYYYY(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if dt, err := time.Parse(layout, dateStr); err == nil {
			return dt.Format("02/01/2006")
		}
	}

	// Last resort: pull the digit groups and rearrange. A leading 4-digit
	// group is a year; otherwise day-first is assumed (the form is
	// Australian).
	numbers := digitRun.FindAllString(dateStr, -1)
	if len(numbers) >= 3 {
		day, month, year := numbers[0], numbers[1], numbers[2]
		if len(numbers[0]) == 4 {
			year, month, day = numbers[0], numbers[1], numbers[2]
		}
		return fmt.Sprintf("%s/%s/%s", zeroPad(day), zeroPad(month), year)
	}

	return dateStr
}

// zeroPad left-pads a day or month fragment to two digits
func zeroPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// IsPlausiblePhone reports whether a value looks like a phone number rather
// than an email address or free text that landed in a phone field.
func IsPlausiblePhone(value string) bool {
	if value == "" || strings.Contains(value, "@") {
		return false
	}

	digits := 0
	letters := 0
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letters++
		}
	}

	if digits < 6 || digits > 20 {
		return false
	}
	return letters <= digits
}
