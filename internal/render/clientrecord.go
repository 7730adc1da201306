package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carefoundry/intake-server/internal/extract"
)

// clientRecordColumns is the fixed header of the client-record export,
// matching the import template of the downstream client-management system.
var clientRecordColumns = []string{
	"Salutation",
	"First Name",
	"Middle Name",
	"Family Name",
	"Display Name",
	"Date of Birth",
	"Gender",
	"Address",
	"Address Unit/Apartment Number",
	"General Information",
	"Phone Number",
	"Mobile Number",
	"Email",
	"Marital Status",
	"Nationality",
	"Languages",
	"NDIS Number",
	"Age Care Recipient ID",
	"Reference Number",
	"Purchase Order Number",
}

// WriteClientRecord renders the one-row client-record CSV. The salutation is
// fixed, the date of birth is normalized to DD/MM/YYYY, the phone column
// carries the home phone only, and only the first of multiple emails is
// exported.
func WriteClientRecord(w io.Writer, f extract.Fields) error {
	first := f[extract.KeyFirstName]
	surname := f[extract.KeySurname]

	email := f[extract.KeyEmail]
	if idx := strings.Index(email, ";"); idx >= 0 {
		email = strings.TrimSpace(email[:idx])
	}

	row := map[string]string{
		"Salutation":    "They",
		"First Name":    first,
		"Middle Name":   f[extract.KeyMiddleName],
		"Family Name":   surname,
		"Display Name":  extract.DisplayName(first, surname),
		"Date of Birth": extract.FormatDateDDMMYYYY(f[extract.KeyDateOfBirth]),
		"Gender":        f[extract.KeyGender],
		"Address":       f[extract.KeyHomeAddress],
		"Phone Number":  f[extract.KeyHomePhone],
		"Mobile Number": f[extract.KeyMobilePhone],
		"Email":         email,
		"NDIS Number":   f[extract.KeyNDISNumber],
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(clientRecordColumns); err != nil {
		return fmt.Errorf("failed to write client record header: %w", err)
	}

	record := make([]string, len(clientRecordColumns))
	for i, col := range clientRecordColumns {
		record[i] = row[col]
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("failed to write client record row: %w", err)
	}

	writer.Flush()
	return writer.Error()
}
