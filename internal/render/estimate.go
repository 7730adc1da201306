package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/refdata"
)

// WriteServiceEstimate renders the service-estimate CSV: every support item
// selected on the form, priced from the support-item table in the state the
// representative team maps to, plus the establishment fee when it applies.
func WriteServiceEstimate(w io.Writer, f extract.Fields, items *refdata.SupportItemTable) error {
	writer := csv.NewWriter(w)

	header := []string{"Support Item", "Support Item Number", "Unit", "Price"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write service estimate header: %w", err)
	}

	state := refdata.TeamState(extract.StripGlyphs(f[extract.KeyRepresentativeTeam]))

	for i := 1; i <= extract.SupportItemCount; i++ {
		name := strings.TrimSpace(f[extract.SupportItemKey(i)])
		if name == "" {
			continue
		}
		item := items.Lookup(name)
		row := []string{
			name,
			item.Number,
			item.Unit,
			extract.FormatPrice(item.Price(state)),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write service estimate row: %w", err)
		}
	}

	if extract.EstablishmentFeeEligible(f) {
		item := items.Lookup(refdata.EstablishmentFeeItem)
		row := []string{
			refdata.EstablishmentFeeItem,
			item.Number,
			item.Unit,
			extract.EstablishmentFee(f, items),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write establishment fee row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
