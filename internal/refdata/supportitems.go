// Package refdata loads the read-only reference tables the renderers price
// and address documents from: the support-item price list and the active
// staff directories. Lookups never fail hard; missing files and unknown keys
// degrade to placeholder values so a document build always completes.
package refdata

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
)

// NotFound is the placeholder surfaced when a lookup cannot be resolved
const NotFound = "[Not Found]"

// EstablishmentFeeItem is the support item priced into new-client agreements
const EstablishmentFeeItem = "Establishment Fee For Personal Care/Participation"

// States carried by the price table
const (
	StateWA  = "WA"
	StateNSW = "NSW"
)

// SupportItem describes one row of the support-item price list
type SupportItem struct {
	Name   string
	Number string
	Unit   string
	Prices map[string]string // state → price, as printed in the CSV
}

// Price returns the item's price for the given state, falling back to the
// other state when the primary column is blank.
func (si SupportItem) Price(state string) string {
	if p := si.Prices[state]; strings.TrimSpace(p) != "" {
		return p
	}
	other := StateNSW
	if state == StateNSW {
		other = StateWA
	}
	return si.Prices[other]
}

// SupportItemTable is a keyed lookup over the support-item price list
type SupportItemTable struct {
	items map[string]SupportItem
}

// NewSupportItemTable builds a table from already-materialized items
func NewSupportItemTable(items []SupportItem) *SupportItemTable {
	table := &SupportItemTable{items: make(map[string]SupportItem, len(items))}
	for _, item := range items {
		table.items[item.Name] = item
	}
	return table
}

// LoadSupportItems reads the price CSV. A missing or unreadable file is
// logged and yields an empty table; every lookup then returns placeholders.
func LoadSupportItems(path string) *SupportItemTable {
	table := &SupportItemTable{items: make(map[string]SupportItem)}

	file, err := os.Open(path)
	if err != nil {
		log.Printf("refdata: support items CSV unavailable (%v), using placeholder data", err)
		return table
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		log.Printf("refdata: error reading support items CSV: %v", err)
		return table
	}
	if len(records) < 2 {
		return table
	}

	col := headerIndex(records[0])
	for _, row := range records[1:] {
		name := strings.TrimSpace(cell(row, col, "support item name"))
		if name == "" {
			continue
		}
		table.items[name] = SupportItem{
			Name:   name,
			Number: strings.TrimSpace(cell(row, col, "support item number")),
			Unit:   strings.TrimSpace(cell(row, col, "unit")),
			Prices: map[string]string{
				StateWA:  strings.TrimSpace(cell(row, col, "wa")),
				StateNSW: strings.TrimSpace(cell(row, col, "nsw")),
			},
		}
	}

	return table
}

// Len reports the number of loaded items
func (t *SupportItemTable) Len() int {
	return len(t.items)
}

// Lookup resolves an item by name, trying an exact match first and then a
// bidirectional case-insensitive substring match. Unresolvable names return
// a placeholder item rather than an error.
func (t *SupportItemTable) Lookup(name string) SupportItem {
	if item, ok := t.items[name]; ok {
		return item
	}

	lower := strings.ToLower(name)
	for key, item := range t.items {
		keyLower := strings.ToLower(key)
		if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
			return item
		}
	}

	return SupportItem{
		Name:   name,
		Number: NotFound,
		Unit:   "Hour",
		Prices: map[string]string{StateWA: "$0.00", StateNSW: "$0.00"},
	}
}

// headerIndex maps normalized header names to column positions
func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return col
}

// cell returns the named column of a row, or "" when the column is absent
func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// TeamState maps a representative team name to the state its staff directory
// and price column are keyed by. Unknown teams default to WA, the original
// deployment region.
func TeamState(team string) string {
	lower := strings.ToLower(strings.TrimSpace(team))
	for _, hint := range []string{"nsw", "sydney", "newcastle", "wollongong"} {
		if strings.Contains(lower, hint) {
			return StateNSW
		}
	}
	return StateWA
}

// String implements fmt.Stringer for debug logging
func (t *SupportItemTable) String() string {
	return fmt.Sprintf("SupportItemTable{%d items}", len(t.items))
}
