package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSupportItems(t *testing.T) {
	path := writeTempCSV(t, "items.csv",
		"Support Item Name,Support Item Number,Unit,WA,NSW\n"+
			"Establishment Fee For Personal Care/Participation,01_049_0107_1_1,Each,679.08,574.91\n"+
			"Assistance With Self-Care Activities,01_011_0107_1_1,Hour,70.23,\n"+
			",skipped_blank_name,Hour,1.00,1.00\n")

	table := LoadSupportItems(path)
	require.Equal(t, 2, table.Len())

	item := table.Lookup(EstablishmentFeeItem)
	assert.Equal(t, "01_049_0107_1_1", item.Number)
	assert.Equal(t, "Each", item.Unit)
	assert.Equal(t, "679.08", item.Price(StateWA))
	assert.Equal(t, "574.91", item.Price(StateNSW))
}

func TestLoadSupportItemsMissingFile(t *testing.T) {
	table := LoadSupportItems("/nonexistent/items.csv")
	require.NotNil(t, table)
	assert.Equal(t, 0, table.Len())

	item := table.Lookup("Anything")
	assert.Equal(t, "Anything", item.Name)
	assert.Equal(t, NotFound, item.Number)
	assert.Equal(t, "Hour", item.Unit)
	assert.Equal(t, "$0.00", item.Price(StateWA))
}

func TestSupportItemLookupSubstring(t *testing.T) {
	table := NewSupportItemTable([]SupportItem{
		{Name: "Assistance With Self-Care Activities - Standard - Weekday Daytime", Number: "01_011_0107_1_1"},
	})

	// Form answers are often truncated versions of the list name
	item := table.Lookup("Assistance With Self-Care Activities")
	assert.Equal(t, "01_011_0107_1_1", item.Number)

	// And sometimes the longer of the two
	item = table.Lookup("Assistance With Self-Care Activities - Standard - Weekday Daytime (extended)")
	assert.Equal(t, "01_011_0107_1_1", item.Number)
}

func TestSupportItemPriceStateFallback(t *testing.T) {
	item := SupportItem{Prices: map[string]string{StateWA: "70.23", StateNSW: ""}}
	assert.Equal(t, "70.23", item.Price(StateNSW))

	item = SupportItem{Prices: map[string]string{StateWA: "", StateNSW: "68.10"}}
	assert.Equal(t, "68.10", item.Price(StateWA))
}

func TestTeamState(t *testing.T) {
	assert.Equal(t, StateWA, TeamState("Perth North"))
	assert.Equal(t, StateWA, TeamState(""))
	assert.Equal(t, StateNSW, TeamState("Sydney Inner West"))
	assert.Equal(t, StateNSW, TeamState("NSW Central"))
	assert.Equal(t, StateNSW, TeamState("Newcastle"))
	assert.Equal(t, StateNSW, TeamState("wollongong south"))
}

func TestLoadStaffDirectory(t *testing.T) {
	path := writeTempCSV(t, "staff.csv",
		"Name,Mobile,Email,Area\n"+
			"Casey Morgan,0400 123 456,casey.morgan@example.com,Perth North\n"+
			"Riley Park,0400 654 321,riley.park@example.com,Sydney Inner West\n")

	dir := LoadStaffDirectory(path)
	require.Equal(t, 2, dir.Len())

	m := dir.Lookup("Casey Morgan")
	assert.Equal(t, "0400 123 456", m.Mobile)
	assert.Equal(t, "Perth North", m.Team)

	// Substring resolution covers first-name-only answers
	m = dir.Lookup("Riley")
	assert.Equal(t, "riley.park@example.com", m.Email)
}

func TestStaffLookupPlaceholder(t *testing.T) {
	dir := LoadStaffDirectory("/nonexistent/staff.csv")

	m := dir.Lookup("Unknown Person")
	assert.Equal(t, "Unknown Person", m.Name)
	assert.Equal(t, NotFound, m.Mobile)
	assert.Equal(t, NotFound, m.Email)
}

func TestLoadStaffDirectoryRoleColumnFallback(t *testing.T) {
	path := writeTempCSV(t, "staff.csv",
		"Name,Mobile,Email,Role\n"+
			"Casey Morgan,0400 123 456,casey.morgan@example.com,Support Coordinator\n")

	dir := LoadStaffDirectory(path)
	m := dir.Lookup("Casey Morgan")
	assert.Equal(t, "Support Coordinator", m.Team)
}
