package refdata

import (
	"encoding/csv"
	"log"
	"os"
	"strings"
)

// StaffMember describes one entry of an active staff directory
type StaffMember struct {
	Name   string
	Mobile string
	Email  string
	Team   string
}

// StaffDirectory is a keyed lookup over the active staff of one state
type StaffDirectory struct {
	members map[string]StaffMember
}

// LoadStaffDirectory reads an active-staff CSV. A missing or unreadable file
// is logged and yields an empty directory; lookups then return placeholders
// carrying the requested name.
func LoadStaffDirectory(path string) *StaffDirectory {
	dir := &StaffDirectory{members: make(map[string]StaffMember)}

	file, err := os.Open(path)
	if err != nil {
		log.Printf("refdata: staff CSV unavailable (%v), using placeholder data", err)
		return dir
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		log.Printf("refdata: error reading staff CSV: %v", err)
		return dir
	}
	if len(records) < 2 {
		return dir
	}

	col := headerIndex(records[0])
	for _, row := range records[1:] {
		name := strings.TrimSpace(cell(row, col, "name"))
		if name == "" {
			continue
		}
		team := strings.TrimSpace(cell(row, col, "area"))
		if team == "" {
			team = strings.TrimSpace(cell(row, col, "role"))
		}
		dir.members[name] = StaffMember{
			Name:   name,
			Mobile: strings.TrimSpace(cell(row, col, "mobile")),
			Email:  strings.TrimSpace(cell(row, col, "email")),
			Team:   team,
		}
	}

	return dir
}

// Len reports the number of loaded staff members
func (d *StaffDirectory) Len() int {
	return len(d.members)
}

// Lookup resolves a staff member by name, exact first, then bidirectional
// case-insensitive substring. Unknown names return a placeholder keeping the
// requested name so documents still read sensibly.
func (d *StaffDirectory) Lookup(name string) StaffMember {
	if m, ok := d.members[name]; ok {
		return m
	}

	lower := strings.ToLower(name)
	for key, m := range d.members {
		keyLower := strings.ToLower(key)
		if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
			return m
		}
	}

	return StaffMember{
		Name:   name,
		Mobile: NotFound,
		Email:  NotFound,
	}
}
