package render

import (
	"io"
	"strings"

	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/refdata"
)

var supportPlanSections = []struct {
	heading string
	prompt  string
}{
	{"About me", "What is important to the participant, their strengths, interests and how they like to communicate."},
	{"My goals", "The goals from the participant's NDIS plan and what working towards them looks like day to day."},
	{"How I like my supports delivered", "Preferences for routines, workers, timing and anything support workers must know before a shift."},
	{"Things to be aware of", "Health conditions, sensitivities, triggers and agreed responses."},
	{"Review", "This plan is reviewed with the participant at least every 6 months or when their circumstances change."},
}

// WriteSupportPlan renders the Support Plan DOCX: the participant summary,
// the supports selected on the intake form and the plan sections the care
// team completes with the participant.
func WriteSupportPlan(w io.Writer, f extract.Fields, items *refdata.SupportItemTable, staff *refdata.StaffDirectory, contactName string, theme Theme) error {
	d := newDocxDoc(theme)

	d.title("Support Plan")
	d.para("This Support Plan describes the supports Neighbourhood Care provides to the participant and how they are delivered. It is developed together with the participant and their care team.")

	d.heading("Participant")
	emFirst, emSurname := extract.EmergencyContactName(f)
	d.table([][]string{
		{"Name", extract.DisplayName(f[extract.KeyFirstName], f[extract.KeySurname])},
		{"Date of Birth", extract.FormatDateDDMMYYYY(f[extract.KeyDateOfBirth])},
		{"NDIS Number", f[extract.KeyNDISNumber]},
		{"Address", f[extract.KeyHomeAddress]},
		{"Preferred contact", extract.PreferredContact(f[extract.KeyPreferredContact], extract.ClientContact(f))},
		{"Emergency contact", extract.DisplayName(emFirst, emSurname)},
	}, true)

	d.heading("My supports")
	state := refdata.TeamState(extract.StripGlyphs(f[extract.KeyRepresentativeTeam]))
	rows := [][]string{{"Support item", "Number", "Unit", "Price"}}
	for i := 1; i <= extract.SupportItemCount; i++ {
		name := strings.TrimSpace(f[extract.SupportItemKey(i)])
		if name == "" {
			continue
		}
		item := items.Lookup(name)
		price := item.Price(state)
		if item.Number != refdata.NotFound {
			price = extract.FormatPrice(price)
		}
		rows = append(rows, []string{name, item.Number, item.Unit, price})
	}
	d.table(rows, false)

	for _, section := range supportPlanSections {
		d.heading(section.heading)
		d.para(section.prompt)
	}

	d.heading("Care team")
	keyContact := contactName
	if keyContact == "" {
		keyContact = f[extract.KeyRespondent]
	}
	member := refdata.StaffMember{}
	if keyContact != "" {
		member = staff.Lookup(keyContact)
	}
	d.table([][]string{
		{"Key Contact", orPlaceholder(keyContact)},
		{"Phone", orPlaceholder(member.Mobile)},
		{"Email", orPlaceholder(member.Email)},
		{"Office", officePhone},
	}, true)

	return d.write(w)
}
