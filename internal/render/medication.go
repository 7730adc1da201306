package render

import (
	"io"

	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/refdata"
)

var medicationRules = []string{
	"Staff may only assist with medication that is packed in a pharmacy-sealed dose administration aid (for example a Webster-pak).",
	"Staff check the participant's name, the day and the time slot before assisting, and never assist from loose bottles or boxes.",
	"Any refused, dropped or missed dose is recorded and reported to the office the same day.",
	"Changes to medication must come from the prescriber; staff do not alter doses on verbal instruction from anyone else.",
	"PRN (as needed) medication is only assisted when a prescriber's written instruction is attached to this plan.",
}

// WriteMedicationPlan renders the Medication Assistance Plan DOCX: the
// participant summary, the assistance rules staff follow and the medication
// schedule table the prescriber completes.
func WriteMedicationPlan(w io.Writer, f extract.Fields, staff *refdata.StaffDirectory, contactName string, theme Theme) error {
	d := newDocxDoc(theme)

	d.title("Medication Assistance Plan")
	d.para("This plan sets out how Neighbourhood Care staff assist the participant with their medication. It is completed with the participant's prescriber and reviewed whenever their medication changes.")

	d.heading("Participant")
	emFirst, emSurname := extract.EmergencyContactName(f)
	d.table([][]string{
		{"Name", extract.DisplayName(f[extract.KeyFirstName], f[extract.KeySurname])},
		{"Date of Birth", extract.FormatDateDDMMYYYY(f[extract.KeyDateOfBirth])},
		{"NDIS Number", f[extract.KeyNDISNumber]},
		{"Address", f[extract.KeyHomeAddress]},
		{"Emergency contact", extract.DisplayName(emFirst, emSurname)},
	}, true)

	d.heading("How staff assist")
	for _, rule := range medicationRules {
		d.bullet(rule)
	}

	d.heading("Medication schedule")
	d.para("Completed by the prescriber. One row per medication.")
	d.table([][]string{
		{"Medication", "Dose", "Time", "Route", "Prescriber"},
		{"", "", "", "", ""},
		{"", "", "", "", ""},
		{"", "", "", "", ""},
	}, false)

	d.heading("Sign-off")
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
		{"Participant or representative", extract.SignatoryName(f)},
		{"Date", "[Date]"},
	}, true)

	return d.write(w)
}
