package render

import (
	"io"

	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/refdata"
)

// riskDomains are the standing assessment areas reviewed with every new
// participant. Ratings start at "To be assessed" and are completed by the
// care team during the intake visit.
var riskDomains = []string{
	"Home access and egress",
	"Manual handling and transfers",
	"Medication management",
	"Behaviours of concern",
	"Community access and transport",
	"Household hazards (utility, trip, fire)",
	"Infection control",
	"Pets and other occupants",
}

// WriteRiskAssessment renders the Risk Assessment PDF scaffold for the
// intake visit: participant identity, the assessment domains and the
// sign-off block.
func WriteRiskAssessment(w io.Writer, f extract.Fields, staff *refdata.StaffDirectory, contactName string, theme Theme) error {
	d := newPDFDoc(theme)

	d.title("Risk Assessment")
	d.para("This assessment records the risks identified for the participant and the controls agreed with them and their care team. It is completed during the first home visit and reviewed at least every 6 months.")

	d.heading("Participant")
	d.kvTable([][2]string{
		{"Name", extract.DisplayName(f[extract.KeyFirstName], f[extract.KeySurname])},
		{"Date of Birth", extract.FormatDateDDMMYYYY(f[extract.KeyDateOfBirth])},
		{"NDIS Number", f[extract.KeyNDISNumber]},
		{"Address", f[extract.KeyHomeAddress]},
	}, 55)

	d.heading("Assessment")
	rows := make([][]string, 0, len(riskDomains))
	for _, domain := range riskDomains {
		rows = append(rows, []string{domain, "To be assessed", ""})
	}
	d.plainTable(
		[]string{"Domain", "Rating", "Controls"},
		rows,
		[]float64{60, 35, 85},
	)

	d.heading("Sign-off")
	keyContact := contactName
	if keyContact == "" {
		keyContact = f[extract.KeyRespondent]
	}
	member := refdata.StaffMember{}
	if keyContact != "" {
		member = staff.Lookup(keyContact)
	}
	d.kvTable([][2]string{
		{"Assessed by", orPlaceholder(keyContact)},
		{"Assessor phone", orPlaceholder(member.Mobile)},
		{"Participant or representative", extract.SignatoryName(f)},
		{"Date", "[Date]"},
	}, 65)

	return d.write(w)
}
