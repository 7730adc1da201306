package render

import (
	"io"

	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/refdata"
)

var emergencySteps = []string{
	"Stay calm and assess the immediate risk to the participant and anyone else present.",
	"Call 000 if there is any threat to life, then notify the emergency contact listed below.",
	"Follow the participant's support plan for evacuation or shelter-in-place instructions.",
	"Notify the Neighbourhood Care office on " + officePhone + " as soon as it is safe to do so.",
	"Record the event and any actions taken; the care team will review the plan afterwards.",
}

var disasterPreparations = []string{
	"Keep a charged mobile phone and a printed copy of this plan accessible in the home.",
	"Keep at least three days of any essential medication and consumables on hand.",
	"Agree a meeting point with the emergency contact in case the home must be evacuated.",
	"Know the location of utility shut-offs and the safest exit from each room.",
}

// WriteEmergencyPlan renders the Emergency & Disaster Plan PDF: the
// participant's identity and contacts, the selected emergency contact and
// the standing preparation and response steps.
func WriteEmergencyPlan(w io.Writer, f extract.Fields, staff *refdata.StaffDirectory, contactName string, theme Theme) error {
	d := newPDFDoc(theme)

	d.title("Emergency & Disaster Plan")
	d.para("This plan describes how emergencies affecting the participant are prepared for and responded to. It is reviewed with the participant and their care team whenever their circumstances change.")

	d.heading("Participant")
	d.kvTable([][2]string{
		{"Name", extract.DisplayName(f[extract.KeyFirstName], f[extract.KeySurname])},
		{"Date of Birth", extract.FormatDateDDMMYYYY(f[extract.KeyDateOfBirth])},
		{"NDIS Number", f[extract.KeyNDISNumber]},
		{"Address", f[extract.KeyHomeAddress]},
		{"Preferred contact", extract.PreferredContact(f[extract.KeyPreferredContact], extract.ClientContact(f))},
	}, 55)

	d.heading("Emergency Contact")
	emFirst, emSurname := extract.EmergencyContactName(f)
	phone := f[extract.KeyEmergencyPhone]
	if extract.IsYes(f[extract.KeyCarerIsEmergency]) {
		if p := f[extract.KeyCarerMobilePhone]; p != "" {
			phone = p
		} else if p := f[extract.KeyCarerHomePhone]; p != "" {
			phone = p
		}
	}
	if !extract.IsPlausiblePhone(phone) {
		phone = ""
	}
	d.kvTable([][2]string{
		{"Name", extract.DisplayName(emFirst, emSurname)},
		{"Phone", phone},
		{"Relationship to participant", f[extract.KeyEmergencyRelationship]},
	}, 55)

	d.heading("Neighbourhood Care Contact")
	keyContact := contactName
	if keyContact == "" {
		keyContact = f[extract.KeyRespondent]
	}
	member := refdata.StaffMember{}
	if keyContact != "" {
		member = staff.Lookup(keyContact)
	}
	d.kvTable([][2]string{
		{"Key Contact", orPlaceholder(keyContact)},
		{"Phone", orPlaceholder(member.Mobile)},
		{"Office", officePhone},
	}, 55)

	d.heading("Being prepared")
	for _, b := range disasterPreparations {
		d.bullet(b)
	}
	d.spacer()

	d.heading("In an emergency")
	for _, b := range emergencySteps {
		d.bullet(b)
	}

	return d.write(w)
}
