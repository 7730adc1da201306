package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/refdata"
)

const officePhone = "1800 292 273"

var serviceChargeBullets = []string{
	"Transporting you during a shift (this is a $1 cost per km and is billed out of your core budget).",
	"Communication by phone or email or in a face to face meeting with key people in your network - when this is not part of your rostered shift.",
	"Travel for support workers or therapists when they are coming directly from the office or from another participant or travelling back to the office at the end of the shift (you are not charged for travel if they are coming to you from home or going directly home). Max charge 30 min each way and $1 per km non-labour costs (as per NDIS Pricing Arrangements and Price Limits 2023-24 V1.0.",
	"Preparing some reports that are required for the NDIS such as creating your Support Plan.",
	"Costs for when we are supporting you in the community such as parking, public transport and so forth.",
	"For new participants, receiving Core supports, the one off Establishment fee is applied.",
}

var providerPromises = []string{
	"Review your care and service plan every 6 months with you.",
	"Maintain a service that works for you, so times of appointments meet your needs and we are in tune with each other. We call this Attunement.",
	"At all times communicate openly and honestly in a timely manner.",
	"At all times treat you with dignity and respect and being mindful of any cultural differences.",
	"Be open and transparent about managing complaints or disagreements and provide you the opportunity to provide feedback to us and to the NDIS.",
	"Ensure your privacy and any information is held in confidence and not shared without your permission.",
	"Work together at every step on your journey towards reaching your goals.",
	"Operate within the National Disability Insurance Scheme Act 2013 and associated Business Rules.",
}

var participantPromises = []string{
	"Inform Neighbourhood Care about how you wish your supports to be provided and how they should be offered to meet your needs.",
	"Treat Neighbourhood Care staff with courtesy and respect in the same way you want to be treated.",
	"Talk to Neighbourhood Care if you have any concerns about Plan Management or Financial Administration being provided.",
	"Give your care and support team the required notice if you need to end this Service Agreement. There is a notice period of 4 weeks to end this service.",
	"Advise your care and support team immediately if your plan is suspended or replaced by a new NDIS Plan or where you stop being an active participant in the NDIS.",
}

var privacyPolicyBullets = []string{
	"How we use your personal information",
	"Why some personal information may be given to other organisations from time to time",
	"How you can access the personal information we have about you on our system",
	"How you can complain about a privacy breach, and how Neighbourhood Care deals with the complaint.",
	"How you can get your personal information corrected if it is wrong.",
}

// WriteServiceAgreement renders the full Service Agreement PDF: fee and
// budget tables, the selected support items priced per state, consent
// answers, the standing terms of service and the appendix tables for the
// participant, signatory, plan manager and key contact. contactName
// overrides the form's respondent for the key-contact lookup when set.
func WriteServiceAgreement(w io.Writer, f extract.Fields, items *refdata.SupportItemTable, staff *refdata.StaffDirectory, contactName string, theme Theme) error {
	d := newPDFDoc(theme)

	d.title("Service Agreement")
	d.para("Thank you for choosing Neighbourhood Care. We look forward to working with you to help you achieve your goals.")
	d.para("This document is a written agreement between you and Neighbourhood Care that outlines the supports we will provide and how they will be delivered.")
	d.boldPara("Please make sure you have read and understood our Agreements, Promises and Terms of Service before completing this document.")
	d.spacer()
	d.para("If you are unsure about any part of this document please speak to your Neighbourhood Care representative.")
	d.para("This Service Agreement must then be signed in order for us to start delivering services.")

	d.heading("What makes up your service?")
	d.para("Please note that your service is made up of face to face and some non face to face supports. Services that may be charged as part of your service are:")
	for _, b := range serviceChargeBullets {
		d.bullet(b)
	}
	d.spacer()

	d.para("The establishment fee for this service agreement is:")
	d.kvTable([][2]string{
		{"Establishment Fee", extract.EstablishmentFee(f, items)},
	}, 75)

	d.heading("Schedule of Supports")
	d.blackHeading("Core and Capacity Building")
	d.kvTable([][2]string{
		{"Core Budget Allocated to Neighbourhood Care", f[extract.KeyCoreBudget]},
		{"Capacity Building Budget Allocated to Neighbourhood Care", f[extract.KeyCapacityBudget]},
	}, 90)

	d.blackHeading("Support Items")
	d.plainTable(
		[]string{"Category", "Name", "Number", "Unit", "Price"},
		supportItemRows(f, items),
		[]float64{20, 85, 30, 15, 25},
	)

	d.heading("Consents")
	consentRows := make([][2]string, 0, len(extract.ConsentClauses))
	for _, clause := range extract.ConsentClauses {
		answer := strings.TrimSpace(f[clause])
		if answer == "" {
			answer = "Yes"
		}
		consentRows = append(consentRows, [2]string{truncate(clause, 90), answer})
	}
	d.kvTable(consentRows, 150)

	writeTermsOfService(d)

	d.heading("Signatures")
	d.boldPara("Signatory:")
	d.para(fmt.Sprintf("Name: %s\nDate: [Date]\nSigned: [Signature]",
		extract.DisplayName(f[extract.KeySignerFirstName], f[extract.KeySignerSurname])))
	d.boldPara("Neighbourhood Care Representative:")
	d.para("Name: [To be filled with NC representative name]\nDate: [Date]\nSigned: [Signature]")

	writeAppendix(d, f, staff, contactName)

	return d.write(w)
}

// supportItemRows builds the priced table rows for every selected item
func supportItemRows(f extract.Fields, items *refdata.SupportItemTable) [][]string {
	state := refdata.TeamState(extract.StripGlyphs(f[extract.KeyRepresentativeTeam]))

	var rows [][]string
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
		rows = append(rows, []string{
			fmt.Sprintf("Support item (%d)", i),
			truncate(name, 60),
			item.Number,
			item.Unit,
			price,
		})
	}
	return rows
}

func writeTermsOfService(d *pdfDoc) {
	d.heading("Agreements, Promises and Terms of Service")
	d.para("Our Agreements, Promises and Terms of Service outline how we deliver services. It outlines our rights and responsibilities as a service provider, and the rights and responsibilities of the people we provide services to.")

	d.boldPara("What can you expect from Neighbourhood Care?")
	d.para("We agree to:")
	for _, b := range providerPromises {
		d.bullet(b)
	}
	d.spacer()

	d.boldPara("What is expected of you as an NDIS participant?")
	d.para("You agree to:")
	for _, b := range participantPromises {
		d.bullet(b)
	}
	d.spacer()

	d.boldPara("Cancellations")
	d.para("Your care and support team require a minimum of 7 Days notice if you cannot make a scheduled appointment or planned shift. If you are able to reschedule a make up shift with the same support worker within the following 7 days, no cancellation will be charged. If a make up shift with that support worker cannot be scheduled, the NDIS considers this a Short Notice Cancellation and Neighbourhood Care may charge 100% of the agreed hourly rate.")

	d.boldPara("How will services be provided to you?")
	d.para("Services will be provided at your place of residence and in other locations as deemed necessary and suitable by you, your family, the Support Coordinator and the Neighbourhood Care Team charged with your safety whilst in the service.")

	d.boldPara("When will services be provided?")
	d.para("All services will be provided in attunement to your needs and subject to availability by others who may have an impact to your availability. From the commencement of the service agreement: Direct support provided as per the support and/or Therapy support plan, subject to change/increase, upon confirmation with you and/or your family.")

	d.boldPara("How long will services be provided?")
	d.para("Services will be provided for the length of the service agreement plan unless otherwise ceased at the discretion by you or your team, in accordance with Neighbourhood Care's Policy and Procedures.")

	d.boldPara("How to make changes?")
	d.para("If changes to the supports or their delivery are required, you and your Neighbourhood Care team (the parties) agree to discuss and review this Service Agreement. The Parties agree that any changes to this Service Agreement will be in writing, signed, and dated by the Parties.")

	d.boldPara("How to end the Agreement?")
	d.para("Should either Party wish to end this Service Agreement they must give 4 weeks written notice to their care and support team. If either Party seriously breaches this Service Agreement the requirement of notice will be waived.")

	d.boldPara("Pricing Changes")
	d.para("Neighbourhood Care's services are charged in accordance with the NDIS Pricing Arrangements and Price Limits Guide. The prices set out in this Service Agreement will change in accordance with updates to the NDIS Pricing Arrangements and Price Limits Guide. This typically updates on the 1st of July each year but may be updated at other times.")

	d.boldPara("What to do if there is a problem?")
	d.para("If there is a problem with anything related to your service or this agreement, you can contact your Neighbourhood Care contact person (please refer to the front page of your Service Agreement) or " + officePhone + ". Alternatively, you can email your concern or query to: ask@nhcare.com.au. If you don't feel that your problem was resolved please speak to your support coordinator, Local Area Coordinator or you can just contact the National Disability Insurance Agency (NDIA).")

	d.boldPara("Collection of your personal information")
	d.para("Neighbourhood Care will use your information to support your involvement in the NDIS. Neighbourhood Care will NOT use any of your personal information for any other purpose or disclose your personal information to any other organisations or individuals (including overseas recipients) unless authorised by law or you provide consent for us to do so. You can also ask to see what personal information (if any) we hold about you at any time and you can seek correction if the information is incorrect.")

	d.boldPara("Neighbourhood Care's privacy policy describes:")
	for _, b := range privacyPolicyBullets {
		d.bullet(b)
	}
	d.spacer()
	d.para("You can find the policy by enquiring at Neighbourhood Care.")
	d.para("Please note that Neighbourhood Care is required to release information about service users (without identifying you by full name or address) to the Australian Institute of Health and Welfare, to enable statistics about disability services and their clients to be compiled. This information will be kept confidential. This information is used for statistical purposes only and will not be used to affect your entitlements or your access to services. You have the right to access your own files and to update or correct information included in the Disability Services National Minimum Data Set collection.")

	d.boldPara("Goods and Services Tax")
	d.para("Most services provided under the NDIS will not include GST. However, GST will apply to some services. Neighbourhood Care will apply GST when it is required.")

	d.para("For your information: \"A supply of supports under this Service Agreement is a supply of one or more reasonable and necessary supports specified in the statement of supports included, under subsection 33(2) of the National Disability Insurance Scheme Act 2013 (NDIS Act), in the participant's NDIS Plan currently in effect under section 37 of the NDIS Act.\"")
}

// writeAppendix renders the participant, signatory, plan manager and key
// contact summary tables.
func writeAppendix(d *pdfDoc, f extract.Fields, staff *refdata.StaffDirectory, contactName string) {
	d.blackHeading("Appendix")

	d.blackHeading("Participant")
	nameParts := make([]string, 0, 3)
	for _, p := range []string{f[extract.KeyFirstName], f[extract.KeyMiddleName], f[extract.KeySurname]} {
		if p != "" {
			nameParts = append(nameParts, p)
		}
	}
	emFirst, emSurname := extract.EmergencyContactName(f)
	d.kvTable([][2]string{
		{"Participant Name", strings.Join(nameParts, " ")},
		{"Date of Birth", f[extract.KeyDateOfBirth]},
		{"NDIS Number", f[extract.KeyNDISNumber]},
		{"Plan Duration", spanOf(f[extract.KeyPlanStartDate], f[extract.KeyPlanEndDate])},
		{"Address", f[extract.KeyHomeAddress]},
		{"Home phone", f[extract.KeyHomePhone]},
		{"Mobile phone", f[extract.KeyMobilePhone]},
		{"Email address", f[extract.KeyEmail]},
		{"Preferred contact method", extract.StripGlyphs(f[extract.KeyPreferredContact])},
		{"Emergency Contact", extract.DisplayName(emFirst, emSurname)},
		{"Service Agreement Duration", spanOf(f[extract.KeyServiceStartDate], f[extract.KeyServiceEndDate])},
	}, 65)

	d.blackHeading("Signatory")
	d.kvTable([][2]string{
		{"Name", extract.SignatoryName(f)},
		{"Relationship to Participant", extract.SignatoryRelationship(f)},
		{"Address", extract.SignatoryAddress(f)},
		{"Contact Details", extract.SignatoryContact(f)},
	}, 65)

	d.blackHeading("Plan Manager")
	d.kvTable([][2]string{
		{"Name", extract.PlanManagerDetail(f, extract.KeyPlanManagerName)},
		{"Postal Address", extract.PlanManagerDetail(f, extract.KeyPlanManagerAddress)},
		{"Phone", extract.PlanManagerDetail(f, extract.KeyPlanManagerPhone)},
		{"Email Address", extract.PlanManagerDetail(f, extract.KeyPlanManagerEmail)},
	}, 65)

	d.blackHeading("My Neighbourhood Care Key Contact")
	keyContact := contactName
	if keyContact == "" {
		keyContact = strings.TrimSpace(f[extract.KeyRespondent])
	}
	member := refdata.StaffMember{}
	if keyContact != "" {
		member = staff.Lookup(keyContact)
	}

	careID := "[To be filled in]"
	if year := extract.BirthYear(f[extract.KeyDateOfBirth]); year != "" {
		if name := extract.DisplayName(f[extract.KeyFirstName], f[extract.KeySurname]); name != "" {
			careID = name + " " + year
		}
	}

	team := f[extract.KeyRepresentativeTeam]
	if team == "" {
		team = "[To be filled in]"
	}

	d.kvTable([][2]string{
		{"My Neighbourhood Care ID", careID},
		{"Team", team},
		{"Key Contact", orPlaceholder(keyContact)},
		{"Phone", orPlaceholder(member.Mobile)},
		{"Email Address", orPlaceholder(member.Email)},
		{"Neighbourhood Care Office", "Phone: " + officePhone},
	}, 65)
}

func spanOf(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return start + " - " + end
}

func orPlaceholder(s string) string {
	if s == "" {
		return "[To be filled in]"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
