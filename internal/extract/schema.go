package extract

import "fmt"

// Long-form field keys. These match the column naming of the source form
// exports: the bare label followed by the section it was answered in.
const (
	KeyFirstName   = "First name (Details of the Client)"
	KeyMiddleName  = "Middle name (Details of the Client)"
	KeySurname     = "Surname (Details of the Client)"
	KeyNDISNumber  = "NDIS number (Details of the Client)"
	KeyDateOfBirth = "Date of birth (Details of the Client)"
	KeyGender      = "Gender (Details of the Client)"

	KeyHomeAddress = "Home address (Contact Details of the Client)"
	KeyHomePhone   = "Home phone (Contact Details of the Client)"
	KeyWorkPhone   = "Work phone (Contact Details of the Client)"
	KeyMobilePhone = "Mobile phone (Contact Details of the Client)"
	KeyEmail       = "Email address (Contact Details of the Client)"

	KeyEmergencyFirstName    = "First name (Emergency contact)"
	KeyEmergencySurname      = "Surname (Emergency contact)"
	KeyEmergencyPhone        = "Phone (Emergency contact)"
	KeyEmergencyRelationship = "Relationship to client (Emergency contact)"
	KeyCarerIsEmergency      = "Is the primary carer also the emergency contact for the participant?"

	KeyPersonSigning       = "Person signing the agreement"
	KeySignerFirstName     = "First name (Person Signing the Agreement)"
	KeySignerSurname       = "Surname (Person Signing the Agreement)"
	KeySignerRelationship  = "Relationship to client (Person Signing the Agreement)"
	KeySignerHomeAddress   = "Home address (Person Signing the Agreement)"
	KeySignerHomePhone     = "Home phone (Person Signing the Agreement)"
	KeySignerMobilePhone   = "Mobile phone (Person Signing the Agreement)"
	KeySignerEmail         = "Email address (Person Signing the Agreement)"

	KeyCarerFirstName    = "First name (Primary carer)"
	KeyCarerSurname      = "Surname (Primary carer)"
	KeyCarerRelationship = "Relationship to client (Primary carer)"
	KeyCarerHomeAddress  = "Home address (Primary carer)"
	KeyCarerHomePhone    = "Home phone (Primary carer)"
	KeyCarerMobilePhone  = "Mobile phone (Primary carer)"
	KeyCarerEmail        = "Email address (Primary carer)"

	KeyPreferredContact = "Preferred method of contact"
	KeyCoreBudget       = "Total core budget to allocate to Neighbourhood Care"
	KeyCapacityBudget   = "Total capacity building budget to allocate to Neighbourhood Care"
	KeyPlanStartDate    = "Plan start date"
	KeyPlanEndDate      = "Plan end date"
	KeyServiceStartDate = "Service start date"
	KeyServiceEndDate   = "Service end date"

	KeyPlanManagementType   = "Plan management type"
	KeyPlanManagerName      = "Plan manager name"
	KeyPlanManagerAddress   = "Plan manager postal address"
	KeyPlanManagerPhone     = "Plan manager phone number"
	KeyPlanManagerEmail     = "Plan manager email address"

	KeyRespondent         = "Respondent"
	KeyRepresentativeTeam = "Neighbourhood Care representative team"

	KeyIsNewClient     = "isNewClient"
	KeyIs20HoursClient = "isReceiving20HoursSupport"
)

// SupportItemCount is the number of numbered support item slots on the form
const SupportItemCount = 19

// SupportItemKey returns the long-form key for the n-th support item (1-based)
func SupportItemKey(n int) string {
	return fmt.Sprintf("Support item (%d) (Support Items Required)", n)
}

// SupportItemLabel returns the label text preceding the n-th support item
func SupportItemLabel(n int) string {
	return fmt.Sprintf("Support item (%d)", n)
}

// ConsentClauses are the nine consent statements of the form, identified by
// their leading clause (text before the first full stop).
var ConsentClauses = []string{
	"I agree to receive services from Neighbourhood Care.",
	"I consent for Neighbourhood Care to create an NDIS portal service booking",
	"I understand that if at any time I (The Participant) require emergency medical assistance",
	"I agree that Neighbourhood Care staff may administer simple first aid",
	"I consent for Neighbourhood Care to discuss relevant information",
	"I agree not to smoke inside the home",
	"I understand that an Emergency Response Plan will be developed",
	"I consent for Neighbourhood Care for I (The Participant) to be photographed",
	"I give authority for my details or information to be shared",
}

// fieldLabelStems are label texts that may sit between a matched label and
// its value after PDF-to-text reflow. A candidate value line equal to one of
// these (or containing one, when the line is short and parenthesis-free) is a
// label, not an answer.
var fieldLabelStems = []string{
	"first name",
	"middle name",
	"surname",
	"ndis number",
	"date of birth",
	"gender",
	"home address",
	"home phone",
	"work phone",
	"mobile phone",
	"email address",
	"preferred name",
	"key code",
	"postal address",
	"preferred method of contact",
	"relationship to client",
}

// instructionPhrases mark lines of form guidance that must never be read as
// answers ("Write their full name below", "Same as the client", ...).
var instructionPhrases = []string{
	"write",
	"below",
	"same as",
	"if their",
}

// sectionSuffixes are the parenthetical section echoes stripped from both
// sides before label comparison.
var sectionSuffixes = []string{
	"(details of the client)",
	"(contact details of the client)",
}

// structuredField maps a long-form key to the candidate substrings tried
// against AcroForm field names.
type structuredField struct {
	Key        string
	Candidates []string
}

// structuredSchema drives the structured-field pass. Candidates are matched
// case-insensitively as substrings of the form field name; the first field
// with a non-empty value wins.
var structuredSchema = []structuredField{
	{KeyFirstName, []string{"first name", "firstname"}},
	{KeyMiddleName, []string{"middle name", "middlename"}},
	{KeySurname, []string{"surname", "family name", "last name", "lastname"}},
	{KeyNDISNumber, []string{"ndis number", "ndis"}},
	{KeyDateOfBirth, []string{"date of birth", "dob", "birth date"}},
	{KeyGender, []string{"gender"}},

	{KeyHomeAddress, []string{"home address", "address"}},
	{KeyHomePhone, []string{"home phone", "homephone"}},
	{KeyWorkPhone, []string{"work phone", "workphone"}},
	{KeyMobilePhone, []string{"mobile phone", "mobile", "mobilephone"}},
	{KeyEmail, []string{"email address", "email"}},

	{KeyEmergencyFirstName, []string{"first name (emergency contact)", "emergency contact first name", "emergency first name"}},
	{KeyEmergencySurname, []string{"surname (emergency contact)", "emergency contact surname", "emergency contact last name", "emergency surname", "emergency last name"}},
	{KeyEmergencyPhone, []string{"phone (emergency contact)", "emergency contact phone", "emergency phone"}},
	{KeyEmergencyRelationship, []string{"relationship to client (emergency contact)", "emergency contact relationship", "emergency relationship"}},
	{KeyCarerIsEmergency, []string{"primary carer also emergency contact", "is primary carer emergency contact"}},

	{KeySignerFirstName, []string{"first name (person signing the agreement)", "first name (person signing", "person signing first name", "signatory first name"}},
	{KeySignerSurname, []string{"surname (person signing the agreement)", "surname (person signing", "person signing surname", "person signing last name", "signatory surname", "signatory last name"}},
	{KeySignerRelationship, []string{"relationship to client (person signing the agreement)", "relationship to client (person signing", "person signing relationship", "signatory relationship"}},
	{KeySignerHomeAddress, []string{"home address (person signing the agreement)", "home address (person signing", "person signing address", "signatory address"}},
	{KeySignerHomePhone, []string{"home phone (person signing the agreement)", "home phone (person signing", "person signing home phone", "signatory home phone"}},
	{KeySignerMobilePhone, []string{"mobile phone (person signing the agreement)", "mobile phone (person signing", "person signing mobile", "signatory mobile"}},
	{KeySignerEmail, []string{"email address (person signing the agreement)", "email address (person signing", "person signing email", "signatory email"}},

	{KeyCarerFirstName, []string{"first name (primary carer)", "first name (primary carer", "primary carer first name"}},
	{KeyCarerSurname, []string{"surname (primary carer)", "surname (primary carer", "primary carer surname", "primary carer last name"}},
	{KeyCarerRelationship, []string{"relationship to client (primary carer)", "relationship to client (primary carer", "primary carer relationship"}},
	{KeyCarerHomeAddress, []string{"home address (primary carer)", "home address (primary carer", "primary carer address"}},
	{KeyCarerHomePhone, []string{"home phone (primary carer)", "home phone (primary carer", "primary carer home phone"}},
	{KeyCarerMobilePhone, []string{"mobile phone (primary carer)", "mobile phone (primary carer", "primary carer mobile"}},
	{KeyCarerEmail, []string{"email address (primary carer)", "email address (primary carer", "primary carer email"}},

	{KeyIsNewClient, []string{"isnewclient", "new client"}},
	{KeyIs20HoursClient, []string{"isreceiving20hourssupport", "20 hours"}},
}

// sectionField binds a long-form key to its label variants and the section
// the label must be found in.
type sectionField struct {
	Key    string
	Labels []string
	Kind   SectionKind
}

// sectionSchema drives the section-scoped part of the text pass
var sectionSchema = []sectionField{
	{KeyFirstName, []string{"First name", "First name (Details of the Client)"}, SectionDetails},
	{KeyMiddleName, []string{"Middle name", "Middle name (Details of the Client)"}, SectionDetails},
	{KeySurname, []string{"Surname", "Surname (Details of the Client)", "Family name", "Last name"}, SectionDetails},
	{KeyNDISNumber, []string{"NDIS number", "NDIS number (Details of the Client)"}, SectionDetails},
	{KeyDateOfBirth, []string{"Date of birth", "Date of birth (Details of the Client)", "DOB"}, SectionDetails},
	{KeyGender, []string{"Gender", "Gender (Details of the Client)"}, SectionDetails},

	{KeyHomeAddress, []string{"Home address", "Home address (Contact Details of the Client)", "Address"}, SectionContact},
	{KeyHomePhone, []string{"Home phone", "Home phone (Contact Details of the Client)"}, SectionContact},
	{KeyWorkPhone, []string{"Work phone", "Work phone (Contact Details of the Client)"}, SectionContact},
	{KeyMobilePhone, []string{"Mobile phone", "Mobile phone (Contact Details of the Client)"}, SectionContact},
	{KeyEmail, []string{"Email address", "Email address (Contact Details of the Client)", "Email"}, SectionContact},

	{KeyCarerFirstName, []string{"First name"}, SectionPrimaryCarer},
	{KeyCarerSurname, []string{"Surname"}, SectionPrimaryCarer},
}

// anywhereField binds a long-form key to label variants searched across the
// whole document (fields that have no enclosing section).
type anywhereField struct {
	Key    string
	Labels []string
}

// anywhereSchema drives the unsectioned part of the text pass
var anywhereSchema = []anywhereField{
	{KeyPreferredContact, []string{"Preferred method of contact", "Preferred contact method"}},
	{KeyCoreBudget, []string{"Total core budget", "core budget"}},
	{KeyCapacityBudget, []string{"Total capacity building budget", "capacity building budget"}},
	{KeyPlanStartDate, []string{"Plan start date", "Plan start"}},
	{KeyPlanEndDate, []string{"Plan end date", "Plan end"}},
	{KeyServiceStartDate, []string{"Service start date", "Service start"}},
	{KeyServiceEndDate, []string{"Service end date", "Service end"}},
	{KeySignerFirstName, []string{"First name (Person Signing the Agreement)"}},
	{KeySignerSurname, []string{"Surname (Person Signing the Agreement)"}},
	{KeySignerRelationship, []string{"Relationship to client (Person Signing the Agreement)"}},
	{KeySignerHomeAddress, []string{"Home address (Person Signing the Agreement)"}},
	{KeyCarerRelationship, []string{"Relationship to client (Primary carer)"}},
	{KeyCarerHomeAddress, []string{"Home address (Primary carer)"}},
	{KeyPlanManagementType, []string{"Plan management type", "Plan management"}},
	{KeyPlanManagerName, []string{"Plan manager name"}},
	{KeyPlanManagerAddress, []string{"Plan manager postal address", "Plan manager address"}},
	{KeyPlanManagerPhone, []string{"Plan manager phone", "Plan manager phone number"}},
	{KeyPlanManagerEmail, []string{"Plan manager email"}},
	{KeyRespondent, []string{"Respondent", "Neighbourhood Care representative"}},
	{KeyRepresentativeTeam, []string{"Neighbourhood Care representative team", "Team"}},
	{KeyIsNewClient, []string{"Is the client new to Neighbourhood Care"}},
	{KeyIs20HoursClient, []string{"20 or more hours of support"}},
}
