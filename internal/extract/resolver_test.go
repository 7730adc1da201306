package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueInSectionLookahead(t *testing.T) {
	lines := []string{
		"Details of the Client",
		"First name",
		"Jordan",
		"Surname",
		"Lee",
		"Contact Details of the Client",
	}
	r := NewResolver(lines)

	assert.Equal(t, "Jordan", r.ValueInSection([]string{"First name"}, SectionDetails))
	assert.Equal(t, "Lee", r.ValueInSection([]string{"Surname"}, SectionDetails))
}

func TestValueInSectionColonRule(t *testing.T) {
	lines := []string{
		"Contact Details of the Client",
		"Home phone: 0400 000 000",
	}
	r := NewResolver(lines)

	assert.Equal(t, "0400 000 000", r.ValueInSection([]string{"Home phone"}, SectionContact))
}

func TestValueInSectionSkipsArtifactsAndStrayLabels(t *testing.T) {
	lines := []string{
		"Details of the Client",
		"First name",
		"☐",
		"Middle name",
		"Jordan",
	}
	r := NewResolver(lines)

	// The checkbox artifact and the trailing label are not answers; the
	// lookahead lands on the real value.
	assert.Equal(t, "Jordan", r.ValueInSection([]string{"First name"}, SectionDetails))
}

func TestValueInSectionSuffixStrippedMatch(t *testing.T) {
	lines := []string{
		"Details of the Client",
		"First name (Details of the Client)",
		"Jordan",
	}
	r := NewResolver(lines)

	assert.Equal(t, "Jordan", r.ValueInSection([]string{"First name"}, SectionDetails))
}

func TestValueInSectionDoesNotBleed(t *testing.T) {
	lines := []string{
		"Details of the Client",
		"Gender",
		"Contact Details of the Client",
		"Home phone",
		"0400 000 000",
	}
	r := NewResolver(lines)

	// Home phone lives in the contact section; a details-scoped search
	// must not see it.
	assert.Equal(t, "", r.ValueInSection([]string{"Home phone"}, SectionDetails))
	assert.Equal(t, "0400 000 000", r.ValueInSection([]string{"Home phone"}, SectionContact))
}

func TestValueInSectionMissingSection(t *testing.T) {
	r := NewResolver([]string{"nothing here"})
	assert.Equal(t, "", r.ValueInSection([]string{"First name"}, SectionEmergency))
}

func TestValueInSectionRejectsInstructionText(t *testing.T) {
	lines := []string{
		"Primary carer",
		"Home address",
		"Same as the client",
		"12 Example Street",
	}
	r := NewResolver(lines)

	assert.Equal(t, "12 Example Street", r.ValueInSection([]string{"Home address"}, SectionPrimaryCarer))
}

func TestValueInSectionRejectsOverlongLines(t *testing.T) {
	para := "Please provide the full residential address of the client " +
		"including unit number street suburb state and postcode"
	require.Greater(t, len(para), maxValueLength)

	lines := []string{
		"Details of the Client",
		"Home address",
		para,
		"12 Example Street",
	}
	r := NewResolver(lines)

	assert.Equal(t, "12 Example Street", r.ValueInSection([]string{"Home address"}, SectionDetails))
}

func TestValueInSectionKeepsScanningAfterEmptyWindow(t *testing.T) {
	// The first label occurrence has no usable value in its window; the
	// second occurrence later in the section still resolves.
	lines := []string{
		"Details of the Client",
		"First name",
		"☐",
		"☐",
		"☐",
		"☐",
		"First name",
		"Jordan",
	}
	r := NewResolver(lines)

	assert.Equal(t, "Jordan", r.ValueInSection([]string{"First name"}, SectionDetails))
}

func TestValueAfterLabel(t *testing.T) {
	lines := []string{
		"Plan start date: 01/01/2024",
		"Support item (1)",
		"Assistance With Self-Care Activities",
		"Support item (2)",
		"☑",
		"Community Participation",
	}
	r := NewResolver(lines)

	assert.Equal(t, "01/01/2024", r.ValueAfterLabel([]string{"Plan start date"}, 0))
	assert.Equal(t, "Assistance With Self-Care Activities", r.ValueAfterLabel([]string{"Support item (1)"}, 0))
	assert.Equal(t, "Community Participation", r.ValueAfterLabel([]string{"Support item (2)"}, 0))
}

func TestValueAfterLabelSkipsLabelEcho(t *testing.T) {
	lines := []string{
		"Plan manager name",
		"Plan manager name",
		"Acme Plan Managers",
	}
	r := NewResolver(lines)

	assert.Equal(t, "Acme Plan Managers", r.ValueAfterLabel([]string{"Plan manager name"}, 0))
}

func TestValueAfterLabelNotFound(t *testing.T) {
	r := NewResolver([]string{"First name", "Jordan"})
	assert.Equal(t, "", r.ValueAfterLabel([]string{"Plan end date"}, 0))
}

func TestLabelMatches(t *testing.T) {
	assert.True(t, labelMatches("first name", "first name"))
	assert.True(t, labelMatches("first name (details of the client)", "first name"))
	assert.True(t, labelMatches("first name:", "first name"))
	assert.False(t, labelMatches("preferred first name", "first name"))
}

func TestIsValueLine(t *testing.T) {
	assert.True(t, isValueLine("Jordan"))
	assert.True(t, isValueLine("0400 000 000"))
	assert.False(t, isValueLine(""))
	assert.False(t, isValueLine("☐"))
	assert.False(t, isValueLine("Surname"))
	assert.False(t, isValueLine("Write their full name below"))
	assert.False(t, isValueLine(strings.Repeat("x", maxValueLength+1)))

	// A long or parenthesised line containing a label word is still a value
	assert.True(t, isValueLine("Unit 4 (rear), 12 Gender Street"))
}
