package render

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/refdata"
)

func sampleFields() extract.Fields {
	return extract.Fields{
		extract.KeyFirstName:          "Jordan",
		extract.KeyMiddleName:         "Avery",
		extract.KeySurname:            "Lee",
		extract.KeyNDISNumber:         "430123456",
		extract.KeyDateOfBirth:        "1990-05-02",
		extract.KeyGender:             "Non-binary",
		extract.KeyHomeAddress:        "12 Example Street, Perth WA 6000",
		extract.KeyHomePhone:          "08 9000 0000",
		extract.KeyMobilePhone:        "0400 000 000",
		extract.KeyEmail:              "jordan.lee@example.com; second@example.com",
		extract.KeyPreferredContact:   "Mobile phone",
		extract.KeyCarerIsEmergency:   "No",
		extract.KeyEmergencyFirstName: "Sam",
		extract.KeyEmergencySurname:   "Chen",
		extract.KeyEmergencyPhone:     "0411 111 111",
		extract.KeyPersonSigning:      "Participant",
		extract.KeyRepresentativeTeam: "Perth North",
		extract.KeyIsNewClient:        "Yes",
		extract.KeyIs20HoursClient:    "Yes",
		extract.SupportItemKey(1):     "Assistance With Self-Care Activities",
	}
}

func sampleItems() *refdata.SupportItemTable {
	return refdata.NewSupportItemTable([]refdata.SupportItem{
		{
			Name:   refdata.EstablishmentFeeItem,
			Number: "01_049_0107_1_1",
			Unit:   "Each",
			Prices: map[string]string{refdata.StateWA: "679.08", refdata.StateNSW: "574.91"},
		},
		{
			Name:   "Assistance With Self-Care Activities",
			Number: "01_011_0107_1_1",
			Unit:   "Hour",
			Prices: map[string]string{refdata.StateWA: "70.23"},
		},
	})
}

func sampleStaff() *refdata.StaffDirectory {
	return refdata.LoadStaffDirectory("/nonexistent/staff.csv")
}

func TestWriteClientRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClientRecord(&buf, sampleFields()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, clientRecordColumns, records[0])

	row := make(map[string]string, len(records[0]))
	for i, col := range records[0] {
		row[col] = records[1][i]
	}

	assert.Equal(t, "They", row["Salutation"])
	assert.Equal(t, "Jordan Lee", row["Display Name"])
	assert.Equal(t, "Lee", row["Family Name"])
	assert.Equal(t, "02/05/1990", row["Date of Birth"])
	assert.Equal(t, "08 9000 0000", row["Phone Number"])
	assert.Equal(t, "jordan.lee@example.com", row["Email"])
	assert.Equal(t, "", row["Marital Status"])
}

func TestWriteServiceEstimate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteServiceEstimate(&buf, sampleFields(), sampleItems()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header, one selected item, establishment fee
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Assistance With Self-Care Activities", "01_011_0107_1_1", "Hour", "$70.23"}, records[1])
	assert.Equal(t, refdata.EstablishmentFeeItem, records[2][0])
	assert.Equal(t, "$679.08", records[2][3])
}

func TestWriteServiceEstimateNoFeeWhenIneligible(t *testing.T) {
	f := sampleFields()
	f[extract.KeyIsNewClient] = "No"

	var buf bytes.Buffer
	require.NoError(t, WriteServiceEstimate(&buf, f, sampleItems()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestWriteServiceAgreement(t *testing.T) {
	var buf bytes.Buffer
	err := WriteServiceAgreement(&buf, sampleFields(), sampleItems(), sampleStaff(), "", DefaultTheme())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteEmergencyPlan(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEmergencyPlan(&buf, sampleFields(), sampleStaff(), "Casey Morgan", DefaultTheme())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteRiskAssessment(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRiskAssessment(&buf, sampleFields(), sampleStaff(), "", DefaultTheme())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func docxDocumentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, zf := range zr.File {
		names = append(names, zf.Name)
	}
	require.Contains(t, names, "[Content_Types].xml")
	require.Contains(t, names, "_rels/.rels")
	require.Contains(t, names, "word/document.xml")

	for _, zf := range zr.File {
		if zf.Name != "word/document.xml" {
			continue
		}
		rc, err := zf.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatal("document.xml not found")
	return ""
}

func TestWriteSupportPlan(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSupportPlan(&buf, sampleFields(), sampleItems(), sampleStaff(), "", DefaultTheme())
	require.NoError(t, err)

	doc := docxDocumentXML(t, buf.Bytes())
	assert.Contains(t, doc, "Support Plan")
	assert.Contains(t, doc, "Jordan Lee")
	assert.Contains(t, doc, "Assistance With Self-Care Activities")
	assert.Contains(t, doc, "Sam Chen")
}

func TestWriteMedicationPlan(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMedicationPlan(&buf, sampleFields(), sampleStaff(), "", DefaultTheme())
	require.NoError(t, err)

	doc := docxDocumentXML(t, buf.Bytes())
	assert.Contains(t, doc, "Medication Assistance Plan")
	assert.Contains(t, doc, "Jordan Lee")
	assert.Contains(t, doc, "Medication schedule")
}

func TestDocxEscapesValues(t *testing.T) {
	f := sampleFields()
	f[extract.KeyHomeAddress] = `12 "Example" Street <rear>`

	var buf bytes.Buffer
	require.NoError(t, WriteMedicationPlan(&buf, f, sampleStaff(), "", DefaultTheme()))

	doc := docxDocumentXML(t, buf.Bytes())
	assert.Contains(t, doc, "&lt;rear&gt;")
	assert.NotContains(t, doc, "<rear>")
}

func TestPlanFileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 30, 45, 0, time.UTC)

	f := sampleFields()
	assert.Equal(t, "Support Plan - Jordan Lee 1990 - 430123.docx",
		PlanFileName("Support Plan", f, ".docx", now))

	f[extract.KeyDateOfBirth] = ""
	f[extract.KeyNDISNumber] = "43"
	assert.Equal(t, "Medication Assistance Plan - Jordan Lee 2026 - 430000.docx",
		PlanFileName("Medication Assistance Plan", f, ".docx", now))

	f[extract.KeyNDISNumber] = ""
	f[extract.KeyFirstName] = ""
	f[extract.KeySurname] = ""
	assert.Equal(t, "Support Plan - test test 2026 - 103045.docx",
		PlanFileName("Support Plan", f, ".docx", now))
}
