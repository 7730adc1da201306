package pdfsource

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGarbagePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\nnot really a pdf"), 0o644))
	return path
}

// writeFormPDF assembles a minimal fillable PDF: one text field and two
// checkboxes, one ticked and one left at /Off.
func writeFormPDF(t *testing.T) string {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [4 0 R 5 0 R 6 0 R] >> >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Annots [4 0 R 5 0 R 6 0 R] >>",
		"<< /Type /Annot /Subtype /Widget /FT /Tx /T (First name) /V (Jordan) /Rect [50 700 200 720] >>",
		"<< /Type /Annot /Subtype /Widget /FT /Btn /T (Consent) /V /Yes /Rect [50 670 70 690] >>",
		"<< /Type /Annot /Subtype /Widget /FT /Btn /T (Declined) /V /Off /Rect [50 640 70 660] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefPos)

	path := filepath.Join(t.TempDir(), "form.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestFormReaderReadsFieldValues(t *testing.T) {
	fr := NewFormReader(false)
	fields := fr.Fields(writeFormPDF(t))

	// The ticked checkbox surfaces its /Yes name object as a plain string;
	// the /Off one is treated as unanswered and skipped.
	require.Equal(t, []FormField{
		{Name: "First name", Value: "Jordan"},
		{Name: "Consent", Value: "Yes"},
	}, fields)
}

func TestFormReaderMissingFile(t *testing.T) {
	fr := NewFormReader(false)
	fields := fr.Fields("/nonexistent/form.pdf")
	assert.Empty(t, fields)
}

func TestFormReaderGarbageFile(t *testing.T) {
	fr := NewFormReader(false)
	fields := fr.Fields(writeGarbagePDF(t))
	assert.Empty(t, fields)
}

func TestTextReaderMissingFile(t *testing.T) {
	tr := NewTextReader(false)
	lines := tr.Lines("/nonexistent/form.pdf")
	assert.Empty(t, lines)
}

func TestTextReaderGarbageFile(t *testing.T) {
	tr := NewTextReader(false)
	lines := tr.Lines(writeGarbagePDF(t))
	assert.Empty(t, lines)
}

func TestSignatureScannerMissingFile(t *testing.T) {
	sc := NewSignatureScanner(10, time.Second, false)
	images := sc.Scan("/nonexistent/form.pdf")
	assert.Empty(t, images)
}

func TestNormalizeImageFormat(t *testing.T) {
	assert.Equal(t, "JPEG", normalizeImageFormat("DCTDecode"))
	assert.Equal(t, "PNG", normalizeImageFormat("FlateDecode"))
	assert.Equal(t, "JPEG2000", normalizeImageFormat("JPXDecode"))
	assert.Equal(t, "TIFF", normalizeImageFormat("CCITTFaxDecode"))
	assert.Equal(t, "LZWDecode", normalizeImageFormat("LZWDecode"))
}
