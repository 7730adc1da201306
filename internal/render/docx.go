package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// The DOCX outputs are built directly as WordprocessingML: a zip archive
// holding the content-types manifest, the package relationships and one
// word/document.xml. Formatting is carried inline on the runs so no styles
// part is needed.

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxBodyOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>`

const docxBodyClose = `</w:body>
</w:document>`

// docxDoc accumulates document.xml body fragments
type docxDoc struct {
	theme Theme
	body  strings.Builder
}

func newDocxDoc(theme Theme) *docxDoc {
	return &docxDoc{theme: theme}
}

// brandHex renders the theme color as the RRGGBB string runs carry
func (d *docxDoc) brandHex() string {
	return fmt.Sprintf("%02X%02X%02X", d.theme.BrandR, d.theme.BrandG, d.theme.BrandB)
}

func (d *docxDoc) title(text string) {
	d.styledParagraph(text, int(d.theme.TitleSize*2), d.brandHex(), true, "")
}

func (d *docxDoc) heading(text string) {
	d.styledParagraph(text, int(d.theme.HeadingSize*2), d.brandHex(), true, "")
}

func (d *docxDoc) blackHeading(text string) {
	d.styledParagraph(text, int(d.theme.HeadingSize*2), "", true, "")
}

func (d *docxDoc) boldPara(text string) {
	d.styledParagraph(text, 0, "", true, "")
}

func (d *docxDoc) para(text string) {
	d.styledParagraph(text, 0, "", false, "")
}

func (d *docxDoc) bullet(text string) {
	d.styledParagraph("• "+text, 0, "", false, "360")
}

// styledParagraph writes one w:p with optional half-point size, RRGGBB
// color, bold and left indent (twentieths of a point).
func (d *docxDoc) styledParagraph(text string, halfPoints int, color string, bold bool, indent string) {
	d.body.WriteString("<w:p>")
	if indent != "" {
		d.body.WriteString(`<w:pPr><w:ind w:left="` + indent + `"/></w:pPr>`)
	}
	d.body.WriteString("<w:r><w:rPr>")
	if bold {
		d.body.WriteString("<w:b/>")
	}
	if color != "" {
		d.body.WriteString(`<w:color w:val="` + color + `"/>`)
	}
	if halfPoints > 0 {
		fmt.Fprintf(&d.body, `<w:sz w:val="%d"/>`, halfPoints)
	}
	d.body.WriteString(`</w:rPr><w:t xml:space="preserve">`)
	d.body.WriteString(escapeXML(text))
	d.body.WriteString("</w:t></w:r></w:p>")
}

// table writes a bordered table; rows[i][0] cells render bold on a brand
// fill when headerColumn is true.
func (d *docxDoc) table(rows [][]string, headerColumn bool) {
	d.body.WriteString(`<w:tbl><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:bottom w:val="single" w:sz="4"/>` +
		`<w:left w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr>`)

	for _, row := range rows {
		d.body.WriteString("<w:tr>")
		for i, cell := range row {
			label := headerColumn && i == 0
			d.body.WriteString("<w:tc><w:tcPr>")
			if label {
				d.body.WriteString(`<w:shd w:val="clear" w:fill="` + d.brandHex() + `"/>`)
			}
			d.body.WriteString("</w:tcPr><w:p><w:r><w:rPr>")
			if label {
				d.body.WriteString(`<w:b/><w:color w:val="FFFFFF"/>`)
			}
			d.body.WriteString(`</w:rPr><w:t xml:space="preserve">`)
			d.body.WriteString(escapeXML(cell))
			d.body.WriteString("</w:t></w:r></w:p></w:tc>")
		}
		d.body.WriteString("</w:tr>")
	}
	d.body.WriteString("</w:tbl>")

	// A table must be followed by a paragraph to stay well-formed for
	// Word's layout engine.
	d.body.WriteString("<w:p/>")
}

// write assembles the zip package
func (d *docxDoc) write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", docxBodyOpen + d.body.String() + docxBodyClose},
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create docx part %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("failed to write docx part %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize docx package: %w", err)
	}
	return nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer; bytes.Buffer never does.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
