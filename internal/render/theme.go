// Package render turns an extracted field map plus the reference tables into
// the deliverable documents: the client-record CSV, the service-estimate CSV,
// the agreement/plan/assessment PDFs and the DOCX care plans. Renderers are
// pure functions of their inputs writing to an io.Writer; nothing in this
// package touches the filesystem.
package render

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Theme carries the shared visual identity of the PDF documents
type Theme struct {
	BrandR, BrandG, BrandB int
	FontFamily             string
	TitleSize              float64
	HeadingSize            float64
	BodySize               float64
	TableSize              float64
}

// DefaultTheme is the corporate blue used across every generated document
func DefaultTheme() Theme {
	return Theme{
		BrandR:      0x31,
		BrandG:      0x6D,
		BrandB:      0xB2,
		FontFamily:  "Helvetica",
		TitleSize:   18,
		HeadingSize: 14,
		BodySize:    11,
		TableSize:   8,
	}
}

// pdfDoc wraps a gofpdf instance with the layout vocabulary the documents
// share: titles, brand/black headings, body paragraphs, bullets and two
// table shapes.
type pdfDoc struct {
	pdf   *gofpdf.Fpdf
	theme Theme
}

func newPDFDoc(theme Theme) *pdfDoc {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return &pdfDoc{pdf: pdf, theme: theme}
}

func (d *pdfDoc) title(text string) {
	d.pdf.SetFont(d.theme.FontFamily, "B", d.theme.TitleSize)
	d.pdf.SetTextColor(d.theme.BrandR, d.theme.BrandG, d.theme.BrandB)
	d.pdf.MultiCell(0, 9, text, "", "L", false)
	d.pdf.Ln(3)
}

func (d *pdfDoc) heading(text string) {
	d.pdf.SetFont(d.theme.FontFamily, "B", d.theme.HeadingSize)
	d.pdf.SetTextColor(d.theme.BrandR, d.theme.BrandG, d.theme.BrandB)
	d.pdf.MultiCell(0, 7, text, "", "L", false)
	d.pdf.Ln(2)
}

func (d *pdfDoc) blackHeading(text string) {
	d.pdf.SetFont(d.theme.FontFamily, "B", d.theme.HeadingSize)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.MultiCell(0, 7, text, "", "L", false)
	d.pdf.Ln(2)
}

func (d *pdfDoc) boldPara(text string) {
	d.pdf.SetFont(d.theme.FontFamily, "B", d.theme.BodySize)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.MultiCell(0, 6, text, "", "L", false)
}

func (d *pdfDoc) para(text string) {
	d.pdf.SetFont(d.theme.FontFamily, "", d.theme.BodySize)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.MultiCell(0, 6, text, "", "L", false)
	d.pdf.Ln(3)
}

func (d *pdfDoc) bullet(text string) {
	d.pdf.SetFont(d.theme.FontFamily, "", d.theme.BodySize)
	d.pdf.SetTextColor(0, 0, 0)
	left, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetX(left + 5)
	d.pdf.MultiCell(0, 6, "• "+text, "", "L", false)
}

func (d *pdfDoc) spacer() {
	d.pdf.Ln(4)
}

// kvTable renders a two-column label/value table with brand-filled labels
func (d *pdfDoc) kvTable(rows [][2]string, labelWidth float64) {
	d.pdf.SetFont(d.theme.FontFamily, "", d.theme.TableSize)
	for _, row := range rows {
		d.kvRow(row[0], row[1], labelWidth)
	}
	d.pdf.Ln(3)
}

func (d *pdfDoc) kvRow(label, value string, labelWidth float64) {
	d.pdf.SetFillColor(d.theme.BrandR, d.theme.BrandG, d.theme.BrandB)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetFont(d.theme.FontFamily, "B", d.theme.TableSize)
	d.pdf.CellFormat(labelWidth, 8, label, "1", 0, "L", true, 0, "")

	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetFont(d.theme.FontFamily, "", d.theme.TableSize)
	d.pdf.CellFormat(0, 8, value, "1", 1, "L", false, 0, "")
}

// plainTable renders a bordered grid with a brand-filled header row
func (d *pdfDoc) plainTable(header []string, rows [][]string, widths []float64) {
	d.pdf.SetFillColor(d.theme.BrandR, d.theme.BrandG, d.theme.BrandB)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetFont(d.theme.FontFamily, "B", d.theme.TableSize)
	for i, h := range header {
		d.pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetFont(d.theme.FontFamily, "", d.theme.TableSize)
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			d.pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(3)
}

func (d *pdfDoc) write(w io.Writer) error {
	return d.pdf.Output(w)
}
