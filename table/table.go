package table

import (
	"github.com/jung-kurt/gofpdf"
)

// row is one label/value pair.
type row struct {
	label string
	value string
	style *CellStyle // optional override for the value cell
}

// Table is a fixed-position label/value table builder.
type Table struct {
	pdf    *gofpdf.Fpdf
	x, y   float64
	width  float64
	title  string
	rows   []row
	style  Style
	tr     func(string) string
}

// New creates a new Table associated with the given PDF document.
func New(pdf *gofpdf.Fpdf) *Table {
	return &Table{
		pdf:   pdf,
		style: DefaultStyle(),
		tr:    func(s string) string { return s },
	}
}

// SetPosition sets the top-left corner of the table, in page units.
func (t *Table) SetPosition(x, y float64) *Table {
	t.x = x
	t.y = y
	return t
}

// SetWidth sets the total table width.
func (t *Table) SetWidth(w float64) *Table {
	t.width = w
	return t
}

// SetTitle sets the text of the filled title band. An empty title omits
// the band.
func (t *Table) SetTitle(title string) *Table {
	t.title = title
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s Style) *Table {
	t.style = s
	return t
}

// SetTranslator sets the text translator applied to every cell, typically a
// UTF-8 to code-page mapping obtained from the PDF document.
func (t *Table) SetTranslator(tr func(string) string) *Table {
	if tr != nil {
		t.tr = tr
	}
	return t
}

// AddRow appends a label/value row.
func (t *Table) AddRow(label, value string) *Table {
	t.rows = append(t.rows, row{label: label, value: value})
	return t
}

// AddStyledRow appends a label/value row with an override style for the
// value cell.
func (t *Table) AddStyledRow(label, value string, s CellStyle) *Table {
	t.rows = append(t.rows, row{label: label, value: value, style: &s})
	return t
}

// Render draws the table at its fixed position.
func (t *Table) Render() error {
	if t.pdf.Err() {
		return t.pdf.Error()
	}

	y := t.y
	if t.title != "" {
		t.drawBand(y)
		y += t.style.HeaderH
	}

	half := t.width / 2
	pad := t.style.Padding
	for _, r := range t.rows {
		t.drawCell(t.x+pad.Left, y, half-pad.Left, t.style.RowHeight, r.label, t.style.Label)
		vs := t.style.Value
		if r.style != nil {
			vs = *r.style
		}
		t.drawCell(t.x+half, y, half-pad.Right, t.style.RowHeight, r.value, vs)
		y += t.style.RowHeight
	}

	if t.style.Border != nil {
		b := t.style.Border
		t.pdf.SetDrawColor(b.R, b.G, b.B)
		t.pdf.SetLineWidth(0.4)
		t.pdf.Rect(t.x, t.y, t.width, y-t.y, "D")
	}

	return t.pdf.Error()
}

// Height returns the rendered height of the table in page units.
func (t *Table) Height() float64 {
	h := float64(len(t.rows)) * t.style.RowHeight
	if t.title != "" {
		h += t.style.HeaderH
	}
	return h
}

func (t *Table) drawBand(y float64) {
	s := t.style.Header
	if s.FillColor != nil {
		t.pdf.SetFillColor(s.FillColor.R, s.FillColor.G, s.FillColor.B)
		t.pdf.Rect(t.x, y, t.width, t.style.HeaderH, "F")
	}
	t.applyText(s)
	t.pdf.SetXY(t.x, y)
	t.pdf.CellFormat(t.width, t.style.HeaderH, t.tr(t.title), "", 0, align(s.Align, "C"), false, 0, "")
}

func (t *Table) drawCell(x, y, w, h float64, text string, s CellStyle) {
	if s.FillColor != nil {
		t.pdf.SetFillColor(s.FillColor.R, s.FillColor.G, s.FillColor.B)
		t.pdf.Rect(x, y, w, h, "F")
	}
	t.applyText(s)
	t.pdf.SetXY(x, y)
	t.pdf.CellFormat(w, h, t.tr(text), "", 0, align(s.Align, "L"), false, 0, "")
}

func (t *Table) applyText(s CellStyle) {
	if s.TextColor != nil {
		t.pdf.SetTextColor(s.TextColor.R, s.TextColor.G, s.TextColor.B)
	}
	if s.Font != nil {
		t.pdf.SetFont(s.Font.Family, s.Font.Style, s.Font.Size)
	}
}

func align(a, fallback string) string {
	if a == "" {
		return fallback
	}
	return a
}
