package table

import (
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func newPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 9)
	return pdf
}

func TestRenderFixedTable(t *testing.T) {
	pdf := newPDF()

	tbl := New(pdf).
		SetPosition(187, 30).
		SetWidth(90).
		SetTitle("FICHA TÉCNICA").
		AddRow("Horario:", "2h 35m").
		AddRow("Distancia:", "10,5 km").
		AddRow("Tipo:", "Circular")

	if err := tbl.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func TestHeight(t *testing.T) {
	pdf := newPDF()

	tbl := New(pdf).
		SetTitle("FICHA TÉCNICA").
		AddRow("a", "1").
		AddRow("b", "2")

	want := DefaultStyle().HeaderH + 2*DefaultStyle().RowHeight
	if got := tbl.Height(); got != want {
		t.Errorf("Height = %v, want %v", got, want)
	}

	bare := New(pdf).AddRow("a", "1")
	if got := bare.Height(); got != DefaultStyle().RowHeight {
		t.Errorf("Height without title = %v, want %v", got, DefaultStyle().RowHeight)
	}
}

func TestRenderWithBorderAndStyledRow(t *testing.T) {
	pdf := newPDF()

	style := DefaultStyle()
	style.Border = &RGBColor{R: 0, G: 122, B: 51}

	emergency := CellStyle{
		TextColor: &RGBColor{R: 231, G: 76, B: 60},
		Font:      &FontSpec{Family: "Helvetica", Style: "B", Size: 8},
	}

	tbl := New(pdf).
		SetPosition(20, 20).
		SetWidth(80).
		SetStyle(style).
		AddRow("Parque:", "949 88 53 00").
		AddStyledRow("Emergencias:", "112", emergency)

	if err := tbl.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if buf.Len() < 100 {
		t.Fatal("PDF output seems too small")
	}
}
