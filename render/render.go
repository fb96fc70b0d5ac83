// Package render draws a layout instruction set onto a two-page
// A4-landscape PDF. It is the rendering collaborator behind the layout
// builder: each block kind has one draw routine, and the package knows
// nothing about routes beyond what the blocks carry.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
	fpdi "github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"topoguia"
	"topoguia/layout"
	"topoguia/media"
	"topoguia/mide"
	"topoguia/table"
)

// Renderer draws instruction sets. It is stateless between Render calls and
// safe for concurrent use.
type Renderer struct {
	cfg config
}

// Render draws the instruction set to w. Image blocks resolve their handles
// against assets; a handle missing from the set degrades to the same
// placeholder box the layout builder emits for absent slots.
func (r *Renderer) Render(w io.Writer, ins layout.Instructions, assets *media.Set) error {
	if len(ins) == 0 {
		return topoguia.ErrNoInstructions
	}
	if assets == nil {
		assets = media.NewSet()
	}

	pdf := gofpdf.New("L", "mm", "A4", r.cfg.fontDir)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	if h := ins.Find(layout.Page1, layout.RegionHeaderBand, layout.KindHeading); h != nil {
		pdf.SetTitle(h.Text, true)
	}

	st := &state{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		assets: assets,
	}

	var stationeryTpl int
	if r.cfg.stationery != "" {
		tpl, err := importStationery(pdf, r.cfg.stationery)
		if err != nil {
			return err
		}
		stationeryTpl = tpl
	}

	for page := layout.Page1; page <= layout.Page2; page++ {
		pdf.AddPage()
		if stationeryTpl != 0 {
			pageW, _ := pdf.GetPageSize()
			fpdi.UseImportedTemplate(pdf, stationeryTpl, 0, 0, pageW, 0)
		}
		if err := st.renderPage(ins.ForPage(page)); err != nil {
			return err
		}
	}

	if pdf.Err() {
		return fmt.Errorf("render: %w", pdf.Error())
	}
	return pdf.Output(w)
}

// importStationery imports page 1 of the stationery PDF. gofpdi panics on
// unreadable input, so the panic is converted into ErrBadStationery.
func importStationery(pdf *gofpdf.Fpdf, path string) (tpl int, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return 0, fmt.Errorf("%w: %v", topoguia.ErrBadStationery, statErr)
	}
	defer func() {
		if rec := recover(); rec != nil {
			tpl = 0
			err = fmt.Errorf("%w: %v", topoguia.ErrBadStationery, rec)
		}
	}()
	return fpdi.ImportPage(pdf, path, 1, "/MediaBox"), nil
}

// state carries the per-document drawing context: the PDF, the code-page
// translator, the asset registry, and flow cursors for the stacked regions.
type state struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	assets *media.Set

	flow      map[layout.Region]float64
	swatches  int
	tableDone bool
}

// flowRegions stack their text blocks top to bottom.
var flowRegions = map[layout.Region]bool{
	layout.RegionHeaderBand:  true,
	layout.RegionDescription: true,
	layout.RegionContact:     true,
}

func (st *state) renderPage(blocks []layout.Block) error {
	st.flow = make(map[layout.Region]float64)
	st.swatches = 0
	st.tableDone = false

	for _, b := range blocks {
		if err := st.renderBlock(b, blocks); err != nil {
			return err
		}
	}
	return nil
}

func (st *state) renderBlock(b layout.Block, page []layout.Block) error {
	switch b.Kind {
	case layout.KindHeading:
		st.drawHeading(b)
	case layout.KindParagraph:
		st.drawParagraph(b)
	case layout.KindCaption:
		st.drawCaption(b)
	case layout.KindImage:
		st.drawImage(b)
	case layout.KindPlaceholder:
		st.drawPlaceholder(b.Rect, b.Text, b.Fill, b.Color)
	case layout.KindList:
		st.drawList(b)
	case layout.KindTableRow:
		return st.drawTechnicalTable(b, page)
	case layout.KindColorSwatch:
		st.drawSwatch(b)
	case layout.KindRule:
		st.drawRule(b)
	case layout.KindQR:
		return st.drawQR(b)
	default:
		return fmt.Errorf("%w: %q", topoguia.ErrUnknownBlock, b.Kind)
	}
	return nil
}

func (st *state) setFont(f *layout.Font) float64 {
	family, style, size := "Helvetica", "", 9.0
	if f != nil {
		if f.Family != "" {
			family = f.Family
		}
		style = f.Style
		if f.Size > 0 {
			size = f.Size
		}
	}
	st.pdf.SetFont(family, style, size)
	return size
}

func (st *state) setTextColor(c *layout.Block) {
	if c.Color != nil {
		st.pdf.SetTextColor(c.Color.R, c.Color.G, c.Color.B)
	} else {
		st.pdf.SetTextColor(0, 0, 0)
	}
}

// flowY returns the current cursor for a stacked region, starting at the
// top of its box.
func (st *state) flowY(b layout.Block) float64 {
	if y, ok := st.flow[b.Region]; ok {
		return y
	}
	y := b.Rect.Y + 1
	st.flow[b.Region] = y
	return y
}

func (st *state) drawHeading(b layout.Block) {
	// The recommendations box draws its full frame behind the title.
	if b.Region == layout.RegionRecommendations {
		st.drawRecommendationsBox(b)
		return
	}

	if b.Fill != nil {
		st.pdf.SetFillColor(b.Fill.R, b.Fill.G, b.Fill.B)
		st.pdf.Rect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, "F")
	}

	size := st.setFont(b.Font)
	st.setTextColor(&b)

	lineH := size * 0.42
	y := st.flowY(b)
	st.pdf.SetXY(b.Rect.X, y)
	st.pdf.CellFormat(b.Rect.W, lineH, st.tr(b.Text), "", 0, align(b.Align), false, 0, "")
	st.flow[b.Region] = y + lineH + 1
}

func (st *state) drawParagraph(b layout.Block) {
	size := st.setFont(b.Font)
	st.setTextColor(&b)

	lineH := size * 0.45
	y := st.flowY(b)
	st.pdf.SetXY(b.Rect.X, y)
	st.pdf.MultiCell(b.Rect.W, lineH, st.tr(b.Text), "", align(b.Align), false)
	st.flow[b.Region] = st.pdf.GetY() + 3
}

func (st *state) drawCaption(b layout.Block) {
	size := st.setFont(b.Font)
	lineH := size * 0.5

	switch {
	case flowRegions[b.Region]:
		st.setTextColor(&b)
		y := st.flowY(b)
		st.pdf.SetXY(b.Rect.X, y)
		st.pdf.CellFormat(b.Rect.W, lineH, st.tr(b.Text), "", 0, align(b.Align), false, 0, "")
		st.flow[b.Region] = y + lineH + 1
	case b.Region == layout.RegionPanoramic:
		// Landmark label over the image: dark pill behind light text.
		st.pdf.SetFillColor(0, 0, 0)
		st.pdf.SetAlpha(0.5, "Normal")
		st.pdf.RoundedRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, 2, "1234", "F")
		st.pdf.SetAlpha(1, "Normal")
		st.setTextColor(&b)
		st.pdf.SetXY(b.Rect.X, b.Rect.Y+1.5)
		st.pdf.CellFormat(b.Rect.W, b.Rect.H-3, st.tr(b.Text), "", 0, "C", false, 0, "")
	default:
		st.setTextColor(&b)
		st.pdf.SetXY(b.Rect.X, b.Rect.Y+3)
		st.pdf.CellFormat(b.Rect.W, lineH, st.tr(b.Text), "", 0, align(b.Align), false, 0, "")
	}
}

func (st *state) drawImage(b layout.Block) {
	h, ok := st.assets.Get(b.Slot)
	if !ok {
		gray := layout.DefaultTemplate()
		st.drawPlaceholder(b.Rect, b.Slot, &gray.Panel, &gray.Border)
		return
	}

	name := "img:" + h.Name
	opts := gofpdf.ImageOptions{ImageType: h.Format}
	if st.pdf.GetImageInfo(name) == nil {
		st.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(h.Data))
	}

	// Fit the image inside the block box, centered horizontally.
	x, y, w, hh := b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H
	if h.AspectRatio > 0 {
		fitW := hh * h.AspectRatio
		if fitW <= w {
			x += (w - fitW) / 2
			w = fitW
		} else {
			hh = w / h.AspectRatio
		}
	}
	st.pdf.ImageOptions(name, x, y, w, hh, false, opts, 0, "")
}

func (st *state) drawPlaceholder(box layout.Rect, label string, fill, border *mide.Color) {
	if fill != nil {
		st.pdf.SetFillColor(fill.R, fill.G, fill.B)
		st.pdf.Rect(box.X, box.Y, box.W, box.H, "F")
	}
	if border != nil {
		st.pdf.SetDrawColor(border.R, border.G, border.B)
		st.pdf.SetLineWidth(0.4)
		st.pdf.Rect(box.X, box.Y, box.W, box.H, "D")
	}
	st.pdf.SetFont("Helvetica", "I", 9)
	st.pdf.SetTextColor(128, 128, 128)
	st.pdf.SetXY(box.X, box.Y+box.H/2-3)
	st.pdf.CellFormat(box.W, 6, st.tr(label), "", 0, "C", false, 0, "")
}

// drawRecommendationsBox paints the framed gray panel and its title; the
// list block that follows fills it.
func (st *state) drawRecommendationsBox(b layout.Block) {
	if b.Fill != nil {
		st.pdf.SetFillColor(b.Fill.R, b.Fill.G, b.Fill.B)
		st.pdf.Rect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, "F")
	}
	if b.Color != nil {
		st.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
		st.pdf.SetLineWidth(0.8)
		st.pdf.Rect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, "D")
	}
	st.setFont(b.Font)
	st.setTextColor(&b)
	st.pdf.SetXY(b.Rect.X+5, b.Rect.Y+3)
	st.pdf.CellFormat(b.Rect.W-10, 6, st.tr(b.Text), "", 0, "L", false, 0, "")
	st.flow[b.Region] = b.Rect.Y + 12
}

func (st *state) drawList(b layout.Block) {
	size := st.setFont(b.Font)
	lineH := size * 0.5

	y := st.flow[b.Region]
	if y == 0 {
		y = b.Rect.Y + 2
	}
	for _, item := range b.Items {
		if b.Fill != nil {
			st.pdf.SetFillColor(b.Fill.R, b.Fill.G, b.Fill.B)
			st.pdf.Circle(b.Rect.X+4, y+lineH/2, 1, "F")
		}
		st.setFont(b.Font)
		st.setTextColor(&b)
		st.pdf.SetXY(b.Rect.X+7, y)
		st.pdf.MultiCell(b.Rect.W-12, lineH, st.tr(item), "", "L", false)
		y = st.pdf.GetY() + 1.5
	}
	st.flow[b.Region] = y
}

// drawTechnicalTable renders all table rows of the page in one pass, on the
// first row encountered.
func (st *state) drawTechnicalTable(first layout.Block, page []layout.Block) error {
	if st.tableDone {
		return nil
	}
	st.tableDone = true

	green := table.RGBColor{R: 0, G: 122, B: 51}
	style := table.DefaultStyle()
	style.Border = &green

	tbl := table.New(st.pdf).
		SetPosition(first.Rect.X, first.Rect.Y).
		SetWidth(first.Rect.W).
		SetTitle("FICHA TÉCNICA").
		SetStyle(style).
		SetTranslator(st.tr)

	for _, b := range page {
		if b.Kind == layout.KindTableRow && b.Region == first.Region {
			tbl.AddRow(b.Label, b.Value)
		}
	}
	return tbl.Render()
}

// drawSwatch draws one MIDE grid cell: tier-colored frame, big score,
// criterion caption. Cells fill the grid box two per row in block order.
func (st *state) drawSwatch(b layout.Block) {
	cellW := b.Rect.W / 2
	cellH := b.Rect.H / 2
	x := b.Rect.X + float64(st.swatches%2)*cellW
	y := b.Rect.Y + float64(st.swatches/2)*cellH
	st.swatches++

	if b.Color != nil {
		st.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
		st.pdf.SetTextColor(b.Color.R, b.Color.G, b.Color.B)
	}
	st.pdf.SetLineWidth(0.8)
	st.pdf.Rect(x+1, y+1, cellW-2, cellH-2, "D")

	st.pdf.SetFont("Helvetica", "B", 18)
	st.pdf.SetXY(x+1, y+cellH/2-4)
	st.pdf.CellFormat(cellW-2, 8, fmt.Sprintf("%d", b.Score), "", 0, "C", false, 0, "")

	st.pdf.SetFont("Helvetica", "B", 6)
	st.pdf.SetTextColor(51, 51, 51)
	st.pdf.SetXY(x+1, y+2)
	st.pdf.CellFormat(cellW-2, 3, st.tr(b.Label), "", 0, "C", false, 0, "")
}

func (st *state) drawRule(b layout.Block) {
	if b.Color != nil {
		st.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
	}
	st.pdf.SetLineWidth(0.5)
	st.pdf.Line(b.Rect.X, b.Rect.Y, b.Rect.X+b.Rect.W, b.Rect.Y)
}

func align(a string) string {
	if a == "" {
		return "L"
	}
	return a
}
