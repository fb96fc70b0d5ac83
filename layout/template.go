package layout

import (
	"time"

	"topoguia/mide"
)

// Placement ties a region to its page and fixed box.
type Placement struct {
	Page Page
	Box  Rect
}

// Template is the explicit, immutable design configuration of the two-page
// document: page size, corporate colors, fonts, region geometry, and the
// printed generation date. Pass it into Build; there is no module-level
// design state.
type Template struct {
	PageW, PageH float64 // page size in mm, landscape

	Primary mide.Color // corporate green, bands and frames
	Accent  mide.Color // ochre, bullets and moderate tier
	Dark    mide.Color // body text
	Light   mide.Color // text on the primary band
	Panel   mide.Color // panel background fill
	Border  mide.Color // hairline gray

	Body     Font // default body face
	Footer   string
	Locality string // printed centered in the footer
	Date     string // printed right-aligned in the footer, YYYY-MM-DD

	Regions map[Region]Placement
}

// A4 landscape, in millimeters.
const (
	pageW = 297.0
	pageH = 210.0
)

// DefaultTemplate reproduces the printed topoguía design for Castilla-La
// Mancha: A4 landscape, green/ochre corporate palette, fixed regions.
func DefaultTemplate() Template {
	return Template{
		PageW: pageW,
		PageH: pageH,

		Primary: mide.Color{R: 0, G: 122, B: 51},
		Accent:  mide.Color{R: 232, G: 175, B: 46},
		Dark:    mide.Color{R: 51, G: 51, B: 51},
		Light:   mide.Color{R: 255, G: 255, B: 255},
		Panel:   mide.Color{R: 245, G: 245, B: 245},
		Border:  mide.Color{R: 221, G: 221, B: 221},

		Body:     Font{Family: "Helvetica", Size: 9},
		Footer:   "Topoguía de Senderismo",
		Locality: "Castilla-La Mancha",
		Date:     time.Now().Format("2006-01-02"),

		Regions: map[Region]Placement{
			RegionHeaderBand:      {Page1, Rect{X: 0, Y: 0, W: pageW, H: 20}},
			RegionPanoramic:       {Page1, Rect{X: 10, Y: 22, W: pageW - 20, H: 55}},
			RegionDescription:     {Page1, Rect{X: 15, Y: 82, W: (pageW - 30) * 0.60, H: 110}},
			RegionRecommendations: {Page1, Rect{X: pageW - 75, Y: 82, W: 65, H: 100}},
			RegionFooter:          {Page1, Rect{X: 10, Y: pageH - 12, W: pageW - 20, H: 10}},

			RegionMapHeader:      {Page2, Rect{X: 0, Y: 0, W: pageW, H: 15}},
			RegionMapFrame:       {Page2, Rect{X: 15, Y: 22, W: (pageW - 30) * 0.55, H: 85}},
			RegionProfileFrame:   {Page2, Rect{X: 15, Y: 145, W: (pageW - 30) * 0.55, H: 45}},
			RegionTechnicalPanel: {Page2, Rect{X: pageW - 110, Y: 22, W: 95, H: 58}},
			RegionMIDEGrid:       {Page2, Rect{X: pageW - 110, Y: 84, W: 95, H: 48}},
			RegionContact:        {Page2, Rect{X: pageW - 110, Y: 136, W: 95, H: 54}},
		},
	}
}

// place resolves a region against the template, falling back to a zero box
// for regions a reduced template leaves out.
func (t Template) place(r Region) Placement {
	if p, ok := t.Regions[r]; ok {
		return p
	}
	return Placement{}
}

// footerBox returns the footer placement translated onto the given page.
// Both pages share the same footer geometry.
func (t Template) footerBox(p Page) Placement {
	pl := t.place(RegionFooter)
	pl.Page = p
	return pl
}
