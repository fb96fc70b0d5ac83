package layout

import (
	"fmt"
	"strings"

	"topoguia"
	"topoguia/mide"
	"topoguia/record"
)

// Media slot names, as reported in MissingMediaWarning and matched against
// render-time assets.
const (
	SlotPanoramic = "panoramic"
	SlotTopoMap   = "topoMap"
	SlotProfile   = "elevationProfile"
)

// placeholder labels per slot
var placeholderLabels = map[string]string{
	SlotPanoramic: "Imagen panorámica no disponible",
	SlotTopoMap:   "Mapa topográfico no disponible",
	SlotProfile:   "Perfil de elevación no disponible",
}

// maxRecommendations caps the list the recommendations box can hold.
const maxRecommendations = 6

// Build validates the record, classifies its MIDE scores, and expands it
// into the ordered instruction set for the two-page document. Absent media
// slots produce placeholder blocks plus warnings; a record that violates its
// contract fails with a field-named ValidationError and no instructions.
func Build(rec *record.Record, tpl Template) (Instructions, []topoguia.MissingMediaWarning, error) {
	if err := rec.Validate(); err != nil {
		return nil, nil, err
	}
	assessments, err := rec.MIDE.Classify()
	if err != nil {
		return nil, nil, err
	}

	b := &builder{tpl: tpl}

	b.page1(rec)
	b.page2(rec, assessments)

	return b.ins, b.warnings, nil
}

type builder struct {
	tpl      Template
	ins      Instructions
	warnings []topoguia.MissingMediaWarning
}

func (b *builder) add(blk Block) {
	b.ins = append(b.ins, blk)
}

// image emits an image block for the slot, or a placeholder plus warning
// when the handle is empty.
func (b *builder) image(pl Placement, slot, handle string) {
	if handle == "" {
		b.warnings = append(b.warnings, topoguia.MissingMediaWarning{Slot: slot})
		b.add(Block{
			Kind:   KindPlaceholder,
			Page:   pl.Page,
			Region: regionOfSlot(slot),
			Rect:   pl.Box,
			Slot:   slot,
			Text:   placeholderLabels[slot],
			Fill:   &b.tpl.Panel,
			Color:  &b.tpl.Border,
		})
		return
	}
	b.add(Block{
		Kind:   KindImage,
		Page:   pl.Page,
		Region: regionOfSlot(slot),
		Rect:   pl.Box,
		Slot:   handle,
	})
}

func regionOfSlot(slot string) Region {
	switch slot {
	case SlotPanoramic:
		return RegionPanoramic
	case SlotTopoMap:
		return RegionMapFrame
	default:
		return RegionProfileFrame
	}
}

func (b *builder) page1(rec *record.Record) {
	band := b.tpl.place(RegionHeaderBand)

	// Green band with route code and name.
	b.add(Block{
		Kind: KindHeading, Page: band.Page, Region: RegionHeaderBand, Rect: band.Box,
		Text: rec.Code, Align: "C",
		Font:  &Font{Family: b.tpl.Body.Family, Style: "B", Size: 28},
		Color: &b.tpl.Light, Fill: &b.tpl.Primary,
	})
	b.add(Block{
		Kind: KindCaption, Page: band.Page, Region: RegionHeaderBand, Rect: band.Box,
		Text: rec.Name, Align: "C",
		Font:  &Font{Family: b.tpl.Body.Family, Size: 11},
		Color: &b.tpl.Light,
	})

	// Institutional logos: first on the left edge of the band, the rest
	// right-aligned, mirroring the printed header.
	for i, logo := range rec.Logos {
		box := Rect{X: 10, Y: 2, W: 25, H: 15}
		if i > 0 {
			box.X = b.tpl.PageW - 35 - float64(i-1)*30
		}
		b.add(Block{
			Kind: KindImage, Page: band.Page, Region: RegionHeaderBand,
			Rect: box, Slot: logo,
		})
	}

	// Panoramic strip with optional landmark labels.
	pano := b.tpl.place(RegionPanoramic)
	b.image(pano, SlotPanoramic, rec.Media.Panoramic)
	for _, lm := range rec.Landmarks {
		if strings.TrimSpace(lm.Text) == "" {
			continue
		}
		b.add(Block{
			Kind: KindCaption, Page: pano.Page, Region: RegionPanoramic,
			Rect:  Rect{X: lm.X, Y: pano.Box.Y + 8, W: 40, H: 8},
			Text:  lm.Text,
			Align: "C",
			Font:  &Font{Family: b.tpl.Body.Family, Style: "B", Size: 9},
			Color: &b.tpl.Light,
		})
	}

	// Four descriptive paragraphs, justified in the left column.
	desc := b.tpl.place(RegionDescription)
	for _, p := range []string{
		rec.Narrative.Introduction,
		rec.Narrative.Itinerary,
		rec.Narrative.Vegetation,
		rec.Narrative.Fauna,
	} {
		b.add(Block{
			Kind: KindParagraph, Page: desc.Page, Region: RegionDescription,
			Rect: desc.Box, Text: p, Align: "J",
			Font: &b.tpl.Body, Color: &b.tpl.Dark,
		})
	}

	// Recommendations box, capped like the printed design.
	if len(rec.Recommendations) > 0 {
		recb := b.tpl.place(RegionRecommendations)
		items := rec.Recommendations
		if len(items) > maxRecommendations {
			items = items[:maxRecommendations]
		}
		b.add(Block{
			Kind: KindHeading, Page: recb.Page, Region: RegionRecommendations,
			Rect: recb.Box, Text: "RECOMENDACIONES",
			Font:  &Font{Family: b.tpl.Body.Family, Style: "B", Size: 11},
			Color: &b.tpl.Primary, Fill: &b.tpl.Panel,
		})
		b.add(Block{
			Kind: KindList, Page: recb.Page, Region: RegionRecommendations,
			Rect: recb.Box, Items: items,
			Font: &Font{Family: b.tpl.Body.Family, Size: 7},
			Color: &b.tpl.Dark, Fill: &b.tpl.Accent,
		})
	}

	b.footer(Page1)
}

func (b *builder) page2(rec *record.Record, assessments [4]mide.Assessment) {
	band := b.tpl.place(RegionMapHeader)
	b.add(Block{
		Kind: KindHeading, Page: band.Page, Region: RegionMapHeader, Rect: band.Box,
		Text: "MAPA Y PERFIL", Align: "C",
		Font:  &Font{Family: b.tpl.Body.Family, Style: "B", Size: 14},
		Color: &b.tpl.Light, Fill: &b.tpl.Primary,
	})

	b.image(b.tpl.place(RegionMapFrame), SlotTopoMap, rec.Media.TopoMap)
	b.image(b.tpl.place(RegionProfileFrame), SlotProfile, rec.Media.ElevationProfile)

	// FICHA TÉCNICA rows.
	tech := b.tpl.place(RegionTechnicalPanel)
	rows := []struct{ label, value string }{
		{"Horario:", rec.Metrics.FormatDuration()},
		{"Distancia:", formatKm(rec.Metrics.DistanceKm)},
		{"Subida:", fmt.Sprintf("%d m", rec.Metrics.AscentM)},
		{"Bajada:", fmt.Sprintf("%d m", rec.Metrics.DescentM)},
		{"Desnivel total:", fmt.Sprintf("%d m", rec.Metrics.TotalElevationChange())},
		{"Tipo:", rec.Type.Label()},
	}
	for _, row := range rows {
		b.add(Block{
			Kind: KindTableRow, Page: tech.Page, Region: RegionTechnicalPanel,
			Rect: tech.Box, Label: row.label, Value: row.value,
		})
	}

	// MIDE grid: one color swatch per criterion, in criterion order.
	grid := b.tpl.place(RegionMIDEGrid)
	for _, a := range assessments {
		color := a.Color
		b.add(Block{
			Kind: KindColorSwatch, Page: grid.Page, Region: RegionMIDEGrid,
			Rect: grid.Box, Label: a.Criterion.Label(), Score: int(a.Score),
			Color: &color,
		})
	}

	// Contact block with emergency number highlighted.
	contact := b.tpl.place(RegionContact)
	b.add(Block{
		Kind: KindHeading, Page: contact.Page, Region: RegionContact,
		Rect: contact.Box, Text: "CONTACTO",
		Font:  &Font{Family: b.tpl.Body.Family, Style: "B", Size: 8},
		Color: &b.tpl.Primary,
	})
	b.add(Block{
		Kind: KindCaption, Page: contact.Page, Region: RegionContact,
		Rect: contact.Box, Text: "Emergencias: " + rec.Contact.EmergencyPhone,
		Font:  &Font{Family: b.tpl.Body.Family, Style: "B", Size: 8},
		Color: &red,
	})
	if rec.Contact.ParkPhone != "" {
		b.add(Block{
			Kind: KindCaption, Page: contact.Page, Region: RegionContact,
			Rect: contact.Box, Text: "Parque: " + rec.Contact.ParkPhone,
			Font: &Font{Family: b.tpl.Body.Family, Size: 7}, Color: &b.tpl.Dark,
		})
	}
	if rec.Contact.WebURL != "" {
		b.add(Block{
			Kind: KindCaption, Page: contact.Page, Region: RegionContact,
			Rect: contact.Box, Text: rec.Contact.WebURL,
			Font: &Font{Family: b.tpl.Body.Family, Size: 7}, Color: &b.tpl.Dark,
		})
		b.add(Block{
			Kind: KindQR, Page: contact.Page, Region: RegionContact,
			Rect:    Rect{X: contact.Box.X + 60, Y: contact.Box.Y + 20, W: 25, H: 25},
			Payload: rec.Contact.WebURL,
			Color:   &b.tpl.Primary,
		})
	}

	b.footer(Page2)
}

func (b *builder) footer(p Page) {
	pl := b.tpl.footerBox(p)
	b.add(Block{
		Kind: KindRule, Page: p, Region: RegionFooter, Rect: pl.Box,
		Color: &b.tpl.Primary,
	})
	b.add(Block{
		Kind: KindCaption, Page: p, Region: RegionFooter, Rect: pl.Box,
		Text: fmt.Sprintf("%s - %d/2", b.tpl.Footer, p), Align: "L",
		Font: &Font{Family: b.tpl.Body.Family, Size: 7}, Color: &b.tpl.Dark,
	})
	b.add(Block{
		Kind: KindCaption, Page: p, Region: RegionFooter, Rect: pl.Box,
		Text: b.tpl.Locality, Align: "C",
		Font: &Font{Family: b.tpl.Body.Family, Style: "B", Size: 7}, Color: &b.tpl.Dark,
	})
	b.add(Block{
		Kind: KindCaption, Page: p, Region: RegionFooter, Rect: pl.Box,
		Text: b.tpl.Date, Align: "R",
		Font: &Font{Family: b.tpl.Body.Family, Size: 7}, Color: &b.tpl.Dark,
	})
}

// formatKm renders a distance with the Spanish decimal comma, "10,5 km".
func formatKm(km float64) string {
	return strings.Replace(fmt.Sprintf("%.1f km", km), ".", ",", 1)
}

// emergency red, matching the printed contact line
var red = mide.TierColor(mide.High)
