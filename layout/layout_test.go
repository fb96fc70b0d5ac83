package layout

import (
	"testing"

	"topoguia"
	"topoguia/mide"
	"topoguia/record"
)

func sample() record.Record {
	return record.Record{
		Code: "PR-GU 08",
		Name: "Sendero Mandayona-Mirabueno-Aragosa",
		Type: record.Circular,
		Narrative: record.Narrative{
			Introduction: "La ruta parte del centro de interpretación.",
			Itinerary:    "Discurre por caminos vecinales.",
			Vegetation:   "Encinas y matorral mediterráneo.",
			Fauna:        "Buitre leonado y corzos.",
		},
		Metrics: record.Metrics{DistanceKm: 10.5, DurationMin: 180, AscentM: 500, DescentM: 500},
		MIDE: mide.Rating{
			EnvironmentSeverity:    3,
			Orientation:            3,
			DisplacementDifficulty: 3,
			EffortRequired:         3,
		},
		Contact: record.Contact{
			EmergencyPhone: "112",
			ParkPhone:      "949 88 53 00",
			WebURL:         "http://areasprotegidas.castillalamancha.es",
		},
		Media: record.Media{
			Panoramic:        "panoramic",
			TopoMap:          "map",
			ElevationProfile: "profile",
		},
		Recommendations: []string{"Llevar agua suficiente.", "Consultar la previsión meteorológica."},
	}
}

func TestBuildCompleteRecord(t *testing.T) {
	rec := sample()
	ins, warnings, err := Build(&rec, DefaultTemplate())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if len(ins.ForPage(Page1)) == 0 || len(ins.ForPage(Page2)) == 0 {
		t.Fatal("expected blocks on both pages")
	}

	// Header carries the route code on the band.
	h := ins.Find(Page1, RegionHeaderBand, KindHeading)
	if h == nil || h.Text != "PR-GU 08" {
		t.Errorf("header band heading = %+v", h)
	}

	// All three media slots resolved to image blocks.
	for _, r := range []Region{RegionPanoramic, RegionMapFrame, RegionProfileFrame} {
		pg := Page1
		if r != RegionPanoramic {
			pg = Page2
		}
		if ins.Find(pg, r, KindImage) == nil {
			t.Errorf("no image block in region %s", r)
		}
		if ins.Find(pg, r, KindPlaceholder) != nil {
			t.Errorf("unexpected placeholder in region %s", r)
		}
	}

	// Four independent MIDE swatches, all moderate ochre.
	var swatches int
	for _, b := range ins.ForPage(Page2) {
		if b.Kind != KindColorSwatch {
			continue
		}
		swatches++
		if b.Score != 3 {
			t.Errorf("swatch %q score = %d, want 3", b.Label, b.Score)
		}
		if *b.Color != mide.TierColor(mide.Moderate) {
			t.Errorf("swatch %q color = %v, want ochre", b.Label, *b.Color)
		}
	}
	if swatches != 4 {
		t.Errorf("swatches = %d, want 4", swatches)
	}

	// Technical table carries the derived elevation total.
	var sawTotal bool
	for _, b := range ins.ForPage(Page2) {
		if b.Kind == KindTableRow && b.Label == "Desnivel total:" {
			sawTotal = true
			if b.Value != "1000 m" {
				t.Errorf("Desnivel total = %q, want 1000 m", b.Value)
			}
		}
	}
	if !sawTotal {
		t.Error("no Desnivel total row emitted")
	}

	// QR present for the web URL.
	qr := ins.Find(Page2, RegionContact, KindQR)
	if qr == nil || qr.Payload != rec.Contact.WebURL {
		t.Errorf("QR block = %+v", qr)
	}
}

func TestBuildMissingTopoMap(t *testing.T) {
	rec := sample()
	rec.Media.TopoMap = ""

	ins, warnings, err := Build(&rec, DefaultTemplate())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(warnings) != 1 || warnings[0].Slot != SlotTopoMap {
		t.Fatalf("warnings = %v, want one for topoMap", warnings)
	}
	ph := ins.Find(Page2, RegionMapFrame, KindPlaceholder)
	if ph == nil {
		t.Fatal("no placeholder block for the map frame")
	}
	if ph.Text != "Mapa topográfico no disponible" {
		t.Errorf("placeholder label = %q", ph.Text)
	}
	if ins.Find(Page2, RegionMapFrame, KindImage) != nil {
		t.Error("image block emitted for an absent slot")
	}
}

func TestBuildAllMediaAbsent(t *testing.T) {
	rec := sample()
	rec.Media = record.Media{}

	ins, warnings, err := Build(&rec, DefaultTemplate())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(warnings) != 3 {
		t.Fatalf("warnings = %v, want three", warnings)
	}
	for _, r := range []Region{RegionPanoramic, RegionMapFrame, RegionProfileFrame} {
		pg := Page1
		if r != RegionPanoramic {
			pg = Page2
		}
		if ins.Find(pg, r, KindPlaceholder) == nil {
			t.Errorf("no placeholder in region %s", r)
		}
	}
}

func TestBuildInvalidRecordFailsFieldNamed(t *testing.T) {
	rec := sample()
	rec.MIDE.EnvironmentSeverity = 6

	_, _, err := Build(&rec, DefaultTemplate())
	if err == nil {
		t.Fatal("expected ValidationError")
	}
	ve, ok := topoguia.IsValidation(err)
	if !ok {
		t.Fatalf("got %T, want *ValidationError", err)
	}
	if ve.Field != "environmentSeverity" {
		t.Errorf("field = %q, want environmentSeverity", ve.Field)
	}
}

func TestBuildOmitsOptionalBlocks(t *testing.T) {
	rec := sample()
	rec.Contact.WebURL = ""
	rec.Recommendations = nil
	rec.Logos = nil

	ins, _, err := Build(&rec, DefaultTemplate())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if ins.Find(Page2, RegionContact, KindQR) != nil {
		t.Error("QR block emitted without a web URL")
	}
	if ins.Find(Page1, RegionRecommendations, KindList) != nil {
		t.Error("recommendations list emitted for empty input")
	}
	if ins.Find(Page1, RegionHeaderBand, KindImage) != nil {
		t.Error("logo block emitted without logos")
	}
}

func TestBuildCapsRecommendations(t *testing.T) {
	rec := sample()
	rec.Recommendations = []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	ins, _, err := Build(&rec, DefaultTemplate())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	list := ins.Find(Page1, RegionRecommendations, KindList)
	if list == nil {
		t.Fatal("no recommendations list emitted")
	}
	if len(list.Items) != maxRecommendations {
		t.Errorf("items = %d, want %d", len(list.Items), maxRecommendations)
	}
}

func TestFormatKm(t *testing.T) {
	if got := formatKm(10.5); got != "10,5 km" {
		t.Errorf("formatKm(10.5) = %q", got)
	}
	if got := formatKm(11); got != "11,0 km" {
		t.Errorf("formatKm(11) = %q", got)
	}
}

func TestDefaultTemplateRegionsResolve(t *testing.T) {
	tpl := DefaultTemplate()
	regions := []Region{
		RegionHeaderBand, RegionPanoramic, RegionDescription,
		RegionRecommendations, RegionFooter, RegionMapHeader, RegionMapFrame,
		RegionProfileFrame, RegionTechnicalPanel, RegionMIDEGrid, RegionContact,
	}
	for _, r := range regions {
		pl := tpl.place(r)
		if pl.Page == 0 {
			t.Errorf("region %s has no placement", r)
		}
		if pl.Box.W <= 0 || pl.Box.H <= 0 {
			t.Errorf("region %s has degenerate box %+v", r, pl.Box)
		}
		if pl.Box.X+pl.Box.W > tpl.PageW+0.01 || pl.Box.Y+pl.Box.H > tpl.PageH+0.01 {
			t.Errorf("region %s overflows the page: %+v", r, pl.Box)
		}
	}
}
