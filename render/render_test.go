package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"topoguia"
	"topoguia/layout"
	"topoguia/media"
	"topoguia/mide"
	"topoguia/record"
)

func sampleRecord() record.Record {
	return record.Record{
		Code: "PR-GU 08",
		Name: "Sendero Mandayona-Mirabueno-Aragosa",
		Type: record.Circular,
		Narrative: record.Narrative{
			Introduction: "La ruta parte del centro de interpretación de Mandayona.",
			Itinerary:    "Discurre por caminos vecinales y antiguas vías pecuarias.",
			Vegetation:   "Encinas, quejigos y matorral mediterráneo.",
			Fauna:        "Buitre leonado, águila real, corzos y jabalíes.",
		},
		Metrics: record.Metrics{DistanceKm: 10.5, DurationMin: 180, AscentM: 500, DescentM: 500},
		MIDE: mide.Rating{
			EnvironmentSeverity:    1,
			Orientation:            2,
			DisplacementDifficulty: 3,
			EffortRequired:         4,
		},
		Contact: record.Contact{
			EmergencyPhone: "112",
			ParkPhone:      "949 88 53 00",
			WebURL:         "http://areasprotegidas.castillalamancha.es",
		},
		Recommendations: []string{
			"Llevar agua suficiente y protección solar.",
			"Consultar la previsión meteorológica antes de salir.",
		},
		Landmarks: []record.Landmark{{Text: "Pico Ocejón", X: 60}},
	}
}

func assetsWithAllSlots(t *testing.T) *media.Set {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	s := media.NewSet()
	for _, name := range []string{"panoramic", "map", "profile"} {
		if _, err := s.Add(name, bytes.NewReader(buf.Bytes())); err != nil {
			t.Fatalf("registering %s: %v", name, err)
		}
	}
	return s
}

func buildSample(t *testing.T, rec record.Record) layout.Instructions {
	t.Helper()
	tpl := layout.DefaultTemplate()
	tpl.Date = "2024-05-01"
	ins, _, err := layout.Build(&rec, tpl)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ins
}

func TestRenderFullDocument(t *testing.T) {
	rec := sampleRecord()
	rec.Media = record.Media{Panoramic: "panoramic", TopoMap: "map", ElevationProfile: "profile"}
	ins := buildSample(t, rec)

	var buf bytes.Buffer
	if err := New().Render(&buf, ins, assetsWithAllSlots(t)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
	if buf.Len() < 1000 {
		t.Fatalf("PDF output seems too small: %d bytes", buf.Len())
	}
}

func TestRenderWithPlaceholders(t *testing.T) {
	// No media at all: every slot degrades to a placeholder box.
	ins := buildSample(t, sampleRecord())

	var buf bytes.Buffer
	if err := New().Render(&buf, ins, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func TestRenderUnresolvedHandleDegrades(t *testing.T) {
	rec := sampleRecord()
	rec.Media.TopoMap = "map" // referenced but never registered
	ins := buildSample(t, rec)

	var buf bytes.Buffer
	if err := New().Render(&buf, ins, media.NewSet()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty PDF output")
	}
}

func TestRenderEmptyInstructions(t *testing.T) {
	var buf bytes.Buffer
	err := New().Render(&buf, nil, nil)
	if !errors.Is(err, topoguia.ErrNoInstructions) {
		t.Fatalf("err = %v, want ErrNoInstructions", err)
	}
}

func TestRenderMissingStationery(t *testing.T) {
	ins := buildSample(t, sampleRecord())

	var buf bytes.Buffer
	err := New(WithStationery("testdata/does-not-exist.pdf")).Render(&buf, ins, nil)
	if !errors.Is(err, topoguia.ErrBadStationery) {
		t.Fatalf("err = %v, want ErrBadStationery", err)
	}
}

func TestRenderWithoutQROnEmptyURL(t *testing.T) {
	rec := sampleRecord()
	rec.Contact.WebURL = ""
	ins := buildSample(t, rec)

	if ins.Find(layout.Page2, layout.RegionContact, layout.KindQR) != nil {
		t.Fatal("QR block present without a URL")
	}
	var buf bytes.Buffer
	if err := New().Render(&buf, ins, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
}
