package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"topoguia/mide"
	"topoguia/record"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sampleRecord() record.Record {
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
		Contact: record.Contact{EmergencyPhone: "112"},
	}
}

// multipartBody builds a form with the record part and optional image parts.
func multipartBody(t *testing.T, rec *record.Record, images map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if rec != nil {
		data, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("marshaling record: %v", err)
		}
		if err := w.WriteField("record", string(data)); err != nil {
			t.Fatalf("writing record part: %v", err)
		}
	}
	for slot, data := range images {
		fw, err := w.CreateFormFile(slot, slot+".png")
		if err != nil {
			t.Fatalf("creating %s part: %v", slot, err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("writing %s part: %v", slot, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing form: %v", err)
	}
	return &body, w.FormDataContentType()
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 120, 60))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func post(t *testing.T, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(Config{Port: "0"})
	req := httptest.NewRequest(http.MethodPost, "/fichas", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGenerateReturnsPDF(t *testing.T) {
	rec := sampleRecord()
	body, ct := multipartBody(t, &rec, map[string][]byte{
		"panoramic": testPNG(t),
		"topoMap":   testPNG(t),
	})

	rr := post(t, body, ct)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "topoguia_PR-GU_08.pdf") {
		t.Errorf("Content-Disposition = %q", rr.Header().Get("Content-Disposition"))
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("response does not start with %PDF header")
	}
}

func TestGenerateNamesInvalidField(t *testing.T) {
	rec := sampleRecord()
	rec.MIDE.EnvironmentSeverity = 6
	body, ct := multipartBody(t, &rec, nil)

	rr := post(t, body, ct)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["field"] != "environmentSeverity" {
		t.Errorf("field = %q, want environmentSeverity", resp["field"])
	}
}

func TestGenerateMissingRecordPart(t *testing.T) {
	body, ct := multipartBody(t, nil, map[string][]byte{"panoramic": testPNG(t)})

	rr := post(t, body, ct)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "record") {
		t.Errorf("body does not name the record part: %s", rr.Body.String())
	}
}

func TestGenerateRejectsNonImageUpload(t *testing.T) {
	rec := sampleRecord()
	body, ct := multipartBody(t, &rec, map[string][]byte{
		"panoramic": []byte("definitely not an image"),
	})

	rr := post(t, body, ct)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["field"] != "panoramic" {
		t.Errorf("field = %q, want panoramic", resp["field"])
	}
}

func TestHealthz(t *testing.T) {
	router := NewRouter(Config{Port: "0"})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
