// Package server exposes document generation as an HTTP form collector:
// one multipart POST collects the route record and its images, and the
// response streams the rendered PDF back. The service is stateless; nothing
// survives a request.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"topoguia"
	"topoguia/layout"
	"topoguia/media"
	"topoguia/record"
	"topoguia/render"
)

// slot names accepted as multipart file parts, mapped onto record media
// fields.
var fileSlots = []string{layout.SlotPanoramic, layout.SlotTopoMap, layout.SlotProfile}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), EnableCORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/fichas", generateHandler(cfg))

	return r
}

// Run starts the HTTP server on the configured port.
func Run(cfg Config) error {
	logrus.WithField("port", cfg.Port).Info("topoguia server listening")
	return NewRouter(cfg).Run(":" + cfg.Port)
}

// generateHandler is the single document-generation endpoint. It decodes
// the record part, ingests the uploaded images, and streams the PDF back.
// Contract violations come back as 400 with the offending field named.
func generateHandler(cfg Config) gin.HandlerFunc {
	renderer := render.New(render.WithFontDir(cfg.FontDir), render.WithStationery(cfg.Stationery))

	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form: " + err.Error()})
			return
		}

		rec, ok := decodeRecord(c, form)
		if !ok {
			return
		}

		assets := media.NewSet()
		if !ingestImages(c, form, rec, assets) {
			return
		}

		tpl := layout.DefaultTemplate()
		tpl.Date = time.Now().Format("2006-01-02")

		ins, warnings, err := layout.Build(rec, tpl)
		if err != nil {
			respondError(c, err)
			return
		}
		for _, w := range warnings {
			logrus.WithField("slot", w.Slot).Warn("missing media, placeholder substituted")
		}

		var buf bytes.Buffer
		if err := renderer.Render(&buf, ins, assets); err != nil {
			logrus.WithError(err).Error("rendering document failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "document rendering failed"})
			return
		}

		filename := fmt.Sprintf("topoguia_%s.pdf", strings.ReplaceAll(rec.Code, " ", "_"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

// decodeRecord parses the JSON "record" part. Returns ok=false after
// writing the error response.
func decodeRecord(c *gin.Context, form *multipart.Form) (*record.Record, bool) {
	parts := form.Value["record"]
	if len(parts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"field": "record", "error": "missing record part"})
		return nil, false
	}

	var rec record.Record
	dec := json.NewDecoder(strings.NewReader(parts[0]))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		logrus.WithError(err).Warn("invalid record payload")
		c.JSON(http.StatusBadRequest, gin.H{"field": "record", "error": "invalid record: " + err.Error()})
		return nil, false
	}
	return &rec, true
}

// ingestImages registers uploaded file parts and rewrites the record media
// references onto the registered handles. Returns false after writing the
// error response.
func ingestImages(c *gin.Context, form *multipart.Form, rec *record.Record, assets *media.Set) bool {
	for _, slot := range fileSlots {
		files := form.File[slot]
		if len(files) == 0 {
			continue
		}
		if !addUpload(c, assets, slot, files[0]) {
			return false
		}
		switch slot {
		case layout.SlotPanoramic:
			rec.Media.Panoramic = slot
		case layout.SlotTopoMap:
			rec.Media.TopoMap = slot
		case layout.SlotProfile:
			rec.Media.ElevationProfile = slot
		}
	}

	rec.Logos = nil
	for _, fh := range form.File["logo"] {
		name := "logo-" + uuid.NewString()[:8]
		if !addUpload(c, assets, name, fh) {
			return false
		}
		if err := assets.ScaleLogo(name, 200, 120); err != nil {
			logrus.WithError(err).Warn("scaling logo failed, using original")
		}
		rec.Logos = append(rec.Logos, name)
	}
	return true
}

func addUpload(c *gin.Context, assets *media.Set, name string, fh *multipart.FileHeader) bool {
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"field": name, "error": "unreadable upload: " + err.Error()})
		return false
	}
	defer f.Close()

	if _, err := assets.Add(name, f); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// respondError maps a pipeline error onto the HTTP error channel:
// validation failures surface the offending field, everything else is a 500.
func respondError(c *gin.Context, err error) {
	if ve, ok := topoguia.IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"field": ve.Field, "error": ve.Error()})
		return
	}
	logrus.WithError(err).Error("document generation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
