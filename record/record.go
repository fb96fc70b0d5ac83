// Package record defines the flat route record that drives one document
// generation, plus its validation and derived metrics.
//
// A Record is built once per request, validated, passed to the layout
// builder, and discarded. It is never mutated after being handed over.
package record

import (
	"fmt"
	"strings"

	"topoguia"
	"topoguia/mide"
)

// RouteType describes the shape of the itinerary.
type RouteType string

const (
	Circular   RouteType = "circular"
	Linear     RouteType = "linear"
	OutAndBack RouteType = "outAndBack"
	Traverse   RouteType = "traverse"
)

// routeTypeLabels are the printed Spanish captions.
var routeTypeLabels = map[RouteType]string{
	Circular:   "Circular",
	Linear:     "Lineal",
	OutAndBack: "Ida y Vuelta",
	Traverse:   "Travesía",
}

// Valid reports whether t is a known route type.
func (t RouteType) Valid() bool {
	_, ok := routeTypeLabels[t]
	return ok
}

// Label returns the printed caption for the route type.
func (t RouteType) Label() string { return routeTypeLabels[t] }

// Metrics holds the numeric route measurements, already normalized to
// km / minutes / meters by the collector.
type Metrics struct {
	DistanceKm  float64 `json:"distanceKm"`
	DurationMin int     `json:"durationMin"`
	AscentM     int     `json:"ascentM"`
	DescentM    int     `json:"descentM"`
}

// DurationOf composes a duration in minutes from hours and minutes, the way
// the form collects it.
func DurationOf(hours, minutes int) int {
	return hours*60 + minutes
}

// TotalElevationChange is the accumulated elevation change over the route:
// ascent plus descent. Always at least max(ascent, descent) for valid input.
func (m Metrics) TotalElevationChange() int {
	return m.AscentM + m.DescentM
}

// FormatDuration renders the duration as "2h 35m", or "2h" on a full hour.
func (m Metrics) FormatDuration() string {
	h := m.DurationMin / 60
	min := m.DurationMin % 60
	if min == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, min)
}

// Validate checks the metric constraints: distance and duration are required
// positive quantities, elevation deltas must not be negative.
func (m Metrics) Validate() error {
	if m.DistanceKm <= 0 {
		return topoguia.Invalid("distanceKm", m.DistanceKm, "must be greater than zero")
	}
	if m.DurationMin <= 0 {
		return topoguia.Invalid("durationMin", m.DurationMin, "must be greater than zero")
	}
	if m.AscentM < 0 {
		return topoguia.Invalid("ascentM", m.AscentM, "must not be negative")
	}
	if m.DescentM < 0 {
		return topoguia.Invalid("descentM", m.DescentM, "must not be negative")
	}
	return nil
}

// Narrative holds the four descriptive paragraphs of page 1.
type Narrative struct {
	Introduction string `json:"introduction"`
	Itinerary    string `json:"itinerary"`
	Vegetation   string `json:"vegetation"`
	Fauna        string `json:"fauna"`
}

// Contact holds the phone numbers and web address printed on page 2.
// EmergencyPhone defaults to "112" when absent; the rest are optional.
type Contact struct {
	EmergencyPhone string `json:"emergencyPhone"`
	ParkPhone      string `json:"parkPhone,omitempty"`
	WebURL         string `json:"webUrl,omitempty"`
}

// Media references the three image slots by opaque handle name. An empty
// handle means the slot is absent; the layout builder substitutes a
// placeholder for it. The record never touches pixel data.
type Media struct {
	Panoramic        string `json:"panoramic,omitempty"`
	TopoMap          string `json:"topoMap,omitempty"`
	ElevationProfile string `json:"elevationProfile,omitempty"`
}

// Landmark is an optional label drawn over the panoramic image.
type Landmark struct {
	Text string  `json:"text"`
	X    float64 `json:"x"` // horizontal position in mm from the page left edge
}

// Record is the flat input describing one hiking route.
type Record struct {
	Code string    `json:"code"`
	Name string    `json:"name"`
	Type RouteType `json:"type"`

	Narrative Narrative   `json:"narrative"`
	Metrics   Metrics     `json:"metrics"`
	MIDE      mide.Rating `json:"mide"`
	Contact   Contact     `json:"contact"`
	Media     Media       `json:"media"`

	// Logos are optional institutional logo handles for the header band,
	// drawn left to right.
	Logos []string `json:"logos,omitempty"`

	Landmarks       []Landmark `json:"landmarks,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

// Validate checks all record constraints in field order and returns the
// first violation as a field-named ValidationError. As a side effect it
// applies the single silent default of the system: an absent emergency
// phone becomes "112".
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return topoguia.Invalid("code", r.Code, "must not be empty")
	}
	if strings.TrimSpace(r.Name) == "" {
		return topoguia.Invalid("name", r.Name, "must not be empty")
	}
	if !r.Type.Valid() {
		return topoguia.Invalid("type", string(r.Type), "must be circular, linear, outAndBack or traverse")
	}
	for _, f := range []struct {
		name, value string
	}{
		{"narrative.introduction", r.Narrative.Introduction},
		{"narrative.itinerary", r.Narrative.Itinerary},
		{"narrative.vegetation", r.Narrative.Vegetation},
		{"narrative.fauna", r.Narrative.Fauna},
	} {
		if strings.TrimSpace(f.value) == "" {
			return topoguia.Invalid(f.name, f.value, "must not be empty")
		}
	}
	if err := r.Metrics.Validate(); err != nil {
		return err
	}
	if err := r.MIDE.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Contact.EmergencyPhone) == "" {
		r.Contact.EmergencyPhone = "112"
	}
	return nil
}
