// Package mide implements the MIDE (Método de Información de Excursiones)
// difficulty classification used on Spanish hiking topoguías.
//
// Each route is scored 1-5 on four independent criteria. For rendering, a
// raw score collapses into one of three tiers, each with a fixed color:
//
//	1, 2 -> Low      (green)
//	3    -> Moderate (ochre)
//	4, 5 -> High     (red)
//
// There is no aggregate route difficulty: the four criteria are classified
// and rendered independently.
package mide

import (
	"topoguia"
)

// Score is a raw MIDE value. Valid scores lie in [1,5].
type Score int

// Score bounds.
const (
	MinScore Score = 1
	MaxScore Score = 5
)

// Criterion identifies one of the four MIDE rating axes.
type Criterion int

const (
	EnvironmentSeverity Criterion = iota
	Orientation
	DisplacementDifficulty
	EffortRequired
)

// criterionFields are the record field names reported in validation errors,
// in Criterion order.
var criterionFields = [...]string{
	"environmentSeverity",
	"orientation",
	"displacementDifficulty",
	"effortRequired",
}

// criterionLabels are the printed panel captions, in Criterion order.
var criterionLabels = [...]string{
	"SEVERIDAD DEL MEDIO",
	"ORIENTACIÓN",
	"DIFICULTAD DESPLAZAMIENTO",
	"ESFUERZO NECESARIO",
}

// Field returns the record field name for the criterion.
func (c Criterion) Field() string { return criterionFields[c] }

// Label returns the printed caption for the criterion.
func (c Criterion) Label() string { return criterionLabels[c] }

// Tier is the three-band classification derived from a raw score.
type Tier int

const (
	Low Tier = iota
	Moderate
	High
)

func (t Tier) String() string {
	switch t {
	case Low:
		return "Low"
	case Moderate:
		return "Moderate"
	case High:
		return "High"
	}
	return "Unknown"
}

// Color is an RGB color value.
type Color struct {
	R, G, B int
}

// tierColors is the fixed presentation triad, matching the printed design:
// green #007A33, ochre #E8AF2E, red #E74C3C.
var tierColors = map[Tier]Color{
	Low:      {R: 0, G: 122, B: 51},
	Moderate: {R: 232, G: 175, B: 46},
	High:     {R: 231, G: 76, B: 60},
}

// TierColor returns the fixed color for a tier.
func TierColor(t Tier) Color { return tierColors[t] }

// Classify maps a raw score onto its tier. A score outside [1,5] fails with
// a ValidationError naming the criterion's record field.
func Classify(c Criterion, s Score) (Tier, error) {
	if s < MinScore || s > MaxScore {
		return 0, topoguia.Invalid(c.Field(), int(s), "must be between 1 and 5")
	}
	switch {
	case s <= 2:
		return Low, nil
	case s == 3:
		return Moderate, nil
	default:
		return High, nil
	}
}

// Rating holds the four raw MIDE scores for a route.
type Rating struct {
	EnvironmentSeverity    Score `json:"environmentSeverity"`
	Orientation            Score `json:"orientation"`
	DisplacementDifficulty Score `json:"displacementDifficulty"`
	EffortRequired         Score `json:"effortRequired"`
}

// score returns the raw value for the criterion.
func (r Rating) score(c Criterion) Score {
	switch c {
	case EnvironmentSeverity:
		return r.EnvironmentSeverity
	case Orientation:
		return r.Orientation
	case DisplacementDifficulty:
		return r.DisplacementDifficulty
	default:
		return r.EffortRequired
	}
}

// Validate checks all four scores against [1,5], reporting the first
// offending field.
func (r Rating) Validate() error {
	for c := EnvironmentSeverity; c <= EffortRequired; c++ {
		if _, err := Classify(c, r.score(c)); err != nil {
			return err
		}
	}
	return nil
}

// Assessment is the classification of a single criterion, ready for
// color-coded rendering.
type Assessment struct {
	Criterion Criterion
	Score     Score
	Tier      Tier
	Color     Color
}

// Classify classifies all four criteria. The result is always in Criterion
// order. Fails on the first out-of-range score.
func (r Rating) Classify() ([4]Assessment, error) {
	var out [4]Assessment
	for c := EnvironmentSeverity; c <= EffortRequired; c++ {
		s := r.score(c)
		tier, err := Classify(c, s)
		if err != nil {
			return out, err
		}
		out[c] = Assessment{Criterion: c, Score: s, Tier: tier, Color: TierColor(tier)}
	}
	return out, nil
}
