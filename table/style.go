// Package table draws the fixed-position label/value tables of the
// technical panel: a solid header band followed by aligned rows at a fixed
// page location. The two-page template never breaks a table across pages,
// so there is no pagination.
package table

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // in points
}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// CellStyle defines the visual appearance of a cell.
type CellStyle struct {
	FillColor *RGBColor
	TextColor *RGBColor
	Font      *FontSpec
	Align     string // "L", "C", "R"
}

// Style defines the overall appearance of a fixed table.
type Style struct {
	Header    CellStyle // the title band
	Label     CellStyle // left column
	Value     CellStyle // right column
	RowHeight float64
	HeaderH   float64
	Padding   Padding
	Border    *RGBColor // outer frame, nil for none
}

// DefaultStyle returns the ficha técnica appearance: dark labels, bold
// values, a filled title band and a 6 mm row pitch.
func DefaultStyle() Style {
	dark := RGBColor{R: 51, G: 51, B: 51}
	return Style{
		Header: CellStyle{
			FillColor: &RGBColor{R: 0, G: 122, B: 51},
			TextColor: &RGBColor{R: 255, G: 255, B: 255},
			Font:      &FontSpec{Family: "Helvetica", Style: "B", Size: 9},
			Align:     "C",
		},
		Label: CellStyle{
			TextColor: &dark,
			Font:      &FontSpec{Family: "Helvetica", Size: 7},
			Align:     "L",
		},
		Value: CellStyle{
			TextColor: &dark,
			Font:      &FontSpec{Family: "Helvetica", Style: "B", Size: 7},
			Align:     "L",
		},
		RowHeight: 6,
		HeaderH:   8,
		Padding:   UniformPadding(1),
	}
}
