// Package layout turns a validated route record into a declarative,
// ordered list of content blocks over two fixed pages. Each block names
// what to render and the fixed region it occupies; it carries no rendering
// technology of its own.
//
// The builder is a pure mapping. Its only conditional behavior is media
// substitution: an absent image slot yields a placeholder block and a
// MissingMediaWarning instead of a failure, and optional content (logos,
// landmarks, recommendations, QR payload) is simply omitted when absent.
package layout

import "topoguia/mide"

// Kind discriminates the content blocks, the way an element type does in a
// document template.
type Kind string

const (
	KindHeading     Kind = "heading"
	KindParagraph   Kind = "paragraph"
	KindImage       Kind = "image"
	KindPlaceholder Kind = "placeholder"
	KindTableRow    Kind = "table-row"
	KindColorSwatch Kind = "color-swatch"
	KindList        Kind = "list"
	KindCaption     Kind = "caption"
	KindQR          Kind = "qr"
	KindRule        Kind = "rule"
)

// Page numbers of the two-page template.
type Page int

const (
	Page1 Page = 1
	Page2 Page = 2
)

// Region names a fixed box on one of the two pages. Every block kind always
// occupies the same region on the same page; the template, not the builder,
// owns the geometry.
type Region string

const (
	RegionHeaderBand      Region = "headerBand"
	RegionPanoramic       Region = "panoramic"
	RegionDescription     Region = "description"
	RegionRecommendations Region = "recommendations"
	RegionFooter          Region = "footer"

	RegionMapHeader      Region = "mapHeader"
	RegionMapFrame       Region = "mapFrame"
	RegionProfileFrame   Region = "profileFrame"
	RegionTechnicalPanel Region = "technicalPanel"
	RegionMIDEGrid       Region = "mideGrid"
	RegionContact        Region = "contact"
)

// Rect is a box in page millimeters, origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Block is one layout instruction. Kind decides which fields are relevant.
type Block struct {
	Kind   Kind   `json:"kind"`
	Page   Page   `json:"page"`
	Region Region `json:"region"`
	Rect   Rect   `json:"rect"`

	// Text content (heading, paragraph, caption, placeholder label)
	Text  string      `json:"text,omitempty"`
	Align string      `json:"align,omitempty"` // L, C, R
	Font  *Font       `json:"font,omitempty"`
	Color *mide.Color `json:"color,omitempty"`
	Fill  *mide.Color `json:"fill,omitempty"`

	// Image and placeholder
	Slot string `json:"slot,omitempty"` // media handle name

	// Table row (technical table)
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`

	// Color swatch (MIDE grid cell)
	Score int `json:"score,omitempty"`

	// List (recommendations)
	Items []string `json:"items,omitempty"`

	// QR payload
	Payload string `json:"payload,omitempty"`
}

// Font specifies a font face for a block, overriding the template default.
type Font struct {
	Family string  `json:"family,omitempty"`
	Style  string  `json:"style,omitempty"` // "" (regular), "B", "I", "BI"
	Size   float64 `json:"size,omitempty"`
}

// Instructions is the ordered block list for one document.
type Instructions []Block

// ForPage returns the blocks of one page, preserving order.
func (ins Instructions) ForPage(p Page) []Block {
	var out []Block
	for _, b := range ins {
		if b.Page == p {
			out = append(out, b)
		}
	}
	return out
}

// Find returns the first block of the given kind in the given region, or nil.
func (ins Instructions) Find(p Page, r Region, k Kind) *Block {
	for i := range ins {
		b := &ins[i]
		if b.Page == p && b.Region == r && b.Kind == k {
			return b
		}
	}
	return nil
}
