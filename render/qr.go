package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"

	"topoguia/layout"
)

// qrPixels is the rendered QR bitmap edge; 256 keeps modules crisp at the
// printed 25 mm size.
const qrPixels = 256

// drawQR encodes the block payload as a QR code and places it in the block
// box. The code links the printed document back to the route web page.
func (st *state) drawQR(b layout.Block) error {
	code, err := qr.Encode(b.Payload, qr.M, qr.Auto)
	if err != nil {
		return fmt.Errorf("render: encoding qr payload: %w", err)
	}
	scaled, err := barcode.Scale(code, qrPixels, qrPixels)
	if err != nil {
		return fmt.Errorf("render: scaling qr code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return fmt.Errorf("render: encoding qr image: %w", err)
	}

	name := "qr:" + b.Payload
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	if st.pdf.GetImageInfo(name) == nil {
		st.pdf.RegisterImageOptionsReader(name, opts, &buf)
	}
	st.pdf.ImageOptions(name, b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, false, opts, 0, "")
	return nil
}
