// Package qr renders ticket identifiers as QR PNG images. The ticket id
// is the full payload; the scanner decodes it back and submits it to the
// validation endpoint.
package qr

import qrcode "github.com/skip2/go-qrcode"

// DefaultSize is the pixel width used for emails and the QR endpoint.
const DefaultSize = 512

// PNG encodes content into a QR PNG of the given size.
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
