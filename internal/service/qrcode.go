package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// QRGenerator renders order tracking links as PNG QR codes.
type QRGenerator struct {
	baseURL string
}

// NewQRGenerator creates a generator for links under baseURL.
func NewQRGenerator(baseURL string) *QRGenerator {
	return &QRGenerator{baseURL: strings.TrimRight(baseURL, "/")}
}

// TrackingURL is the public page for an order code.
func (g *QRGenerator) TrackingURL(code string) string {
	return g.baseURL + "/orders/" + url.PathEscape(code)
}

// Generate returns a PNG encoding the tracking URL of code.
func (g *QRGenerator) Generate(code string) ([]byte, error) {
	png, err := qrcode.Encode(g.TrackingURL(code), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
