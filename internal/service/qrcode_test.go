package service

import (
	"bytes"
	"testing"
)

func TestQRGenerator(t *testing.T) {
	g := NewQRGenerator("https://delivra.example/")

	if got := g.TrackingURL("AB12CD34"); got != "https://delivra.example/orders/AB12CD34" {
		t.Errorf("url: got %s", got)
	}

	png, err := g.Generate("AB12CD34")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}
}
