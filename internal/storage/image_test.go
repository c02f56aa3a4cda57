package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeLogoResizesWideImages(t *testing.T) {
	out, err := NormalizeLogo(pngFixture(t, 1024, 400))
	if err != nil {
		t.Fatalf("NormalizeLogo: %v", err)
	}

	decoded, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("saída não é WebP válido: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != maxLogoWidth {
		t.Errorf("largura = %d, want %d", b.Dx(), maxLogoWidth)
	}
	// proporção preservada: 400 * 512/1024 = 200
	if b.Dy() != 200 {
		t.Errorf("altura = %d, want 200", b.Dy())
	}
}

func TestNormalizeLogoKeepsSmallImages(t *testing.T) {
	out, err := NormalizeLogo(pngFixture(t, 128, 64))
	if err != nil {
		t.Fatalf("NormalizeLogo: %v", err)
	}
	decoded, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("saída não é WebP válido: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("dimensões = %dx%d, want 128x64", b.Dx(), b.Dy())
	}
}

func TestNormalizeLogoRejectsGarbage(t *testing.T) {
	if _, err := NormalizeLogo([]byte("isto não é imagem")); err == nil {
		t.Error("NormalizeLogo aceitou bytes inválidos")
	}
}
