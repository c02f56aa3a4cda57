package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxLogoWidth = 512
	webpQuality  = 80
)

// NormalizeLogo decodifica PNG/JPEG, reduz para no máximo maxLogoWidth
// de largura e reencoda em WebP, que é o formato servido ao app.
func NormalizeLogo(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w > maxLogoWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, maxLogoWidth, h*maxLogoWidth/w))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
