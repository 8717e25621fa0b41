package barcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/pdf417"
)

// quiet zone around the symbol, in modules
const pdf417Margin = 2

type PDF417 struct {
	// target width in pixels; the symbol is scaled by a whole factor
	// so it's never blurred
	Size          int
	SecurityLevel byte
}

func (p PDF417) encode(text string) (bc.Barcode, error) {
	if text == "" {
		return nil, ErrEmpty
	}
	code, err := pdf417.Encode(text, p.SecurityLevel)
	if err != nil {
		return nil, fmt.Errorf("barcode.PDF417 - %w", err)
	}
	return code, nil
}

func (p PDF417) PNG(text string) ([]byte, error) {
	code, err := p.encode(text)
	if err != nil {
		return nil, err
	}

	bounds := code.Bounds()
	width, height := bounds.Dx()+2*pdf417Margin, bounds.Dy()+2*pdf417Margin
	factor := p.Size / width
	if factor < 1 {
		factor = 1
	}

	scaled, err := bc.Scale(code, bounds.Dx()*factor, bounds.Dy()*factor)
	if err != nil {
		return nil, fmt.Errorf("barcode.PDF417 (scale) - %w", err)
	}

	canvas := image.NewGray(image.Rect(0, 0, width*factor, height*factor))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	offset := image.Pt(pdf417Margin*factor, pdf417Margin*factor)
	draw.Draw(canvas, scaled.Bounds().Add(offset), scaled, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("barcode.PDF417 (png) - %w", err)
	}
	return buf.Bytes(), nil
}

// One character per module column, two pixel rows per line. Like QR's
// terminal output it's inverted: light modules are drawn, dark ones
// are left as (dark) terminal background.
func (p PDF417) Terminal(text string) (string, error) {
	code, err := p.encode(text)
	if err != nil {
		return "", err
	}

	bounds := code.Bounds()
	light := func(x, y int) bool {
		if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
			return true
		}
		return color.GrayModel.Convert(code.At(x, y)).(color.Gray).Y >= 128
	}

	var b strings.Builder
	for y := bounds.Min.Y - pdf417Margin; y < bounds.Max.Y+pdf417Margin; y += 2 {
		for x := bounds.Min.X - pdf417Margin; x < bounds.Max.X+pdf417Margin; x++ {
			top, bottom := light(x, y), light(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
