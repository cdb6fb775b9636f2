package device

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/vovakirdan/cosmic-tilt/internal/core"
)

// Display geometry and anchors of the three text slots.
const (
	oledWidth     = 128
	oledHeight    = 64
	bottomAnchorY = 60
)

var face = basicfont.Face7x13

// OLED shows frames on an SSD1306 128x64 panel.
type OLED struct {
	dev *ssd1306.Dev
}

// NewOLED initialises the panel on bus.
func NewOLED(bus i2c.Bus) (*OLED, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("device: init ssd1306: %w", err)
	}
	return &OLED{dev: dev}, nil
}

// Show renders f and pushes it to the panel.
func (o *OLED) Show(f core.Frame) error {
	img := RenderFrame(f, o.dev.Bounds())
	if err := o.dev.Draw(o.dev.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("device: draw frame: %w", err)
	}
	return nil
}

// Halt blanks the panel.
func (o *OLED) Halt() error {
	return o.dev.Halt()
}

// RenderFrame draws the three labels of f, each horizontally centred:
// the top one against the top edge, the middle one around the vertical
// centre and the bottom one ending just above the bottom edge.
func RenderFrame(f core.Frame, bounds image.Rectangle) *image1bit.VerticalLSB {
	if bounds.Empty() {
		bounds = image.Rect(0, 0, oledWidth, oledHeight)
	}
	img := image1bit.NewVerticalLSB(bounds)
	cx := bounds.Min.X + bounds.Dx()/2
	cy := bounds.Min.Y + bounds.Dy()/2
	bottom := bounds.Min.Y + bottomAnchorY*bounds.Dy()/oledHeight

	for i, line := range f.Lines {
		if line.Value == "" {
			continue
		}
		glyphs := renderText(line.Value)
		w := glyphs.Bounds().Dx() * line.Scale
		h := glyphs.Bounds().Dy() * line.Scale

		x0 := cx - w/2
		var y0 int
		switch core.Slot(i) {
		case core.Top:
			y0 = bounds.Min.Y
		case core.Middle:
			y0 = cy - h/2
		default:
			y0 = bottom - h
		}
		blitScaled(img, glyphs, x0, y0, line.Scale)
	}
	return img
}

// renderText draws s at native size into a tight alpha mask.
func renderText(s string) *image.Alpha {
	metrics := face.Metrics()
	width := font.MeasureString(face, s).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	mask := image.NewAlpha(image.Rect(0, 0, width, height))

	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(s)
	return mask
}

// blitScaled copies every lit mask pixel into dst as a scale x scale block.
func blitScaled(dst draw.Image, mask *image.Alpha, x0, y0, scale int) {
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A < 0x80 {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					dst.Set(x0+(x-b.Min.X)*scale+dx, y0+(y-b.Min.Y)*scale+dy, image1bit.On)
				}
			}
		}
	}
}
