// Package overlay composites the title text onto a generated background.
// The title is upper-cased, wrapped into at most two lines inside a safe
// margin, auto-shrunk until it fits, and drawn centered near the bottom
// of the image as white text with a black outline.
package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"
)

const (
	safeMarginRatio = 0.06  // horizontal margin on each side
	fontSizeRatio   = 0.075 // initial font size relative to image width
	anchorRatio     = 0.75  // vertical anchor for the text block
	lineHeightRatio = 1.15
	fontSizeStep    = 3
	minFontSize     = 1
	maxLines        = 2
	overflowWords   = 3 // words kept on line 2 when the title overflows
)

var boldFont = mustParseFont()

func mustParseFont() *truetype.Font {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		panic("overlay: parse embedded font: " + err.Error())
	}
	return f
}

// Render draws the title over the image and returns the result as PNG.
// The output dimensions always match the input.
func Render(src []byte, title string) ([]byte, error) {
	const op = "overlay.Render"

	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	canvas := imaging.Clone(img)

	width := canvas.Bounds().Dx()
	height := canvas.Bounds().Dy()

	maxTextWidth := float64(width) - 2*float64(width)*safeMarginRatio
	fontSize := math.Floor(float64(width) * fontSizeRatio)

	lines := wrapTitle(title, fontSize, maxTextWidth)
	fontSize = fitSize(lines, fontSize, maxTextWidth)

	face := newFace(fontSize)
	defer face.Close()

	strokeWidth := int(math.Max(4, fontSize*0.12))
	lineHeight := fontSize * lineHeightRatio
	centerX := float64(width) / 2
	anchorY := float64(height) * anchorRatio

	metrics := face.Metrics()
	baselineShift := (metrics.Ascent - metrics.Descent) / 2

	for i, line := range lines {
		if line == "" {
			continue
		}
		lineY := anchorY + (float64(i)-float64(len(lines)-1)/2)*lineHeight
		lineWidth := fixedToFloat(font.MeasureString(face, line))

		x := fixed.Int26_6(math.Round((centerX - lineWidth/2) * 64))
		// Middle baseline: shift down by half the x-height span.
		y := fixed.Int26_6(math.Round(lineY*64)) + baselineShift

		drawOutlined(canvas, face, line, x, y, strokeWidth)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

// wrapTitle splits the upper-cased title into at most two lines using a
// greedy word wrap measured at the given font size. When the wrap
// produces more than two lines, the first line is kept and the rest is
// collapsed into a second line truncated to its first three words.
func wrapTitle(title string, fontSize, maxTextWidth float64) []string {
	face := newFace(fontSize)
	defer face.Close()

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(strings.ToUpper(title)) {
		testLine := currentLine + word + " "
		if fixedToFloat(font.MeasureString(face, testLine)) > maxTextWidth {
			lines = append(lines, strings.TrimSpace(currentLine))
			currentLine = word + " "
		} else {
			currentLine = testLine
		}
	}
	if currentLine != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}

	if len(lines) > maxLines {
		rest := strings.Fields(strings.Join(lines[1:], " "))
		if len(rest) > overflowWords {
			rest = rest[:overflowWords]
		}
		lines = []string{lines[0], strings.Join(rest, " ")}
	}
	return lines
}

// fitSize shrinks the font size until the widest line fits the safe
// area. The size never drops below minFontSize.
func fitSize(lines []string, fontSize, maxTextWidth float64) float64 {
	for fontSize > minFontSize && widestLine(lines, fontSize) > maxTextWidth {
		fontSize -= fontSizeStep
	}
	if fontSize < minFontSize {
		fontSize = minFontSize
	}
	return fontSize
}

func widestLine(lines []string, fontSize float64) float64 {
	face := newFace(fontSize)
	defer face.Close()

	widest := 0.0
	for _, line := range lines {
		if w := fixedToFloat(font.MeasureString(face, line)); w > widest {
			widest = w
		}
	}
	return widest
}

// drawOutlined draws the black stroke as a filled disc of offsets around
// the glyph positions, then the white fill on top.
func drawOutlined(dst *image.NRGBA, face font.Face, line string, x, y fixed.Int26_6, strokeWidth int) {
	drawer := font.Drawer{Dst: dst, Face: face}

	drawer.Src = image.NewUniform(color.Black)
	for dx := -strokeWidth; dx <= strokeWidth; dx++ {
		for dy := -strokeWidth; dy <= strokeWidth; dy++ {
			if dx*dx+dy*dy > strokeWidth*strokeWidth {
				continue
			}
			drawer.Dot = fixed.Point26_6{X: x + fixed.I(dx), Y: y + fixed.I(dy)}
			drawer.DrawString(line)
		}
	}

	drawer.Src = image.NewUniform(color.White)
	drawer.Dot = fixed.Point26_6{X: x, Y: y}
	drawer.DrawString(line)
}

func newFace(size float64) font.Face {
	return truetype.NewFace(boldFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
