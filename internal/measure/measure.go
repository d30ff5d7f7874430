package measure

import (
	"image"
	"sync"

	"codeberg.org/go-pdf/fpdf"
	"github.com/srwiley/oksvg"
	"go.uber.org/zap"

	"github.com/examsheet/examsheet/internal/content"
	"github.com/examsheet/examsheet/internal/logger"
	"github.com/examsheet/examsheet/internal/res"
)

// Typography is the text configuration shared by the measurement pass and
// the layout pass. Heights computed here are only valid if the renderer
// uses the exact same typography and content width.
type Typography struct {
	FontFamily  string // Helvetica, Times or Courier
	FontSize    float64
	LineSpacing float64
}

// DefaultTypography returns the default typography
func DefaultTypography() Typography {
	return Typography{
		FontFamily:  "Helvetica",
		FontSize:    12,
		LineSpacing: 1.4,
	}
}

// LineHeight returns the height of one text line
func (t Typography) LineHeight() float64 {
	return t.FontSize * t.LineSpacing
}

// Scaled returns a copy with the font size multiplied by factor
func (t Typography) Scaled(factor float64) Typography {
	t.FontSize *= factor
	return t
}

// Oracle measures rendered heights of content at a fixed width and
// typography. Pagination depends only on this interface, never on the
// rendering backend behind it.
type Oracle interface {
	Measure(block content.Block, width float64, typo Typography) float64
	MeasureText(text string, width float64, typo Typography) float64
}

// Singleton PDF instance for text measurement using go-pdf/fpdf metrics.
// It is never written out; it exists only for GetStringWidth.
var (
	measureOnce sync.Once
	measurePDF  *fpdf.Fpdf
	measureMu   sync.Mutex
)

func initMeasurePDF() {
	measurePDF = fpdf.New("P", "pt", "", "")
	measurePDF.SetFont("Helvetica", "", 12)
}

// stringWidth returns a font-aware width using fpdf metrics
func stringWidth(text, family, style string, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	measureOnce.Do(initMeasurePDF)
	measureMu.Lock()
	defer measureMu.Unlock()
	measurePDF.SetFont(family, style, size)
	return measurePDF.GetStringWidth(text)
}

// FontStyle maps run styling to a core PDF font style string
func FontStyle(r content.Run) string {
	style := ""
	if r.Bold {
		style += "B"
	}
	if r.Italic {
		style += "I"
	}
	if r.Underline {
		style += "U"
	}
	return style
}

// Measurer is the fpdf-backed Oracle
type Measurer struct {
	loader *res.Loader
	log    *zap.Logger
}

// NewMeasurer creates a measurer. loader may be nil when content contains
// no image references.
func NewMeasurer(loader *res.Loader) *Measurer {
	return &Measurer{loader: loader, log: logger.Get()}
}

// Measure returns the rendered height of a block at the given width. A block
// that cannot be parsed or measures to nothing yields one line height, so
// pagination always has a usable value.
func (m *Measurer) Measure(block content.Block, width float64, typo Typography) float64 {
	lay, err := m.Layout(block, width, typo)
	if err != nil {
		m.log.Warn("content block could not be fully measured",
			zap.Error(err))
	}
	if lay == nil || lay.Height < typo.LineHeight() {
		return typo.LineHeight()
	}
	return lay.Height
}

// MeasureText returns the wrapped height of plain text at the given width
func (m *Measurer) MeasureText(text string, width float64, typo Typography) float64 {
	lines := WrapRuns(&content.Paragraph{Runs: []content.Run{{Text: text}}, RTL: content.IsRTL(text)}, width, typo)
	return float64(len(lines)) * typo.LineHeight()
}

// sizeImage resolves the display dimensions of an image element, preferring
// declared attributes and falling back to intrinsic size, capped to the
// content width.
func (m *Measurer) sizeImage(img *content.Image, width float64) *content.Image {
	w, h := img.Width, img.Height
	if w <= 0 || h <= 0 {
		iw, ih := m.intrinsicSize(img.Src)
		switch {
		case w <= 0 && h <= 0:
			w, h = iw, ih
		case w <= 0:
			w = iw * (h / ih)
		default:
			h = ih * (w / iw)
		}
	}
	if w > width && w > 0 {
		h *= width / w
		w = width
	}
	return &content.Image{Src: img.Src, Width: w, Height: h}
}

// defaultImageSize is used when an image cannot be resolved
const defaultImageSize = 40.0

func (m *Measurer) intrinsicSize(src string) (float64, float64) {
	if m.loader == nil {
		return defaultImageSize, defaultImageSize
	}
	resource, err := m.loader.Load(src)
	if err != nil {
		m.log.Warn("image could not be loaded for measurement",
			zap.String("src", src), zap.Error(err))
		return defaultImageSize, defaultImageSize
	}

	if resource.IsSVG() {
		icon, err := oksvg.ReadIconStream(resource.GetReader())
		if err != nil || icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
			m.log.Warn("svg could not be parsed for measurement",
				zap.String("src", src), zap.Error(err))
			return defaultImageSize, defaultImageSize
		}
		return icon.ViewBox.W, icon.ViewBox.H
	}

	cfg, _, err := image.DecodeConfig(resource.GetReader())
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		m.log.Warn("image could not be decoded for measurement",
			zap.String("src", src), zap.Error(err))
		return defaultImageSize, defaultImageSize
	}
	return float64(cfg.Width), float64(cfg.Height)
}
