package measure

import (
	"strings"

	"github.com/examsheet/examsheet/internal/content"
)

// Line is one wrapped line of a paragraph
type Line struct {
	Runs  []content.Run
	Width float64
	RTL   bool
}

// Fragment is one laid-out element of a block: either wrapped text lines or
// a sized image
type Fragment struct {
	Lines  []Line
	Image  *content.Image
	Height float64
}

// Layout is the fully measured form of a content block. The renderer draws
// it verbatim; it performs no further sizing.
type Layout struct {
	Fragments []Fragment
	Height    float64
}

// Layout parses and wraps a block at the given width. The returned layout is
// always usable; the error reports degraded parsing for logging.
func (m *Measurer) Layout(block content.Block, width float64, typo Typography) (*Layout, error) {
	parsed, perr := block.Parse()

	lay := &Layout{}
	for _, el := range parsed.Elements {
		var frag Fragment
		switch e := el.(type) {
		case *content.Paragraph:
			frag.Lines = WrapRuns(e, width, typo)
			frag.Height = float64(len(frag.Lines)) * typo.LineHeight()
		case *content.Image:
			frag.Image = m.sizeImage(e, width)
			frag.Height = frag.Image.Height
		default:
			continue
		}
		lay.Fragments = append(lay.Fragments, frag)
		lay.Height += frag.Height
	}
	return lay, perr
}

// WrapRuns performs greedy word wrapping of a paragraph using real font
// metrics, preserving run styling across line breaks. A paragraph with no
// measurable words still yields one empty line.
func WrapRuns(p *content.Paragraph, width float64, typo Typography) []Line {
	var lines []Line
	var cur []content.Run
	curWidth := 0.0

	flush := func() {
		lines = append(lines, Line{Runs: cur, Width: curWidth, RTL: p.RTL})
		cur = nil
		curWidth = 0
	}

	for _, run := range p.Runs {
		style := FontStyle(run)
		spaceWidth := stringWidth(" ", typo.FontFamily, style, typo.FontSize)

		for _, word := range strings.Fields(run.Text) {
			wordWidth := stringWidth(word, typo.FontFamily, style, typo.FontSize)

			if curWidth > 0 && curWidth+spaceWidth+wordWidth > width {
				flush()
			}

			if curWidth > 0 {
				// the separating space belongs to the preceding run
				cur[len(cur)-1].Text += " "
				curWidth += spaceWidth
			}
			if n := len(cur); n > 0 && sameStyle(cur[n-1], run) {
				cur[n-1].Text += word
			} else {
				r := run
				r.Text = word
				cur = append(cur, r)
			}
			curWidth += wordWidth
		}
	}

	if len(cur) > 0 {
		flush()
	}
	if len(lines) == 0 {
		lines = []Line{{RTL: p.RTL}}
	}
	return lines
}

func sameStyle(a, b content.Run) bool {
	return a.Bold == b.Bold && a.Italic == b.Italic && a.Underline == b.Underline
}
