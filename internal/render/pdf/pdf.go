package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/examsheet/examsheet/internal/content"
	"github.com/examsheet/examsheet/internal/document"
	"github.com/examsheet/examsheet/internal/logger"
	"github.com/examsheet/examsheet/internal/measure"
	"github.com/examsheet/examsheet/internal/pagination"
	"github.com/examsheet/examsheet/internal/res"
)

// Renderer draws computed pages to a PDF. All sizing decisions were made by
// the sizer and paginator; the renderer only draws what it is given, using
// the same typography and width the measurement pass used.
type Renderer struct {
	measurer *measure.Measurer
	loader   *res.Loader
	geo      pagination.Geometry
	typo     measure.Typography
	log      *zap.Logger

	// registered tracks image names already added to the current PDF
	registered map[string]registeredImage
}

type registeredImage struct {
	name    string
	imgType string
}

// RenderOptions contains document metadata for the PDF
type RenderOptions struct {
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// NewRenderer creates a new PDF renderer
func NewRenderer(measurer *measure.Measurer, loader *res.Loader, geo pagination.Geometry, typo measure.Typography) *Renderer {
	return &Renderer{
		measurer: measurer,
		loader:   loader,
		geo:      geo,
		typo:     typo,
		log:      logger.Get(),
	}
}

// Render renders pages to a PDF file
func (r *Renderer) Render(doc *document.Document, mode document.Mode, pages []*pagination.Page, outputPath string, options RenderOptions) error {
	pdf, err := r.build(doc, mode, pages, options)
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return pdf.OutputFileAndClose(outputPath)
}

// RenderTo renders pages to a writer
func (r *Renderer) RenderTo(doc *document.Document, mode document.Mode, pages []*pagination.Page, w io.Writer, options RenderOptions) error {
	pdf, err := r.build(doc, mode, pages, options)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func (r *Renderer) build(doc *document.Document, mode document.Mode, pages []*pagination.Page, options RenderOptions) (*fpdf.Fpdf, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: r.geo.PageWidth, Ht: r.geo.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)

	r.registered = make(map[string]registeredImage)

	total := len(pages)
	for _, page := range pages {
		pdf.AddPage()
		r.renderFooter(pdf, doc, page.Number, total)

		y := r.geo.Padding
		if page.Number == 1 {
			r.renderHeader(pdf, doc)
			y += r.geo.HeaderHeight
		}

		for _, it := range page.Items {
			switch it.Kind {
			case pagination.ItemSection:
				y = r.renderSection(pdf, it, y)
			case pagination.ItemQuestion:
				y = r.renderQuestion(pdf, it, mode, y)
			}
		}

		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", page.Number, err)
		}
	}

	return pdf, nil
}

// renderHeader draws the page-1 banner: title, date cell and grade cell
func (r *Renderer) renderHeader(pdf *fpdf.Fpdf, doc *document.Document) {
	x := r.geo.Padding
	width := r.geo.ContentWidth()

	titleSize := r.typo.FontSize * 1.5
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(r.typo.FontFamily, "B", titleSize)
	titleWidth := pdf.GetStringWidth(doc.Title)
	pdf.Text(x+(width-titleWidth)/2, r.geo.Padding+titleSize, doc.Title)

	cellTop := r.geo.Padding + titleSize + 12
	cellHeight := r.geo.Padding + r.geo.HeaderHeight - cellTop - 6
	if cellHeight < r.typo.LineHeight() {
		cellHeight = r.typo.LineHeight()
	}
	gap := 8.0
	leftWidth := width * 0.55
	rightWidth := width - leftWidth - gap

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.8)
	pdf.Rect(x, cellTop, leftWidth, cellHeight, "D")
	pdf.Rect(x+leftWidth+gap, cellTop, rightWidth, cellHeight, "D")

	pdf.SetFont(r.typo.FontFamily, "", r.typo.FontSize)
	lineY := cellTop + r.typo.LineHeight()
	pdf.Text(x+6, lineY, "Name:")
	pdf.Text(x+6, lineY+r.typo.LineHeight(), "Date:")

	rightX := x + leftWidth + gap + 6
	pdf.Text(rightX, lineY, fmt.Sprintf("Grade:          / %s pts", formatPoints(doc.TotalPoints())))
	pdf.Text(rightX, lineY+r.typo.LineHeight(), "Comments:")
}

// renderFooter draws the per-page footer: title left, page counter right
func (r *Renderer) renderFooter(pdf *fpdf.Fpdf, doc *document.Document, pageNumber, totalPages int) {
	footerTop := r.geo.PageHeight - r.geo.Padding - r.geo.FooterHeight
	x := r.geo.Padding
	width := r.geo.ContentWidth()

	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.5)
	pdf.Line(x, footerTop, x+width, footerTop)

	footerSize := r.typo.FontSize * 0.75
	pdf.SetFont(r.typo.FontFamily, "I", footerSize)
	pdf.SetTextColor(100, 100, 100)

	baseline := footerTop + footerSize + 6
	pdf.Text(x, baseline, doc.Title)

	counter := fmt.Sprintf("Page %d / %d", pageNumber, totalPages)
	pdf.Text(x+width-pdf.GetStringWidth(counter), baseline, counter)
	pdf.SetTextColor(0, 0, 0)
}

// renderSection draws a section header item and returns the next y
func (r *Renderer) renderSection(pdf *fpdf.Fpdf, it pagination.FlatItem, y float64) float64 {
	headerTypo := r.typo.Scaled(pagination.SectionScale)
	x := r.geo.Padding
	width := r.geo.ContentWidth()

	pdf.SetTextColor(0, 0, 0)
	lines := measure.WrapRuns(&content.Paragraph{Runs: []content.Run{{Text: it.SectionLabel()}}}, width, headerTypo)
	y = r.drawLines(pdf, lines, x, y, width, headerTypo, "B")
	return y + pagination.ItemSpacing
}

// renderQuestion draws a question item and returns the next y
func (r *Renderer) renderQuestion(pdf *fpdf.Fpdf, it pagination.FlatItem, mode document.Mode, y float64) float64 {
	x := r.geo.Padding
	width := r.geo.ContentWidth()
	q := it.Question

	pdf.SetTextColor(0, 0, 0)
	prompt := it.PromptLabel()
	lines := measure.WrapRuns(&content.Paragraph{Runs: []content.Run{{Text: prompt}}, RTL: content.IsRTL(prompt)}, width, r.typo)
	y = r.drawLines(pdf, lines, x, y, width, r.typo, "")
	y += pagination.AnswerGap

	switch {
	case mode == document.ModeTeacher:
		y = r.renderBlock(pdf, q.ModelAnswer, x, y, width)
	case q.StudentPrompt != nil:
		y = r.renderBlock(pdf, *q.StudentPrompt, x, y, width)
	default:
		y = r.renderRuledLines(pdf, it.Lines, x, y, width)
	}

	return y + pagination.ItemSpacing
}

// renderRuledLines draws the dashed handwriting lines of a blank answer area
func (r *Renderer) renderRuledLines(pdf *fpdf.Fpdf, count int, x, y, width float64) float64 {
	pdf.SetDrawColor(110, 110, 110)
	pdf.SetLineWidth(0.5)
	pdf.SetDashPattern([]float64{1, 2}, 0)
	for i := 1; i <= count; i++ {
		lineY := y + float64(i)*r.geo.LineHeight - 3
		pdf.Line(x, lineY, x+width, lineY)
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetDrawColor(0, 0, 0)
	return y + float64(count)*r.geo.LineHeight
}

// renderBlock draws a content block exactly as the measurement pass laid it
// out and returns the next y
func (r *Renderer) renderBlock(pdf *fpdf.Fpdf, block content.Block, x, y, width float64) float64 {
	lay, err := r.measurer.Layout(block, width, r.typo)
	if err != nil {
		r.log.Warn("content block degraded during rendering", zap.Error(err))
	}
	if lay == nil || len(lay.Fragments) == 0 {
		// the measurement pass charged one line for empty content
		return y + r.typo.LineHeight()
	}

	for _, frag := range lay.Fragments {
		if frag.Image != nil {
			r.renderImage(pdf, frag.Image, x, y)
			y += frag.Height
			continue
		}
		y = r.drawLines(pdf, frag.Lines, x, y, width, r.typo, "")
	}
	return y
}

// drawLines draws wrapped lines starting at y and returns the y below them.
// extraStyle is OR-ed into every run's font style (the section headers are
// measured plain but drawn bold; their labels are short enough that the
// wrap positions do not move).
func (r *Renderer) drawLines(pdf *fpdf.Fpdf, lines []measure.Line, x, y, width float64, typo measure.Typography, extraStyle string) float64 {
	lineHeight := typo.LineHeight()
	leading := lineHeight - typo.FontSize
	if leading < 0 {
		leading = 0
	}

	for _, line := range lines {
		baseline := y + leading/2 + typo.FontSize*0.8
		startX := x
		if line.RTL {
			startX = x + width - line.Width
			if startX < x {
				startX = x
			}
		}
		for _, run := range line.Runs {
			style := measure.FontStyle(run)
			if extraStyle != "" && !strings.Contains(style, extraStyle) {
				style += extraStyle
			}
			pdf.SetFont(typo.FontFamily, style, typo.FontSize)
			pdf.Text(startX, baseline, run.Text)
			startX += pdf.GetStringWidth(run.Text)
		}
		y += lineHeight
	}
	return y
}

func formatPoints(p float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p), "0"), ".")
}
