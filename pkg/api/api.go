package api

import (
	"fmt"
	"io"

	"github.com/examsheet/examsheet/internal/document"
	"github.com/examsheet/examsheet/internal/measure"
	"github.com/examsheet/examsheet/internal/pagination"
	"github.com/examsheet/examsheet/internal/render/pdf"
	"github.com/examsheet/examsheet/internal/res"
)

// Generator is the main API for turning a document into a printable paper.
// A pagination run is a pure function of (document, mode, geometry); the
// generator keeps no state between runs beyond its configuration.
type Generator struct {
	options Options
	loader  *res.Loader
}

// Result is the outcome of one pagination run
type Result struct {
	Pages []*pagination.Page
	// OverflowQuestionIDs lists questions on pages whose content exceeds
	// the page budget; a warning condition, not an error
	OverflowQuestionIDs []string
}

// New creates a generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a generator with the specified options
func NewWithOptions(options Options) *Generator {
	loader := res.NewLoader("")
	for _, path := range options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return &Generator{
		options: options,
		loader:  loader,
	}
}

// WithOption returns a new generator with the specified option applied
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// Geometry returns the page geometry derived from the options
func (g *Generator) Geometry() pagination.Geometry {
	return pagination.Geometry{
		PageWidth:    g.options.PageWidth,
		PageHeight:   g.options.PageHeight,
		Padding:      g.options.Padding,
		HeaderHeight: g.options.HeaderHeight,
		FooterHeight: g.options.FooterHeight,
		LineHeight:   g.options.LineHeight,
		SafetyBuffer: g.options.SafetyBuffer,
	}
}

// Typography returns the text configuration derived from the options
func (g *Generator) Typography() measure.Typography {
	return measure.Typography{
		FontFamily:  g.options.FontFamily,
		FontSize:    g.options.FontSize,
		LineSpacing: g.options.LineSpacing,
	}
}

// Paginate runs the full measurement and pagination pipeline for one
// document and mode. An empty document yields zero pages.
func (g *Generator) Paginate(doc *document.Document, mode document.Mode) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	geometry := g.Geometry()
	typography := g.Typography()
	oracle := measure.NewMeasurer(g.loader)

	items := pagination.Flatten(doc)
	pagination.NewSizer(oracle, typography, geometry).Size(items, mode)
	pages := pagination.NewPaginator(geometry).Paginate(items)

	return &Result{
		Pages:               pages,
		OverflowQuestionIDs: pagination.OverflowQuestionIDs(pages),
	}, nil
}

// RenderToFile paginates the document and writes the PDF to outputPath
func (g *Generator) RenderToFile(doc *document.Document, mode document.Mode, outputPath string) (*Result, error) {
	result, err := g.Paginate(doc, mode)
	if err != nil {
		return nil, err
	}

	renderer := g.renderer()
	if err := renderer.Render(doc, mode, result.Pages, outputPath, g.renderOptions()); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return result, nil
}

// Render paginates the document and writes the PDF to the given writer
func (g *Generator) Render(doc *document.Document, mode document.Mode, output io.Writer) (*Result, error) {
	result, err := g.Paginate(doc, mode)
	if err != nil {
		return nil, err
	}

	renderer := g.renderer()
	if err := renderer.RenderTo(doc, mode, result.Pages, output, g.renderOptions()); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return result, nil
}

func (g *Generator) renderer() *pdf.Renderer {
	return pdf.NewRenderer(measure.NewMeasurer(g.loader), g.loader, g.Geometry(), g.Typography())
}

func (g *Generator) renderOptions() pdf.RenderOptions {
	return pdf.RenderOptions{
		Author:   g.options.Author,
		Subject:  g.options.Subject,
		Keywords: g.options.Keywords,
		Creator:  "ExamSheet",
		Producer: "ExamSheet",
	}
}
