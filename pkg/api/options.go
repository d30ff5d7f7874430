package api

// Options represents configuration options for the paper generator
type Options struct {
	// Page dimensions in points
	PageWidth  float64
	PageHeight float64
	// Padding is the fixed page margin on all edges
	Padding float64

	// Reserved block heights
	HeaderHeight float64
	FooterHeight float64

	// LineHeight is the spacing of ruled answer lines
	LineHeight float64
	// SafetyBuffer absorbs measurement rounding across rendering backends
	SafetyBuffer float64

	// Typography
	FontFamily  string
	FontSize    float64
	LineSpacing float64

	// Resource paths searched for images referenced by content blocks
	ResourcePaths []string

	// Document metadata
	Author   string
	Subject  string
	Keywords string
}

// Option is a function that modifies Options
type Option func(*Options)

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28

	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		// Default to A4 paper size (595.28 x 841.89 points)
		PageWidth:  PageSizeA4Width,
		PageHeight: PageSizeA4Height,

		Padding: 36,

		HeaderHeight: 110,
		FooterHeight: 28,

		LineHeight:   24,
		SafetyBuffer: 6,

		FontFamily:  "Helvetica",
		FontSize:    12,
		LineSpacing: 1.4,

		ResourcePaths: []string{},
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPadding sets the fixed page padding
func WithPadding(padding float64) Option {
	return func(o *Options) {
		o.Padding = padding
	}
}

// WithHeaderHeight sets the page-1 header reservation
func WithHeaderHeight(height float64) Option {
	return func(o *Options) {
		o.HeaderHeight = height
	}
}

// WithFooterHeight sets the per-page footer reservation
func WithFooterHeight(height float64) Option {
	return func(o *Options) {
		o.FooterHeight = height
	}
}

// WithLineHeight sets the ruled line spacing
func WithLineHeight(height float64) Option {
	return func(o *Options) {
		o.LineHeight = height
	}
}

// WithSafetyBuffer sets the measurement rounding buffer
func WithSafetyBuffer(buffer float64) Option {
	return func(o *Options) {
		o.SafetyBuffer = buffer
	}
}

// WithTypography sets the font family, size and line spacing
func WithTypography(family string, size, lineSpacing float64) Option {
	return func(o *Options) {
		o.FontFamily = family
		o.FontSize = size
		o.LineSpacing = lineSpacing
	}
}

// WithResourcePath adds a path to search for content resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithAuthor sets the document author metadata
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject metadata
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords metadata
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}
