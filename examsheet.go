package examsheet

import (
	"github.com/examsheet/examsheet/internal/content"
	"github.com/examsheet/examsheet/internal/document"
	"github.com/examsheet/examsheet/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Result = api.Result

type Document = document.Document
type Question = document.Question
type Mode = document.Mode
type Block = content.Block

func New() *Generator                           { return api.New() }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

func NewBlock(fragment string) Block { return content.NewBlock(fragment) }

var (
	WithPageSize       = api.WithPageSize
	WithPageSizeA4     = api.WithPageSizeA4
	WithPageSizeLetter = api.WithPageSizeLetter
	WithPadding        = api.WithPadding
	WithHeaderHeight   = api.WithHeaderHeight
	WithFooterHeight   = api.WithFooterHeight
	WithLineHeight     = api.WithLineHeight
	WithSafetyBuffer   = api.WithSafetyBuffer
	WithTypography     = api.WithTypography
	WithResourcePath   = api.WithResourcePath
	WithAuthor         = api.WithAuthor
	WithSubject        = api.WithSubject
	WithKeywords       = api.WithKeywords

	ParseMode = document.ParseMode
)

const (
	ModeTeacher = document.ModeTeacher
	ModeStudent = document.ModeStudent

	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
)
