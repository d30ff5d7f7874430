package pagination

import (
	"fmt"
	"strconv"

	"github.com/examsheet/examsheet/internal/document"
)

// ItemKind tags the two kinds of flat items
type ItemKind int

const (
	// ItemSection is a section header
	ItemSection ItemKind = iota
	// ItemQuestion is a single question
	ItemQuestion
)

// FlatItem is the paginator's unit of work. Items are created fresh for
// every pagination run and never persisted.
type FlatItem struct {
	Kind ItemKind

	// section items
	SectionName string
	Points      float64

	// question items
	Question *document.Question
	// Number is the question's 1-based position in the whole document
	Number int
	// Lines is the allocated ruled line count; 0 when no ruled area is drawn
	Lines int

	// Height is the item's full vertical contribution including margins,
	// set by the Sizer
	Height float64
}

// SectionLabel returns the rendered header text for a section item
func (it FlatItem) SectionLabel() string {
	return fmt.Sprintf("%s (%s pts)", it.SectionName, formatPoints(it.Points))
}

// PromptLabel returns the rendered prompt text for a question item
func (it FlatItem) PromptLabel() string {
	return fmt.Sprintf("%d. %s [%s pts]", it.Number, it.Question.Prompt, formatPoints(it.Question.Points))
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Flatten converts the document's derived section tree into the ordered flat
// sequence the paginator consumes: one header item per section in
// first-appearance order, each followed by its member questions in stored
// order. Heights are unset until the Sizer runs.
func Flatten(doc *document.Document) []FlatItem {
	var items []FlatItem
	number := 0
	for _, section := range doc.Sections() {
		items = append(items, FlatItem{
			Kind:        ItemSection,
			SectionName: section.Name,
			Points:      section.Points,
		})
		for _, q := range section.Questions {
			number++
			items = append(items, FlatItem{
				Kind:     ItemQuestion,
				Question: q,
				Number:   number,
			})
		}
	}
	return items
}
