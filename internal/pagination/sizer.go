package pagination

import (
	"math"

	"github.com/examsheet/examsheet/internal/document"
	"github.com/examsheet/examsheet/internal/measure"
)

// Fixed vertical margins applied around item parts. These are style
// constants, not page geometry; the geometry stays configurable.
const (
	// ItemSpacing is the bottom margin of every flat item
	ItemSpacing = 12.0
	// AnswerGap separates a question's prompt from its answer area
	AnswerGap = 6.0
	// SectionScale enlarges the section header font relative to body text
	SectionScale = 1.25
)

// Sizer assigns each flat item its height for one pagination run. In student
// mode it also decides the ruled line allocation. This is the measurement
// pass; it must complete before the Paginator reads any height.
type Sizer struct {
	oracle measure.Oracle
	typo   measure.Typography
	geo    Geometry
}

// NewSizer creates a sizer bound to one oracle, typography and geometry
func NewSizer(oracle measure.Oracle, typo measure.Typography, geo Geometry) *Sizer {
	return &Sizer{oracle: oracle, typo: typo, geo: geo}
}

// RuledLines converts a measured model-answer height into a ruled line
// count: the apparent line count plus one extra line of writing comfort,
// never less than one. Blank answer space scales with the teacher's own
// answer, it is never a fixed constant.
func (s *Sizer) RuledLines(measuredHeight float64) int {
	if s.geo.LineHeight <= 0 {
		return 1
	}
	lines := int(math.Ceil(measuredHeight/s.geo.LineHeight)) + 1
	if lines < 1 {
		lines = 1
	}
	return lines
}

// Size measures every item in place for the given mode
func (s *Sizer) Size(items []FlatItem, mode document.Mode) {
	width := s.geo.ContentWidth()

	for i := range items {
		it := &items[i]
		switch it.Kind {
		case ItemSection:
			headerTypo := s.typo.Scaled(SectionScale)
			it.Height = s.oracle.MeasureText(it.SectionLabel(), width, headerTypo) + ItemSpacing
		case ItemQuestion:
			promptHeight := s.oracle.MeasureText(it.PromptLabel(), width, s.typo)
			it.Height = promptHeight + AnswerGap + s.answerHeight(it, mode, width) + ItemSpacing
		}
	}
}

// answerHeight computes the answer region height and, in student mode
// without a prompt, records the ruled line allocation on the item
func (s *Sizer) answerHeight(it *FlatItem, mode document.Mode, width float64) float64 {
	q := it.Question
	it.Lines = 0

	if mode == document.ModeTeacher {
		return s.oracle.Measure(q.ModelAnswer, width, s.typo)
	}

	if q.StudentPrompt != nil {
		// a supplied prompt, even an empty one, is shown verbatim
		return s.oracle.Measure(*q.StudentPrompt, width, s.typo)
	}

	measured := s.oracle.Measure(q.ModelAnswer, width, s.typo)
	it.Lines = s.RuledLines(measured)
	return float64(it.Lines) * s.geo.LineHeight
}
