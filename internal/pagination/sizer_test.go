package pagination

import (
	"testing"

	"github.com/examsheet/examsheet/internal/content"
	"github.com/examsheet/examsheet/internal/document"
	"github.com/examsheet/examsheet/internal/measure"
)

// fixedOracle returns canned heights keyed by block content, so sizing tests
// are independent of font metrics
type fixedOracle struct {
	blockHeights map[string]float64
	textHeight   float64
}

func (o fixedOracle) Measure(b content.Block, _ float64, _ measure.Typography) float64 {
	return o.blockHeights[b.HTML]
}

func (o fixedOracle) MeasureText(_ string, _ float64, _ measure.Typography) float64 {
	return o.textHeight
}

func sizerGeometry() Geometry {
	geo := DefaultGeometry()
	geo.LineHeight = 30
	return geo
}

func TestRuledLines(t *testing.T) {
	s := NewSizer(fixedOracle{}, measure.DefaultTypography(), sizerGeometry())

	tests := []struct {
		height float64
		want   int
	}{
		{0, 1},
		{20, 2},
		{30, 2},
		{60, 3},
		{340, 13},
	}
	for _, tt := range tests {
		if got := s.RuledLines(tt.height); got != tt.want {
			t.Errorf("RuledLines(%g) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestSizeTeacherMode(t *testing.T) {
	oracle := fixedOracle{
		blockHeights: map[string]float64{"answer": 100},
		textHeight:   20,
	}
	s := NewSizer(oracle, measure.DefaultTypography(), sizerGeometry())

	items := []FlatItem{
		{Kind: ItemSection, SectionName: "Ex.1", Points: 5},
		{Kind: ItemQuestion, Number: 1, Question: &document.Question{
			Prompt:      "p",
			ModelAnswer: content.NewBlock("answer"),
			Points:      5,
		}},
	}
	s.Size(items, document.ModeTeacher)

	if want := 20.0 + ItemSpacing; items[0].Height != want {
		t.Errorf("section height = %g, want %g", items[0].Height, want)
	}
	if want := 20.0 + AnswerGap + 100 + ItemSpacing; items[1].Height != want {
		t.Errorf("question height = %g, want %g", items[1].Height, want)
	}
	if items[1].Lines != 0 {
		t.Errorf("teacher mode allocated %d ruled lines, want 0", items[1].Lines)
	}
}

func TestSizeStudentModeRuledArea(t *testing.T) {
	oracle := fixedOracle{
		blockHeights: map[string]float64{"answer": 100},
		textHeight:   20,
	}
	s := NewSizer(oracle, measure.DefaultTypography(), sizerGeometry())

	items := []FlatItem{
		{Kind: ItemQuestion, Number: 1, Question: &document.Question{
			Prompt:      "p",
			ModelAnswer: content.NewBlock("answer"),
		}},
	}
	s.Size(items, document.ModeStudent)

	// ceil(100/30)+1 = 5 ruled lines at 30 units each
	if items[0].Lines != 5 {
		t.Fatalf("allocated %d ruled lines, want 5", items[0].Lines)
	}
	if want := 20.0 + AnswerGap + 5*30.0 + ItemSpacing; items[0].Height != want {
		t.Errorf("question height = %g, want %g", items[0].Height, want)
	}
}

func TestSizeStudentModePromptVerbatim(t *testing.T) {
	oracle := fixedOracle{
		blockHeights: map[string]float64{"answer": 100, "choose one": 40, "": 15},
		textHeight:   20,
	}
	s := NewSizer(oracle, measure.DefaultTypography(), sizerGeometry())

	prompt := content.NewBlock("choose one")
	empty := content.NewBlock("")
	items := []FlatItem{
		{Kind: ItemQuestion, Number: 1, Question: &document.Question{
			Prompt:        "p",
			ModelAnswer:   content.NewBlock("answer"),
			StudentPrompt: &prompt,
		}},
		{Kind: ItemQuestion, Number: 2, Question: &document.Question{
			Prompt:        "p",
			ModelAnswer:   content.NewBlock("answer"),
			StudentPrompt: &empty,
		}},
	}
	s.Size(items, document.ModeStudent)

	// a supplied student prompt suppresses the ruled area even when empty
	for i, it := range items {
		if it.Lines != 0 {
			t.Errorf("item %d: allocated %d ruled lines, want 0", i, it.Lines)
		}
	}
	if want := 20.0 + AnswerGap + 40 + ItemSpacing; items[0].Height != want {
		t.Errorf("prompted question height = %g, want %g", items[0].Height, want)
	}
	if want := 20.0 + AnswerGap + 15 + ItemSpacing; items[1].Height != want {
		t.Errorf("empty-prompt question height = %g, want %g", items[1].Height, want)
	}
}
