package document

import (
	"fmt"
	"strings"

	"github.com/examsheet/examsheet/internal/content"
)

// Mode selects which variant of the paper is produced
type Mode string

const (
	// ModeTeacher renders model answers
	ModeTeacher Mode = "teacher"
	// ModeStudent renders student prompts or ruled answer areas
	ModeStudent Mode = "student"
)

// ParseMode parses a mode string
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTeacher:
		return ModeTeacher, nil
	case ModeStudent:
		return ModeStudent, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeTeacher, ModeStudent)
}

// SectionOther groups questions whose section name is empty
const SectionOther = "Other"

// Document is a test paper: a title plus an ordered list of questions.
// Sections are derived from the questions, not stored.
type Document struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	CategoryID string     `json:"category_id,omitempty"`
	Questions  []Question `json:"questions"`
}

// Question is a single graded exercise
type Question struct {
	ID          string        `json:"id"`
	SectionName string        `json:"section_name,omitempty"`
	Prompt      string        `json:"prompt"`
	ModelAnswer content.Block `json:"model_answer"`
	// StudentPrompt, when nil, means the student copy gets a ruled answer
	// area sized from the model answer. A non-nil value (even empty) is
	// shown verbatim instead.
	StudentPrompt *content.Block `json:"student_prompt,omitempty"`
	Points        float64        `json:"points"`
}

// Section is a derived grouping of questions sharing a name
type Section struct {
	Name      string
	Points    float64
	Questions []*Question
}

// normalizedSection returns the grouping name for a question
func (q *Question) normalizedSection() string {
	name := strings.TrimSpace(q.SectionName)
	if name == "" {
		return SectionOther
	}
	return name
}

// Validate validates the question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewValidationError("question prompt is required")
	}
	if q.Points < 0 {
		return NewValidationError(fmt.Sprintf("question points must be >= 0, got %g", q.Points))
	}
	return nil
}

// Validate validates the document and all of its questions
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return NewValidationError("document title is required")
	}
	for i := range d.Questions {
		if err := d.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Sections groups the questions by section name in first-appearance order.
// A section exists only if at least one question belongs to it.
func (d *Document) Sections() []Section {
	index := make(map[string]int)

	var sections []Section
	for i := range d.Questions {
		q := &d.Questions[i]
		name := q.normalizedSection()
		pos, seen := index[name]
		if !seen {
			pos = len(sections)
			index[name] = pos
			sections = append(sections, Section{Name: name})
		}
		sections[pos].Questions = append(sections[pos].Questions, q)
		sections[pos].Points += q.Points
	}
	return sections
}

// TotalPoints sums the point values of every question
func (d *Document) TotalPoints() float64 {
	var total float64
	for i := range d.Questions {
		total += d.Questions[i].Points
	}
	return total
}
