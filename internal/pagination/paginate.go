package pagination

import (
	"go.uber.org/zap"

	"github.com/examsheet/examsheet/internal/logger"
)

// Page is one physical page of laid-out items. Pages are 1-indexed and
// immutable once the paginator emits them.
type Page struct {
	Number int
	Items  []FlatItem
	// Overflow marks a page whose content exceeds its budget. That happens
	// only when a single item (or an unbreakable header+question pair) is
	// taller than the page itself; such items are placed anyway rather
	// than dropped.
	Overflow bool
}

// Paginator distributes measured flat items across pages
type Paginator struct {
	geo Geometry
	log *zap.Logger
}

// NewPaginator creates a new paginator
func NewPaginator(geo Geometry) *Paginator {
	return &Paginator{geo: geo, log: logger.Get()}
}

// Paginate assigns items to pages in order. The result is a pure function of
// the input sequence and the geometry:
//
//   - every item appears on exactly one page, in input order
//   - a page is closed when the next item would exceed its budget, except
//     that a section header is never left as the last item of a page: the
//     header moves (or overflows) together with its first question
//   - an item taller than a whole page is placed alone and the page is
//     flagged as overflowing instead of looping
//
// An empty input yields zero pages, which is a valid printable-nothing state.
func (p *Paginator) Paginate(items []FlatItem) []*Page {
	pages := make([]*Page, 0)
	if len(items) == 0 {
		return pages
	}

	pageNumber := 1
	maxHeight := p.geo.ContentHeight(pageNumber)
	current := &Page{Number: pageNumber}
	currentHeight := 0.0

	closePage := func() {
		current.Overflow = currentHeight > maxHeight
		if current.Overflow {
			p.log.Warn("page content exceeds budget",
				zap.Int("page", current.Number),
				zap.Float64("height", currentHeight),
				zap.Float64("budget", maxHeight))
		}
		pages = append(pages, current)
		pageNumber++
		maxHeight = p.geo.ContentHeight(pageNumber)
		current = &Page{Number: pageNumber}
		currentHeight = 0
	}

	for i, it := range items {
		// keep-with-next: a header's break decision considers the
		// combined height of the header and its first question
		needed := it.Height
		if it.Kind == ItemSection && i+1 < len(items) && items[i+1].Kind == ItemQuestion {
			needed += items[i+1].Height
		}

		// a question directly after its header on the same page forms an
		// unbreakable pair; breaking here would orphan the header
		unbreakable := it.Kind == ItemQuestion &&
			len(current.Items) > 0 &&
			current.Items[len(current.Items)-1].Kind == ItemSection

		if currentHeight+needed > maxHeight && len(current.Items) > 0 && !unbreakable {
			closePage()
		}

		current.Items = append(current.Items, it)
		currentHeight += it.Height
	}

	if len(current.Items) > 0 {
		current.Overflow = currentHeight > maxHeight
		pages = append(pages, current)
	}
	return pages
}

// OverflowQuestionIDs returns the ids of questions on overflowing pages so
// callers can surface a warning
func OverflowQuestionIDs(pages []*Page) []string {
	var ids []string
	for _, page := range pages {
		if !page.Overflow {
			continue
		}
		for _, it := range page.Items {
			if it.Kind == ItemQuestion {
				ids = append(ids, it.Question.ID)
			}
		}
	}
	return ids
}
