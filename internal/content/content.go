package content

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Block is an opaque formatted-content fragment produced by the authoring
// editor. The engine never edits a Block; it only parses it for measurement
// and rendering.
type Block struct {
	HTML string
}

// NewBlock creates a block from an HTML fragment
func NewBlock(fragment string) Block {
	return Block{HTML: fragment}
}

// MarshalJSON encodes the block as a bare string
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.HTML)
}

// UnmarshalJSON decodes the block from a bare string
func (b *Block) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &b.HTML)
}

// Element is a parsed piece of a block, either a Paragraph or an Image
type Element interface {
	element()
}

// Run is a span of text with uniform inline styling
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// Paragraph is a block-level run sequence
type Paragraph struct {
	Runs []Run
	RTL  bool
}

func (*Paragraph) element() {}

// Text returns the concatenated run text
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Image is an embedded image reference with optional declared dimensions
type Image struct {
	Src    string
	Width  float64 // 0 when not declared
	Height float64
}

func (*Image) element() {}

// Parsed is the element sequence of a block in document order
type Parsed struct {
	Elements []Element
}

// IsEmpty reports whether the block parsed to no visible content
func (p *Parsed) IsEmpty() bool {
	return len(p.Elements) == 0
}

// PlainText returns the text of all paragraphs joined by newlines
func (p *Parsed) PlainText() string {
	var parts []string
	for _, el := range p.Elements {
		if para, ok := el.(*Paragraph); ok {
			parts = append(parts, para.Text())
		}
	}
	return strings.Join(parts, "\n")
}

// tags that close the current paragraph
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true, "tr": true, "td": true, "th": true,
}

// Parse converts the block's HTML fragment into an ordered element sequence.
// Unsupported markup degrades to plain text; a parse failure falls back to a
// single paragraph holding the raw fragment, so callers always get something
// measurable.
func (b Block) Parse() (*Parsed, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(b.HTML), ctx)
	if err != nil {
		raw := strings.TrimSpace(b.HTML)
		parsed := &Parsed{}
		if raw != "" {
			parsed.Elements = append(parsed.Elements, newParagraph([]Run{{Text: raw}}))
		}
		return parsed, err
	}

	pb := &parseBuilder{}
	for _, n := range nodes {
		pb.walk(n, Run{})
	}
	pb.flush()
	return &Parsed{Elements: pb.elements}, nil
}

type parseBuilder struct {
	elements []Element
	runs     []Run
}

func (pb *parseBuilder) walk(n *html.Node, style Run) {
	switch n.Type {
	case html.TextNode:
		text := collapseWhitespace(n.Data)
		if text != "" {
			style.Text = text
			pb.appendRun(style)
		}
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		switch tag {
		case "b", "strong":
			style.Bold = true
		case "i", "em":
			style.Italic = true
		case "u":
			style.Underline = true
		case "br":
			pb.flush()
			return
		case "img":
			pb.flush()
			pb.elements = append(pb.elements, imageFromNode(n))
			return
		case "script", "style", "head":
			return
		}
		if blockTags[tag] {
			pb.flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			pb.walk(c, style)
		}
		if blockTags[tag] {
			pb.flush()
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			pb.walk(c, style)
		}
	}
}

func (pb *parseBuilder) appendRun(r Run) {
	// merge with the previous run when the styling is identical
	if len(pb.runs) > 0 {
		last := &pb.runs[len(pb.runs)-1]
		if last.Bold == r.Bold && last.Italic == r.Italic && last.Underline == r.Underline {
			if !strings.HasSuffix(last.Text, " ") && !strings.HasPrefix(r.Text, " ") {
				last.Text += " "
			}
			last.Text += r.Text
			return
		}
	}
	pb.runs = append(pb.runs, r)
}

func (pb *parseBuilder) flush() {
	if len(pb.runs) == 0 {
		return
	}
	pb.runs[0].Text = strings.TrimPrefix(pb.runs[0].Text, " ")
	last := len(pb.runs) - 1
	pb.runs[last].Text = strings.TrimSuffix(pb.runs[last].Text, " ")
	if last == 0 && pb.runs[0].Text == "" {
		pb.runs = nil
		return
	}
	pb.elements = append(pb.elements, newParagraph(pb.runs))
	pb.runs = nil
}

func newParagraph(runs []Run) *Paragraph {
	p := &Paragraph{Runs: runs}
	p.RTL = IsRTL(p.Text())
	return p
}

func imageFromNode(n *html.Node) *Image {
	img := &Image{}
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "src":
			img.Src = a.Val
		case "width":
			img.Width = parseDimension(a.Val)
		case "height":
			img.Height = parseDimension(a.Val)
		}
	}
	return img
}

func parseDimension(v string) float64 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\t") {
		out = " " + out
	}
	if strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\t") {
		out += " "
	}
	return out
}
