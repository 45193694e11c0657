// Package document renders block-list documents produced by the admin
// rich-text editor into sanitized HTML.
package document

// Block is one typed entry of a block-list document. The set of variants is
// closed: every implementation lives in this package.
type Block interface {
	blockType() string
}

// Paragraph holds editor inline HTML.
type Paragraph struct {
	Text string
}

// Header is a section heading; Level is 1–6.
type Header struct {
	Text  string
	Level int
}

// ListStyle selects ordered or unordered rendering.
type ListStyle string

const (
	ListOrdered   ListStyle = "ordered"
	ListUnordered ListStyle = "unordered"
)

// ListItem is a list entry with optional nested children.
type ListItem struct {
	Content string
	Items   []ListItem
}

// List is an ordered or unordered list.
type List struct {
	Style ListStyle
	Items []ListItem
}

// Quote is a block quotation with an optional caption.
type Quote struct {
	Text      string
	Caption   string
	Alignment string
}

// Delimiter separates sections.
type Delimiter struct{}

// Code is a preformatted code sample. Its content is always escaped.
type Code struct {
	Code string
}

// Embed is third-party media shown in an iframe.
type Embed struct {
	Service string
	Source  string
	URL     string
	Caption string
	Width   int
	Height  int
}

// Image is a figure with display flags set in the editor.
type Image struct {
	URL            string
	Caption        string
	WithBorder     bool
	Stretched      bool
	WithBackground bool
}

// Unknown records a block whose type is not supported or whose data could
// not be decoded. It renders to nothing.
type Unknown struct {
	Type   string
	Reason string
}

func (Paragraph) blockType() string { return "paragraph" }
func (Header) blockType() string    { return "header" }
func (List) blockType() string      { return "list" }
func (Quote) blockType() string     { return "quote" }
func (Delimiter) blockType() string { return "delimiter" }
func (Code) blockType() string      { return "code" }
func (Embed) blockType() string     { return "embed" }
func (Image) blockType() string     { return "image" }
func (u Unknown) blockType() string { return u.Type }

// Document is a parsed block-list document.
type Document struct {
	Time    int64
	Version string
	Blocks  []Block
}
