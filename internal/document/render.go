package document

import (
	"fmt"
	htmlstd "html"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Unavailable is rendered in place of a document that cannot be parsed.
const Unavailable = `<p class="content-unavailable">Content could not be loaded.</p>`

var inlineClassPattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

// Renderer converts documents to HTML. A Renderer is safe for concurrent use.
type Renderer struct {
	inline *bluemonday.Policy
	strict *bluemonday.Policy
	logger *zerolog.Logger
}

// NewRenderer builds a renderer that reports dropped blocks to logger.
// A nil logger uses the global zerolog logger.
func NewRenderer(logger *zerolog.Logger) *Renderer {
	return &Renderer{
		inline: buildInlinePolicy(),
		strict: bluemonday.StrictPolicy(),
		logger: logger,
	}
}

var defaultRenderer = NewRenderer(nil)

// Render renders input with the package default renderer.
func Render(input any) string {
	return defaultRenderer.Render(input)
}

func buildInlinePolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("b", "strong", "i", "em", "u", "s", "mark", "code", "br", "sub", "sup", "span")
	policy.AllowNoAttrs().OnElements("u")
	policy.AllowAttrs("class").Matching(inlineClassPattern).OnElements("mark", "code", "span")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowStandardURLs()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

func (r *Renderer) log() *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return &log.Logger
}

// Render parses input and renders it. Input that is missing or has no block
// list renders as the Unavailable placeholder.
func (r *Renderer) Render(input any) string {
	doc, err := Parse(input)
	if err != nil {
		r.log().Warn().Err(err).Msg("document render failed")
		return Unavailable
	}
	return r.RenderDocument(doc)
}

// RenderDocument renders every block in order and concatenates the results.
// Blocks that render to nothing contribute nothing.
func (r *Renderer) RenderDocument(doc Document) string {
	var b strings.Builder
	for _, block := range doc.Blocks {
		b.WriteString(r.RenderBlock(block))
	}
	return b.String()
}

// RenderBlock renders a single block.
func (r *Renderer) RenderBlock(block Block) string {
	switch blk := block.(type) {
	case Paragraph:
		return r.paragraph(blk)
	case Header:
		return r.header(blk)
	case List:
		return r.list(blk)
	case Quote:
		return r.quote(blk)
	case Delimiter:
		return `<div class="editor-delimiter" role="separator">* * *</div>`
	case Code:
		return "<pre><code>" + htmlstd.EscapeString(blk.Code) + "</code></pre>"
	case Embed:
		return r.embed(blk)
	case Image:
		return r.image(blk)
	case Unknown:
		r.log().Warn().Str("block_type", blk.Type).Str("reason", blk.Reason).Msg("skipping document block")
		return ""
	case nil:
		return ""
	default:
		r.log().Warn().Str("block_type", block.blockType()).Msg("skipping document block")
		return ""
	}
}

func (r *Renderer) paragraph(p Paragraph) string {
	if strings.TrimSpace(p.Text) == "" {
		return ""
	}
	text := r.inline.Sanitize(p.Text)
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return "<p>" + text + "</p>"
}

func (r *Renderer) header(h Header) string {
	if strings.TrimSpace(h.Text) == "" {
		return ""
	}
	text := r.inline.Sanitize(h.Text)
	if strings.TrimSpace(text) == "" {
		return ""
	}
	level := h.Level
	if level < 1 || level > 6 {
		level = 2
	}
	return fmt.Sprintf("<h%d>%s</h%d>", level, text, level)
}

func (r *Renderer) list(l List) string {
	if len(l.Items) == 0 {
		return ""
	}
	var b strings.Builder
	r.writeList(&b, l.Style, l.Items)
	return b.String()
}

func (r *Renderer) writeList(b *strings.Builder, style ListStyle, items []ListItem) {
	tag := "ul"
	if style == ListOrdered {
		tag = "ol"
	}
	b.WriteString("<" + tag + ">")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(r.inline.Sanitize(item.Content))
		if len(item.Items) > 0 {
			r.writeList(b, style, item.Items)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
}

func (r *Renderer) quote(q Quote) string {
	if strings.TrimSpace(q.Text) == "" {
		return ""
	}
	text := r.inline.Sanitize(q.Text)
	if strings.TrimSpace(text) == "" {
		return ""
	}
	align := "left"
	if q.Alignment == "center" {
		align = "center"
	}
	var b strings.Builder
	b.WriteString(`<blockquote class="editor-quote editor-quote-` + align + `">`)
	b.WriteString("<p>" + text + "</p>")
	if caption := r.plain(q.Caption); caption != "" {
		b.WriteString("<cite>" + caption + "</cite>")
	}
	b.WriteString("</blockquote>")
	return b.String()
}

func (r *Renderer) embed(e Embed) string {
	src, ok := absoluteURL(e.URL)
	if !ok {
		r.log().Warn().Str("service", e.Service).Msg("skipping embed with unusable url")
		return ""
	}
	title := r.plain(e.Caption)
	if title == "" {
		title = htmlstd.EscapeString(e.Service) + " embed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="editor-embed" data-embed-service="%s">`, htmlstd.EscapeString(e.Service))
	fmt.Fprintf(&b,
		`<iframe src="%s" title="%s" loading="lazy" frameborder="0" allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen referrerpolicy="strict-origin-when-cross-origin"></iframe>`,
		htmlstd.EscapeString(src), title,
	)
	if caption := r.plain(e.Caption); caption != "" {
		b.WriteString(`<p class="embed-caption">` + caption + `</p>`)
	}
	b.WriteString("</div>")
	return b.String()
}

func (r *Renderer) image(img Image) string {
	src, ok := siteOrAbsoluteURL(img.URL)
	if !ok {
		r.log().Warn().Msg("skipping image with unusable url")
		return ""
	}
	classes := []string{"editor-image"}
	if img.WithBorder {
		classes = append(classes, "editor-image-border")
	}
	if img.Stretched {
		classes = append(classes, "editor-image-stretched")
	}
	if img.WithBackground {
		classes = append(classes, "editor-image-background")
	}
	caption := r.plain(img.Caption)

	var b strings.Builder
	fmt.Fprintf(&b, `<figure class="%s">`, strings.Join(classes, " "))
	fmt.Fprintf(&b, `<img src="%s" alt="%s" loading="lazy">`, htmlstd.EscapeString(src), caption)
	if caption != "" {
		b.WriteString("<figcaption>" + caption + "</figcaption>")
	}
	b.WriteString("</figure>")
	return b.String()
}

// plain strips all markup and returns escaped text.
func (r *Renderer) plain(text string) string {
	return strings.TrimSpace(r.strict.Sanitize(text))
}

func absoluteURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}
	if parsed.Host == "" {
		return "", false
	}
	return parsed.String(), true
}

func siteOrAbsoluteURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return "", false
		}
		return parsed.String(), true
	}
	return absoluteURL(raw)
}
