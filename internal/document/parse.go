package document

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	// ErrEmpty is returned when there is no document to parse.
	ErrEmpty = errors.New("document is empty")
	// ErrMalformed is returned for structured input without a block list.
	ErrMalformed = errors.New("document has no block list")
)

type rawDocument struct {
	Time    int64           `json:"time"`
	Version string          `json:"version"`
	Blocks  json.RawMessage `json:"blocks"`
}

type rawBlock struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Parse turns any accepted document form into a Document.
//
// Accepted inputs are a JSON string or byte slice, a Document, a []Block,
// and any value that marshals to a JSON object with a "blocks" array or to a
// bare array of blocks. A string that is not JSON is treated as plain text
// and split into one paragraph per non-blank line.
func Parse(input any) (Document, error) {
	switch v := input.(type) {
	case nil:
		return Document{}, ErrEmpty
	case Document:
		return v, nil
	case *Document:
		if v == nil {
			return Document{}, ErrEmpty
		}
		return *v, nil
	case []Block:
		return Document{Blocks: v}, nil
	case string:
		return parseText([]byte(v))
	case []byte:
		return parseText(v)
	case json.RawMessage:
		return parseText(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return parseJSON(data)
	}
}

func parseText(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, ErrEmpty
	}
	if (trimmed[0] != '{' && trimmed[0] != '[') || !json.Valid(trimmed) {
		return plainText(string(data)), nil
	}
	return parseJSON(trimmed)
}

func parseJSON(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Document{}, ErrEmpty
	}

	var doc Document
	var blocks json.RawMessage
	switch trimmed[0] {
	case '{':
		var raw rawDocument
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		doc.Time = raw.Time
		doc.Version = raw.Version
		blocks = raw.Blocks
	case '[':
		blocks = trimmed
	default:
		return Document{}, ErrMalformed
	}

	blocks = bytes.TrimSpace(blocks)
	if len(blocks) == 0 || blocks[0] != '[' {
		return Document{}, ErrMalformed
	}
	var raws []rawBlock
	if err := json.Unmarshal(blocks, &raws); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc.Blocks = make([]Block, 0, len(raws))
	for _, rb := range raws {
		doc.Blocks = append(doc.Blocks, decodeBlock(rb))
	}
	return doc, nil
}

func plainText(text string) Document {
	var doc Document
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc.Blocks = append(doc.Blocks, Paragraph{Text: html.EscapeString(line)})
	}
	return doc
}

func decodeBlock(rb rawBlock) Block {
	data := rb.Data
	if len(bytes.TrimSpace(data)) == 0 {
		data = json.RawMessage("{}")
	}

	switch rb.Type {
	case "paragraph":
		var d struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return invalid(rb.Type, err)
		}
		return Paragraph{Text: d.Text}
	case "header":
		var d struct {
			Text  string `json:"text"`
			Level int    `json:"level"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return invalid(rb.Type, err)
		}
		return Header{Text: d.Text, Level: d.Level}
	case "list":
		var d struct {
			Style string            `json:"style"`
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return invalid(rb.Type, err)
		}
		items, err := decodeListItems(d.Items)
		if err != nil {
			return invalid(rb.Type, err)
		}
		style := ListUnordered
		if d.Style == string(ListOrdered) {
			style = ListOrdered
		}
		return List{Style: style, Items: items}
	case "quote":
		var d struct {
			Text      string `json:"text"`
			Caption   string `json:"caption"`
			Alignment string `json:"alignment"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return invalid(rb.Type, err)
		}
		return Quote{Text: d.Text, Caption: d.Caption, Alignment: d.Alignment}
	case "delimiter":
		return Delimiter{}
	case "code":
		var d struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return invalid(rb.Type, err)
		}
		return Code{Code: d.Code}
	case "embed":
		var d struct {
			Service string `json:"service"`
			Source  string `json:"source"`
			Embed   string `json:"embed"`
			Width   int    `json:"width"`
			Height  int    `json:"height"`
			Caption string `json:"caption"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return invalid(rb.Type, err)
		}
		return Embed{Service: d.Service, Source: d.Source, URL: d.Embed, Caption: d.Caption, Width: d.Width, Height: d.Height}
	case "image":
		var d struct {
			File struct {
				URL string `json:"url"`
			} `json:"file"`
			URL            string `json:"url"`
			Caption        string `json:"caption"`
			WithBorder     bool   `json:"withBorder"`
			Stretched      bool   `json:"stretched"`
			WithBackground bool   `json:"withBackground"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return invalid(rb.Type, err)
		}
		url := d.File.URL
		if url == "" {
			url = d.URL
		}
		return Image{
			URL:            url,
			Caption:        d.Caption,
			WithBorder:     d.WithBorder,
			Stretched:      d.Stretched,
			WithBackground: d.WithBackground,
		}
	}
	return Unknown{Type: rb.Type, Reason: "unsupported block type"}
}

// decodeListItems accepts both flat string items and nested item objects.
func decodeListItems(raws []json.RawMessage) ([]ListItem, error) {
	items := make([]ListItem, 0, len(raws))
	for _, raw := range raws {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			continue
		}
		if raw[0] == '"' {
			var text string
			if err := json.Unmarshal(raw, &text); err != nil {
				return nil, err
			}
			items = append(items, ListItem{Content: text})
			continue
		}
		var nested struct {
			Content string            `json:"content"`
			Items   []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, err
		}
		children, err := decodeListItems(nested.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, ListItem{Content: nested.Content, Items: children})
	}
	return items, nil
}

func invalid(blockType string, err error) Unknown {
	return Unknown{Type: blockType, Reason: err.Error()}
}
