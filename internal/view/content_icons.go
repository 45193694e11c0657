package view

import "github.com/portfolio/internal/db"

// ContentTypeOption describes a content type for admin pickers.
type ContentTypeOption struct {
	Key   db.ContentType `json:"key"`
	Label string         `json:"label"`
}

type contentTypeAsset struct {
	Type  db.ContentType
	Label string
	SVG   string
}

var (
	contentTypeDefinitions = []contentTypeAsset{
		{Type: db.ContentTypeArticle, Label: "Article", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M19.5 14.25v-2.625a3.375 3.375 0 0 0-3.375-3.375h-1.5A1.125 1.125 0 0 1 13.5 7.125v-1.5a3.375 3.375 0 0 0-3.375-3.375H8.25m0 12.75h7.5m-7.5 3H12M10.5 2.25H5.625c-.621 0-1.125.504-1.125 1.125v17.25c0 .621.504 1.125 1.125 1.125h12.75c.621 0 1.125-.504 1.125-1.125V11.25a9 9 0 0 0-9-9Z"/></svg>`},
		{Type: db.ContentTypeImage, Label: "Image", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="m2.25 15.75 5.159-5.159a2.25 2.25 0 0 1 3.182 0l5.159 5.159m-1.5-1.5 1.409-1.409a2.25 2.25 0 0 1 3.182 0l2.909 2.909M3.75 21h16.5A1.5 1.5 0 0 0 21.75 19.5V4.5A1.5 1.5 0 0 0 20.25 3H3.75A1.5 1.5 0 0 0 2.25 4.5v15A1.5 1.5 0 0 0 3.75 21Zm10.5-11.25h.008v.008h-.008V9.75Z"/></svg>`},
		{Type: db.ContentTypeVideo, Label: "Video", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="m15.75 10.5 4.72-4.72a.75.75 0 0 1 1.28.53v11.38a.75.75 0 0 1-1.28.53l-4.72-4.72M4.5 18.75h9a2.25 2.25 0 0 0 2.25-2.25v-9A2.25 2.25 0 0 0 13.5 5.25h-9A2.25 2.25 0 0 0 2.25 7.5v9A2.25 2.25 0 0 0 4.5 18.75Z"/></svg>`},
		{Type: db.ContentTypeAudio, Label: "Audio", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="m9 9 10.5-3m0 6.553v3.75a2.25 2.25 0 0 1-1.632 2.163l-1.32.377a1.803 1.803 0 1 1-.99-3.467l2.31-.66a2.25 2.25 0 0 0 1.632-2.163Zm0 0V2.25L9 5.25v10.303m0 0v3.75a2.25 2.25 0 0 1-1.632 2.163l-1.32.377a1.803 1.803 0 0 1-.99-3.467l2.31-.66A2.25 2.25 0 0 0 9 15.553Z"/></svg>`},
	}
	defaultContentTypeIcon = `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M19.5 14.25v-2.625a3.375 3.375 0 0 0-3.375-3.375h-1.5A1.125 1.125 0 0 1 13.5 7.125v-1.5a3.375 3.375 0 0 0-3.375-3.375H8.25M10.5 2.25H5.625c-.621 0-1.125.504-1.125 1.125v17.25c0 .621.504 1.125 1.125 1.125h12.75c.621 0 1.125-.504 1.125-1.125V11.25a9 9 0 0 0-9-9Z"/></svg>`
	contentTypeLookup      = func() map[db.ContentType]contentTypeAsset {
		lookup := make(map[db.ContentType]contentTypeAsset, len(contentTypeDefinitions))
		for _, asset := range contentTypeDefinitions {
			lookup[asset.Type] = asset
		}
		return lookup
	}()
)

// ContentTypeOptions lists the content types in editor order.
func ContentTypeOptions() []ContentTypeOption {
	options := make([]ContentTypeOption, 0, len(contentTypeDefinitions))
	for _, asset := range contentTypeDefinitions {
		options = append(options, ContentTypeOption{Key: asset.Type, Label: asset.Label})
	}
	return options
}

// ContentTypeIconSVG returns the icon for t, falling back to a generic file icon.
func ContentTypeIconSVG(t db.ContentType) string {
	if asset, ok := contentTypeLookup[t]; ok {
		return asset.SVG
	}
	return defaultContentTypeIcon
}

// ContentTypeLabel returns the display label for t.
func ContentTypeLabel(t db.ContentType) string {
	if asset, ok := contentTypeLookup[t]; ok {
		return asset.Label
	}
	return "File"
}
