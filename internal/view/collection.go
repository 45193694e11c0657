package view

import (
	"html/template"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/document"
)

// CollectionView is a collection with its items ready to render.
type CollectionView struct {
	Name        string
	Slug        string
	Description template.HTML
	Items       []ContentView
}

// BuildCollectionView renders every item in the given order.
func BuildCollectionView(collection db.Collection, items []db.Content, renderer *document.Renderer) CollectionView {
	view := CollectionView{
		Name:        collection.Name,
		Slug:        collection.Slug,
		Description: Markdown(collection.Description),
		Items:       make([]ContentView, 0, len(items)),
	}
	for _, item := range items {
		view.Items = append(view.Items, ContentItemView(item, renderer))
	}
	return view
}

var downloadLabels = map[string]string{
	db.FileTypeResumeFull:      "Full resume",
	db.FileTypeResumeCondensed: "Condensed resume",
	db.FileTypePortfolio:       "Portfolio",
}

// BuildDownloadLinks keeps the files with a usable URL, in the given order.
func BuildDownloadLinks(files []db.DownloadableFile) []DownloadLink {
	links := make([]DownloadLink, 0, len(files))
	for _, file := range files {
		href := linkOrEmpty(file.FileURL)
		if href == "" {
			continue
		}
		label, ok := downloadLabels[file.FileType]
		if !ok {
			label = file.FileName
		}
		links = append(links, DownloadLink{URL: href, Label: label})
	}
	return links
}
