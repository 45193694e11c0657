package db

// ContentType tags how a content item's body is interpreted.
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypeImage   ContentType = "image"
	ContentTypeVideo   ContentType = "video"
	ContentTypeAudio   ContentType = "audio"
)

// ContentTypes lists every supported content type in display order.
var ContentTypes = []ContentType{ContentTypeArticle, ContentTypeImage, ContentTypeVideo, ContentTypeAudio}

// Valid reports whether t is one of the supported content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeArticle, ContentTypeImage, ContentTypeVideo, ContentTypeAudio:
		return true
	}
	return false
}

// Content is a single publishable item.
// Body holds the block-list JSON for articles and the media URL for images
// and videos; audio keeps its URL in AudioURL.
type Content struct {
	Model
	SubcategoryID       string      `gorm:"type:varchar(36);not null;index" json:"subcategory_id"`
	Type                ContentType `gorm:"size:16;not null" json:"type"`
	Title               string      `gorm:"size:255;not null" json:"title"`
	Subtitle            string      `gorm:"size:255" json:"subtitle"`
	SidebarTitle        string      `gorm:"size:255" json:"sidebar_title"`
	SidebarSubtitle     string      `gorm:"size:255" json:"sidebar_subtitle"`
	Body                string      `gorm:"type:text" json:"content"`
	AudioURL            string      `gorm:"size:1024" json:"audio_url"`
	AuthorName          string      `gorm:"size:255" json:"author_name"`
	PublicationName     string      `gorm:"size:255" json:"publication_name"`
	PublicationDate     string      `gorm:"size:10" json:"publication_date"`
	SourceLink          string      `gorm:"size:1024" json:"source_link"`
	CopyrightNotice     string      `gorm:"size:512" json:"copyright_notice"`
	DownloadEnabled     bool        `gorm:"default:false" json:"download_enabled"`
	ExternalDownloadURL string      `gorm:"size:1024" json:"external_download_url"`
}

// DisplaySidebarTitle returns the navigation-only title, falling back to Title.
func (c Content) DisplaySidebarTitle() string {
	if c.SidebarTitle != "" {
		return c.SidebarTitle
	}
	return c.Title
}

// DownloadURL resolves the link offered when downloads are enabled.
func (c Content) DownloadURL() string {
	if !c.DownloadEnabled {
		return ""
	}
	if c.ExternalDownloadURL != "" {
		return c.ExternalDownloadURL
	}
	switch c.Type {
	case ContentTypeImage, ContentTypeVideo:
		return c.Body
	case ContentTypeAudio:
		return c.AudioURL
	}
	return ""
}
