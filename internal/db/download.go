package db

// Download file types. At most one row exists per type.
const (
	FileTypeResumeFull      = "resume_full"
	FileTypeResumeCondensed = "resume_condensed"
	FileTypePortfolio       = "portfolio"
)

// DownloadFileTypes lists the accepted file type tags.
var DownloadFileTypes = []string{FileTypeResumeFull, FileTypeResumeCondensed, FileTypePortfolio}

// DownloadableFile points at a document visitors can download.
type DownloadableFile struct {
	Model
	FileType string `gorm:"size:32;uniqueIndex;not null" json:"file_type"`
	FileURL  string `gorm:"size:1024;not null" json:"file_url"`
	FileName string `gorm:"size:255" json:"file_name"`
}

// TableName keeps the table name explicit.
func (DownloadableFile) TableName() string {
	return "downloadable_files"
}
