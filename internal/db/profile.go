package db

// Profile is the singleton business-card record shown on the public site.
// Each contact field has its own visibility flag.
type Profile struct {
	Model
	FullName         string   `gorm:"size:120" json:"full_name"`
	Location         string   `gorm:"size:120" json:"location"`
	JobTitle1        string   `gorm:"size:120" json:"job_title_1"`
	JobTitle2        string   `gorm:"size:120" json:"job_title_2"`
	JobTitle3        string   `gorm:"size:120" json:"job_title_3"`
	JobTitle4        string   `gorm:"size:120" json:"job_title_4"`
	ImageURL         string   `gorm:"size:1024" json:"profile_image"`
	Email            string   `gorm:"size:255" json:"email"`
	Phone            string   `gorm:"size:64" json:"phone"`
	LinkedIn         string   `gorm:"size:255" json:"linkedin"`
	ShowEmail        bool     `json:"show_email"`
	ShowPhone        bool     `json:"show_phone"`
	ShowLinkedIn     bool     `json:"show_linkedin"`
	ShortBio         string   `gorm:"type:text" json:"short_bio"`
	LongBio          string   `gorm:"type:text" json:"full_bio"`
	Skills           []string `gorm:"type:text;serializer:json" json:"skills"`
	Languages        []string `gorm:"type:text;serializer:json" json:"languages"`
	Education        string   `gorm:"type:text" json:"education"`
	ExecutiveSummary string   `gorm:"type:text" json:"executive_summary"`
}

// TableName pins the singleton table name.
func (Profile) TableName() string {
	return "profile"
}

// JobTitles returns the non-empty job title lines in order.
func (p Profile) JobTitles() []string {
	titles := make([]string, 0, 4)
	for _, title := range []string{p.JobTitle1, p.JobTitle2, p.JobTitle3, p.JobTitle4} {
		if title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
