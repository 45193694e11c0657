package db

// Category is the top level of the sidebar hierarchy.
type Category struct {
	Model
	Name          string        `gorm:"size:120;not null" json:"name"`
	SortOrder     int           `gorm:"default:0;index" json:"sort_order"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"subcategories"`
}

// Subcategory belongs to exactly one Category and owns content items.
type Subcategory struct {
	Model
	CategoryID string `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Name       string `gorm:"size:120;not null" json:"name"`
	SortOrder  int    `gorm:"default:0" json:"sort_order"`
}
