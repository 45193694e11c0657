package db

// Collection groups content items across categories under a URL slug.
type Collection struct {
	Model
	Name        string `gorm:"size:120;not null" json:"name"`
	Slug        string `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`
}

// ContentCollection is the ordered many-to-many join between collections and
// content. Each assignment carries its own order.
type ContentCollection struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	CollectionID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_collection_content" json:"collection_id"`
	ContentID    string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_collection_content;index" json:"content_id"`
	SortOrder    int        `gorm:"default:0" json:"sort_order"`
	Content      Content    `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE" json:"content"`
	Collection   Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the join table name stable.
func (ContentCollection) TableName() string {
	return "content_collections"
}
