package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model is the common primary key and timestamp set. IDs are opaque UUID
// strings assigned on insert.
type Model struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh UUID when the caller did not provide one.
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
