package entities

import "time"

type Library struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Books     []Book    `gorm:"foreignKey:LibraryID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Library) TableName() string {
	return "libraries"
}

// Book belongs to exactly one Library. Library is only populated when the
// owning record has been resolved or preloaded.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	LibraryID uint      `gorm:"index;not null" json:"libraryId"`
	Library   *Library  `gorm:"foreignKey:LibraryID" json:"library,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string {
	return "books"
}
