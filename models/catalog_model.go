package models

import "time"

// Model is gorm.Model without soft deletes: a deleted artist must free its
// name for the unique index.
type Model struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Artist struct {
	Model
	Name   string  `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Albums []Album `json:"-" gorm:"foreignkey:ArtistID"`
}

type Album struct {
	Model
	Title       string `json:"title" gorm:"size:255;not null"`
	ReleaseYear int    `json:"release_year"`
	ArtistID    uint   `json:"-" gorm:"not null;index"`
	Artist      Artist `json:"artist"`
	Songs       []Song `json:"-" gorm:"foreignkey:AlbumID"`
}

type Song struct {
	Model
	Author   string `json:"author" gorm:"size:255"`
	Title    string `json:"title" gorm:"size:255;not null"`
	ArtistID uint   `json:"-" gorm:"not null;index"`
	Artist   Artist `json:"-"`
	AlbumID  uint   `json:"-" gorm:"not null;index"`
	Album    Album  `json:"-"`
	Duration int    `json:"duration"` // seconds
}

// All lists the models handed to AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{&Artist{}, &Album{}, &Song{}}
}
