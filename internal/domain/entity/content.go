package entity

import (
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
)

// FAQ is a frequently asked question shown in the member app
type FAQ struct {
	ID        ID        `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category"`
	SortOrder int       `json:"sort_order"`
	IsActive  enum.Flag `json:"is_active"`
}

func (f FAQ) GetID() ID {
	return f.ID
}

// Term is a version of a legal document
type Term struct {
	ID            ID            `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Type          enum.TermType `json:"type"`
	Version       string        `json:"version"`
	EffectiveDate Timestamp     `json:"effective_date"`
	IsActive      enum.Flag     `json:"is_active"`
}

func (t Term) GetID() ID {
	return t.ID
}

// Video is a promotional or tutorial video
type Video struct {
	ID              ID        `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationSeconds int       `json:"duration_seconds"`
	SortOrder       int       `json:"sort_order"`
	IsActive        enum.Flag `json:"is_active"`
}

func (v Video) GetID() ID {
	return v.ID
}
