package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

const (
	faqsPerPage   = 15
	termsPerPage  = 10
	videosPerPage = 12
)

// FAQService manages the FAQ list of the member app
type FAQService struct {
	*Catalog[entity.FAQ]
}

// NewFAQService creates a new FAQ service
func NewFAQService(repo repository.LoyaltyRepository[entity.FAQ], deps CatalogDeps) *FAQService {
	return &FAQService{Catalog: NewCatalog(repo, CatalogOptions[entity.FAQ]{
		Name: "faqs",
		Spec: listing.Spec[entity.FAQ]{
			PerPage:      faqsPerPage,
			SearchFields: func(f entity.FAQ) []string { return []string{f.Question, f.Answer, f.Category} },
			Filters: map[string]listing.FilterFunc[entity.FAQ]{
				"category":  listing.Equals(func(f entity.FAQ) string { return f.Category }),
				"is_active": listing.Bool(func(f entity.FAQ) bool { return f.IsActive.Bool() }),
			},
			Sorts: map[string]func(a, b entity.FAQ) int{
				"sort_order": listing.ByNumber(func(f entity.FAQ) int { return f.SortOrder }),
				"question":   listing.ByString(func(f entity.FAQ) string { return f.Question }),
			},
		},
	}, deps)}
}

// FAQInput is the FAQ form
type FAQInput struct {
	Question  string    `json:"question" validate:"required"`
	Answer    string    `json:"answer" validate:"required"`
	Category  string    `json:"category" validate:"omitempty,max=100"`
	SortOrder int       `json:"sort_order" validate:"min=0"`
	IsActive  enum.Flag `json:"is_active"`
}

// Validate checks the form
func (in *FAQInput) Validate() error {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	in.Category = strings.TrimSpace(in.Category)
	return validateForm(in)
}

func (s *FAQService) CreateFAQ(ctx context.Context, in *FAQInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

func (s *FAQService) UpdateFAQ(ctx context.Context, id entity.ID, in *FAQInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}

// TermService manages legal documents
type TermService struct {
	*Catalog[entity.Term]
}

// NewTermService creates a new term service
func NewTermService(repo repository.LoyaltyRepository[entity.Term], deps CatalogDeps) *TermService {
	return &TermService{Catalog: NewCatalog(repo, CatalogOptions[entity.Term]{
		Name: "terms",
		Spec: listing.Spec[entity.Term]{
			PerPage:      termsPerPage,
			SearchFields: func(t entity.Term) []string { return []string{t.Title, t.Version} },
			Filters: map[string]listing.FilterFunc[entity.Term]{
				"type":      listing.Equals(func(t entity.Term) string { return string(t.Type) }),
				"is_active": listing.Bool(func(t entity.Term) bool { return t.IsActive.Bool() }),
			},
			Sorts: map[string]func(a, b entity.Term) int{
				"effective_date": listing.ByTime(func(t entity.Term) time.Time { return t.EffectiveDate.Time }),
				"title":          listing.ByString(func(t entity.Term) string { return t.Title }),
			},
		},
	}, deps)}
}

// TermInput is the legal document form
type TermInput struct {
	Title         string           `json:"title" validate:"required,max=255"`
	Content       string           `json:"content" validate:"notblank"`
	Type          enum.TermType    `json:"type" validate:"oneof=terms privacy refund"`
	Version       string           `json:"version" validate:"required,max=32"`
	EffectiveDate entity.Timestamp `json:"effective_date"`
	IsActive      enum.Flag        `json:"is_active"`
}

// Validate checks the form
func (in *TermInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Version = strings.TrimSpace(in.Version)
	return validateForm(in)
}

func (s *TermService) CreateTerm(ctx context.Context, in *TermInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

func (s *TermService) UpdateTerm(ctx context.Context, id entity.ID, in *TermInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}

// VideoService manages promotional and tutorial videos
type VideoService struct {
	*Catalog[entity.Video]
}

// NewVideoService creates a new video service
func NewVideoService(repo repository.LoyaltyRepository[entity.Video], deps CatalogDeps) *VideoService {
	return &VideoService{Catalog: NewCatalog(repo, CatalogOptions[entity.Video]{
		Name: "videos",
		Spec: listing.Spec[entity.Video]{
			PerPage:      videosPerPage,
			SearchFields: func(v entity.Video) []string { return []string{v.Title, v.Description} },
			Filters: map[string]listing.FilterFunc[entity.Video]{
				"is_active": listing.Bool(func(v entity.Video) bool { return v.IsActive.Bool() }),
			},
			Sorts: map[string]func(a, b entity.Video) int{
				"sort_order": listing.ByNumber(func(v entity.Video) int { return v.SortOrder }),
				"title":      listing.ByString(func(v entity.Video) string { return v.Title }),
				"duration":   listing.ByNumber(func(v entity.Video) int { return v.DurationSeconds }),
			},
		},
	}, deps)}
}

// VideoInput is the video form
type VideoInput struct {
	Title           string    `json:"title" validate:"required,max=255"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"video_url" validate:"required,http_url"`
	ThumbnailURL    string    `json:"thumbnail_url" validate:"omitempty,http_url"`
	DurationSeconds int       `json:"duration_seconds" validate:"min=0"`
	SortOrder       int       `json:"sort_order" validate:"min=0"`
	IsActive        enum.Flag `json:"is_active"`
}

// Validate checks the form
func (in *VideoInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	in.ThumbnailURL = strings.TrimSpace(in.ThumbnailURL)
	return validateForm(in)
}

func (s *VideoService) CreateVideo(ctx context.Context, in *VideoInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

func (s *VideoService) UpdateVideo(ctx context.Context, id entity.ID, in *VideoInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}
