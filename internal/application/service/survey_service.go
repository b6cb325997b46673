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

const surveysPerPage = 10

// SurveyService manages surveys and their questions
type SurveyService struct {
	*Catalog[entity.Survey]
	questions *Catalog[entity.Question]
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	surveyRepo repository.LoyaltyRepository[entity.Survey],
	questionRepo repository.LoyaltyRepository[entity.Question],
	deps CatalogDeps,
) *SurveyService {
	return &SurveyService{
		Catalog: NewCatalog(surveyRepo, CatalogOptions[entity.Survey]{
			Name: "surveys",
			Spec: listing.Spec[entity.Survey]{
				PerPage:      surveysPerPage,
				SearchFields: func(s entity.Survey) []string { return []string{s.Title, s.Description} },
				Filters: map[string]listing.FilterFunc[entity.Survey]{
					"is_active": listing.Bool(func(s entity.Survey) bool { return s.IsActive.Bool() }),
				},
				Sorts: map[string]func(a, b entity.Survey) int{
					"title":      listing.ByString(func(s entity.Survey) string { return s.Title }),
					"starts_at":  listing.ByTime(func(s entity.Survey) time.Time { return s.StartsAt.Time }),
					"created_at": listing.ByTime(func(s entity.Survey) time.Time { return s.CreatedAt.Time }),
				},
			},
		}, deps),
		questions: NewCatalog(questionRepo, CatalogOptions[entity.Question]{
			Name: "survey-questions",
			Spec: listing.Spec[entity.Question]{
				Sorts: map[string]func(a, b entity.Question) int{
					"sort_order": listing.ByNumber(func(q entity.Question) int { return q.SortOrder }),
				},
			},
		}, deps),
	}
}

// GetSurvey retrieves a survey with its questions in display order
func (s *SurveyService) GetSurvey(ctx context.Context, id entity.ID) (*entity.Survey, error) {
	survey, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(survey.Questions) == 0 {
		snap, err := s.questions.Snapshot(ctx, map[string]string{"survey_id": id.String()})
		if err != nil {
			return nil, err
		}
		for _, q := range snap.Items {
			// some deployments ignore the survey_id filter
			if q.SurveyID.IsZero() || q.SurveyID == id {
				survey.Questions = append(survey.Questions, q)
			}
		}
	}
	listing.Sort(survey.Questions, listing.Query{SortBy: "sort_order"}, s.questions.spec)
	return survey, nil
}

// SurveyInput is the survey form
type SurveyInput struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Description string           `json:"description"`
	StartsAt    entity.Timestamp `json:"starts_at"`
	EndsAt      entity.Timestamp `json:"ends_at"`
	IsActive    enum.Flag        `json:"is_active"`
}

// Validate checks the form
func (in *SurveyInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	return validateForm(in)
}

// CreateSurvey validates and sends a new survey
func (s *SurveyService) CreateSurvey(ctx context.Context, in *SurveyInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

// UpdateSurvey validates and sends the edited survey
func (s *SurveyService) UpdateSurvey(ctx context.Context, id entity.ID, in *SurveyInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}

// QuestionInput is the question form of a survey
type QuestionInput struct {
	SurveyID     entity.ID         `json:"survey_id" validate:"required"`
	QuestionText string            `json:"question_text" validate:"required"`
	QuestionType enum.QuestionType `json:"question_type" validate:"oneof=text single_choice multiple_choice rating"`
	Options      []string          `json:"options,omitempty"`
	IsRequired   enum.Flag         `json:"is_required"`
	SortOrder    int               `json:"sort_order" validate:"min=0"`
}

// Validate checks the form
func (in *QuestionInput) Validate() error {
	in.QuestionText = strings.TrimSpace(in.QuestionText)
	options := in.Options[:0]
	for _, o := range in.Options {
		if o = strings.TrimSpace(o); o != "" {
			options = append(options, o)
		}
	}
	in.Options = options

	if !in.QuestionType.HasOptions() {
		in.Options = nil
	}
	return validateForm(in)
}

// AddQuestion validates and sends a new question for the survey
func (s *SurveyService) AddQuestion(ctx context.Context, surveyID entity.ID, in *QuestionInput) (*repository.MutationResult, error) {
	in.SurveyID = surveyID
	if err := in.Validate(); err != nil {
		return nil, err
	}
	res, err := s.questions.Create(ctx, in)
	if err == nil {
		s.Invalidate(ctx)
	}
	return res, err
}

// RemoveQuestion deletes a question of the survey
func (s *SurveyService) RemoveQuestion(ctx context.Context, surveyID, questionID entity.ID) (*repository.MutationResult, error) {
	res, err := s.questions.Delete(ctx, questionID)
	if err == nil {
		s.Invalidate(ctx)
	}
	return res, err
}
