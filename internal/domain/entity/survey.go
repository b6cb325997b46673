package entity

import (
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
)

// Survey represents a questionnaire shown to members
type Survey struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartsAt    Timestamp  `json:"starts_at"`
	EndsAt      Timestamp  `json:"ends_at"`
	IsActive    enum.Flag  `json:"is_active"`
	Questions   []Question `json:"questions,omitempty"`
	CreatedAt   Timestamp  `json:"created_at"`
}

func (s Survey) GetID() ID {
	return s.ID
}

// Question is one question of a survey
type Question struct {
	ID           ID                `json:"id"`
	SurveyID     ID                `json:"survey_id"`
	QuestionText string            `json:"question_text"`
	QuestionType enum.QuestionType `json:"question_type"`
	Options      []string          `json:"options,omitempty"`
	IsRequired   enum.Flag         `json:"is_required"`
	SortOrder    int               `json:"sort_order"`
}

func (q Question) GetID() ID {
	return q.ID
}
