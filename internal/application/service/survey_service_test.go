package service

import (
	"context"
	"testing"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
)

func TestSurveyService_GetSurveyLoadsQuestionsInOrder(t *testing.T) {
	surveys := newFakeRepo(entity.Survey{ID: "s1", Title: "Checkout"})
	questions := newFakeRepo(
		entity.Question{ID: "q2", SurveyID: "s1", QuestionText: "Why?", SortOrder: 2},
		entity.Question{ID: "q9", SurveyID: "s9", QuestionText: "Other survey", SortOrder: 0},
		entity.Question{ID: "q1", SurveyID: "s1", QuestionText: "How was it?", SortOrder: 1},
	)
	svc := NewSurveyService(surveys, questions, CatalogDeps{})

	survey, err := svc.GetSurvey(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSurvey: %v", err)
	}
	if len(survey.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(survey.Questions))
	}
	if survey.Questions[0].ID != "q1" || survey.Questions[1].ID != "q2" {
		t.Errorf("order = %s, %s, want q1, q2", survey.Questions[0].ID, survey.Questions[1].ID)
	}
	if questions.lastParams["survey_id"] != "s1" {
		t.Errorf("survey_id param = %q, want s1", questions.lastParams["survey_id"])
	}
}

func TestQuestionInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		in     QuestionInput
		fields []string
	}{
		{"text question", QuestionInput{SurveyID: "s1", QuestionText: "Comments", QuestionType: enum.QuestionTypeText}, nil},
		{"choice with two options", QuestionInput{SurveyID: "s1", QuestionText: "Pick", QuestionType: enum.QuestionTypeSingleChoice, Options: []string{"A", " B "}}, nil},
		{"choice with one real option", QuestionInput{SurveyID: "s1", QuestionText: "Pick", QuestionType: enum.QuestionTypeMultipleChoice, Options: []string{"A", "  "}}, []string{"options"}},
		{"missing text and type", QuestionInput{SurveyID: "s1"}, []string{"question_text", "question_type"}},
		{"negative order", QuestionInput{SurveyID: "s1", QuestionText: "Rate", QuestionType: enum.QuestionTypeRating, SortOrder: -1}, []string{"sort_order"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			got := validationFields(t, err)
			if len(got) != len(tt.fields) {
				t.Fatalf("field errors = %+v, want %v", got, tt.fields)
			}
			for i, f := range tt.fields {
				if got[i].Field != f {
					t.Errorf("field %d = %s, want %s", i, got[i].Field, f)
				}
			}
		})
	}
}

func TestSurveyService_QuestionMutationsInvalidateAndAudit(t *testing.T) {
	surveys := newFakeRepo(entity.Survey{ID: "s1", Title: "Checkout"})
	questions := newFakeRepo(entity.Question{ID: "q1", SurveyID: "s1"})
	audit := &fakeAuditRepo{}
	svc := NewSurveyService(surveys, questions, CatalogDeps{Audit: NewAuditService(audit)})

	in := &QuestionInput{QuestionText: "Rate us", QuestionType: enum.QuestionTypeRating}
	if _, err := svc.AddQuestion(context.Background(), "s1", in); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if in.SurveyID != "s1" {
		t.Errorf("survey id = %q, want s1", in.SurveyID)
	}
	if _, err := svc.RemoveQuestion(context.Background(), "s1", "q1"); err != nil {
		t.Fatalf("RemoveQuestion: %v", err)
	}
	if len(questions.deleted) != 1 || questions.deleted[0] != "q1" {
		t.Errorf("deleted = %v, want [q1]", questions.deleted)
	}

	logs := audit.entries()
	if len(logs) != 2 {
		t.Fatalf("got %d audit entries, want 2", len(logs))
	}
	if logs[0].Resource != "survey-questions" || logs[0].Action != enum.AuditActionCreate {
		t.Errorf("first entry = %s %s", logs[0].Action, logs[0].Resource)
	}
	if logs[1].Action != enum.AuditActionDelete || logs[1].RecordID != "q1" {
		t.Errorf("second entry = %s %s", logs[1].Action, logs[1].RecordID)
	}
}
