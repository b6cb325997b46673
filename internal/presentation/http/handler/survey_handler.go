package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/response"
)

// SurveyHandler handles survey HTTP requests
type SurveyHandler struct {
	*CatalogHandler[entity.Survey]
	surveyService *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{
		CatalogHandler: NewCatalogHandler(surveyService.Catalog, "Survey"),
		surveyService:  surveyService,
	}
}

// Get handles getting a survey with its questions
func (h *SurveyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	survey, err := h.surveyService.GetSurvey(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Survey retrieved successfully", survey)
}

// Create handles creating a survey
func (h *SurveyHandler) Create(c *gin.Context) {
	create(c, "Survey", h.surveyService.CreateSurvey)
}

// Update handles updating a survey
func (h *SurveyHandler) Update(c *gin.Context) {
	update(c, "Survey", h.surveyService.UpdateSurvey)
}

// AddQuestion handles adding a question to a survey
func (h *SurveyHandler) AddQuestion(c *gin.Context) {
	createUnder(c, "Question", h.surveyService.AddQuestion)
}

// RemoveQuestion handles deleting a question of a survey
func (h *SurveyHandler) RemoveQuestion(c *gin.Context) {
	removeUnder(c, "Question", "questionId", h.surveyService.RemoveQuestion)
}
