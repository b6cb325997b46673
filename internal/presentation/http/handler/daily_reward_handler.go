package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
)

// DailyRewardHandler handles daily reward campaign HTTP requests
type DailyRewardHandler struct {
	*CatalogHandler[entity.DailyRewardCampaign]
	rewardService *service.DailyRewardService
}

// NewDailyRewardHandler creates a new daily reward handler
func NewDailyRewardHandler(rewardService *service.DailyRewardService) *DailyRewardHandler {
	return &DailyRewardHandler{
		CatalogHandler: NewCatalogHandler(rewardService.Catalog, "Campaign"),
		rewardService:  rewardService,
	}
}

// Create handles creating a campaign
func (h *DailyRewardHandler) Create(c *gin.Context) {
	create(c, "Campaign", h.rewardService.CreateCampaign)
}

// Update handles updating a campaign
func (h *DailyRewardHandler) Update(c *gin.Context) {
	update(c, "Campaign", h.rewardService.UpdateCampaign)
}

// AddReward handles adding a day's reward to a campaign
func (h *DailyRewardHandler) AddReward(c *gin.Context) {
	createUnder(c, "Reward", h.rewardService.AddReward)
}

// RemoveReward handles deleting a reward of a campaign
func (h *DailyRewardHandler) RemoveReward(c *gin.Context) {
	removeUnder(c, "Reward", "rewardId", h.rewardService.RemoveReward)
}
