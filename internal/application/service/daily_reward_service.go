package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/sangkips/loyalty-admin/pkg/listing"
	"github.com/shopspring/decimal"
)

const campaignsPerPage = 10

// DailyRewardService manages daily check-in campaigns and their rewards
type DailyRewardService struct {
	*Catalog[entity.DailyRewardCampaign]
	rewards *Catalog[entity.Reward]
	now     func() time.Time
}

// NewDailyRewardService creates a new daily reward service
func NewDailyRewardService(
	campaignRepo repository.LoyaltyRepository[entity.DailyRewardCampaign],
	rewardRepo repository.LoyaltyRepository[entity.Reward],
	deps CatalogDeps,
) *DailyRewardService {
	s := &DailyRewardService{now: time.Now}
	s.Catalog = NewCatalog(campaignRepo, CatalogOptions[entity.DailyRewardCampaign]{
		Name: "daily-rewards",
		Spec: listing.Spec[entity.DailyRewardCampaign]{
			PerPage: campaignsPerPage,
			SearchFields: func(c entity.DailyRewardCampaign) []string {
				return []string{c.Name, c.Description}
			},
			Filters: map[string]listing.FilterFunc[entity.DailyRewardCampaign]{
				"is_active": listing.Bool(func(c entity.DailyRewardCampaign) bool { return c.IsActive.Bool() }),
				"running":   listing.Bool(s.running),
			},
			Sorts: map[string]func(a, b entity.DailyRewardCampaign) int{
				"name":       listing.ByString(func(c entity.DailyRewardCampaign) string { return c.Name }),
				"start_date": listing.ByTime(func(c entity.DailyRewardCampaign) time.Time { return c.StartDate.Time }),
				"end_date":   listing.ByTime(func(c entity.DailyRewardCampaign) time.Time { return c.EndDate.Time }),
			},
		},
	}, deps)
	s.rewards = NewCatalog(rewardRepo, CatalogOptions[entity.Reward]{Name: "rewards"}, deps)
	return s
}

// running reports whether the campaign is active and today falls in its window
func (s *DailyRewardService) running(c entity.DailyRewardCampaign) bool {
	if !c.IsActive {
		return false
	}
	now := s.now()
	if !c.StartDate.IsZero() && now.Before(c.StartDate.Time) {
		return false
	}
	if !c.EndDate.IsZero() && now.After(c.EndDate.Time.Add(24*time.Hour)) {
		return false
	}
	return true
}

// CampaignInput is the campaign form
type CampaignInput struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description"`
	StartDate   entity.Timestamp `json:"start_date" validate:"required"`
	EndDate     entity.Timestamp `json:"end_date"`
	IsActive    enum.Flag        `json:"is_active"`
}

// Validate checks the form
func (in *CampaignInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validateForm(in)
}

// CreateCampaign validates and sends a new campaign
func (s *DailyRewardService) CreateCampaign(ctx context.Context, in *CampaignInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

// UpdateCampaign validates and sends the edited campaign
func (s *DailyRewardService) UpdateCampaign(ctx context.Context, id entity.ID, in *CampaignInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}

// RewardInput is the reward form of a campaign day
type RewardInput struct {
	CampaignID  entity.ID       `json:"campaign_id" validate:"required"`
	DayNumber   int             `json:"day_number" validate:"min=1"`
	RewardType  enum.RewardType `json:"reward_type" validate:"oneof=points coupon cashback"`
	RewardValue decimal.Decimal `json:"reward_value"`
	CouponID    entity.ID       `json:"coupon_id,omitempty"`
	Description string          `json:"description"`
}

// Validate checks the form
func (in *RewardInput) Validate() error {
	return validateForm(in)
}

// AddReward validates and sends a new reward. A campaign has at most one reward per day.
func (s *DailyRewardService) AddReward(ctx context.Context, campaignID entity.ID, in *RewardInput) (*repository.MutationResult, error) {
	in.CampaignID = campaignID
	if err := in.Validate(); err != nil {
		return nil, err
	}

	campaign, err := s.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	for _, r := range campaign.Rewards {
		if r.DayNumber == in.DayNumber {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "day_number", Message: "already has a reward in this campaign"},
			})
		}
	}

	res, err := s.rewards.Create(ctx, in)
	if err == nil {
		s.Invalidate(ctx)
	}
	return res, err
}

// RemoveReward deletes a reward of the campaign
func (s *DailyRewardService) RemoveReward(ctx context.Context, campaignID, rewardID entity.ID) (*repository.MutationResult, error) {
	res, err := s.rewards.Delete(ctx, rewardID)
	if err == nil {
		s.Invalidate(ctx)
	}
	return res, err
}
