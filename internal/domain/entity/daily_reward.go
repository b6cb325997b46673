package entity

import (
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DailyRewardCampaign represents a check-in campaign granting one reward per day
type DailyRewardCampaign struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   Timestamp `json:"start_date"`
	EndDate     Timestamp `json:"end_date"`
	IsActive    enum.Flag `json:"is_active"`
	Rewards     []Reward  `json:"rewards,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
}

func (c DailyRewardCampaign) GetID() ID {
	return c.ID
}

// Reward is what a member receives on one day of a campaign
type Reward struct {
	ID          ID              `json:"id"`
	CampaignID  ID              `json:"campaign_id"`
	DayNumber   int             `json:"day_number"`
	RewardType  enum.RewardType `json:"reward_type"`
	RewardValue decimal.Decimal `json:"reward_value"`
	CouponID    ID              `json:"coupon_id,omitempty"`
	Description string          `json:"description"`
}

func (r Reward) GetID() ID {
	return r.ID
}
