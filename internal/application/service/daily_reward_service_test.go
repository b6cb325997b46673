package service

import (
	"context"
	"testing"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func TestDailyRewardService_AddReward(t *testing.T) {
	campaigns := newFakeRepo(entity.DailyRewardCampaign{
		ID:   "c1",
		Name: "Week one",
		Rewards: []entity.Reward{
			{ID: "r1", CampaignID: "c1", DayNumber: 1, RewardType: enum.RewardTypePoints, RewardValue: decimal.NewFromInt(10)},
		},
	})
	rewards := newFakeRepo[entity.Reward]()
	svc := NewDailyRewardService(campaigns, rewards, CatalogDeps{})
	ctx := context.Background()

	_, err := svc.AddReward(ctx, "c1", &RewardInput{DayNumber: 1, RewardType: enum.RewardTypePoints, RewardValue: decimal.NewFromInt(5)})
	if fields := validationFields(t, err); len(fields) != 1 || fields[0].Field != "day_number" {
		t.Errorf("field errors = %+v, want day_number", fields)
	}

	in := &RewardInput{DayNumber: 2, RewardType: enum.RewardTypePoints, RewardValue: decimal.NewFromInt(20)}
	if _, err := svc.AddReward(ctx, "c1", in); err != nil {
		t.Fatalf("AddReward: %v", err)
	}
	if len(rewards.created) != 1 {
		t.Fatalf("created = %d, want 1", len(rewards.created))
	}
	if got := rewards.created[0].(*RewardInput); got.CampaignID != "c1" {
		t.Errorf("campaign_id = %q, want c1", got.CampaignID)
	}
}

func TestRewardInput_Validate(t *testing.T) {
	tests := []struct {
		name  string
		in    RewardInput
		field string
	}{
		{"day zero", RewardInput{CampaignID: "c1", DayNumber: 0, RewardType: enum.RewardTypePoints, RewardValue: decimal.NewFromInt(1)}, "day_number"},
		{"coupon without coupon", RewardInput{CampaignID: "c1", DayNumber: 1, RewardType: enum.RewardTypeCoupon}, "coupon_id"},
		{"cashback without value", RewardInput{CampaignID: "c1", DayNumber: 1, RewardType: enum.RewardTypeCashback}, "reward_value"},
		{"unknown type", RewardInput{CampaignID: "c1", DayNumber: 1, RewardType: "hug", RewardValue: decimal.NewFromInt(1)}, "reward_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validationFields(t, tt.in.Validate())
			if len(fields) != 1 || fields[0].Field != tt.field {
				t.Errorf("field errors = %+v, want %s", fields, tt.field)
			}
		})
	}

	ok := RewardInput{CampaignID: "c1", DayNumber: 3, RewardType: enum.RewardTypeCoupon, CouponID: "cp-1"}
	if err := ok.Validate(); err != nil {
		t.Errorf("coupon reward: %v", err)
	}
}
