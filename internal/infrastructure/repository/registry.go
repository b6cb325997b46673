package repository

import (
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	domainRepo "github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/upstream"
)

// LoyaltyRepositories holds one repository per resource of the loyalty API
type LoyaltyRepositories struct {
	Users           domainRepo.LoyaltyRepository[entity.User]
	Stores          domainRepo.LoyaltyRepository[entity.Store]
	Coupons         domainRepo.LoyaltyRepository[entity.Coupon]
	Settlements     domainRepo.LoyaltyRepository[entity.Settlement]
	Surveys         domainRepo.LoyaltyRepository[entity.Survey]
	SurveyQuestions domainRepo.LoyaltyRepository[entity.Question]
	DailyRewards    domainRepo.LoyaltyRepository[entity.DailyRewardCampaign]
	Rewards         domainRepo.LoyaltyRepository[entity.Reward]
	FAQs            domainRepo.LoyaltyRepository[entity.FAQ]
	Terms           domainRepo.LoyaltyRepository[entity.Term]
	Videos          domainRepo.LoyaltyRepository[entity.Video]
	StoreSequence   domainRepo.StoreSequenceRepository
}

// NewLoyaltyRepositories binds every resource in resources to client
func NewLoyaltyRepositories(client *upstream.Client, resources map[string]upstream.Resource) *LoyaltyRepositories {
	res := func(fallback upstream.Resource) upstream.Resource {
		if r, ok := resources[fallback.Name]; ok {
			return r
		}
		return fallback
	}
	return &LoyaltyRepositories{
		Users:           NewLoyaltyRepository[entity.User](client, res(upstream.Users)),
		Stores:          NewLoyaltyRepository[entity.Store](client, res(upstream.Stores)),
		Coupons:         NewLoyaltyRepository[entity.Coupon](client, res(upstream.Coupons)),
		Settlements:     NewLoyaltyRepository[entity.Settlement](client, res(upstream.Settlements)),
		Surveys:         NewLoyaltyRepository[entity.Survey](client, res(upstream.Surveys)),
		SurveyQuestions: NewLoyaltyRepository[entity.Question](client, res(upstream.SurveyQuestions)),
		DailyRewards:    NewLoyaltyRepository[entity.DailyRewardCampaign](client, res(upstream.DailyRewards)),
		Rewards:         NewLoyaltyRepository[entity.Reward](client, res(upstream.Rewards)),
		FAQs:            NewLoyaltyRepository[entity.FAQ](client, res(upstream.FAQs)),
		Terms:           NewLoyaltyRepository[entity.Term](client, res(upstream.Terms)),
		Videos:          NewLoyaltyRepository[entity.Video](client, res(upstream.Videos)),
		StoreSequence:   NewStoreSequenceRepository(client, res(upstream.StoreSequence)),
	}
}
