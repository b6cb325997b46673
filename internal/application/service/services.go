package service

import (
	infraRepo "github.com/sangkips/loyalty-admin/internal/infrastructure/repository"
)

// Services holds every console service built over one set of repositories
type Services struct {
	Users         *UserService
	Stores        *StoreService
	Coupons       *CouponService
	Settlements   *SettlementService
	Surveys       *SurveyService
	DailyRewards  *DailyRewardService
	FAQs          *FAQService
	Terms         *TermService
	Videos        *VideoService
	StoreSequence *StoreSequenceService
	Dashboard     *DashboardService
	Audit         *AuditService
}

// NewServices wires the services. deps.Audit is also exposed as Services.Audit.
func NewServices(repos *infraRepo.LoyaltyRepositories, deps CatalogDeps) *Services {
	s := &Services{
		Users:         NewUserService(repos.Users, deps),
		Stores:        NewStoreService(repos.Stores, deps),
		Coupons:       NewCouponService(repos.Coupons, deps),
		Settlements:   NewSettlementService(repos.Settlements, deps),
		Surveys:       NewSurveyService(repos.Surveys, repos.SurveyQuestions, deps),
		DailyRewards:  NewDailyRewardService(repos.DailyRewards, repos.Rewards, deps),
		FAQs:          NewFAQService(repos.FAQs, deps),
		Terms:         NewTermService(repos.Terms, deps),
		Videos:        NewVideoService(repos.Videos, deps),
		StoreSequence: NewStoreSequenceService(repos.StoreSequence, deps),
		Audit:         deps.Audit,
	}
	s.Dashboard = NewDashboardService(s.Users, s.Stores, s.Coupons, s.Settlements)
	return s
}
