package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/pkg/listing"
	"github.com/shopspring/decimal"
)

const storesPerPage = 10

// StoreService manages partner stores
type StoreService struct {
	*Catalog[entity.Store]
}

// NewStoreService creates a new store service
func NewStoreService(repo repository.LoyaltyRepository[entity.Store], deps CatalogDeps) *StoreService {
	return &StoreService{Catalog: NewCatalog(repo, CatalogOptions[entity.Store]{
		Name:         "stores",
		Spec:         storeSpec(),
		ServerSearch: true,
		Summarize:    summarizeStores,
	}, deps)}
}

func storeSpec() listing.Spec[entity.Store] {
	return listing.Spec[entity.Store]{
		PerPage: storesPerPage,
		SearchFields: func(s entity.Store) []string {
			return []string{s.Name, s.OwnerName, s.Email, s.Phone, s.City}
		},
		Filters: map[string]listing.FilterFunc[entity.Store]{
			"status":    listing.Equals(func(s entity.Store) string { return string(s.Status) }),
			"category":  listing.Equals(func(s entity.Store) string { return s.Category }),
			"city":      listing.Equals(func(s entity.Store) string { return s.City }),
			"is_active": listing.Bool(func(s entity.Store) bool { return s.IsActive.Bool() }),
		},
		Sorts: map[string]func(a, b entity.Store) int{
			"name":       listing.ByString(func(s entity.Store) string { return s.Name }),
			"city":       listing.ByString(func(s entity.Store) string { return s.City }),
			"created_at": listing.ByTime(func(s entity.Store) time.Time { return s.CreatedAt.Time }),
			"commission_percentage": func(a, b entity.Store) int {
				return a.CommissionPercentage.Cmp(b.CommissionPercentage)
			},
		},
	}
}

func summarizeStores(stores []entity.Store) map[string]any {
	byStatus := map[string]int{}
	for _, s := range stores {
		byStatus[string(s.Status)]++
	}
	return map[string]any{"total_stores": len(stores), "by_status": byStatus}
}

// StoreInput is the store form
type StoreInput struct {
	Name                 string           `json:"name" validate:"required,max=255"`
	OwnerName            string           `json:"owner_name" validate:"omitempty,max=255"`
	Email                string           `json:"email" validate:"omitempty,email"`
	Phone                string           `json:"phone" validate:"omitempty,max=32"`
	Category             string           `json:"category"`
	City                 string           `json:"city"`
	Address              string           `json:"address"`
	CommissionPercentage decimal.Decimal  `json:"commission_percentage" validate:"min=0,max=100"`
	Status               enum.StoreStatus `json:"status,omitempty" validate:"oneof=active inactive pending suspended"`
	IsActive             enum.Flag        `json:"is_active"`
}

func (in *StoreInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Status == "" {
		in.Status = enum.StoreStatusPending
	}
}

// Validate checks the form
func (in *StoreInput) Validate() error {
	return validateForm(in)
}

// CreateStore validates and sends a new store
func (s *StoreService) CreateStore(ctx context.Context, in *StoreInput) (*repository.MutationResult, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

// UpdateStore validates and sends the edited store
func (s *StoreService) UpdateStore(ctx context.Context, id entity.ID, in *StoreInput) (*repository.MutationResult, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}
