package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

const usersPerPage = 10

// UserService manages loyalty members
type UserService struct {
	*Catalog[entity.User]
}

// NewUserService creates a new user service
func NewUserService(repo repository.LoyaltyRepository[entity.User], deps CatalogDeps) *UserService {
	return &UserService{Catalog: NewCatalog(repo, CatalogOptions[entity.User]{
		Name:         "users",
		Spec:         userSpec(),
		ServerSearch: true,
		Summarize:    summarizeUsers,
	}, deps)}
}

func userSpec() listing.Spec[entity.User] {
	return listing.Spec[entity.User]{
		PerPage:      usersPerPage,
		SearchFields: func(u entity.User) []string { return []string{u.Name, u.Email, u.Phone} },
		Filters: map[string]listing.FilterFunc[entity.User]{
			"status":    listing.Equals(func(u entity.User) string { return string(u.Status) }),
			"is_vip":    listing.Bool(func(u entity.User) bool { return u.IsVIP.Bool() }),
			"is_active": listing.Bool(func(u entity.User) bool { return u.IsActive.Bool() }),
		},
		Sorts: map[string]func(a, b entity.User) int{
			"name":           listing.ByString(func(u entity.User) string { return u.Name }),
			"email":          listing.ByString(func(u entity.User) string { return u.Email }),
			"points_balance": listing.ByNumber(func(u entity.User) float64 { return u.PointsBalance }),
			"created_at":     listing.ByTime(func(u entity.User) time.Time { return u.CreatedAt.Time }),
		},
	}
}

func summarizeUsers(users []entity.User) map[string]any {
	var active, vip int
	for _, u := range users {
		if u.IsActive {
			active++
		}
		if u.IsVIP {
			vip++
		}
	}
	return map[string]any{"total_users": len(users), "active_users": active, "vip_users": vip}
}

// UserInput is the member form
type UserInput struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone" validate:"omitempty,max=32"`
	Status   enum.UserStatus `json:"status,omitempty" validate:"oneof=active inactive blocked"`
	IsVIP    enum.Flag       `json:"is_vip"`
	IsActive enum.Flag       `json:"is_active"`
}

func (in *UserInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Status == "" {
		in.Status = enum.UserStatusActive
	}
}

// Validate checks the form
func (in *UserInput) Validate() error {
	return validateForm(in)
}

// CreateUser validates and sends a new member
func (s *UserService) CreateUser(ctx context.Context, in *UserInput) (*repository.MutationResult, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

// UpdateUser validates and sends the edited member
func (s *UserService) UpdateUser(ctx context.Context, id entity.ID, in *UserInput) (*repository.MutationResult, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}
