package entity

import (
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Store represents a partner store
type Store struct {
	ID                   ID               `json:"id"`
	Name                 string           `json:"name"`
	OwnerName            string           `json:"owner_name"`
	Email                string           `json:"email"`
	Phone                string           `json:"phone"`
	Category             string           `json:"category"`
	City                 string           `json:"city"`
	Address              string           `json:"address"`
	CommissionPercentage decimal.Decimal  `json:"commission_percentage"`
	Status               enum.StoreStatus `json:"status"`
	IsActive             enum.Flag        `json:"is_active"`
	CreatedAt            Timestamp        `json:"created_at"`
	UpdatedAt            Timestamp        `json:"updated_at"`
}

func (s Store) GetID() ID {
	return s.ID
}
