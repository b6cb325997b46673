package entity

import (
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
)

// User represents a loyalty member
type User struct {
	ID            ID              `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Status        enum.UserStatus `json:"status"`
	IsVIP         enum.Flag       `json:"is_vip"`
	IsActive      enum.Flag       `json:"is_active"`
	PointsBalance float64         `json:"points_balance"`
	CreatedAt     Timestamp       `json:"created_at"`
	UpdatedAt     Timestamp       `json:"updated_at"`
}

func (u User) GetID() ID {
	return u.ID
}
