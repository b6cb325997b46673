package entity

import (
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
)

// StoreSequence places a store in the featured ("top stores") ordering
type StoreSequence struct {
	ID         ID        `json:"id"`
	StoreID    ID        `json:"store_id"`
	StoreName  string    `json:"store_name"`
	SequenceNo int       `json:"sequence_no"`
	IsActive   enum.Flag `json:"is_active"`
}

func (s StoreSequence) GetID() ID {
	return s.ID
}

// SequenceUpdate is one row of a bulk sequence update
type SequenceUpdate struct {
	ID         ID  `json:"id"`
	SequenceNo int `json:"sequence_no"`
}
