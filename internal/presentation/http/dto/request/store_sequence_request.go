package request

import "github.com/sangkips/loyalty-admin/internal/domain/entity"

// MoveSequenceRequest drags the entry at From to To (0-based positions)
type MoveSequenceRequest struct {
	From *int `json:"from" binding:"required,min=0"`
	To   *int `json:"to" binding:"required,min=0"`
}

// SetSequenceRequest is the complete featured ordering
type SetSequenceRequest struct {
	IDs []entity.ID `json:"ids" binding:"required,min=1"`
}
