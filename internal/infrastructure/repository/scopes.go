package repository

import (
	"context"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// OperatorKey is the context key for the acting operator
	OperatorKey ctxKey = "operator"
	// RequestIDKey is the context key for the console request id
	RequestIDKey ctxKey = "request_id"
)

// OperatorScope returns a GORM scope that filters by the operator in the context
func OperatorScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		op, ok := GetOperator(ctx)
		if !ok {
			// no operator, no rows
			return db.Where("1 = 0")
		}
		return db.Where("operator_id = ?", op.ID)
	}
}

// WithOperator adds the operator to context
func WithOperator(ctx context.Context, op entity.Operator) context.Context {
	return context.WithValue(ctx, OperatorKey, op)
}

// GetOperator extracts the operator from context
func GetOperator(ctx context.Context) (entity.Operator, bool) {
	op, ok := ctx.Value(OperatorKey).(entity.Operator)
	return op, ok
}

// OperatorOrAnonymous returns the operator in the context, or the anonymous one
func OperatorOrAnonymous(ctx context.Context) entity.Operator {
	if op, ok := GetOperator(ctx); ok {
		return op
	}
	return entity.Operator{ID: entity.AnonymousOperatorID}
}

// WithRequestID adds the request id to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID extracts the request id from context, empty if unset
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
