package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	domainRepo "github.com/sangkips/loyalty-admin/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db, now: time.Now}
}

func (r *idempotencyRepository) Lookup(ctx context.Context, key, operatorID, endpoint string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND operator_id = ? AND expires_at > ?", key, operatorID, r.now()).
		First(&ikey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if ikey.Endpoint != endpoint {
		return nil, domainRepo.ErrIdempotencyKeyReused
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	// a live record is kept so the first answer wins; an expired one not yet
	// pruned is replaced
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}, {Name: "operator_id"}},
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Lt{Column: clause.Column{Table: ikey.TableName(), Name: "expires_at"}, Value: r.now()},
			}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "endpoint", "response_code", "response_body", "created_at", "expires_at"}),
		}).
		Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", r.now()).
		Delete(&entity.IdempotencyKey{}).Error
}
