package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bouwofferte/quote-service/internal/pricing"
	"github.com/jmoiron/sqlx"
)

// PricingConfigRepository reads the versioned pricing configuration. The
// whole payload is read as one row so concurrent readers always see a
// consistent snapshot, never a half-edited table.
type PricingConfigRepository interface {
	// Latest returns the newest snapshot, or nil when none is configured.
	Latest(ctx context.Context) (*pricing.Snapshot, error)
}

type PricingConfigRepositoryImpl struct {
	db *sqlx.DB
}

func NewPricingConfigRepository(db *sqlx.DB) *PricingConfigRepositoryImpl {
	return &PricingConfigRepositoryImpl{db: db}
}

var _ PricingConfigRepository = (*PricingConfigRepositoryImpl)(nil)

func (r *PricingConfigRepositoryImpl) Latest(ctx context.Context) (*pricing.Snapshot, error) {
	var row struct {
		Version int64  `db:"version"`
		Payload []byte `db:"payload"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT version, payload
		  FROM pricing_config
		 ORDER BY version DESC
		 LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pricing.ParseSnapshot(row.Version, row.Payload)
}
