package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const requestColumns = `
	id, kind, configuration, customer_name, contact_email, contact_phone,
	price, status, sent_at, reminder_1_at, reminder_2_at, reminder_3_at,
	created_at, updated_at
`

// RequestsRepository defines persistence for the requests table. The
// conditional writes (price, sent_at, reminder timestamps, confirmations)
// are the concurrency boundary: each column advances at most once and the
// row itself arbitrates races.
type RequestsRepository interface {
	Insert(ctx context.Context, r model.Request) error
	Get(ctx context.Context, id string) (*model.Request, error)

	// SetPriceIfUnset caches the computed price; a later dispatch with a
	// different value does not overwrite it (cache-once).
	SetPriceIfUnset(ctx context.Context, id string, price decimal.Decimal) error
	// SetPrice overwrites the cached price (explicit reprice only).
	SetPrice(ctx context.Context, id string, price decimal.Decimal) error

	// MarkQuoteSent sets sent_at and status=quote_sent, only when sent_at
	// is still null. Returns whether this call applied the transition.
	MarkQuoteSent(ctx context.Context, id string, at time.Time) (bool, error)

	// ClaimReminder records reminder tier n as sent, only when its column
	// is still null. Returns false when another run already claimed it.
	ClaimReminder(ctx context.Context, id string, tier int, at time.Time) (bool, error)

	// ListReminderEligible returns requests due for the given tier: still
	// in quote_sent, sent before the cutoff, previous tier recorded, own
	// tier not yet recorded.
	ListReminderEligible(ctx context.Context, tier int, cutoff time.Time, limit int) ([]model.Request, error)

	// Confirm applies the interest response while the request is still in
	// quote_sent. Returns whether the transition applied.
	Confirm(ctx context.Context, id string, to model.RequestStatus) (bool, error)

	// UpdateStatus is the administrative transition, including
	// reactivation of completed requests.
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus) (bool, error)
}

type RequestsRepositoryImpl struct {
	db *sqlx.DB
}

func NewRequestsRepository(db *sqlx.DB) *RequestsRepositoryImpl {
	return &RequestsRepositoryImpl{db: db}
}

var _ RequestsRepository = (*RequestsRepositoryImpl)(nil)

func (r *RequestsRepositoryImpl) Insert(ctx context.Context, m model.Request) error {
	const q = `
		INSERT INTO requests
		    (id, kind, configuration, customer_name, contact_email, contact_phone, status, created_at, updated_at)
		VALUES
		    (?,  ?,    ?,             ?,             ?,             ?,             ?,      NOW(),      NOW())
	`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.Kind.String(), m.Configuration, m.CustomerName, m.Email, m.Phone, m.Status.String(),
	)
	return err
}

func (r *RequestsRepositoryImpl) Get(ctx context.Context, id string) (*model.Request, error) {
	var m model.Request
	err := r.db.GetContext(ctx, &m, `
		SELECT `+requestColumns+`
		  FROM requests
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *RequestsRepositoryImpl) SetPriceIfUnset(ctx context.Context, id string, price decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE requests
		   SET price = ?, updated_at = NOW()
		 WHERE id = ? AND price IS NULL
	`, price.String(), id)
	return err
}

func (r *RequestsRepositoryImpl) SetPrice(ctx context.Context, id string, price decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE requests
		   SET price = ?, updated_at = NOW()
		 WHERE id = ?
	`, price.String(), id)
	return err
}

func (r *RequestsRepositoryImpl) MarkQuoteSent(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE requests
		   SET status = ?, sent_at = ?, updated_at = NOW()
		 WHERE id = ? AND sent_at IS NULL
	`, model.StatusQuoteSent.String(), at, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func reminderColumn(tier int) (string, error) {
	switch tier {
	case 1:
		return "reminder_1_at", nil
	case 2:
		return "reminder_2_at", nil
	case 3:
		return "reminder_3_at", nil
	}
	return "", fmt.Errorf("invalid reminder tier %d", tier)
}

func (r *RequestsRepositoryImpl) ClaimReminder(ctx context.Context, id string, tier int, at time.Time) (bool, error) {
	col, err := reminderColumn(tier)
	if err != nil {
		return false, err
	}
	// column name comes from the fixed table above, never from input
	q := fmt.Sprintf(`
		UPDATE requests
		   SET %s = ?, updated_at = NOW()
		 WHERE id = ? AND status = ? AND %s IS NULL
	`, col, col)
	res, err := r.db.ExecContext(ctx, q, at, id, model.StatusQuoteSent.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *RequestsRepositoryImpl) ListReminderEligible(ctx context.Context, tier int, cutoff time.Time, limit int) ([]model.Request, error) {
	col, err := reminderColumn(tier)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	prev := ""
	if tier > 1 {
		prevCol, err := reminderColumn(tier - 1)
		if err != nil {
			return nil, err
		}
		prev = " AND " + prevCol + " IS NOT NULL"
	}

	q := fmt.Sprintf(`
		SELECT `+requestColumns+`
		  FROM requests
		 WHERE status = ?
		   AND sent_at IS NOT NULL
		   AND sent_at <= ?
		   AND %s IS NULL%s
		 ORDER BY sent_at ASC
		 LIMIT ?
	`, col, prev)

	var rows []model.Request
	if err := r.db.SelectContext(ctx, &rows, q, model.StatusQuoteSent.String(), cutoff, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RequestsRepositoryImpl) Confirm(ctx context.Context, id string, to model.RequestStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE requests
		   SET status = ?, updated_at = NOW()
		 WHERE id = ? AND status = ?
	`, to.String(), id, model.StatusQuoteSent.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *RequestsRepositoryImpl) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE requests
		   SET status = ?, updated_at = NOW()
		 WHERE id = ?
	`, status.String(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
