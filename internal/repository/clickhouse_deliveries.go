package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// DeliveryLogRow is one appended per-channel send attempt (quote or reminder).
type DeliveryLogRow struct {
	RequestID   string    `db:"request_id"`
	Kind        string    `db:"kind"`
	Stage       string    `db:"stage"` // quote | reminder_1 | reminder_2 | reminder_3
	Channel     string    `db:"channel"`
	Destination string    `db:"destination"`
	MessageID   string    `db:"message_id"`
	Error       string    `db:"error"`
	CreatedAt   time.Time `db:"created_at"`
}

// DeliveryLogRepository appends and lists delivery attempts in ClickHouse.
type DeliveryLogRepository interface {
	Append(ctx context.Context, rows []DeliveryLogRow) error
	List(ctx context.Context, requestID, channel string, limit, offset int) ([]DeliveryLogRow, error)
}

type deliveryLogRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewDeliveryLogRepository(ch *sqlx.DB) DeliveryLogRepository {
	return &deliveryLogRepository{ch: ch}
}

func (r *deliveryLogRepository) Append(ctx context.Context, rows []DeliveryLogRow) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(rows)*8)

	sb.WriteString(`INSERT INTO quotesvc.delivery_log
		(request_id, kind, stage, channel, destination, message_id, error, created_at) VALUES `)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			row.RequestID, row.Kind, row.Stage, row.Channel,
			row.Destination, row.MessageID, row.Error, row.CreatedAt,
		)
	}

	_, err := r.ch.ExecContext(ctx, sb.String(), args...)
	return err
}

func (r *deliveryLogRepository) List(ctx context.Context, requestID, channel string, limit, offset int) ([]DeliveryLogRow, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `
		SELECT request_id, kind, stage, channel, destination, message_id, error, created_at
		FROM quotesvc.delivery_log
		WHERE 1 = 1
	`
	args := []any{}

	if requestID != "" {
		q += " AND request_id = ?"
		args = append(args, requestID)
	}
	if channel != "" {
		q += " AND channel = ?"
		args = append(args, channel)
	}

	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var rows []DeliveryLogRow
	if err := r.ch.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
