package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request is the DB entity persisted in the requests table: one configurator
// submission awaiting or having received a quote.
type Request struct {
	ID            string        `db:"id"`
	Kind          RequestKind   `db:"kind"`
	Configuration Configuration `db:"configuration"`

	CustomerName string  `db:"customer_name"`
	Email        *string `db:"contact_email"`
	Phone        *string `db:"contact_phone"`

	Price  decimal.NullDecimal `db:"price"`
	Status RequestStatus       `db:"status"`

	SentAt      *time.Time `db:"sent_at"`
	Reminder1At *time.Time `db:"reminder_1_at"`
	Reminder2At *time.Time `db:"reminder_2_at"`
	Reminder3At *time.Time `db:"reminder_3_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *Request) EmailAddress() string {
	if r.Email == nil {
		return ""
	}
	return *r.Email
}

func (r *Request) PhoneNumber() string {
	if r.Phone == nil {
		return ""
	}
	return *r.Phone
}

// Deliverable reports whether at least one channel destination is present.
func (r *Request) Deliverable() bool {
	return r.EmailAddress() != "" || r.PhoneNumber() != ""
}

// ReminderTier returns the next unsent reminder tier (1..3) given the
// recorded timestamps, or 0 when the sequence is exhausted or never started.
func (r *Request) ReminderTier() int {
	switch {
	case r.SentAt == nil:
		return 0
	case r.Reminder1At == nil:
		return 1
	case r.Reminder2At == nil:
		return 2
	case r.Reminder3At == nil:
		return 3
	}
	return 0
}
