package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyBlock identifies the issuing company on a quote document.
type CompanyBlock struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// CustomerBlock is the contact section of a quote document.
type CustomerBlock struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SpecLine is one kind-specific specification row on the quote.
type SpecLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuoteDocument is the structured quote derived from a request and its
// cached price. It is never persisted on its own.
type QuoteDocument struct {
	Number     string          `json:"number"` // request id
	Kind       RequestKind     `json:"kind"`
	IssuedAt   time.Time       `json:"issued_at"`
	ValidUntil time.Time       `json:"valid_until"`
	Company    CompanyBlock    `json:"company"`
	Customer   CustomerBlock   `json:"customer"`
	Lines      []SpecLine      `json:"lines"`
	Price      decimal.Decimal `json:"price"`
	Inclusions []string        `json:"inclusions"`
}
