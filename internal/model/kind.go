package model

import "strings"

type RequestKind string

const (
	KindRoofDormer RequestKind = "roof_dormer"
	KindSolarPanel RequestKind = "solar_panel"
	KindPaint      RequestKind = "paint"
	KindPlaster    RequestKind = "plaster"
)

func (k RequestKind) String() string { return string(k) }

func (k RequestKind) Valid() bool {
	switch k {
	case KindRoofDormer, KindSolarPanel, KindPaint, KindPlaster:
		return true
	}
	return false
}

// ParseRequestKind normalizes input. Returns (value, true) if valid.
func ParseRequestKind(s string) (RequestKind, bool) {
	k := RequestKind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.Valid()
}

// Label returns the customer-facing name for the kind. The switch is
// exhaustive over all declared kinds; adding a kind without a label is a
// compile-visible change here.
func (k RequestKind) Label() string {
	switch k {
	case KindRoofDormer:
		return "Roof dormer"
	case KindSolarPanel:
		return "Solar panels"
	case KindPaint:
		return "Paint work"
	case KindPlaster:
		return "Plaster work"
	default:
		return "Home improvement"
	}
}
