package pricing

import (
	"encoding/json"
	"sort"

	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/shopspring/decimal"
)

// Bracket prices a half-open range of the kind's continuous dimension:
// a value v belongs to the first bracket with UpTo >= v. Values beyond the
// last bracket use the last bracket.
type Bracket struct {
	UpTo int             `json:"up_to"`
	Base decimal.Decimal `json:"base"`
}

// KindPricing is the price table for one request kind.
type KindPricing struct {
	Brackets  []Bracket                             `json:"brackets"`
	Materials map[string]decimal.Decimal            `json:"materials"`   // multiplier, unknown => 1.0
	Options   map[string]decimal.Decimal            `json:"options"`     // flat cost, unknown => 0
	Surcharge map[string]map[string]decimal.Decimal `json:"surcharges"`  // field -> value -> flat amount
}

// Snapshot is one consistent, versioned pricing configuration, read from the
// store as a whole. Kinds without a table are quoted manually.
type Snapshot struct {
	Version int64                             `json:"version"`
	Kinds   map[model.RequestKind]KindPricing `json:"kinds"`
}

// ParseSnapshot decodes a stored config payload and sorts the bracket tables.
func ParseSnapshot(version int64, payload []byte) (*Snapshot, error) {
	var kinds map[model.RequestKind]KindPricing
	if err := json.Unmarshal(payload, &kinds); err != nil {
		return nil, err
	}
	for k, kp := range kinds {
		sort.Slice(kp.Brackets, func(i, j int) bool { return kp.Brackets[i].UpTo < kp.Brackets[j].UpTo })
		kinds[k] = kp
	}
	return &Snapshot{Version: version, Kinds: kinds}, nil
}
