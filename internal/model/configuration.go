package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Configuration is the closed set of typed fields a configurator submission
// carries. Which fields are meaningful depends on the request kind; absent
// fields simply stay zero and contribute nothing to pricing.
type Configuration struct {
	WidthCM    int    `json:"width_cm,omitempty"`    // roof dormer
	RoofPitch  string `json:"roof_pitch,omitempty"`  // roof dormer: flat|sloped_low|sloped_steep
	Model      string `json:"model,omitempty"`       // roof dormer model code
	PanelCount int    `json:"panel_count,omitempty"` // solar panels
	Mounting   string `json:"mounting,omitempty"`    // solar: in_roof|on_roof|flat_roof

	Material string            `json:"material,omitempty"`
	Colors   map[string]string `json:"colors,omitempty"` // sub-part -> color code
	Options  []string          `json:"options,omitempty"`

	DeliveryWindow string `json:"delivery_window,omitempty"` // asap|3_months|6_months|later
}

// PricingDimension returns the continuous value bracketed by the kind's
// price table.
func (c Configuration) PricingDimension(kind RequestKind) int {
	if kind == KindSolarPanel {
		return c.PanelCount
	}
	return c.WidthCM
}

// Categoricals lists the categorical fields structural adjustments key on.
func (c Configuration) Categoricals() map[string]string {
	out := make(map[string]string, 3)
	if c.RoofPitch != "" {
		out["roof_pitch"] = c.RoofPitch
	}
	if c.Model != "" {
		out["model"] = c.Model
	}
	if c.Mounting != "" {
		out["mounting"] = c.Mounting
	}
	return out
}

// Value implements driver.Valuer so the configuration persists as a JSON column.
func (c Configuration) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for the JSON configuration column.
func (c *Configuration) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = Configuration{}
		return nil
	default:
		return fmt.Errorf("configuration: cannot scan %T", src)
	}
}
