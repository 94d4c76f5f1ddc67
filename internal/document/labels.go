package document

import (
	"github.com/bouwofferte/quote-service/internal/logger"
	"github.com/bouwofferte/quote-service/internal/metrics"
	"go.uber.org/zap"
)

// labelTable maps internal configurator codes to customer-facing text.
// Lookups are total: an unknown code yields the table's fallback label and
// is logged as a data-quality signal, never shown raw to a customer.
type labelTable struct {
	name     string
	labels   map[string]string
	fallback string
}

func (t labelTable) Label(code string) string {
	if l, ok := t.labels[code]; ok {
		return l
	}
	metrics.LabelFallbacksTotal.WithLabelValues(t.name).Inc()
	logger.Log.Warn("unknown display code",
		zap.String("table", t.name),
		zap.String("code", code),
	)
	return t.fallback
}

var deliveryWindows = labelTable{
	name: "delivery_window",
	labels: map[string]string{
		"asap":     "As soon as possible",
		"3_months": "Within 3 months",
		"6_months": "Within 6 months",
		"later":    "Later, in consultation",
	},
	fallback: "In consultation",
}

var roofPitches = labelTable{
	name: "roof_pitch",
	labels: map[string]string{
		"flat":         "Flat roof",
		"sloped_low":   "Sloped roof, pitch below 35 degrees",
		"sloped_steep": "Sloped roof, pitch of 35 degrees or more",
	},
	fallback: "To be assessed on site",
}

var mountings = labelTable{
	name: "mounting",
	labels: map[string]string{
		"in_roof":   "In-roof mounting",
		"on_roof":   "On-roof mounting",
		"flat_roof": "Flat-roof console mounting",
	},
	fallback: "To be assessed on site",
}

var materials = labelTable{
	name: "material",
	labels: map[string]string{
		"plastic": "Plastic",
		"wood":    "Wood",
	},
	fallback: "Standard finish",
}

var dormerModels = labelTable{
	name: "model",
	labels: map[string]string{
		"classic": "Classic",
		"modern":  "Modern",
		"country": "Country style",
	},
	fallback: "Standard model",
}

var colors = labelTable{
	name: "color",
	labels: map[string]string{
		"ral9001": "Cream white (RAL 9001)",
		"ral9010": "Pure white (RAL 9010)",
		"ral7016": "Anthracite grey (RAL 7016)",
		"ral9005": "Jet black (RAL 9005)",
	},
	fallback: "Color in consultation",
}

var options = labelTable{
	name: "option",
	labels: map[string]string{
		"sun_shade":       "Sun shade",
		"ventilation":     "Ventilation grille",
		"bird_protection": "Bird protection",
		"optimizers":      "Power optimizers",
		"ev_ready":        "EV-charger ready wiring",
	},
	fallback: "Additional option",
}

// colorParts gives the sub-part order for color listings.
var colorParts = []string{"frame", "cheeks", "roof_trim"}

var colorPartLabels = labelTable{
	name: "color_part",
	labels: map[string]string{
		"frame":     "Frame color",
		"cheeks":    "Cheek color",
		"roof_trim": "Roof trim color",
	},
	fallback: "Part color",
}
