package pricing

import (
	"testing"

	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dormerSnapshot() *Snapshot {
	return &Snapshot{
		Version: 1,
		Kinds: map[model.RequestKind]KindPricing{
			model.KindRoofDormer: {
				Brackets: []Bracket{
					{UpTo: 240, Base: dec("6575")},
					{UpTo: 300, Base: dec("6985")},
					{UpTo: 360, Base: dec("7395")},
				},
				Materials: map[string]decimal.Decimal{
					"plastic": dec("1.0"),
					"wood":    dec("1.2"),
				},
				Options: map[string]decimal.Decimal{
					"sun_shade":   dec("850"),
					"ventilation": dec("395"),
				},
				Surcharge: map[string]map[string]decimal.Decimal{
					"roof_pitch": {
						"sloped_steep": dec("450"),
					},
				},
			},
		},
	}
}

func TestPriceEndToEndExample(t *testing.T) {
	// width 250 -> (240,300] bracket 6985, wood *1.2, sun shade +850
	// = 9232, rounded to nearest 10 = 9230
	cfg := model.Configuration{
		WidthCM:  250,
		Material: "wood",
		Options:  []string{"sun_shade"},
	}
	got := Price(model.KindRoofDormer, cfg, dormerSnapshot())
	if !got.Equal(dec("9230")) {
		t.Fatalf("expected 9230, got %s", got)
	}
}

func TestPriceDeterministicAndNonNegative(t *testing.T) {
	snap := dormerSnapshot()
	cfgs := []model.Configuration{
		{},
		{WidthCM: 1},
		{WidthCM: 500, Material: "wood", Options: []string{"sun_shade", "ventilation"}},
		{WidthCM: 250, Material: "unknown", Options: []string{"nope"}},
		{WidthCM: 300, RoofPitch: "sloped_steep"},
	}
	for _, cfg := range cfgs {
		a := Price(model.KindRoofDormer, cfg, snap)
		b := Price(model.KindRoofDormer, cfg, snap)
		if !a.Equal(b) {
			t.Fatalf("non-deterministic price for %+v: %s vs %s", cfg, a, b)
		}
		if a.IsNegative() {
			t.Fatalf("negative price %s for %+v", a, cfg)
		}
	}
}

func TestPriceBracketBoundaries(t *testing.T) {
	snap := dormerSnapshot()
	cases := []struct {
		width int
		want  string
	}{
		{180, "6575"}, // below first bound
		{240, "6575"}, // exactly on the boundary stays in (180,240]
		{241, "6985"}, // strictly above moves to (240,300]
		{300, "6985"},
		{301, "7395"},
		{360, "7395"},
		{999, "7395"}, // past the top bracket uses the top bracket
	}
	for _, tc := range cases {
		got := Price(model.KindRoofDormer, model.Configuration{WidthCM: tc.width}, snap)
		if !got.Equal(dec(tc.want)) {
			t.Errorf("width=%d: expected %s, got %s", tc.width, tc.want, got)
		}
	}
}

func TestPriceUnknownKeysContributeNothing(t *testing.T) {
	snap := dormerSnapshot()
	base := Price(model.KindRoofDormer, model.Configuration{WidthCM: 200}, snap)
	withUnknowns := Price(model.KindRoofDormer, model.Configuration{
		WidthCM:   200,
		Material:  "titanium",
		Options:   []string{"hot_tub"},
		RoofPitch: "vertical",
	}, snap)
	if !base.Equal(withUnknowns) {
		t.Fatalf("unknown keys changed the price: %s vs %s", base, withUnknowns)
	}
}

func TestPriceSurcharge(t *testing.T) {
	snap := dormerSnapshot()
	got := Price(model.KindRoofDormer, model.Configuration{
		WidthCM:   200,
		RoofPitch: "sloped_steep",
	}, snap)
	// 6575 + 450 = 7025 -> 702.5 rounds half-to-even -> 702 -> 7020
	if !got.Equal(dec("7020")) {
		t.Fatalf("expected 7020, got %s", got)
	}
}

func TestPriceBankersRoundingToTens(t *testing.T) {
	snap := &Snapshot{
		Version: 1,
		Kinds: map[model.RequestKind]KindPricing{
			model.KindRoofDormer: {
				Brackets: []Bracket{{UpTo: 100, Base: dec("9235")}},
			},
		},
	}
	// 923.5 rounds half-to-even -> 924 -> 9240
	got := Price(model.KindRoofDormer, model.Configuration{WidthCM: 50}, snap)
	if !got.Equal(dec("9240")) {
		t.Fatalf("expected 9240, got %s", got)
	}

	snap.Kinds[model.KindRoofDormer] = KindPricing{
		Brackets: []Bracket{{UpTo: 100, Base: dec("9245")}},
	}
	// 924.5 rounds half-to-even -> 924 -> 9240
	got = Price(model.KindRoofDormer, model.Configuration{WidthCM: 50}, snap)
	if !got.Equal(dec("9240")) {
		t.Fatalf("expected 9240, got %s", got)
	}
}

func TestPriceUnknownKindYieldsZeroSentinel(t *testing.T) {
	snap := dormerSnapshot()
	got := Price(model.KindPaint, model.Configuration{WidthCM: 200}, snap)
	if !got.IsZero() {
		t.Fatalf("expected zero sentinel for unpriced kind, got %s", got)
	}
	if got := Price(model.KindRoofDormer, model.Configuration{}, nil); !got.IsZero() {
		t.Fatalf("expected zero sentinel for nil snapshot, got %s", got)
	}
}

func TestPriceSolarDimensionIsPanelCount(t *testing.T) {
	snap := &Snapshot{
		Version: 2,
		Kinds: map[model.RequestKind]KindPricing{
			model.KindSolarPanel: {
				Brackets: []Bracket{
					{UpTo: 6, Base: dec("3200")},
					{UpTo: 10, Base: dec("4900")},
				},
				Surcharge: map[string]map[string]decimal.Decimal{
					"mounting": {"flat_roof": dec("300")},
				},
			},
		},
	}
	got := Price(model.KindSolarPanel, model.Configuration{PanelCount: 8, Mounting: "flat_roof"}, snap)
	if !got.Equal(dec("5200")) {
		t.Fatalf("expected 5200, got %s", got)
	}
}
