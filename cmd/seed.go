package cmd

import (
	"fmt"
	"log"

	"github.com/bouwofferte/quote-service/internal/config"
	"github.com/bouwofferte/quote-service/internal/db"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/util"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a pricing snapshot and demo requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQLConnection(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding pricing configuration...")
		if err := seedPricing(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seeding demo requests...")
		if err := seedRequests(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

// seedPricing inserts version 1 of the price tables (idempotent). Amounts
// are EUR including VAT; brackets are keyed on width in cm (dormers) and
// panel count (solar). Paint and plaster have no table: quoted manually.
const pricingPayload = `{
  "roof_dormer": {
    "brackets": [
      {"up_to": 180, "base": "5950"},
      {"up_to": 240, "base": "6575"},
      {"up_to": 300, "base": "6985"},
      {"up_to": 380, "base": "7750"},
      {"up_to": 460, "base": "8590"}
    ],
    "materials": {
      "plastic": "1.0",
      "wood": "1.2"
    },
    "options": {
      "ventilation": "225",
      "sun_shade": "850"
    },
    "surcharges": {
      "roof_pitch": {"sloped_steep": "450"},
      "model": {"country": "975"}
    }
  },
  "solar_panel": {
    "brackets": [
      {"up_to": 6, "base": "3590"},
      {"up_to": 10, "base": "5420"},
      {"up_to": 14, "base": "7150"},
      {"up_to": 20, "base": "9480"}
    ],
    "options": {
      "optimizers": "390",
      "bird_protection": "250",
      "ev_ready": "290"
    },
    "surcharges": {
      "mounting": {"in_roof": "780", "flat_roof": "420"}
    }
  }
}`

func seedPricing(dbx *sqlx.DB) error {
	const q = `
INSERT INTO pricing_config (version, payload, created_at)
VALUES (1, ?, NOW())
ON DUPLICATE KEY UPDATE payload = VALUES(payload)
`
	if _, err := dbx.Exec(q, pricingPayload); err != nil {
		return fmt.Errorf("insert pricing config: %w", err)
	}
	return nil
}

// seedRequests inserts a handful of demo submissions across the kinds. Fresh
// ids each run; meant for dev databases only.
func seedRequests(dbx *sqlx.DB) error {
	str := func(s string) *string { return &s }

	demo := []model.Request{
		{
			Kind: model.KindRoofDormer,
			Configuration: model.Configuration{
				WidthCM:   250,
				RoofPitch: "sloped_low",
				Model:     "modern",
				Material:  "plastic",
				Colors:    map[string]string{"frame": "ral9010", "cheeks": "ral7016"},
				Options:   []string{"sun_shade"},
			},
			CustomerName: "J. de Vries",
			Email:        str("jdevries@example.com"),
			Phone:        str("+31612345678"),
			Status:       model.StatusNew,
		},
		{
			Kind: model.KindSolarPanel,
			Configuration: model.Configuration{
				PanelCount:     10,
				Mounting:       "on_roof",
				DeliveryWindow: "3_months",
			},
			CustomerName: "K. Bakker",
			Email:        str("kbakker@example.com"),
			Status:       model.StatusNew,
		},
		{
			Kind: model.KindPaint,
			Configuration: model.Configuration{
				WidthCM:  800,
				Material: "stucco",
			},
			CustomerName: "M. Jansen",
			Phone:        str("+31698765432"),
			Status:       model.StatusNew,
		},
	}

	const q = `
INSERT INTO requests
    (id, kind, configuration, customer_name, contact_email, contact_phone, status, created_at, updated_at)
VALUES
    (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, r := range demo {
		if _, err := tx.Exec(q, util.NewID(), r.Kind.String(), r.Configuration, r.CustomerName, r.Email, r.Phone, r.Status.String()); err != nil {
			return fmt.Errorf("insert request for %q: %w", r.CustomerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit requests: %w", err)
	}
	return nil
}
