/*
Package factory provides JSON to Go ledger configuration conversion.

PURPOSE:
  Converts a JSON ledger definition into an engine.Config. The reporting
  period, hourly rate, and site allocation are operational data, not
  code: operations can adjust them in a config file without a rebuild.

JSON SCHEMA:
  {
    "days": ["15", "16", ...],          // explicit labels, or:
    "day_range": {"from": 15, "to": 31},
    "hourly_rate": 20,
    "primary_site": "LBR - S Plant",
    "site_allocation": {
      "OUD Plant (LBP)": 2,
      "LSS14": 2
    }
  }

DEFAULTS:
  Omitted fields fall back to the stock configuration: days 15-31,
  rate 20, the LBR primary site, and the two-site allocation above.

USAGE:
  cfg, err := factory.ParseConfig(jsonBytes)
  ledger, err := engine.NewLedger(cfg)

SEE ALSO:
  - engine/ledger.go: Config definition
  - cmd/server/main.go: -config flag wiring
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Abk8406/attendance-manager/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of the ledger configuration.
type ConfigJSON struct {
	Days           []string       `json:"days,omitempty"`
	DayRange       *DayRangeJSON  `json:"day_range,omitempty"`
	HourlyRate     *float64       `json:"hourly_rate,omitempty"`
	PrimarySite    string         `json:"primary_site,omitempty"`
	SiteAllocation map[string]int `json:"site_allocation,omitempty"`
}

// DayRangeJSON expands to consecutive numeric day labels, inclusive.
type DayRangeJSON struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// =============================================================================
// PARSING
// =============================================================================

// DefaultConfig returns the stock configuration matching the shipped
// reporting period: days 15-31 at a global rate of 20.
func DefaultConfig() engine.Config {
	return engine.Config{
		Days:        dayLabels(15, 31),
		HourlyRate:  decimal.NewFromInt(20),
		PrimarySite: "LBR - S Plant",
		Sites: engine.SiteAllocation{
			"OUD Plant (LBP)": 2,
			"LSS14":           2,
		},
	}
}

// ParseConfig converts JSON into an engine.Config, applying defaults for
// omitted fields. Explicit "days" wins over "day_range".
func ParseConfig(data []byte) (engine.Config, error) {
	var raw ConfigJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return engine.Config{}, fmt.Errorf("parse ledger config: %w", err)
	}

	cfg := DefaultConfig()

	switch {
	case len(raw.Days) > 0:
		cfg.Days = raw.Days
	case raw.DayRange != nil:
		if raw.DayRange.To < raw.DayRange.From {
			return engine.Config{}, fmt.Errorf("day_range: to %d before from %d", raw.DayRange.To, raw.DayRange.From)
		}
		cfg.Days = dayLabels(raw.DayRange.From, raw.DayRange.To)
	}

	if raw.HourlyRate != nil {
		if *raw.HourlyRate < 0 {
			return engine.Config{}, fmt.Errorf("hourly_rate: negative rate %v", *raw.HourlyRate)
		}
		cfg.HourlyRate = decimal.NewFromFloat(*raw.HourlyRate)
	}
	if raw.PrimarySite != "" {
		cfg.PrimarySite = raw.PrimarySite
	}
	if raw.SiteAllocation != nil {
		sites := make(engine.SiteAllocation, len(raw.SiteAllocation))
		for name, count := range raw.SiteAllocation {
			if count < 0 {
				return engine.Config{}, fmt.Errorf("site_allocation: negative headcount for %q", name)
			}
			sites[name] = count
		}
		cfg.Sites = sites
	}

	return cfg, nil
}

func dayLabels(from, to int) []string {
	labels := make([]string, 0, to-from+1)
	for d := from; d <= to; d++ {
		labels = append(labels, strconv.Itoa(d))
	}
	return labels
}
