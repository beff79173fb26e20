package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abk8406/attendance-manager/factory"
)

func TestDefaultConfig(t *testing.T) {
	cfg := factory.DefaultConfig()

	require.Len(t, cfg.Days, 17)
	assert.Equal(t, "15", cfg.Days[0])
	assert.Equal(t, "31", cfg.Days[16])
	assert.True(t, decimal.NewFromInt(20).Equal(cfg.HourlyRate))
	assert.Equal(t, "LBR - S Plant", cfg.PrimarySite)
	assert.Equal(t, 2, cfg.Sites["OUD Plant (LBP)"])
	assert.Equal(t, 2, cfg.Sites["LSS14"])
}

func TestParseConfig_EmptyObjectKeepsDefaults(t *testing.T) {
	cfg, err := factory.ParseConfig([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, factory.DefaultConfig().Days, cfg.Days)
}

func TestParseConfig_DayRange(t *testing.T) {
	cfg, err := factory.ParseConfig([]byte(`{"day_range": {"from": 1, "to": 5}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, cfg.Days)
}

func TestParseConfig_ExplicitDaysWinOverRange(t *testing.T) {
	cfg, err := factory.ParseConfig([]byte(`{"days": ["a", "b"], "day_range": {"from": 1, "to": 9}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.Days)
}

func TestParseConfig_Overrides(t *testing.T) {
	raw := `{
		"hourly_rate": 17.5,
		"primary_site": "Main",
		"site_allocation": {"Annex": 3}
	}`
	cfg, err := factory.ParseConfig([]byte(raw))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("17.5").Equal(cfg.HourlyRate))
	assert.Equal(t, "Main", cfg.PrimarySite)
	assert.Equal(t, 3, cfg.Sites["Annex"])
	assert.NotContains(t, cfg.Sites, "LSS14", "explicit allocation replaces defaults")
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := factory.ParseConfig([]byte(`{"day_range": {"from": 9, "to": 1}}`))
	assert.Error(t, err)

	_, err = factory.ParseConfig([]byte(`{"hourly_rate": -1}`))
	assert.Error(t, err)

	_, err = factory.ParseConfig([]byte(`{"site_allocation": {"X": -2}}`))
	assert.Error(t, err)

	_, err = factory.ParseConfig([]byte(`not json`))
	assert.Error(t, err)
}
