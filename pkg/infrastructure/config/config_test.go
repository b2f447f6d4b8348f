package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/bottleplan/pkg/application/services/planning"
	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, entities.BottleType("A"), cfg.Bottle.Type)
	assert.Equal(t, entities.Quantity(800), cfg.Bottle.CurrentStock)
	assert.Equal(t, entities.Quantity(50), cfg.Bottle.ProductionCapacity)
	assert.True(t, decimal.NewFromInt(40).Equal(cfg.Bottle.ProductionCost))
	assert.True(t, decimal.RequireFromString("0.1").Equal(cfg.Bottle.PurchaseCost))
	assert.Equal(t, []entities.Quantity{1000, 1800, 2000, 1500}, cfg.Forecast)
	assert.Equal(t, 2, cfg.Months)
	assert.Equal(t, "0:produce:10,0:purchase:500,0:produce:12", cfg.Actions)

	actions, err := planning.ParseActions(cfg.Actions)
	require.NoError(t, err)
	assert.Equal(t, planning.DefaultScenario().Actions, actions)
}

func TestFormatForecast(t *testing.T) {
	forecast, err := ParseForecast(formatForecast(planning.DefaultForecast()))
	require.NoError(t, err)
	assert.Equal(t, planning.DefaultForecast(), forecast)
	assert.Equal(t, "", formatForecast(nil))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PLAN_DEBUG", "true")
	t.Setenv("BOTTLE_TYPE", "B")
	t.Setenv("BOTTLE_CURRENT_STOCK", "1200")
	t.Setenv("BOTTLE_PURCHASE_COST", "0.25")
	t.Setenv("PLAN_FORECAST", "10, 20 ,30")
	t.Setenv("PLAN_MONTHS", "0")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, entities.BottleType("B"), cfg.Bottle.Type)
	assert.Equal(t, entities.Quantity(1200), cfg.Bottle.CurrentStock)
	assert.True(t, decimal.RequireFromString("0.25").Equal(cfg.Bottle.PurchaseCost))
	assert.Equal(t, []entities.Quantity{10, 20, 30}, cfg.Forecast)
	assert.Equal(t, 0, cfg.Months)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := "BOTTLE_TYPE=C\nBOTTLE_PRODUCTION_CAPACITY=75\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.env"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, entities.BottleType("C"), cfg.Bottle.Type)
	assert.Equal(t, entities.Quantity(75), cfg.Bottle.ProductionCapacity)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	content := "BOTTLE_CURRENT_STOCK=900\n=== garbage\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.env"), []byte(content), 0644))

	cfg, err := Load(dir)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		key   string
		value string
	}{
		{"BOTTLE_CURRENT_STOCK", "many"},
		{"BOTTLE_PRODUCTION_CAPACITY", "1.5"},
		{"BOTTLE_PRODUCTION_COST", "cheap"},
		{"BOTTLE_PURCHASE_COST", "free"},
		{"PLAN_FORECAST", "10,x"},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load(t.TempDir())
			assert.ErrorContains(t, err, tc.key)
		})
	}
}

func TestParseForecast(t *testing.T) {
	forecast, err := ParseForecast("1000,1800,,2000")
	require.NoError(t, err)
	assert.Equal(t, []entities.Quantity{1000, 1800, 2000}, forecast)

	empty, err := ParseForecast("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
