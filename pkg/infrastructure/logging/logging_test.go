package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestTraceObserver(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "debug", Output: &buf})

	r, err := entities.NewMonthlyBottleRecord("A", 800, 50, decimal.NewFromInt(40),
		decimal.RequireFromString("0.1"), entities.WithObserver(NewTraceObserver(log)))
	require.NoError(t, err)
	require.NoError(t, r.SetRequirements(1000, 1800))
	require.NoError(t, r.Produce(10))
	_, err = r.MeetsRequirements()
	require.NoError(t, err)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	assert.Equal(t, "initialized bottle record", lines[0]["message"])
	assert.Equal(t, "record", lines[0]["component"])

	assert.Equal(t, float64(1200), lines[1]["required_ending_stock"])
	assert.Equal(t, float64(-200), lines[1]["ending_stock"])

	produced := lines[2]
	assert.Equal(t, "Produce", produced["channel"])
	assert.Equal(t, float64(10), produced["days"])
	assert.Equal(t, float64(0), produced["creation_before"])
	assert.Equal(t, float64(500), produced["creation_after"])
	assert.Equal(t, "0", produced["cost_before"])
	assert.Equal(t, "20", produced["cost_after"])
	assert.Equal(t, float64(300), produced["ending_stock_after"])

	assert.Equal(t, false, lines[3]["met"])
}

func TestTraceObserver_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Output: &buf})

	r, err := entities.NewMonthlyBottleRecord("A", 1, 1, decimal.Zero, decimal.Zero,
		entities.WithObserver(NewTraceObserver(log)))
	require.NoError(t, err)
	require.NoError(t, r.Purchase(3))

	assert.Zero(t, buf.Len())
}
