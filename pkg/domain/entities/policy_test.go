package entities

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 10, p.MinimumProductionDays())
	assert.Equal(t, 20, p.MinimumBufferDays())
	assert.Equal(t, 30, p.DaysInMonth())
	assert.Equal(t, int64(1000), p.ProductionBatchSize())

	required, err := p.RequiredEndingStock(1800)
	require.NoError(t, err)
	assert.Equal(t, Quantity(1200), required)
}

func TestPolicy_RequiredEndingStockLargeConsumption(t *testing.T) {
	p := DefaultPolicy()

	testCases := []struct {
		name        string
		consumption Quantity
		expected    Quantity
		hasError    bool
	}{
		{"truncates", 1000, 666, false},
		{"zero", 0, 0, false},
		{"half of max", math.MaxInt64 / 2, 3074457345618258602, false},
		{"max", math.MaxInt64, 6148914691236517204, false},
		{"negative", -1, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			required, err := p.RequiredEndingStock(tc.consumption)
			if tc.hasError {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, required)
		})
	}

	long, err := NewPolicy(10, 60, 30, 1000)
	require.NoError(t, err)
	_, err = long.RequiredEndingStock(math.MaxInt64)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewPolicy_Validation(t *testing.T) {
	testCases := []struct {
		name     string
		minDays  int
		buffer   int
		month    int
		batch    int64
		hasError bool
	}{
		{"valid", 10, 20, 30, 1000, false},
		{"minimum of one day", 1, 20, 30, 1000, false},
		{"minimum of 28 days", 28, 20, 30, 1000, false},
		{"zero minimum days", 0, 20, 30, 1000, true},
		{"negative minimum days", -3, 20, 30, 1000, true},
		{"minimum over 28 days", 29, 20, 30, 1000, true},
		{"zero days in month", 10, 20, 0, 1000, true},
		{"minimum longer than month", 20, 20, 15, 1000, true},
		{"negative buffer", 10, -1, 30, 1000, true},
		{"zero batch size", 10, 20, 30, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPolicy(tc.minDays, tc.buffer, tc.month, tc.batch)
			if tc.hasError {
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMustPolicy_Panics(t *testing.T) {
	assert.Panics(t, func() { MustPolicy(NewPolicy(0, 20, 30, 1000)) })
}

func TestCustomPolicy(t *testing.T) {
	p, err := NewPolicy(5, 15, 30, 100)
	require.NoError(t, err)

	r, err := NewMonthlyBottleRecord("C", 0, 10, decimal.NewFromInt(50), decimal.Zero, WithPolicy(p))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.5").Equal(r.ProductionCostPerUnit()))

	require.NoError(t, r.SetRequirements(0, 600))
	required, _ := r.RequiredEndingStock()
	assert.Equal(t, Quantity(300), required)

	require.NoError(t, r.Produce(5))
	assert.Equal(t, Quantity(50), r.Produced())
}

func TestCreationChannel(t *testing.T) {
	assert.Equal(t, "Produce", Produce.String())
	assert.Equal(t, "Purchase", Purchase.String())
	assert.Equal(t, "Unknown", CreationChannel(9).String())

	c, ok := ParseCreationChannel("purchase")
	assert.True(t, ok)
	assert.Equal(t, Purchase, c)

	_, ok = ParseCreationChannel("transfer")
	assert.False(t, ok)

	data, err := json.Marshal(CreationEvent{Channel: Purchase, Quantity: 5, Cost: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"channel":"Purchase","quantity":5,"cost":"1"}`, string(data))

	var decoded CreationEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Purchase, decoded.Channel)
	assert.Error(t, json.Unmarshal([]byte(`{"channel":"Transfer"}`), &decoded))
}
