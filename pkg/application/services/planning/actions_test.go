package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

func TestParseActions(t *testing.T) {
	actions, err := ParseActions("0:produce:10, 0:Purchase:500,,1:PRODUCE:12")
	require.NoError(t, err)
	assert.Equal(t, []Action{
		{Month: 0, Channel: entities.Produce, Amount: 10},
		{Month: 0, Channel: entities.Purchase, Amount: 500},
		{Month: 1, Channel: entities.Produce, Amount: 12},
	}, actions)

	none, err := ParseActions("")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestParseActions_Errors(t *testing.T) {
	testCases := []struct {
		input       string
		expectError string
	}{
		{"0:produce", `action 0 "0:produce": expected month:channel:amount`},
		{"x:produce:10", `action 0 "x:produce:10": invalid month`},
		{"-1:produce:10", `action 0 "-1:produce:10": invalid month`},
		{"0:produce:10,0:transfer:5", `action 1 "0:transfer:5": unknown channel "transfer"`},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			_, err := ParseActions(tc.input)
			assert.EqualError(t, err, tc.expectError)
		})
	}

	_, err := ParseActions("0:purchase:lots")
	assert.ErrorContains(t, err, "invalid amount")
}

func TestAction_RoundTrip(t *testing.T) {
	for _, a := range DefaultScenario().Actions {
		parsed, err := ParseActions(a.String())
		require.NoError(t, err)
		assert.Equal(t, []Action{a}, parsed)
	}
	assert.Equal(t, "produce 10 days", Action{Channel: entities.Produce, Amount: 10}.Describe())
	assert.Equal(t, "purchase 500 bottles", Action{Channel: entities.Purchase, Amount: 500}.Describe())
}
