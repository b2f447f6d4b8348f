package events

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

func TestRecordEventLog_StreamsRecordMutations(t *testing.T) {
	store := NewInMemoryEventStore()
	log := NewRecordEventLog(store)

	r, err := entities.NewMonthlyBottleRecord("A", 800, 50, decimal.NewFromInt(40),
		decimal.RequireFromString("0.1"), entities.WithObserver(log))
	require.NoError(t, err)

	require.NoError(t, r.SetRequirements(1000, 1800))
	require.NoError(t, r.Produce(10))
	require.NoError(t, r.Purchase(500))
	_, err = r.MeetsRequirements()
	require.NoError(t, err)
	require.NoError(t, log.Err())

	stream, err := log.Stream(r.ID().String())
	require.NoError(t, err)

	var types []string
	for _, e := range stream {
		types = append(types, e.Type())
	}
	assert.Equal(t, []string{
		RecordCreatedEvent,
		RequirementsSetEvent,
		BottlesProducedEvent,
		BottlesPurchasedEvent,
		RequirementsCheckedEvent,
	}, types)

	set, ok := stream[1].Data().(RequirementsSet)
	require.True(t, ok)
	assert.Equal(t, entities.Quantity(1200), set.RequiredEndingStock)
	assert.Equal(t, entities.Quantity(1400), set.RequiredCreation)
	assert.Equal(t, entities.Quantity(-200), set.EndingStock)

	purchased, ok := stream[3].Data().(BottlesCreated)
	require.True(t, ok)
	assert.Equal(t, entities.Quantity(1000), purchased.CurrentCreation)
	assert.True(t, decimal.NewFromInt(70).Equal(purchased.TotalCost))

	checked, ok := stream[4].Data().(RequirementsChecked)
	require.True(t, ok)
	assert.False(t, checked.Met)
}

type failingStore struct {
	*InMemoryEventStore
	failOn string
}

func (s *failingStore) AppendEvent(streamID string, event Event) error {
	if event.Type() == s.failOn {
		return errors.New("rejected")
	}
	return s.InMemoryEventStore.AppendEvent(streamID, event)
}

func TestRecordEventLog_CollectsStoreErrors(t *testing.T) {
	store := &failingStore{InMemoryEventStore: NewInMemoryEventStore(), failOn: BottlesPurchasedEvent}
	log := NewRecordEventLog(store)

	r, err := entities.NewMonthlyBottleRecord("A", 0, 1, decimal.Zero, decimal.Zero, entities.WithObserver(log))
	require.NoError(t, err)
	require.NoError(t, r.Purchase(1))

	assert.EqualError(t, log.Err(), "rejected")

	stream, err := log.Stream(r.ID().String())
	require.NoError(t, err)
	require.Len(t, stream, 1)
	assert.Equal(t, RecordCreatedEvent, stream[0].Type())
}
