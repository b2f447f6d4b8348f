package events

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

const (
	RecordCreatedEvent       = "record.created"
	RequirementsSetEvent     = "requirements.set"
	BottlesProducedEvent     = "bottles.produced"
	BottlesPurchasedEvent    = "bottles.purchased"
	RequirementsCheckedEvent = "requirements.checked"
)

type RecordCreated struct {
	BottleType            entities.BottleType `json:"bottle_type"`
	InitialStock          entities.Quantity   `json:"initial_stock"`
	ProductionCapacity    entities.Quantity   `json:"production_capacity"`
	ProductionCostPerUnit decimal.Decimal     `json:"production_cost_per_unit"`
	PurchaseCostPerUnit   decimal.Decimal     `json:"purchase_cost_per_unit"`
}

type RequirementsSet struct {
	BottleType          entities.BottleType `json:"bottle_type"`
	Consumption         entities.Quantity   `json:"consumption"`
	RequiredEndingStock entities.Quantity   `json:"required_ending_stock"`
	RequiredCreation    entities.Quantity   `json:"required_creation"`
	EndingStock         entities.Quantity   `json:"ending_stock"`
}

type BottlesCreated struct {
	BottleType      entities.BottleType    `json:"bottle_type"`
	Creation        entities.CreationEvent `json:"creation"`
	CurrentCreation entities.Quantity      `json:"current_creation"`
	EndingStock     entities.Quantity      `json:"ending_stock"`
	TotalCost       decimal.Decimal        `json:"total_cost"`
}

type RequirementsChecked struct {
	BottleType       entities.BottleType `json:"bottle_type"`
	Met              bool                `json:"met"`
	CurrentCreation  entities.Quantity   `json:"current_creation"`
	RequiredCreation entities.Quantity   `json:"required_creation"`
}

// RecordEventLog appends every record mutation to an event store, one stream
// per record ID.
type RecordEventLog struct {
	store EventStore
	errs  []error
}

func NewRecordEventLog(store EventStore) *RecordEventLog {
	return &RecordEventLog{store: store}
}

// Verify interface compliance
var _ entities.RecordObserver = (*RecordEventLog)(nil)

func (l *RecordEventLog) RecordCreated(r *entities.MonthlyBottleRecord) {
	l.append(r, RecordCreatedEvent, RecordCreated{
		BottleType:            r.BottleType(),
		InitialStock:          r.InitialStock(),
		ProductionCapacity:    r.ProductionCapacity(),
		ProductionCostPerUnit: r.ProductionCostPerUnit(),
		PurchaseCostPerUnit:   r.PurchaseCostPerUnit(),
	})
}

func (l *RecordEventLog) RequirementsSet(r *entities.MonthlyBottleRecord) {
	consumption, _ := r.Consumption()
	requiredEnding, _ := r.RequiredEndingStock()
	requiredCreation, _ := r.RequiredCreation()

	l.append(r, RequirementsSetEvent, RequirementsSet{
		BottleType:          r.BottleType(),
		Consumption:         consumption,
		RequiredEndingStock: requiredEnding,
		RequiredCreation:    requiredCreation,
		EndingStock:         r.EndingStock(),
	})
}

func (l *RecordEventLog) BottlesCreated(r *entities.MonthlyBottleRecord, event entities.CreationEvent) {
	eventType := BottlesProducedEvent
	if event.Channel == entities.Purchase {
		eventType = BottlesPurchasedEvent
	}

	l.append(r, eventType, BottlesCreated{
		BottleType:      r.BottleType(),
		Creation:        event,
		CurrentCreation: r.CurrentCreation(),
		EndingStock:     r.EndingStock(),
		TotalCost:       r.TotalCost(),
	})
}

func (l *RecordEventLog) RequirementsChecked(r *entities.MonthlyBottleRecord, met bool) {
	requiredCreation, _ := r.RequiredCreation()

	l.append(r, RequirementsCheckedEvent, RequirementsChecked{
		BottleType:       r.BottleType(),
		Met:              met,
		CurrentCreation:  r.CurrentCreation(),
		RequiredCreation: requiredCreation,
	})
}

// Err returns the errors raised by the store while appending, if any
func (l *RecordEventLog) Err() error {
	return errors.Join(l.errs...)
}

// Stream returns the events recorded for one record, oldest first
func (l *RecordEventLog) Stream(recordID string) ([]Event, error) {
	return l.store.ReadEvents(recordID, 1)
}

func (l *RecordEventLog) append(r *entities.MonthlyBottleRecord, eventType string, data interface{}) {
	streamID := r.ID().String()
	if err := l.store.AppendEvent(streamID, NewEvent(eventType, streamID, data)); err != nil {
		l.errs = append(l.errs, err)
	}
}
