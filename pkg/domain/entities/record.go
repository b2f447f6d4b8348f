package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordObserver receives notifications after each mutation of a record.
// Implementations must not mutate the record.
type RecordObserver interface {
	RecordCreated(r *MonthlyBottleRecord)
	RequirementsSet(r *MonthlyBottleRecord)
	BottlesCreated(r *MonthlyBottleRecord, event CreationEvent)
	RequirementsChecked(r *MonthlyBottleRecord, met bool)
}

// RecordOption customises a record at construction
type RecordOption func(*MonthlyBottleRecord)

// WithPolicy overrides the default planning policy
func WithPolicy(p Policy) RecordOption {
	return func(r *MonthlyBottleRecord) {
		r.policy = p
	}
}

// WithObserver attaches an observer that is notified of every mutation
func WithObserver(o RecordObserver) RecordOption {
	return func(r *MonthlyBottleRecord) {
		r.observer = o
	}
}

// MonthlyBottleRecord is one bottle type's planning state for a single month.
// It is not safe for concurrent use.
type MonthlyBottleRecord struct {
	id         uuid.UUID
	bottleType BottleType
	policy     Policy
	observer   RecordObserver

	initialStock          Quantity
	endingStock           Quantity
	productionCapacity    Quantity
	productionCostPerUnit decimal.Decimal
	purchaseCostPerUnit   decimal.Decimal
	totalCost             decimal.Decimal

	// nil until SetRequirements
	requiredEndingStock *Quantity
	requiredCreation    *Quantity
	consumption         *Quantity

	produced            Quantity
	purchased           Quantity
	totalProductionDays int
	currentCreation     Quantity

	events []CreationEvent
}

// NewMonthlyBottleRecord creates a validated record. rawProductionCost is quoted
// per production batch and converted to a per-bottle cost.
func NewMonthlyBottleRecord(
	bottleType BottleType,
	currentStock, productionCapacity Quantity,
	rawProductionCost, purchaseCost decimal.Decimal,
	opts ...RecordOption,
) (*MonthlyBottleRecord, error) {
	if bottleType == "" {
		return nil, fmt.Errorf("%w: bottle type cannot be empty", ErrInvalidArgument)
	}
	if currentStock < 0 {
		return nil, fmt.Errorf("%w: current stock cannot be negative, got %d", ErrInvalidArgument, currentStock)
	}
	if productionCapacity < 0 {
		return nil, fmt.Errorf("%w: production capacity cannot be negative, got %d", ErrInvalidArgument, productionCapacity)
	}
	if rawProductionCost.IsNegative() {
		return nil, fmt.Errorf("%w: production cost cannot be negative, got %s", ErrInvalidArgument, rawProductionCost)
	}
	if purchaseCost.IsNegative() {
		return nil, fmt.Errorf("%w: purchase cost cannot be negative, got %s", ErrInvalidArgument, purchaseCost)
	}

	r := &MonthlyBottleRecord{
		id:                  uuid.New(),
		bottleType:          bottleType,
		policy:              defaultPolicy,
		initialStock:        currentStock,
		endingStock:         currentStock,
		productionCapacity:  productionCapacity,
		purchaseCostPerUnit: purchaseCost,
		totalCost:           decimal.Zero,
	}
	for _, opt := range opts {
		opt(r)
	}
	if !r.policy.valid() {
		return nil, fmt.Errorf("%w: policy was not created with NewPolicy", ErrConfiguration)
	}

	r.productionCostPerUnit = rawProductionCost.Div(decimal.NewFromInt(r.policy.ProductionBatchSize()))

	if r.observer != nil {
		r.observer.RecordCreated(r)
	}
	return r, nil
}

// SetRequirements fixes this month's consumption and the buffer the month must
// end with, and deducts the consumption from ending stock. It may be called
// only once per record.
func (r *MonthlyBottleRecord) SetRequirements(thisMonthConsumption, nextMonthConsumption Quantity) error {
	if r.requirementsSet() {
		return fmt.Errorf("%w: requirements already set for bottle %s", ErrState, r.bottleType)
	}
	if thisMonthConsumption < 0 || nextMonthConsumption < 0 {
		return fmt.Errorf("%w: consumption cannot be negative, got %d and %d",
			ErrInvalidArgument, thisMonthConsumption, nextMonthConsumption)
	}

	requiredEndingStock, err := r.policy.RequiredEndingStock(nextMonthConsumption)
	if err != nil {
		return err
	}
	demand, ok := addQuantities(requiredEndingStock, thisMonthConsumption)
	if !ok {
		return fmt.Errorf("%w: consumption %d plus buffer stock %d overflows",
			ErrInvalidArgument, thisMonthConsumption, requiredEndingStock)
	}
	// signed: negative when opening stock already covers the month
	requiredCreation := demand - r.initialStock
	consumption := thisMonthConsumption

	r.requiredEndingStock = &requiredEndingStock
	r.requiredCreation = &requiredCreation
	r.consumption = &consumption
	r.endingStock -= thisMonthConsumption

	if r.observer != nil {
		r.observer.RequirementsSet(r)
	}
	return nil
}

// Produce schedules a production run of the given number of days. A zero-day
// run is accepted and changes nothing, not even the event list.
func (r *MonthlyBottleRecord) Produce(days int) error {
	if days < 0 {
		return fmt.Errorf("%w: production days cannot be negative, got %d", ErrInvalidArgument, days)
	}
	if days > 0 && days < r.policy.MinimumProductionDays() {
		return fmt.Errorf("%w: bottle must be produced for at least %d days, got %d",
			ErrInvalidArgument, r.policy.MinimumProductionDays(), days)
	}
	if days > r.policy.DaysInMonth()-r.totalProductionDays {
		return fmt.Errorf("%w: producing %d more days would schedule %d of %d days in the month",
			ErrCapacityExceeded, days, r.totalProductionDays+days, r.policy.DaysInMonth())
	}

	if days == 0 {
		return nil
	}

	quantity, ok := mulQuantities(r.productionCapacity, Quantity(days))
	if !ok {
		return fmt.Errorf("%w: producing %d days at %d bottles a day overflows",
			ErrInvalidArgument, days, r.productionCapacity)
	}
	produced, err := r.addCreated(r.produced, quantity)
	if err != nil {
		return err
	}
	cost := r.productionCostPerUnit.Mul(quantity.Decimal())

	r.totalCost = r.totalCost.Add(cost)
	r.produced = produced
	r.totalProductionDays += days
	r.applyCreation(CreationEvent{
		Channel:  Produce,
		Quantity: quantity,
		Days:     days,
		Cost:     cost,
	})
	return nil
}

// Purchase buys the given number of bottles. Buying zero bottles changes nothing.
func (r *MonthlyBottleRecord) Purchase(quantity Quantity) error {
	if quantity < 0 {
		return fmt.Errorf("%w: purchase quantity cannot be negative, got %d", ErrInvalidArgument, quantity)
	}

	if quantity == 0 {
		return nil
	}

	purchased, err := r.addCreated(r.purchased, quantity)
	if err != nil {
		return err
	}
	cost := r.purchaseCostPerUnit.Mul(quantity.Decimal())

	r.purchased = purchased
	r.totalCost = r.totalCost.Add(cost)
	r.applyCreation(CreationEvent{
		Channel:  Purchase,
		Quantity: quantity,
		Cost:     cost,
	})
	return nil
}

// addCreated adds quantity to a channel counter, failing if the counter,
// current creation or ending stock would overflow.
func (r *MonthlyBottleRecord) addCreated(counter, quantity Quantity) (Quantity, error) {
	sum, ok := addQuantities(counter, quantity)
	if ok {
		_, ok = addQuantities(r.currentCreation, quantity)
	}
	if ok {
		_, ok = addQuantities(r.endingStock, quantity)
	}
	if !ok {
		return 0, fmt.Errorf("%w: adding %d bottles overflows the record", ErrInvalidArgument, quantity)
	}
	return sum, nil
}

// applyCreation keeps currentCreation in step with the channel counters and
// adds the new bottles to ending stock.
func (r *MonthlyBottleRecord) applyCreation(event CreationEvent) {
	r.currentCreation = r.produced + r.purchased
	r.endingStock += event.Quantity
	r.events = append(r.events, event)

	if r.observer != nil {
		r.observer.BottlesCreated(r, event)
	}
}

// MeetsRequirements reports whether the bottles created so far cover the
// required creation for the month.
func (r *MonthlyBottleRecord) MeetsRequirements() (bool, error) {
	if !r.requirementsSet() {
		return false, fmt.Errorf("%w: requirements not yet set for bottle %s", ErrState, r.bottleType)
	}

	met := r.currentCreation >= *r.requiredCreation
	if r.observer != nil {
		r.observer.RequirementsChecked(r, met)
	}
	return met, nil
}

// RemainingCreation returns how many more bottles must be created to meet
// the requirement. Negative when the requirement is already exceeded.
func (r *MonthlyBottleRecord) RemainingCreation() (Quantity, error) {
	if !r.requirementsSet() {
		return 0, fmt.Errorf("%w: requirements not yet set for bottle %s", ErrState, r.bottleType)
	}
	return *r.requiredCreation - r.currentCreation, nil
}

func (r *MonthlyBottleRecord) requirementsSet() bool {
	return r.requiredCreation != nil
}

func (r *MonthlyBottleRecord) ID() uuid.UUID                          { return r.id }
func (r *MonthlyBottleRecord) BottleType() BottleType                 { return r.bottleType }
func (r *MonthlyBottleRecord) Policy() Policy                         { return r.policy }
func (r *MonthlyBottleRecord) InitialStock() Quantity                 { return r.initialStock }
func (r *MonthlyBottleRecord) EndingStock() Quantity                  { return r.endingStock }
func (r *MonthlyBottleRecord) ProductionCapacity() Quantity           { return r.productionCapacity }
func (r *MonthlyBottleRecord) ProductionCostPerUnit() decimal.Decimal { return r.productionCostPerUnit }
func (r *MonthlyBottleRecord) PurchaseCostPerUnit() decimal.Decimal   { return r.purchaseCostPerUnit }
func (r *MonthlyBottleRecord) TotalCost() decimal.Decimal             { return r.totalCost }
func (r *MonthlyBottleRecord) Produced() Quantity                     { return r.produced }
func (r *MonthlyBottleRecord) Purchased() Quantity                    { return r.purchased }
func (r *MonthlyBottleRecord) TotalProductionDays() int               { return r.totalProductionDays }
func (r *MonthlyBottleRecord) CurrentCreation() Quantity              { return r.currentCreation }

// RequiredEndingStock returns the buffer target, or false before SetRequirements.
func (r *MonthlyBottleRecord) RequiredEndingStock() (Quantity, bool) {
	return derefQuantity(r.requiredEndingStock)
}

// RequiredCreation returns the creation target, or false before SetRequirements.
func (r *MonthlyBottleRecord) RequiredCreation() (Quantity, bool) {
	return derefQuantity(r.requiredCreation)
}

// Consumption returns this month's consumption, or false before SetRequirements.
func (r *MonthlyBottleRecord) Consumption() (Quantity, bool) {
	return derefQuantity(r.consumption)
}

// Events returns the production runs and purchases applied so far
func (r *MonthlyBottleRecord) Events() []CreationEvent {
	events := make([]CreationEvent, len(r.events))
	copy(events, r.events)
	return events
}

func derefQuantity(q *Quantity) (Quantity, bool) {
	if q == nil {
		return 0, false
	}
	return *q, true
}
