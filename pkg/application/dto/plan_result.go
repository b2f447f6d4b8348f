package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

// RecordSnapshot is a point-in-time copy of a MonthlyBottleRecord. Requirement
// fields are nil until requirements are set.
type RecordSnapshot struct {
	RecordID              string              `json:"record_id"`
	BottleType            entities.BottleType `json:"bottle_type"`
	InitialStock          entities.Quantity   `json:"initial_stock"`
	EndingStock           entities.Quantity   `json:"ending_stock"`
	ProductionCapacity    entities.Quantity   `json:"production_capacity"`
	ProductionCostPerUnit decimal.Decimal     `json:"production_cost_per_unit"`
	PurchaseCostPerUnit   decimal.Decimal     `json:"purchase_cost_per_unit"`
	TotalCost             decimal.Decimal     `json:"total_cost"`
	RequiredEndingStock   *entities.Quantity  `json:"required_ending_stock"`
	RequiredCreation      *entities.Quantity  `json:"required_creation"`
	Consumption           *entities.Quantity  `json:"consumption"`
	Produced              entities.Quantity   `json:"produced"`
	Purchased             entities.Quantity   `json:"purchased"`
	TotalProductionDays   int                 `json:"total_production_days"`
	CurrentCreation       entities.Quantity   `json:"current_creation"`
}

// NewRecordSnapshot copies the current state of a record
func NewRecordSnapshot(r *entities.MonthlyBottleRecord) RecordSnapshot {
	return RecordSnapshot{
		RecordID:              r.ID().String(),
		BottleType:            r.BottleType(),
		InitialStock:          r.InitialStock(),
		EndingStock:           r.EndingStock(),
		ProductionCapacity:    r.ProductionCapacity(),
		ProductionCostPerUnit: r.ProductionCostPerUnit(),
		PurchaseCostPerUnit:   r.PurchaseCostPerUnit(),
		TotalCost:             r.TotalCost(),
		RequiredEndingStock:   optional(r.RequiredEndingStock()),
		RequiredCreation:      optional(r.RequiredCreation()),
		Consumption:           optional(r.Consumption()),
		Produced:              r.Produced(),
		Purchased:             r.Purchased(),
		TotalProductionDays:   r.TotalProductionDays(),
		CurrentCreation:       r.CurrentCreation(),
	}
}

func optional(q entities.Quantity, ok bool) *entities.Quantity {
	if !ok {
		return nil
	}
	return &q
}

// StepResult is the record state after one planning step
type StepResult struct {
	Step   string         `json:"step"`
	Record RecordSnapshot `json:"record"`
}

// RecordEvent is one entry of a record's mutation history
type RecordEvent struct {
	Version   int         `json:"version"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// MonthResult contains the outcome of planning one month
type MonthResult struct {
	Month             int                      `json:"month"`
	Steps             []StepResult             `json:"steps"`
	Events            []entities.CreationEvent `json:"events"`
	History           []RecordEvent            `json:"history,omitempty"`
	MeetsRequirements bool                     `json:"meets_requirements"`
	RemainingCreation entities.Quantity        `json:"remaining_creation"`
	Final             RecordSnapshot           `json:"final"`
}

// PlanResult contains the complete output of a planning run
type PlanResult struct {
	BottleType  entities.BottleType `json:"bottle_type"`
	Months      []MonthResult       `json:"months"`
	TotalCost   decimal.Decimal     `json:"total_cost"`
	EndingStock entities.Quantity   `json:"ending_stock"`
}
