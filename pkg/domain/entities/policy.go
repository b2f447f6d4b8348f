package entities

import "fmt"

const (
	DefaultMinimumProductionDays = 10
	DefaultMinimumBufferDays     = 20
	DefaultDaysInMonth           = 30
	DefaultProductionBatchSize   = 1000

	// MaxMinimumProductionDays keeps a minimum run schedulable in the shortest month.
	MaxMinimumProductionDays = 28
)

var defaultPolicy = MustPolicy(NewPolicy(
	DefaultMinimumProductionDays,
	DefaultMinimumBufferDays,
	DefaultDaysInMonth,
	DefaultProductionBatchSize,
))

// Policy holds the planning constants shared by every record. A Policy can
// only be obtained through NewPolicy, so holding one means it was validated.
type Policy struct {
	minimumProductionDays int
	minimumBufferDays     int
	daysInMonth           int
	productionBatchSize   int64
}

// NewPolicy creates a validated Policy
func NewPolicy(minimumProductionDays, minimumBufferDays, daysInMonth int, productionBatchSize int64) (Policy, error) {
	if minimumProductionDays <= 0 {
		return Policy{}, fmt.Errorf("%w: minimum production days must be positive, got %d",
			ErrConfiguration, minimumProductionDays)
	}
	if minimumProductionDays > MaxMinimumProductionDays {
		return Policy{}, fmt.Errorf("%w: minimum production days cannot exceed %d, got %d",
			ErrConfiguration, MaxMinimumProductionDays, minimumProductionDays)
	}
	if daysInMonth <= 0 {
		return Policy{}, fmt.Errorf("%w: days in month must be positive, got %d", ErrConfiguration, daysInMonth)
	}
	if minimumProductionDays > daysInMonth {
		return Policy{}, fmt.Errorf("%w: minimum production days %d exceed days in month %d",
			ErrConfiguration, minimumProductionDays, daysInMonth)
	}
	if minimumBufferDays < 0 {
		return Policy{}, fmt.Errorf("%w: minimum buffer days cannot be negative, got %d",
			ErrConfiguration, minimumBufferDays)
	}
	if productionBatchSize <= 0 {
		return Policy{}, fmt.Errorf("%w: production batch size must be positive, got %d",
			ErrConfiguration, productionBatchSize)
	}

	return Policy{
		minimumProductionDays: minimumProductionDays,
		minimumBufferDays:     minimumBufferDays,
		daysInMonth:           daysInMonth,
		productionBatchSize:   productionBatchSize,
	}, nil
}

// MustPolicy panics if err is non-nil. Intended for package-level initialisation.
func MustPolicy(p Policy, err error) Policy {
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPolicy returns the policy validated at startup
func DefaultPolicy() Policy {
	return defaultPolicy
}

func (p Policy) MinimumProductionDays() int { return p.minimumProductionDays }
func (p Policy) MinimumBufferDays() int     { return p.minimumBufferDays }
func (p Policy) DaysInMonth() int           { return p.daysInMonth }
func (p Policy) ProductionBatchSize() int64 { return p.productionBatchSize }
func (p Policy) valid() bool                { return p.daysInMonth > 0 }

// RequiredEndingStock returns the buffer stock needed to cover
// MinimumBufferDays of next month's consumption, truncated.
func (p Policy) RequiredEndingStock(nextMonthConsumption Quantity) (Quantity, error) {
	if nextMonthConsumption < 0 {
		return 0, fmt.Errorf("%w: consumption cannot be negative, got %d", ErrInvalidArgument, nextMonthConsumption)
	}

	// whole months and the remainder are scaled separately so the
	// intermediate product only overflows when the result does
	days := Quantity(p.daysInMonth)
	buffer := Quantity(p.minimumBufferDays)
	whole, wholeOK := mulQuantities(nextMonthConsumption/days, buffer)
	part, partOK := mulQuantities(nextMonthConsumption%days, buffer)
	required, sumOK := addQuantities(whole, part/days)
	if !wholeOK || !partOK || !sumOK {
		return 0, fmt.Errorf("%w: buffer stock for consumption %d overflows", ErrInvalidArgument, nextMonthConsumption)
	}
	return required, nil
}
