package memory

import (
	"fmt"

	"github.com/vsinha/bottleplan/pkg/domain/entities"
	"github.com/vsinha/bottleplan/pkg/domain/repositories"
)

// ForecastRepository provides in-memory forecast storage
type ForecastRepository struct {
	forecasts map[entities.BottleType][]entities.Quantity
}

// NewForecastRepository creates a new in-memory forecast repository
func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{
		forecasts: make(map[entities.BottleType][]entities.Quantity),
	}
}

// Verify interface compliance
var _ repositories.ForecastRepository = (*ForecastRepository)(nil)

// LoadForecast replaces the forecast for a bottle type
func (r *ForecastRepository) LoadForecast(bottleType entities.BottleType, consumption []entities.Quantity) error {
	if bottleType == "" {
		return fmt.Errorf("bottle type cannot be empty")
	}
	for i, q := range consumption {
		if q < 0 {
			return fmt.Errorf("forecast for %s month %d cannot be negative, got %d", bottleType, i, q)
		}
	}

	stored := make([]entities.Quantity, len(consumption))
	copy(stored, consumption)
	r.forecasts[bottleType] = stored
	return nil
}

// GetForecast returns a copy of the forecast for a bottle type
func (r *ForecastRepository) GetForecast(bottleType entities.BottleType) ([]entities.Quantity, error) {
	forecast, exists := r.forecasts[bottleType]
	if !exists {
		return nil, fmt.Errorf("forecast not found: %s", bottleType)
	}

	result := make([]entities.Quantity, len(forecast))
	copy(result, forecast)
	return result, nil
}

// GetBottleTypes returns every bottle type with a forecast
func (r *ForecastRepository) GetBottleTypes() []entities.BottleType {
	types := make([]entities.BottleType, 0, len(r.forecasts))
	for bottleType := range r.forecasts {
		types = append(types, bottleType)
	}
	return types
}
