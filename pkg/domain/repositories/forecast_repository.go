package repositories

import "github.com/vsinha/bottleplan/pkg/domain/entities"

// ForecastRepository provides monthly consumption forecasts per bottle type.
// Index 0 of a forecast is the current month.
type ForecastRepository interface {
	GetForecast(bottleType entities.BottleType) ([]entities.Quantity, error)
	LoadForecast(bottleType entities.BottleType, consumption []entities.Quantity) error
}
