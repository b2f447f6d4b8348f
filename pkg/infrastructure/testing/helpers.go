package testing

import (
	"github.com/vsinha/bottleplan/pkg/domain/entities"
	"github.com/vsinha/bottleplan/pkg/infrastructure/repositories/memory"
)

// ReferenceForecast is the consumption series used by the reference plan
var ReferenceForecast = []entities.Quantity{1000, 1800, 2000, 1500}

// BuildForecastRepository loads the given forecasts into a fresh in-memory
// repository, panicking on invalid data since it is only used by tests.
func BuildForecastRepository(forecasts map[entities.BottleType][]entities.Quantity) *memory.ForecastRepository {
	repo := memory.NewForecastRepository()
	for bottleType, forecast := range forecasts {
		if err := repo.LoadForecast(bottleType, forecast); err != nil {
			panic(err)
		}
	}
	return repo
}

// BuildReferenceForecasts returns a repository holding the reference forecast for bottle A
func BuildReferenceForecasts() *memory.ForecastRepository {
	return BuildForecastRepository(map[entities.BottleType][]entities.Quantity{
		"A": ReferenceForecast,
	})
}
