package planning

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bottleplan/pkg/application/dto"
	"github.com/vsinha/bottleplan/pkg/domain/entities"
	"github.com/vsinha/bottleplan/pkg/domain/repositories"
	"github.com/vsinha/bottleplan/pkg/infrastructure/logging"
)

// BottleSpec holds the construction parameters for the first month's record
type BottleSpec struct {
	Type               entities.BottleType
	CurrentStock       entities.Quantity
	ProductionCapacity entities.Quantity
	ProductionCost     decimal.Decimal // per production batch
	PurchaseCost       decimal.Decimal // per bottle
}

// Scenario is a bottle and the actions to apply, month by month. Months
// limits how many months are planned; zero plans every month the forecast allows.
type Scenario struct {
	Bottle  BottleSpec
	Actions []Action
	Months  int
}

// DefaultScenario reproduces the reference plan for bottle A
func DefaultScenario() Scenario {
	return Scenario{
		Bottle: BottleSpec{
			Type:               "A",
			CurrentStock:       800,
			ProductionCapacity: 50,
			ProductionCost:     decimal.NewFromInt(2 * 20),
			PurchaseCost:       decimal.RequireFromString("0.1"),
		},
		Actions: []Action{
			{Month: 0, Channel: entities.Produce, Amount: 10},
			{Month: 0, Channel: entities.Purchase, Amount: 500},
			{Month: 0, Channel: entities.Produce, Amount: 12},
		},
		Months: 2,
	}
}

// DefaultForecast is the consumption series paired with DefaultScenario
func DefaultForecast() []entities.Quantity {
	return []entities.Quantity{1000, 1800, 2000, 1500}
}

// Service plans consecutive months for one bottle type, carrying each
// month's ending stock into the next month's record.
type Service struct {
	forecasts repositories.ForecastRepository
	policy    entities.Policy
	observer  entities.RecordObserver
	log       *logging.Logger
}

// NewService creates a planning service. Observers are attached to every record.
func NewService(
	forecasts repositories.ForecastRepository,
	policy entities.Policy,
	log *logging.Logger,
	observers ...entities.RecordObserver,
) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{
		forecasts: forecasts,
		policy:    policy,
		observer:  entities.ObserverSet(observers),
		log:       log.Named("planning"),
	}
}

// Run plans each month in turn; every month needs the following month's
// forecast. It stops at the first failing month and returns the months
// planned so far.
func (s *Service) Run(ctx context.Context, scenario Scenario) (*dto.PlanResult, error) {
	forecast, err := s.forecasts.GetForecast(scenario.Bottle.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast: %w", err)
	}
	if len(forecast) < 2 {
		return nil, fmt.Errorf("forecast for %s needs at least two months, got %d",
			scenario.Bottle.Type, len(forecast))
	}

	plannedMonths := len(forecast) - 1
	if scenario.Months < 0 {
		return nil, fmt.Errorf("months cannot be negative, got %d", scenario.Months)
	}
	if scenario.Months > plannedMonths {
		return nil, fmt.Errorf("cannot plan %d months with a %d month forecast", scenario.Months, len(forecast))
	}
	if scenario.Months > 0 {
		plannedMonths = scenario.Months
	}
	byMonth := make(map[int][]Action)
	for _, action := range scenario.Actions {
		if action.Month >= plannedMonths {
			return nil, fmt.Errorf("action %s is outside the %d planned months", action, plannedMonths)
		}
		byMonth[action.Month] = append(byMonth[action.Month], action)
	}

	result := &dto.PlanResult{
		BottleType:  scenario.Bottle.Type,
		TotalCost:   decimal.Zero,
		EndingStock: scenario.Bottle.CurrentStock,
	}

	stock := scenario.Bottle.CurrentStock
	for month := 0; month < plannedMonths; month++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		monthResult, record, err := s.planMonth(month, stock, scenario.Bottle, forecast[month], forecast[month+1], byMonth[month])
		if err != nil {
			s.log.Error().Err(err).Int("month", month).Msg("planning failed")
			return result, fmt.Errorf("month %d: %w", month, err)
		}

		result.Months = append(result.Months, *monthResult)
		result.TotalCost = result.TotalCost.Add(record.TotalCost())
		result.EndingStock = record.EndingStock()
		stock = record.EndingStock()

		s.log.Info().
			Int("month", month).
			Str("bottle_type", string(record.BottleType())).
			Bool("meets_requirements", monthResult.MeetsRequirements).
			Int64("ending_stock", int64(record.EndingStock())).
			Str("total_cost", record.TotalCost().String()).
			Msg("month planned")
	}

	return result, nil
}

func (s *Service) planMonth(
	month int,
	openingStock entities.Quantity,
	bottle BottleSpec,
	thisMonth, nextMonth entities.Quantity,
	actions []Action,
) (*dto.MonthResult, *entities.MonthlyBottleRecord, error) {
	record, err := entities.NewMonthlyBottleRecord(
		bottle.Type,
		openingStock,
		bottle.ProductionCapacity,
		bottle.ProductionCost,
		bottle.PurchaseCost,
		entities.WithPolicy(s.policy),
		entities.WithObserver(s.observer),
	)
	if err != nil {
		return nil, nil, err
	}

	result := &dto.MonthResult{Month: month}
	snapshot := func(step string) {
		result.Steps = append(result.Steps, dto.StepResult{Step: step, Record: dto.NewRecordSnapshot(record)})
	}
	snapshot("initialized")

	if err := record.SetRequirements(thisMonth, nextMonth); err != nil {
		return nil, nil, err
	}
	snapshot("requirements set")

	for _, action := range actions {
		if err := apply(record, action); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", action.Describe(), err)
		}
		snapshot(action.Describe())
	}

	met, err := record.MeetsRequirements()
	if err != nil {
		return nil, nil, err
	}
	remaining, err := record.RemainingCreation()
	if err != nil {
		return nil, nil, err
	}

	result.MeetsRequirements = met
	result.RemainingCreation = remaining
	result.Events = record.Events()
	result.Final = dto.NewRecordSnapshot(record)
	return result, record, nil
}

func apply(record *entities.MonthlyBottleRecord, action Action) error {
	switch action.Channel {
	case entities.Produce:
		return record.Produce(int(action.Amount))
	case entities.Purchase:
		return record.Purchase(entities.Quantity(action.Amount))
	default:
		return fmt.Errorf("%w: unknown channel %s", entities.ErrInvalidArgument, action.Channel)
	}
}
