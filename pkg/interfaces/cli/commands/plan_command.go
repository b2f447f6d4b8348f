package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vsinha/bottleplan/pkg/application/dto"
	"github.com/vsinha/bottleplan/pkg/application/services/planning"
	"github.com/vsinha/bottleplan/pkg/domain/entities"
	"github.com/vsinha/bottleplan/pkg/infrastructure/config"
	"github.com/vsinha/bottleplan/pkg/infrastructure/events"
	"github.com/vsinha/bottleplan/pkg/infrastructure/logging"
	"github.com/vsinha/bottleplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/bottleplan/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	ConfigDir string
	OutputDir string
	Format    string
	Verbose   bool
	Debug     bool
	Help      bool

	// Stdout and LogOutput default to os.Stdout and os.Stderr
	Stdout    io.Writer
	LogOutput io.Writer
}

// PlanCommand runs a bottle planning scenario and reports the result
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.LogOutput == nil {
		config.LogOutput = os.Stderr
	}
	return &PlanCommand{
		config: config,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cfg, err := config.Load(c.config.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	debug := c.config.Debug || cfg.App.Debug
	level := cfg.App.LogLevel
	if debug {
		level = "debug"
	}
	log := logging.New(logging.Config{Env: cfg.App.Env, Level: level, Output: c.config.LogOutput})

	actions, err := planning.ParseActions(cfg.Actions)
	if err != nil {
		return fmt.Errorf("invalid PLAN_ACTIONS: %w", err)
	}

	forecasts := memory.NewForecastRepository()
	if err := forecasts.LoadForecast(cfg.Bottle.Type, cfg.Forecast); err != nil {
		return fmt.Errorf("failed to load forecast: %w", err)
	}

	store := events.NewInMemoryEventStore()
	eventLog := events.NewRecordEventLog(store)
	observers := []entities.RecordObserver{eventLog}
	if debug {
		observers = append(observers, logging.NewTraceObserver(log))
	}

	svc := planning.NewService(forecasts, entities.DefaultPolicy(), log, observers...)
	scenario := planning.Scenario{
		Bottle: planning.BottleSpec{
			Type:               cfg.Bottle.Type,
			CurrentStock:       cfg.Bottle.CurrentStock,
			ProductionCapacity: cfg.Bottle.ProductionCapacity,
			ProductionCost:     cfg.Bottle.ProductionCost,
			PurchaseCost:       cfg.Bottle.PurchaseCost,
		},
		Actions: actions,
		Months:  cfg.Months,
	}

	if c.config.Verbose {
		c.printHeader(scenario, cfg)
	}

	result, err := svc.Run(ctx, scenario)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}
	if err := eventLog.Err(); err != nil {
		return fmt.Errorf("failed to record planning events: %w", err)
	}

	if err := attachHistory(eventLog, result); err != nil {
		return fmt.Errorf("failed to read planning events: %w", err)
	}
	recorded, err := store.ReadAllEvents(0)
	if err != nil {
		return fmt.Errorf("failed to read planning events: %w", err)
	}
	log.Debug().Int("events", len(recorded)).Msg("planning events recorded")

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Writer:    c.config.Stdout,
	})
}

// attachHistory copies each month's record event stream into the result
func attachHistory(eventLog *events.RecordEventLog, result *dto.PlanResult) error {
	for i := range result.Months {
		month := &result.Months[i]
		stream, err := eventLog.Stream(month.Final.RecordID)
		if err != nil {
			return fmt.Errorf("month %d: %w", month.Month, err)
		}
		month.History = make([]dto.RecordEvent, 0, len(stream))
		for _, e := range stream {
			month.History = append(month.History, dto.RecordEvent{
				Version:   e.Version(),
				Type:      e.Type(),
				Timestamp: e.Timestamp(),
				Data:      e.Data(),
			})
		}
	}
	return nil
}

func (c *PlanCommand) validateInputs() error {
	switch c.config.Format {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
}

func (c *PlanCommand) printHeader(scenario planning.Scenario, cfg *config.Config) {
	w := c.config.Stdout
	fmt.Fprintf(w, "🍾 Bottle Planning\n")
	fmt.Fprintf(w, "==================\n")
	fmt.Fprintf(w, "Bottle type:         %s\n", scenario.Bottle.Type)
	fmt.Fprintf(w, "Opening stock:       %d\n", scenario.Bottle.CurrentStock)
	fmt.Fprintf(w, "Production capacity: %d bottles/day\n", scenario.Bottle.ProductionCapacity)
	fmt.Fprintf(w, "Forecast:            %v\n", cfg.Forecast)
	fmt.Fprintf(w, "Actions:             %d\n", len(scenario.Actions))
	fmt.Fprintln(w)
}

func (c *PlanCommand) showHelp() {
	fmt.Fprintf(c.config.Stdout, `Bottle Planner CLI - Monthly bottle production and purchase planning

USAGE:
    bottleplan [options]

OPTIONS:
    -config <dir>       Directory searched for .env / config.env (default: .)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json (default: text)
    -verbose            Print the record and its event history after every planning step
    -debug              Trace every record mutation to the log
    -help               Show this help message

ENVIRONMENT:
    APP_ENV                      development (console logs) or production (JSON logs)
    LOG_LEVEL                    trace, debug, info, warn, error (default: info)
    PLAN_DEBUG                   same as -debug
    BOTTLE_TYPE                  bottle identifier (default: A)
    BOTTLE_CURRENT_STOCK         opening stock of the first month (default: 800)
    BOTTLE_PRODUCTION_CAPACITY   bottles produced per production day (default: 50)
    BOTTLE_PRODUCTION_COST       cost per batch of %d bottles (default: 40)
    BOTTLE_PURCHASE_COST         cost per purchased bottle (default: 0.1)
    PLAN_FORECAST                monthly consumption, comma separated (default: 1000,1800,2000,1500)
    PLAN_MONTHS                  months to plan, 0 for all (default: 2)
    PLAN_ACTIONS                 month:channel:amount list (default: 0:produce:10,0:purchase:500,0:produce:12)

RULES:
    A production run lasts 0 or at least %d days; at most %d production days per month.
    Each month must end with %d days of next month's consumption in stock.

EXAMPLES:
    # Run the reference plan
    bottleplan -verbose

    # Plan three months with JSON output
    PLAN_MONTHS=3 PLAN_ACTIONS=0:produce:12,1:produce:30,2:purchase:900 bottleplan -format json
`,
		entities.DefaultProductionBatchSize,
		entities.DefaultPolicy().MinimumProductionDays(),
		entities.DefaultPolicy().DaysInMonth(),
		entities.DefaultPolicy().MinimumBufferDays(),
	)
}
