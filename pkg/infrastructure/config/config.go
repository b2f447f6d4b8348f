package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/vsinha/bottleplan/pkg/application/services/planning"
	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

// Config groups the application configuration, read through Viper from the
// environment and optionally from a .env or config.env file.
type Config struct {
	App      AppConfig
	Bottle   BottleConfig
	Forecast []entities.Quantity
	// Months is how many months to plan; zero plans all the forecast allows.
	Months   int
	// Actions is the scripted production/purchase plan, e.g. "0:produce:10,0:purchase:500".
	Actions  string
}

// AppConfig holds general application settings
type AppConfig struct {
	Env      string // development, production
	LogLevel string
	Debug    bool // trace every record mutation
}

// BottleConfig describes the bottle type being planned
type BottleConfig struct {
	Type               entities.BottleType
	CurrentStock       entities.Quantity
	ProductionCapacity entities.Quantity
	ProductionCost     decimal.Decimal // per production batch
	PurchaseCost       decimal.Decimal // per bottle
}

// formatForecast renders a forecast in the form accepted by ParseForecast
func formatForecast(forecast []entities.Quantity) string {
	fields := make([]string, len(forecast))
	for i, q := range forecast {
		fields[i] = strconv.FormatInt(int64(q), 10)
	}
	return strings.Join(fields, ",")
}

// formatActions renders actions in the form accepted by planning.ParseActions
func formatActions(actions []planning.Action) string {
	fields := make([]string, len(actions))
	for i, a := range actions {
		fields[i] = a.String()
	}
	return strings.Join(fields, ",")
}

// Load reads configuration from environment variables, falling back to files
// in the given search paths. Env vars take precedence.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, name := range []string{".env", "config"} {
		v.SetConfigName(name)
		v.SetConfigType("env")
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	productionCost, err := decimal.NewFromString(v.GetString("BOTTLE_PRODUCTION_COST"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOTTLE_PRODUCTION_COST: %w", err)
	}
	purchaseCost, err := decimal.NewFromString(v.GetString("BOTTLE_PURCHASE_COST"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOTTLE_PURCHASE_COST: %w", err)
	}
	currentStock, err := getQuantity(v, "BOTTLE_CURRENT_STOCK")
	if err != nil {
		return nil, err
	}
	capacity, err := getQuantity(v, "BOTTLE_PRODUCTION_CAPACITY")
	if err != nil {
		return nil, err
	}
	forecast, err := ParseForecast(v.GetString("PLAN_FORECAST"))
	if err != nil {
		return nil, fmt.Errorf("invalid PLAN_FORECAST: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
			Debug:    v.GetBool("PLAN_DEBUG"),
		},
		Bottle: BottleConfig{
			Type:               entities.BottleType(v.GetString("BOTTLE_TYPE")),
			CurrentStock:       currentStock,
			ProductionCapacity: capacity,
			ProductionCost:     productionCost,
			PurchaseCost:       purchaseCost,
		},
		Forecast: forecast,
		Months:   v.GetInt("PLAN_MONTHS"),
		Actions:  v.GetString("PLAN_ACTIONS"),
	}

	return cfg, nil
}

// setDefaults falls back to the reference scenario for anything unset
func setDefaults(v *viper.Viper) {
	scenario := planning.DefaultScenario()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PLAN_DEBUG", false)
	v.SetDefault("BOTTLE_TYPE", string(scenario.Bottle.Type))
	v.SetDefault("BOTTLE_CURRENT_STOCK", int64(scenario.Bottle.CurrentStock))
	v.SetDefault("BOTTLE_PRODUCTION_CAPACITY", int64(scenario.Bottle.ProductionCapacity))
	v.SetDefault("BOTTLE_PRODUCTION_COST", scenario.Bottle.ProductionCost.String())
	v.SetDefault("BOTTLE_PURCHASE_COST", scenario.Bottle.PurchaseCost.String())
	v.SetDefault("PLAN_FORECAST", formatForecast(planning.DefaultForecast()))
	v.SetDefault("PLAN_MONTHS", scenario.Months)
	v.SetDefault("PLAN_ACTIONS", formatActions(scenario.Actions))
}

func getQuantity(v *viper.Viper, key string) (entities.Quantity, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(v.GetString(key)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return entities.Quantity(n), nil
}

// ParseForecast parses a comma-separated list of monthly consumption figures
func ParseForecast(s string) ([]entities.Quantity, error) {
	var forecast []entities.Quantity
	for i, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", i, err)
		}
		forecast = append(forecast, entities.Quantity(n))
	}
	return forecast, nil
}
