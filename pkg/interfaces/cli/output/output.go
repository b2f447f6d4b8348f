package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/bottleplan/pkg/application/dto"
	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool // text format: print the record after every step and the event history
	Writer    io.Writer
}

const rule = "=============================================================================="

// Generate renders the plan in the requested format, to OutputDir when set
// and to Writer (or stdout) otherwise.
func Generate(result *dto.PlanResult, config Config) error {
	var render func(io.Writer, *dto.PlanResult, Config) error
	var filename string

	switch config.Format {
	case "text", "":
		render, filename = generateTextOutput, "plan_results.txt"
	case "json":
		render, filename = generateJSONOutput, "plan_results.json"
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}

	if config.OutputDir == "" {
		w := config.Writer
		if w == nil {
			w = os.Stdout
		}
		return render(w, result, config)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(file, result, config); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if config.Verbose && config.Writer != nil {
		fmt.Fprintf(config.Writer, "💾 Results saved to: %s\n", path)
	}
	return nil
}

// Describe writes the fixed human-readable block for one record state
func Describe(w io.Writer, s dto.RecordSnapshot) error {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "    Bottle type:        '%s'\n", s.BottleType)
	fmt.Fprintf(&b, "    Current creation:   %d (bottles this month)\n", s.CurrentCreation)
	fmt.Fprintf(&b, "    Required creation:  %s (bottles this month)\n", optional(s.RequiredCreation))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "    Produced:           %d (bottles this month) for %d days\n", s.Produced, s.TotalProductionDays)
	fmt.Fprintf(&b, "    Purchased:          %d (bottles this month)\n", s.Purchased)
	fmt.Fprintf(&b, "    Total cost:         %s\n", s.TotalCost.String())
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "    Initial stock:          %d (bottles)\n", s.InitialStock)
	fmt.Fprintf(&b, "    Ending stock:           %d (bottles)\n", s.EndingStock)
	fmt.Fprintf(&b, "    Required ending stock:  %s (bottles)\n", optional(s.RequiredEndingStock))
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func optional(q *entities.Quantity) string {
	if q == nil {
		return "unset"
	}
	return fmt.Sprintf("%d", *q)
}

// generateTextOutput creates human-readable text output
func generateTextOutput(w io.Writer, result *dto.PlanResult, config Config) error {
	fmt.Fprintf(w, "📊 Bottle Plan: '%s'\n", result.BottleType)
	fmt.Fprintf(w, "======================\n\n")

	for _, month := range result.Months {
		fmt.Fprintf(w, "📅 Month %d\n", month.Month)

		if config.Verbose {
			for _, step := range month.Steps {
				fmt.Fprintf(w, "▶ %s\n", step.Step)
				if err := Describe(w, step.Record); err != nil {
					return err
				}
			}
		} else if err := Describe(w, month.Final); err != nil {
			return err
		}

		if len(month.Events) > 0 {
			fmt.Fprintf(w, "%-10s %-10s %-6s %-12s\n", "Channel", "Quantity", "Days", "Cost")
			fmt.Fprintf(w, "%-10s %-10s %-6s %-12s\n", "----------", "----------", "------", "------------")
			for _, e := range month.Events {
				fmt.Fprintf(w, "%-10s %-10d %-6d %-12s\n", e.Channel, e.Quantity, e.Days, e.Cost.String())
			}
		}

		if config.Verbose && len(month.History) > 0 {
			fmt.Fprintf(w, "History:\n")
			for _, e := range month.History {
				fmt.Fprintf(w, "  v%-3d %s\n", e.Version, e.Type)
			}
		}

		if month.MeetsRequirements {
			fmt.Fprintf(w, "✅ Requirements met (surplus %d bottles)\n\n", -month.RemainingCreation)
		} else {
			fmt.Fprintf(w, "⚠️  Requirements not met (short %d bottles)\n\n", month.RemainingCreation)
		}
	}

	fmt.Fprintf(w, "Months planned: %d\n", len(result.Months))
	fmt.Fprintf(w, "Total cost: %s\n", result.TotalCost.String())
	_, err := fmt.Fprintf(w, "Ending stock: %d\n", result.EndingStock)
	return err
}

// generateJSONOutput creates JSON output
func generateJSONOutput(w io.Writer, result *dto.PlanResult, _ Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
