package planning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

// Action is one scripted production run or purchase. Amount is days for
// Produce and bottles for Purchase.
type Action struct {
	Month   int
	Channel entities.CreationChannel
	Amount  int64
}

// String renders the action in the form accepted by ParseActions
func (a Action) String() string {
	return fmt.Sprintf("%d:%s:%d", a.Month, strings.ToLower(a.Channel.String()), a.Amount)
}

// Describe labels the action for reports
func (a Action) Describe() string {
	if a.Channel == entities.Produce {
		return fmt.Sprintf("produce %d days", a.Amount)
	}
	return fmt.Sprintf("purchase %d bottles", a.Amount)
}

// ParseActions parses a comma-separated list of month:channel:amount entries,
// e.g. "0:produce:10,0:purchase:500".
func ParseActions(s string) ([]Action, error) {
	var actions []Action
	for i, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		parts := strings.Split(field, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("action %d %q: expected month:channel:amount", i, field)
		}

		month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || month < 0 {
			return nil, fmt.Errorf("action %d %q: invalid month", i, field)
		}
		channel, ok := entities.ParseCreationChannel(strings.TrimSpace(parts[1]))
		if !ok {
			return nil, fmt.Errorf("action %d %q: unknown channel %q", i, field, parts[1])
		}
		amount, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("action %d %q: invalid amount: %w", i, field, err)
		}

		actions = append(actions, Action{Month: month, Channel: channel, Amount: amount})
	}
	return actions, nil
}
