package entities

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// BottleType identifies a kind of bottle being planned
type BottleType string

// Quantity represents an integer count of bottles
type Quantity int64

// Decimal converts the quantity for cost arithmetic
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(q))
}

// addQuantities returns a+b, or false when the sum overflows
func addQuantities(a, b Quantity) (Quantity, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// mulQuantities returns a*b for non-negative operands, or false when the
// product overflows.
func mulQuantities(a, b Quantity) (Quantity, bool) {
	if b != 0 && a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

// CreationChannel represents how bottles were added to inventory
type CreationChannel int

const (
	Produce CreationChannel = iota
	Purchase
)

// String method for CreationChannel enum
func (c CreationChannel) String() string {
	switch c {
	case Produce:
		return "Produce"
	case Purchase:
		return "Purchase"
	default:
		return "Unknown"
	}
}

func (c CreationChannel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CreationChannel) UnmarshalText(text []byte) error {
	parsed, ok := ParseCreationChannel(string(text))
	if !ok {
		return fmt.Errorf("unknown creation channel %q", text)
	}
	*c = parsed
	return nil
}

// ParseCreationChannel maps a case-insensitive name back to its channel
func ParseCreationChannel(s string) (CreationChannel, bool) {
	switch strings.ToLower(s) {
	case "produce":
		return Produce, true
	case "purchase":
		return Purchase, true
	default:
		return 0, false
	}
}

// CreationEvent describes one production run or purchase applied to a record
type CreationEvent struct {
	Channel  CreationChannel `json:"channel"`
	Quantity Quantity        `json:"quantity"`
	Days     int             `json:"days,omitempty"`
	Cost     decimal.Decimal `json:"cost"`
}
