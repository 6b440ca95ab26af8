package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a value object holding a strictly positive, finite amount.
type Price float64

// NewPrice constructs a valid Price or returns an error if v is not a
// finite number greater than zero.
func NewPrice(v float64) (Price, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("price must be a finite number")
	}
	if v <= 0 {
		return 0, errors.New("price must be greater than zero")
	}
	return Price(v), nil
}

// ParsePrice parses raw user input such as "450" or " 12.5 " into a Price.
func ParsePrice(raw string) (Price, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("price is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", raw)
	}
	return NewPrice(v)
}

// Float64 returns the amount as a float64.
func (p Price) Float64() float64 {
	return float64(p)
}

// String formats the amount with two decimals.
func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}
