package highlight

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is a named CSS color used as cell background
type Color string

const (
	Green   Color = "limegreen"
	Amber   Color = "gold"
	Red     Color = "lightcoral"
	Neutral Color = "white"
)

// CSS returns the inline style of a highlighted cell
func (c Color) CSS() string {
	return fmt.Sprintf("background-color: %s", c)
}

// Hex returns a terminal friendly value of the color
func (c Color) Hex() string {
	switch c {
	case Green:
		return "#32CD32"
	case Amber:
		return "#FFD700"
	case Red:
		return "#F08080"
	default:
		return "#FFFFFF"
	}
}

// Positivity colors a formatted percentage such as "3.99%".
// The last character is dropped before parsing.
func Positivity(s string) Color {
	if s == "" {
		return Neutral
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
	if err != nil {
		return Neutral
	}
	return PositivityValue(v)
}

// PositivityValue colors a positivity rate in percent
func PositivityValue(v float64) Color {
	switch {
	case math.IsNaN(v):
		return Neutral
	case v >= 4:
		return Red
	default:
		return Green
	}
}

// CaseRate colors a formatted 14-day notification rate
func CaseRate(s string) Color {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Neutral
	}
	return CaseRateValue(v)
}

// CaseRateValue colors a 14-day notification rate
func CaseRateValue(v float64) Color {
	switch {
	case math.IsNaN(v):
		return Neutral
	case v >= 150:
		return Red
	case v >= 25:
		return Amber
	default:
		return Green
	}
}
