package render

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Grouped formats v with thousands separators and up to three fraction
// digits, e.g. 12345.678 as "12,345.678".
func Grouped(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Integer formats v rounded to an integer with no grouping. Year axes use it.
func Integer(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

// TickFormat returns a formatter for ticks, using just enough fraction
// digits to tell adjacent ticks apart.
func TickFormat(ticks []float64) func(float64) string {
	digits := 0
	if len(ticks) > 1 {
		step := math.Abs(ticks[1] - ticks[0])
		if step > 0 && step < 1 {
			digits = int(math.Ceil(-math.Log10(step)))
		}
	}
	return func(v float64) string {
		return printer.Sprint(number.Decimal(v, number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
	}
}
