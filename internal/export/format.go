// Package export renders an AnalysisReport as a monthly CSV table or a
// plain-text summary.
package export

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
var printer = message.NewPrinter(language.English)

// maxInt64 bounds the integer parts the printer can group via int64.
var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// notANumber is shown for NaN and infinite figures.
const notANumber = "n/a"

// Round rounds half away from zero to places decimals. NaN and infinities
// round to zero.
func Round(v float64, places int32) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(places)
}

// FormatFixed formats v with exactly places decimals and thousand separators.
// Example: FormatFixed(13687.5, 0) returns "13,688". NaN and infinities
// format as "n/a".
func FormatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notANumber
	}
	s := Round(v, places).StringFixed(places)
	intPart, frac, _ := strings.Cut(s, ".")

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	n, err := decimal.NewFromString(intPart)
	if err != nil || !n.IsInteger() {
		return s
	}
	var out string
	if n.LessThanOrEqual(maxInt64) {
		out = printer.Sprintf("%d", n.IntPart())
	} else {
		out = groupThousands(intPart)
	}
	if negative && (n.Sign() != 0 || strings.Trim(frac, "0") != "") {
		out = "-" + out
	}
	if places > 0 {
		out += "." + frac
	}
	return out
}

// groupThousands inserts commas into a string of digits.
func groupThousands(digits string) string {
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
