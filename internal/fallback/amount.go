package fallback

import (
	"regexp"
	"strconv"
	"strings"
)

// amountUnit binds a currency-unit pattern to its multiplier.
type amountUnit struct {
	re         *regexp.Regexp
	multiplier float64
}

// amountUnits is tried in order and the first match wins. The order is a
// contract: "triệu" must be tried before its prefix "tr", otherwise
// "1.5 triệu" would parse as 1.5 "tr" against the shorter token.
var amountUnits = []amountUnit{
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*triệu`), 1_000_000},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*tr`), 1_000_000},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*tỷ`), 1_000_000_000},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*nghìn`), 1_000},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*k`), 1_000},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*đồng`), 1},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*vnd`), 1},
}

var bareNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Confidence contributions for the two ways an amount can be found.
const (
	unitMatchBonus  = 0.2
	bareNumberBonus = 0.1
)

// extractedAmount is the result of a successful amount extraction.
type extractedAmount struct {
	value float64
	bonus float64
}

// extractAmount finds the monetary amount in a normalized segment. A false
// return means the segment carries no usable amount and must be dropped;
// a transaction with amount zero is never produced.
func extractAmount(normalized string) (extractedAmount, bool) {
	for _, unit := range amountUnits {
		m := unit.re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil || value <= 0 {
			return extractedAmount{}, false
		}
		return extractedAmount{value: value * unit.multiplier, bonus: unitMatchBonus}, true
	}

	// No unit token: take the first bare digit run. Users typing "50"
	// almost always mean 50,000 in local currency shorthand.
	raw := bareNumberRe.FindString(normalized)
	if raw == "" {
		return extractedAmount{}, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return extractedAmount{}, false
	}
	if value < 1000 {
		value *= 1000
	}
	return extractedAmount{value: value, bonus: bareNumberBonus}, true
}

// containsDigit reports whether s has at least one ASCII digit.
func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
