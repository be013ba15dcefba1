package fallback

import (
	"strings"
	"time"
)

// Date stopwords stripped from notes. The relative ones also shift the
// transaction date; the rest only pollute notes.
var dateStopwords = []string{
	"hôm nay", "hôm qua", "hôm kia", "ngày", "tháng", "năm",
}

// resolveDate picks the transaction date: "hôm qua" and "hôm kia" shift
// the injected now back one and two days, anything else keeps it.
func resolveDate(normalized string, now time.Time) time.Time {
	switch {
	case strings.Contains(normalized, "hôm kia"):
		return now.AddDate(0, 0, -2)
	case strings.Contains(normalized, "hôm qua"):
		return now.AddDate(0, 0, -1)
	default:
		return now
	}
}
