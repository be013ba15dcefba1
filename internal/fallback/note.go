package fallback

import (
	"regexp"
	"strings"
)

const maxNoteLength = 100

// Strip patterns for note extraction: number+unit amounts first, then any
// leftover digit runs so re-parsing a note can never find an amount again,
// then date stopwords.
var (
	amountStripRe = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(triệu|tr|tỷ|nghìn|k|đồng|vnd)`)
	digitStripRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	spaceRe       = regexp.MustCompile(`\s+`)

	dateStripRe = compileDateStrip()
)

func compileDateStrip() *regexp.Regexp {
	quoted := make([]string, len(dateStopwords))
	for i, w := range dateStopwords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
}

// extractNote derives a free-text note from the original (non-normalized)
// segment so user casing survives. Amount and date tokens are removed;
// an empty result means no note at all, not an empty note.
func extractNote(original string) (string, bool) {
	note := amountStripRe.ReplaceAllString(original, " ")
	note = digitStripRe.ReplaceAllString(note, " ")
	note = dateStripRe.ReplaceAllString(note, " ")
	note = strings.TrimSpace(spaceRe.ReplaceAllString(note, " "))

	if note == "" {
		return "", false
	}
	if runes := []rune(note); len(runes) > maxNoteLength {
		note = string(runes[:maxNoteLength])
	}
	return note, true
}
